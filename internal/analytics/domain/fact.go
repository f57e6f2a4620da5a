package domain

// Fact ligne de la table consolidée: une ligne de vente et ses entités jointes.
// Un pointeur nil signifie que la clé étrangère n'a pas été résolue.
type Fact struct {
	Line     SaleLine
	Order    *Order
	Product  *Product
	Color    *Color
	Customer *Customer
}

// CustomerID identifiant client porté par la commande jointe ("" si commande absente)
func (f Fact) CustomerID() string {
	if f.Order == nil {
		return ""
	}
	return f.Order.CustomerID
}

// Category catégorie du produit joint ("" si produit absent)
func (f Fact) Category() string {
	if f.Product == nil {
		return ""
	}
	return f.Product.Category
}

// Channel canal de vente de la commande jointe ("" si commande absente)
func (f Fact) Channel() string {
	if f.Order == nil {
		return ""
	}
	return f.Order.Channel
}

// Consolidate construit la table de faits par jointures gauches successives:
// SaleLine -> Order -> Product -> Color -> Customer (via la commande).
// Le résultat contient exactement une ligne par ligne de vente.
func Consolidate(ds *Dataset) []Fact {
	orders := make(map[string]*Order, len(ds.Orders))
	for i := range ds.Orders {
		o := &ds.Orders[i]
		if _, seen := orders[o.ID]; !seen && o.ID != "" {
			orders[o.ID] = o
		}
	}
	products := make(map[string]*Product, len(ds.Products))
	for i := range ds.Products {
		p := &ds.Products[i]
		if _, seen := products[p.ID]; !seen && p.ID != "" {
			products[p.ID] = p
		}
	}
	colors := make(map[string]*Color, len(ds.Colors))
	for i := range ds.Colors {
		c := &ds.Colors[i]
		if _, seen := colors[c.ID]; !seen && c.ID != "" {
			colors[c.ID] = c
		}
	}
	customers := make(map[string]*Customer, len(ds.Customers))
	for i := range ds.Customers {
		c := &ds.Customers[i]
		if _, seen := customers[c.ID]; !seen && c.ID != "" {
			customers[c.ID] = c
		}
	}

	facts := make([]Fact, len(ds.SaleLines))
	for i, line := range ds.SaleLines {
		fact := Fact{Line: line}
		fact.Order = orders[line.OrderID]
		fact.Product = products[line.ProductID]
		fact.Color = colors[line.ColorID]
		if fact.Order != nil {
			fact.Customer = customers[fact.Order.CustomerID]
		}
		facts[i] = fact
	}
	return facts
}
