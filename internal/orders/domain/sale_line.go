package domain

import (
	"jnmoveis/database"
	shareddomain "jnmoveis/internal/shared/domain"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

// SaleLine ligne produit d'une commande (collection Vendas)
type SaleLine struct {
	ID        int64   `json:"id_venda"`
	OrderID   int64   `json:"id_pedido" validate:"gt=0"`
	ProductID int64   `json:"id_produto" validate:"gt=0"`
	ColorID   int64   `json:"id_cor" validate:"gte=0"`
	Quantity  int     `json:"quantidade" validate:"gt=0"`
	Subtotal  float64 `json:"subtotal" validate:"gte=0"`
	CreatedAt string  `json:"data_cadastro,omitempty"`
}

func (l SaleLine) Document() sharedinfra.Document {
	return sharedinfra.Document{
		database.FieldSaleOrder:    l.OrderID,
		database.FieldSaleProduct:  l.ProductID,
		database.FieldSaleColor:    l.ColorID,
		database.FieldSaleQuantity: l.Quantity,
		database.FieldSaleSubtotal: l.Subtotal,
	}
}

// PriceWith complète le sous-total à partir du prix unitaire quand il n'est pas fourni
func (l SaleLine) PriceWith(unitPrice float64) SaleLine {
	if l.Subtotal > 0 || unitPrice <= 0 {
		return l
	}
	qty := shareddomain.QuantityOrDefault(l.Quantity, 1)
	l.Subtotal = qty.Price(shareddomain.MoneyOf(unitPrice)).Amount()
	return l
}

// SaleLineFromDocument lit une ligne de vente brute
func SaleLineFromDocument(doc sharedinfra.Document) SaleLine {
	return SaleLine{
		ID:        doc.Int(database.FieldSaleID),
		OrderID:   doc.Int(database.FieldSaleOrder),
		ProductID: doc.Int(database.FieldSaleProduct),
		ColorID:   doc.Int(database.FieldSaleColor),
		Quantity:  int(doc.Float(database.FieldSaleQuantity)),
		Subtotal:  doc.Float(database.FieldSaleSubtotal),
		CreatedAt: doc.Text(database.FieldCreatedAt),
	}
}

// SaleLinePatch modification partielle d'une ligne de vente
type SaleLinePatch struct {
	ProductID *int64   `json:"id_produto" validate:"omitempty,gt=0"`
	ColorID   *int64   `json:"id_cor" validate:"omitempty,gte=0"`
	Quantity  *int     `json:"quantidade" validate:"omitempty,gt=0"`
	Subtotal  *float64 `json:"subtotal" validate:"omitempty,gte=0"`
}

func (p SaleLinePatch) Set() sharedinfra.Document {
	set := sharedinfra.Document{}
	if p.ProductID != nil {
		set[database.FieldSaleProduct] = *p.ProductID
	}
	if p.ColorID != nil {
		set[database.FieldSaleColor] = *p.ColorID
	}
	if p.Quantity != nil {
		set[database.FieldSaleQuantity] = *p.Quantity
	}
	if p.Subtotal != nil {
		set[database.FieldSaleSubtotal] = *p.Subtotal
	}
	return set
}
