package application

import (
	"regexp"
	"sort"

	"jnmoveis/internal/analytics/domain"
	shareddomain "jnmoveis/internal/shared/domain"
)

// Familles de catégories des classements filtrés
var (
	cosmeticsCategory = regexp.MustCompile(`(?i)cosm|colora|cabelo|beleza`)
	chairsCategory    = regexp.MustCompile(`(?i)cadeira|lavat|mobili`)
)

type productAcc struct {
	product  *domain.Product
	quantity int
	revenue  float64
}

// productSales agrège quantité et chiffre par produit; keep filtre les faits (nil: tous)
func (e *Engine) productSales(keep func(domain.Fact) bool) []*productAcc {
	groups := newOrdered[string, productAcc]()
	for _, f := range e.facts {
		if f.Product == nil || (keep != nil && !keep(f)) {
			continue
		}
		a := groups.at(f.Product.ID, func() *productAcc { return &productAcc{product: f.Product} })
		a.quantity += f.Line.Quantity
		a.revenue += f.Line.Subtotal
	}
	return groups.values
}

func toProductSales(accs []*productAcc) []domain.ProductSales {
	out := make([]domain.ProductSales, 0, len(accs))
	for _, a := range accs {
		out = append(out, domain.ProductSales{
			ProductID: a.product.ID,
			Name:      a.product.Name,
			Category:  a.product.Category,
			Quantity:  a.quantity,
			Revenue:   a.revenue,
		})
	}
	return out
}

// TopProducts les n produits les plus vendus en quantité.
// La part est calculée sur la quantité totale avant troncature.
func (e *Engine) TopProducts(n int) domain.ProductRanking {
	return e.topProductsWhere(n, nil)
}

func (e *Engine) topProductsWhere(n int, keep func(domain.Fact) bool) domain.ProductRanking {
	out := toProductSales(e.productSales(keep))
	var total float64
	for _, p := range out {
		total += float64(p.Quantity)
	}
	for i := range out {
		out[i].Percent = shareddomain.Share(float64(out[i].Quantity), total)
	}
	sortDesc(out, func(p domain.ProductSales) float64 { return float64(p.Quantity) })
	return topN(domain.ProductRanking(out), n)
}

// TopCosmetics les n cosmétiques au plus fort chiffre
func (e *Engine) TopCosmetics(n int) domain.FilteredProducts {
	return e.filteredTop(domain.ViewTopCosmetics, cosmeticsCategory, n)
}

// TopChairs les n cadeiras et lavatórios au plus fort chiffre
func (e *Engine) TopChairs(n int) domain.FilteredProducts {
	return e.filteredTop(domain.ViewTopChairs, chairsCategory, n)
}

func (e *Engine) filteredTop(kind domain.ViewKind, category *regexp.Regexp, n int) domain.FilteredProducts {
	out := toProductSales(e.productSales(func(f domain.Fact) bool {
		return category.MatchString(f.Product.Category)
	}))
	sortDesc(out, func(p domain.ProductSales) float64 { return p.Revenue })
	return domain.FilteredProducts{Kind: kind, Rows: topN(out, n)}
}

// SalesBySegment ventes par catégorie, chiffre décroissant
func (e *Engine) SalesBySegment() domain.SegmentSalesList {
	type acc struct {
		quantity int
		revenue  float64
		products set
		orders   set
	}
	groups := newOrdered[string, acc]()
	var total float64
	for _, f := range e.facts {
		category := f.Category()
		if category == "" {
			continue
		}
		a := groups.at(category, func() *acc { return &acc{products: set{}, orders: set{}} })
		a.quantity += f.Line.Quantity
		a.revenue += f.Line.Subtotal
		a.products.add(f.Line.ProductID)
		a.orders.add(f.Line.OrderID)
		total += f.Line.Subtotal
	}

	out := make(domain.SegmentSalesList, 0, groups.len())
	groups.each(func(category string, a *acc) {
		out = append(out, domain.SegmentSales{
			Category: category,
			Quantity: a.quantity,
			Revenue:  a.revenue,
			Products: len(a.products),
			Orders:   len(a.orders),
			Percent:  shareddomain.Share(a.revenue, total),
			AvgOrder: shareddomain.Ratio(a.revenue, float64(len(a.orders))),
		})
	})
	sortDesc(out, func(s domain.SegmentSales) float64 { return s.Revenue })
	return out
}

// ColorsSold ventes par couleur, quantité décroissante
func (e *Engine) ColorsSold(n int) domain.ColorRanking {
	type acc struct {
		quantity int
		revenue  float64
		orders   set
	}
	groups := newOrdered[string, acc]()
	var total float64
	for _, f := range e.facts {
		if f.Color == nil || f.Color.Name == "" {
			continue
		}
		a := groups.at(f.Color.Name, func() *acc { return &acc{orders: set{}} })
		a.quantity += f.Line.Quantity
		a.revenue += f.Line.Subtotal
		a.orders.add(f.Line.OrderID)
		total += float64(f.Line.Quantity)
	}

	out := make(domain.ColorRanking, 0, groups.len())
	groups.each(func(color string, a *acc) {
		out = append(out, domain.ColorSales{
			Color:    color,
			Quantity: a.quantity,
			Revenue:  a.revenue,
			Orders:   len(a.orders),
			Percent:  shareddomain.Share(float64(a.quantity), total),
		})
	})
	sortDesc(out, func(c domain.ColorSales) float64 { return float64(c.Quantity) })
	return topN(out, n)
}

// ProductProfitability chiffre et part du chiffre total par produit
func (e *Engine) ProductProfitability(n int) domain.ProductProfitability {
	accs := e.productSales(nil)
	var total float64
	for _, a := range accs {
		total += a.revenue
	}

	out := make(domain.ProductProfitability, 0, len(accs))
	for _, a := range accs {
		out = append(out, domain.ProductProfit{
			ProductID: a.product.ID,
			Name:      a.product.Name,
			Category:  a.product.Category,
			Quantity:  a.quantity,
			Revenue:   a.revenue,
			UnitPrice: a.product.UnitPrice,
			Percent:   shareddomain.Share(a.revenue, total),
		})
	}
	sortDesc(out, func(p domain.ProductProfit) float64 { return p.Revenue })
	return topN(out, n)
}

// Top3PerSegment les trois meilleurs produits de chaque catégorie.
// Le rang départage les égalités par ordre d'apparition.
func (e *Engine) Top3PerSegment() domain.SegmentTop3 {
	type key struct{ category, product string }
	type acc struct {
		product  *domain.Product
		quantity int
		revenue  float64
	}
	groups := newOrdered[key, acc]()
	totals := make(map[string]float64)
	for _, f := range e.facts {
		category := f.Category()
		if category == "" {
			continue
		}
		a := groups.at(key{category, f.Product.ID}, func() *acc { return &acc{product: f.Product} })
		a.quantity += f.Line.Quantity
		a.revenue += f.Line.Subtotal
		totals[category] += f.Line.Subtotal
	}

	ranked := make([]domain.SegmentRank, 0, groups.len())
	groups.each(func(k key, a *acc) {
		ranked = append(ranked, domain.SegmentRank{
			Category:     k.category,
			ProductID:    a.product.ID,
			Name:         a.product.Name,
			Quantity:     a.quantity,
			Revenue:      a.revenue,
			SegmentTotal: totals[k.category],
			Percent:      shareddomain.Share(a.revenue, totals[k.category]),
		})
	})
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Category != ranked[j].Category {
			return ranked[i].Category < ranked[j].Category
		}
		return ranked[i].Revenue > ranked[j].Revenue
	})

	out := make(domain.SegmentTop3, 0, len(ranked))
	rank, current := 0, ""
	for _, r := range ranked {
		if r.Category != current {
			current, rank = r.Category, 0
		}
		rank++
		if rank <= 3 {
			r.Rank = rank
			out = append(out, r)
		}
	}
	return out
}

// ProductMix composition de chaque commande à partir des lignes de vente.
// Les statistiques portent sur toutes les commandes, n ne limite que les lignes rendues.
func (e *Engine) ProductMix(n int) domain.ProductMix {
	type acc struct {
		products set
		quantity int
		value    float64
	}
	groups := newOrdered[string, acc]()
	for _, line := range e.dataset.SaleLines {
		if line.OrderID == "" {
			continue
		}
		a := groups.at(line.OrderID, func() *acc { return &acc{products: set{}} })
		a.products.add(line.ProductID)
		a.quantity += line.Quantity
		a.value += line.Subtotal
	}

	rows := make([]domain.OrderMix, 0, groups.len())
	products := make([]float64, 0, groups.len())
	quantities := make([]float64, 0, groups.len())
	values := make([]float64, 0, groups.len())
	groups.each(func(order string, a *acc) {
		rows = append(rows, domain.OrderMix{OrderID: order, Products: len(a.products), Quantity: a.quantity, Value: a.value})
		products = append(products, float64(len(a.products)))
		quantities = append(quantities, float64(a.quantity))
		values = append(values, a.value)
	})

	return domain.ProductMix{
		Orders:         topN(rows, n),
		TotalOrders:    len(rows),
		MeanProducts:   mean(products),
		MedianProducts: median(products),
		MeanQuantity:   mean(quantities),
		MeanValue:      mean(values),
	}
}
