package application

import (
	"sort"

	"jnmoveis/internal/analytics/domain"
	shareddomain "jnmoveis/internal/shared/domain"
)

// CustomersBySex répartition des clients par sexe, ordre de première apparition.
// Les clients sans sexe renseigné sont exclus du décompte.
func (e *Engine) CustomersBySex() domain.SexDistribution {
	type acc struct{ count int }
	groups := newOrdered[string, acc]()
	total := 0
	for _, c := range e.dataset.Customers {
		if c.Sex == "" {
			continue
		}
		groups.at(c.Sex, func() *acc { return &acc{} }).count++
		total++
	}

	out := make(domain.SexDistribution, 0, groups.len())
	groups.each(func(sex string, a *acc) {
		out = append(out, domain.SexCount{
			Sex:       sex,
			Customers: a.count,
			Percent:   shareddomain.Share(float64(a.count), float64(total)),
		})
	})
	return out
}

// CustomersByRegion clients par (état, ville), du plus peuplé au moins peuplé.
// Un client sans état ou sans ville n'est pas compté.
func (e *Engine) CustomersByRegion(n int) domain.RegionDistribution {
	type region struct{ state, city string }
	type acc struct{ count int }
	groups := newOrdered[region, acc]()
	total := 0
	for _, c := range e.dataset.Customers {
		if c.State == "" || c.City == "" {
			continue
		}
		groups.at(region{c.State, c.City}, func() *acc { return &acc{} }).count++
		total++
	}

	out := make(domain.RegionDistribution, 0, groups.len())
	groups.each(func(r region, a *acc) {
		out = append(out, domain.RegionCount{
			State:     r.state,
			City:      r.city,
			Customers: a.count,
			Percent:   shareddomain.Share(float64(a.count), float64(total)),
		})
	})
	sortDesc(out, func(r domain.RegionCount) float64 { return float64(r.Customers) })
	return topN(out, n)
}

// ChannelPurchases commandes et valeur par client et canal, valeur décroissante
func (e *Engine) ChannelPurchases(n int) domain.ChannelPurchases {
	type key struct{ customer, channel string }
	type acc struct {
		name   string
		orders set
		value  float64
	}
	groups := newOrdered[key, acc]()
	for _, f := range e.facts {
		if f.Customer == nil || f.Channel() == "" {
			continue
		}
		a := groups.at(key{f.Customer.ID, f.Channel()}, func() *acc {
			return &acc{name: f.Customer.Name, orders: set{}}
		})
		a.orders.add(f.Line.OrderID)
		a.value += f.Line.Subtotal
	}

	out := make(domain.ChannelPurchases, 0, groups.len())
	groups.each(func(k key, a *acc) {
		out = append(out, domain.ChannelPurchase{
			CustomerID: k.customer,
			Name:       a.name,
			Channel:    k.channel,
			Orders:     len(a.orders),
			Value:      a.value,
		})
	})
	sortDesc(out, func(r domain.ChannelPurchase) float64 { return r.Value })
	return topN(out, n)
}

// CategoryPreferences quantité et valeur par client et catégorie,
// triées par client puis valeur décroissante
func (e *Engine) CategoryPreferences(n int) domain.CategoryPreferences {
	type key struct{ customer, category string }
	type acc struct {
		name     string
		quantity int
		value    float64
	}
	groups := newOrdered[key, acc]()
	for _, f := range e.facts {
		if f.Customer == nil || f.Category() == "" {
			continue
		}
		a := groups.at(key{f.Customer.ID, f.Category()}, func() *acc { return &acc{name: f.Customer.Name} })
		a.quantity += f.Line.Quantity
		a.value += f.Line.Subtotal
	}

	out := make(domain.CategoryPreferences, 0, groups.len())
	groups.each(func(k key, a *acc) {
		out = append(out, domain.CategoryPreference{
			CustomerID: k.customer,
			Name:       a.name,
			Category:   k.category,
			Quantity:   a.quantity,
			Value:      a.value,
		})
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CustomerID != out[j].CustomerID {
			return lessKey(out[i].CustomerID, out[j].CustomerID)
		}
		return out[i].Value > out[j].Value
	})
	return topN(out, n)
}

// customerValues totaux par client sur la table de faits, ordre de première apparition
func (e *Engine) customerValues() []domain.CustomerValue {
	type acc struct {
		customer *domain.Customer
		orders   set
		value    float64
		quantity int
	}
	groups := newOrdered[string, acc]()
	for _, f := range e.facts {
		if f.Customer == nil {
			continue
		}
		a := groups.at(f.Customer.ID, func() *acc { return &acc{customer: f.Customer, orders: set{}} })
		a.orders.add(f.Line.OrderID)
		a.value += f.Line.Subtotal
		a.quantity += f.Line.Quantity
	}

	out := make([]domain.CustomerValue, 0, groups.len())
	groups.each(func(id string, a *acc) {
		out = append(out, domain.CustomerValue{
			CustomerID: id,
			Name:       a.customer.Name,
			City:       a.customer.City,
			State:      a.customer.State,
			Orders:     len(a.orders),
			Value:      a.value,
			Quantity:   a.quantity,
			AvgOrder:   shareddomain.Ratio(a.value, float64(len(a.orders))),
		})
	})
	return out
}

// ValuableCustomers les n clients au plus grand montant d'achats
func (e *Engine) ValuableCustomers(n int) domain.CustomerRanking {
	out := e.customerValues()
	sortDesc(out, func(r domain.CustomerValue) float64 { return r.Value })
	return topN(domain.CustomerRanking(out), n)
}

// CustomerValueSummary valeur par client avec moyenne et médiane calculées sur tous les clients
func (e *Engine) CustomerValueSummary(n int) domain.CustomerValueSummary {
	all := e.customerValues()

	values := make([]float64, len(all))
	orders := make([]float64, len(all))
	tickets := make([]float64, len(all))
	for i, c := range all {
		values[i] = c.Value
		orders[i] = float64(c.Orders)
		tickets[i] = c.AvgOrder
	}

	sortDesc(all, func(r domain.CustomerValue) float64 { return r.Value })
	return domain.CustomerValueSummary{
		Customers:   topN(domain.CustomerRanking(all), n),
		MeanValue:   mean(values),
		MedianValue: median(values),
		MeanOrders:  mean(orders),
		MeanTicket:  mean(tickets),
	}
}
