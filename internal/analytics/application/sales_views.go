package application

import (
	"fmt"
	"sort"

	"jnmoveis/internal/analytics/domain"
	shareddomain "jnmoveis/internal/shared/domain"
)

type orderAcc struct {
	orders    int
	value     float64
	customers set
}

func newOrderAcc() *orderAcc { return &orderAcc{customers: set{}} }

func (a *orderAcc) add(o *domain.Order) {
	a.orders++
	a.value += o.Total
	a.customers.add(o.CustomerID)
}

func (a *orderAcc) avg() float64 {
	return shareddomain.Ratio(a.value, float64(a.orders))
}

type yearMonth struct{ year, month int }

// SalesByYear ventes par année avec croissance d'une année sur l'autre.
// La croissance est absente pour la première année et quand la base est nulle.
func (e *Engine) SalesByYear() domain.YearlySales {
	groups := newOrdered[int, orderAcc]()
	for i := range e.dataset.Orders {
		o := &e.dataset.Orders[i]
		if !o.Dated() {
			continue
		}
		groups.at(o.Year, newOrderAcc).add(o)
	}

	out := make(domain.YearlySales, 0, groups.len())
	groups.each(func(year int, a *orderAcc) {
		out = append(out, domain.YearSales{
			Year:      year,
			Orders:    a.orders,
			Value:     a.value,
			Customers: len(a.customers),
			AvgOrder:  a.avg(),
		})
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })

	for i := 1; i < len(out); i++ {
		out[i].ValueGrowth, out[i].ValueGrowthOK = shareddomain.Growth(out[i].Value, out[i-1].Value)
		out[i].OrdersGrowth, out[i].OrdersGrowthOK = shareddomain.Growth(float64(out[i].Orders), float64(out[i-1].Orders))
	}
	return out
}

// MonthlySales ventes par mois en ordre chronologique; year=0 couvre toutes les années
func (e *Engine) MonthlySales(year int) domain.MonthlySales {
	groups := newOrdered[yearMonth, orderAcc]()
	for i := range e.dataset.Orders {
		o := &e.dataset.Orders[i]
		if !o.Dated() || (year != 0 && o.Year != year) {
			continue
		}
		groups.at(yearMonth{o.Year, o.Month}, newOrderAcc).add(o)
	}

	out := make(domain.MonthlySales, 0, groups.len())
	groups.each(func(k yearMonth, a *orderAcc) {
		out = append(out, domain.MonthSales{
			Year:      k.year,
			Month:     k.month,
			MonthName: shareddomain.MonthName(k.month),
			YearMonth: fmt.Sprintf("%04d-%02d", k.year, k.month),
			Orders:    a.orders,
			Value:     a.value,
			Customers: len(a.customers),
			AvgOrder:  a.avg(),
		})
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// CompareMonth compare un même mois entre deux années.
// Les trois variations valent 0 quand le mois de base n'a aucune commande.
func (e *Engine) CompareMonth(month, baseYear, compareYear int) (domain.MonthComparison, error) {
	if month < 1 || month > 12 {
		return domain.MonthComparison{}, fmt.Errorf("%w: month must be between 1 and 12, got %d", domain.ErrInvalidParameter, month)
	}

	bucket := func(year int) domain.MonthBucket {
		a := newOrderAcc()
		for i := range e.dataset.Orders {
			o := &e.dataset.Orders[i]
			if o.Dated() && o.Year == year && o.Month == month {
				a.add(o)
			}
		}
		return domain.MonthBucket{
			Year:      year,
			Orders:    a.orders,
			Value:     a.value,
			Mean:      a.avg(),
			Customers: len(a.customers),
		}
	}

	base, compare := bucket(baseYear), bucket(compareYear)
	variation := func(current, previous float64) float64 {
		growth, ok := shareddomain.Growth(current, previous)
		if !ok {
			return 0
		}
		return growth
	}
	return domain.MonthComparison{
		Month:           month,
		MonthName:       shareddomain.MonthName(month),
		Base:            base,
		Compare:         compare,
		OrdersVariation: variation(float64(compare.Orders), float64(base.Orders)),
		ValueVariation:  variation(compare.Value, base.Value),
		MeanVariation:   variation(compare.Mean, base.Mean),
	}, nil
}

// SalesByChannel ventes par canal, valeur décroissante
func (e *Engine) SalesByChannel() domain.GroupBreakdown {
	return e.breakdown(domain.ViewSalesByChannel, func(o *domain.Order) string { return o.Channel })
}

// SalesByPayment ventes par forme de paiement, valeur décroissante
func (e *Engine) SalesByPayment() domain.GroupBreakdown {
	return e.breakdown(domain.ViewSalesByPayment, func(o *domain.Order) string { return o.PaymentMethod })
}

func (e *Engine) breakdown(kind domain.ViewKind, keyOf func(*domain.Order) string) domain.GroupBreakdown {
	groups := newOrdered[string, orderAcc]()
	var totalOrders, totalValue float64
	for i := range e.dataset.Orders {
		o := &e.dataset.Orders[i]
		key := keyOf(o)
		if key == "" {
			continue
		}
		groups.at(key, newOrderAcc).add(o)
		totalOrders++
		totalValue += o.Total
	}

	rows := make([]domain.GroupSales, 0, groups.len())
	groups.each(func(key string, a *orderAcc) {
		rows = append(rows, domain.GroupSales{
			Key:           key,
			Orders:        a.orders,
			Value:         a.value,
			Customers:     len(a.customers),
			AvgOrder:      a.avg(),
			PercentOrders: shareddomain.Share(float64(a.orders), totalOrders),
			PercentValue:  shareddomain.Share(a.value, totalValue),
		})
	})
	sortDesc(rows, func(g domain.GroupSales) float64 { return g.Value })
	return domain.GroupBreakdown{Kind: kind, Rows: rows}
}

// ChannelSalesByMonth ventes par mois et canal, chronologique puis par canal
func (e *Engine) ChannelSalesByMonth(period shareddomain.Period) domain.ChannelMonthly {
	type key struct {
		ym      yearMonth
		channel string
	}
	groups := newOrdered[key, orderAcc]()
	for i := range e.dataset.Orders {
		o := &e.dataset.Orders[i]
		if !o.Dated() || o.Channel == "" || !period.Contains(o.Year, o.Month) {
			continue
		}
		groups.at(key{yearMonth{o.Year, o.Month}, o.Channel}, newOrderAcc).add(o)
	}

	out := make(domain.ChannelMonthly, 0, groups.len())
	groups.each(func(k key, a *orderAcc) {
		out = append(out, domain.ChannelMonth{
			Year:      k.ym.year,
			Month:     k.ym.month,
			YearMonth: fmt.Sprintf("%04d-%02d", k.ym.year, k.ym.month),
			Channel:   k.channel,
			Orders:    a.orders,
			Value:     a.value,
		})
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].YearMonth != out[j].YearMonth {
			return out[i].YearMonth < out[j].YearMonth
		}
		return out[i].Channel < out[j].Channel
	})
	return out
}

// TotalSales résumé des ventes. Sans année toutes les commandes sont comptées;
// avec une année seules les commandes datées de la période et leurs lignes le sont.
func (e *Engine) TotalSales(period shareddomain.Period) domain.TotalSales {
	orders := newOrderAcc()
	selected := make(map[string]struct{})
	for i := range e.dataset.Orders {
		o := &e.dataset.Orders[i]
		if period.HasYear() && (!o.Dated() || !period.Contains(o.Year, o.Month)) {
			continue
		}
		orders.add(o)
		selected[o.ID] = struct{}{}
	}

	items := 0
	products := set{}
	for _, line := range e.dataset.SaleLines {
		if period.HasYear() {
			if _, ok := selected[line.OrderID]; !ok {
				continue
			}
		}
		items += line.Quantity
		products.add(line.ProductID)
	}

	return domain.TotalSales{
		Period:    period,
		Value:     orders.value,
		Orders:    orders.orders,
		Items:     items,
		AvgOrder:  orders.avg(),
		Customers: len(orders.customers),
		Products:  len(products),
		AvgItems:  shareddomain.Ratio(float64(items), float64(orders.orders)),
	}
}

// Seasonality valeur mensuelle et indice de saisonnalité:
// valeur du mois / moyenne des valeurs mensuelles de l'année x 100
func (e *Engine) Seasonality() domain.Seasonality {
	groups := newOrdered[yearMonth, orderAcc]()
	for i := range e.dataset.Orders {
		o := &e.dataset.Orders[i]
		if !o.Dated() {
			continue
		}
		groups.at(yearMonth{o.Year, o.Month}, newOrderAcc).add(o)
	}

	yearSum := make(map[int]float64)
	yearMonths := make(map[int]int)
	groups.each(func(k yearMonth, a *orderAcc) {
		yearSum[k.year] += a.value
		yearMonths[k.year]++
	})

	out := make(domain.Seasonality, 0, groups.len())
	groups.each(func(k yearMonth, a *orderAcc) {
		yearMean := shareddomain.Ratio(yearSum[k.year], float64(yearMonths[k.year]))
		out = append(out, domain.SeasonalityRow{
			Year:      k.year,
			Month:     k.month,
			MonthName: shareddomain.MonthName(k.month),
			Value:     a.value,
			Mean:      a.avg(),
			Orders:    a.orders,
			Customers: len(a.customers),
			Index:     shareddomain.Ratio(a.value, yearMean) * 100,
		})
	})
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// Pareto contribution de chaque couple (client, canal) au chiffre total, avec cumul
func (e *Engine) Pareto(n int) domain.Pareto {
	type key struct{ customer, channel string }
	type acc struct {
		name  string
		value float64
	}
	groups := newOrdered[key, acc]()
	var total float64
	for _, f := range e.facts {
		if f.Customer == nil || f.Channel() == "" {
			continue
		}
		groups.at(key{f.Customer.ID, f.Channel()}, func() *acc { return &acc{name: f.Customer.Name} }).value += f.Line.Subtotal
		total += f.Line.Subtotal
	}

	out := make(domain.Pareto, 0, groups.len())
	groups.each(func(k key, a *acc) {
		out = append(out, domain.ParetoRow{CustomerID: k.customer, Name: a.name, Channel: k.channel, Value: a.value})
	})
	sortDesc(out, func(p domain.ParetoRow) float64 { return p.Value })

	var cumulative float64
	for i := range out {
		cumulative += out[i].Value
		out[i].Rank = i + 1
		out[i].Share = shareddomain.Share(out[i].Value, total)
		out[i].Cumulative = shareddomain.Share(cumulative, total)
	}
	return topN(out, n)
}
