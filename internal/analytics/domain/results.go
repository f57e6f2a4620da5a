package domain

import (
	"fmt"
	"strconv"

	shareddomain "jnmoveis/internal/shared/domain"
)

func textCol(key, label string) Column  { return Column{Key: key, Label: label, Kind: ColumnText} }
func intCol(key, label string) Column   { return Column{Key: key, Label: label, Kind: ColumnInteger} }
func moneyCol(key, label string) Column { return Column{Key: key, Label: label, Kind: ColumnCurrency} }
func pctCol(key, label string) Column   { return Column{Key: key, Label: label, Kind: ColumnPercent} }
func decCol(key, label string) Column   { return Column{Key: key, Label: label, Kind: ColumnDecimal} }
func varCol(key, label string) Column   { return Column{Key: key, Label: label, Kind: ColumnVariation} }

func tableReport(kind ViewKind, t *Table) Report {
	r := NewReport(kind)
	r.Add(Section{Table: t})
	return r
}

// ---------------------------------------------------------------- clientes

// SexCount nombre de clients pour un sexe
type SexCount struct {
	Sex       string
	Customers int
	Percent   float64
}

// SexDistribution répartition des clients par sexe, ordre de première apparition
type SexDistribution []SexCount

func (d SexDistribution) Table() *Table {
	t := NewTable(textCol("sexo", "Sexo"), intCol("total_clientes", "Total de Clientes"), pctCol("percentual", "Percentual"))
	for _, r := range d {
		t.AddRow(TextCell(r.Sex), IntCell(r.Customers), PercentCell(r.Percent))
	}
	return t
}

func (d SexDistribution) Report() Report { return tableReport(ViewCustomersBySex, d.Table()) }

// RegionCount nombre de clients pour un couple (état, ville)
type RegionCount struct {
	State     string
	City      string
	Customers int
	Percent   float64
}

type RegionDistribution []RegionCount

func (d RegionDistribution) Table() *Table {
	t := NewTable(textCol("estado", "Estado"), textCol("cidade", "Cidade"),
		intCol("total_clientes", "Total de Clientes"), pctCol("percentual", "Percentual"))
	for _, r := range d {
		t.AddRow(TextCell(r.State), TextCell(r.City), IntCell(r.Customers), PercentCell(r.Percent))
	}
	return t
}

func (d RegionDistribution) Report() Report { return tableReport(ViewCustomersByRegion, d.Table()) }

// ChannelPurchase achats d'un client sur un canal
type ChannelPurchase struct {
	CustomerID string
	Name       string
	Channel    string
	Orders     int
	Value      float64
}

type ChannelPurchases []ChannelPurchase

func (c ChannelPurchases) Table() *Table {
	t := NewTable(textCol("id_cliente", "ID Cliente"), textCol("nome", "Nome"), textCol("canal_venda", "Canal de Venda"),
		intCol("total_pedidos", "Total de Pedidos"), moneyCol("valor_total", "Valor Total"))
	for _, r := range c {
		t.AddRow(TextCell(r.CustomerID), TextCell(r.Name), TextCell(r.Channel), IntCell(r.Orders), MoneyCell(r.Value))
	}
	return t
}

func (c ChannelPurchases) Report() Report { return tableReport(ViewChannelPurchases, c.Table()) }

// CategoryPreference volume acheté par un client dans une catégorie
type CategoryPreference struct {
	CustomerID string
	Name       string
	Category   string
	Quantity   int
	Value      float64
}

type CategoryPreferences []CategoryPreference

func (c CategoryPreferences) Table() *Table {
	t := NewTable(textCol("id_cliente", "ID Cliente"), textCol("nome", "Nome"), textCol("categoria", "Categoria"),
		intCol("quantidade", "Quantidade"), moneyCol("valor_total", "Valor Total"))
	for _, r := range c {
		t.AddRow(TextCell(r.CustomerID), TextCell(r.Name), TextCell(r.Category), IntCell(r.Quantity), MoneyCell(r.Value))
	}
	return t
}

func (c CategoryPreferences) Report() Report { return tableReport(ViewCategoryPreference, c.Table()) }

// CustomerValue totaux d'un client
type CustomerValue struct {
	CustomerID string
	Name       string
	City       string
	State      string
	Orders     int
	Value      float64
	Quantity   int
	AvgOrder   float64
}

// CustomerRanking clients triés par valeur décroissante
type CustomerRanking []CustomerValue

func (c CustomerRanking) Table() *Table {
	t := NewTable(textCol("id_cliente", "ID Cliente"), textCol("nome", "Nome"), textCol("cidade", "Cidade"),
		textCol("estado", "Estado"), intCol("total_pedidos", "Total de Pedidos"), moneyCol("valor_total", "Valor Total"),
		intCol("itens_comprados", "Itens Comprados"), moneyCol("ticket_medio", "Ticket Médio"))
	for _, r := range c {
		t.AddRow(TextCell(r.CustomerID), TextCell(r.Name), TextCell(r.City), TextCell(r.State),
			IntCell(r.Orders), MoneyCell(r.Value), IntCell(r.Quantity), MoneyCell(r.AvgOrder))
	}
	return t
}

func (c CustomerRanking) Report() Report { return tableReport(ViewValuableCustomers, c.Table()) }

// CustomerValueSummary valeur par client et statistiques calculées sur tous les clients
type CustomerValueSummary struct {
	Customers   CustomerRanking
	MeanValue   float64
	MedianValue float64
	MeanOrders  float64
	MeanTicket  float64
}

func (s CustomerValueSummary) Report() Report {
	r := NewReport(ViewCustomerValueSummary)
	r.Add(Section{Fields: []Field{
		{Key: "media_valor_cliente", Label: "Média de valor por cliente", Cell: MoneyCell(s.MeanValue)},
		{Key: "mediana_valor_cliente", Label: "Mediana de valor por cliente", Cell: MoneyCell(s.MedianValue)},
		{Key: "media_pedidos_cliente", Label: "Média de pedidos por cliente", Cell: NumberCell(ColumnDecimal, s.MeanOrders)},
		{Key: "media_ticket", Label: "Ticket médio", Cell: MoneyCell(s.MeanTicket)},
	}})
	r.Add(Section{Title: "Clientes", Table: s.Customers.Table()})
	return r
}

// ---------------------------------------------------------------- produtos

// ProductSales ventes agrégées d'un produit
type ProductSales struct {
	ProductID string
	Name      string
	Category  string
	Quantity  int
	Revenue   float64
	Percent   float64
}

// ProductRanking produits les plus vendus, part en quantité
type ProductRanking []ProductSales

func (p ProductRanking) Table() *Table {
	t := NewTable(textCol("id_produto", "ID Produto"), textCol("nome_produto", "Produto"), textCol("categoria", "Categoria"),
		intCol("quantidade", "Quantidade Vendida"), moneyCol("valor_total", "Valor Total"), pctCol("percentual", "% da Quantidade"))
	for _, r := range p {
		t.AddRow(TextCell(r.ProductID), TextCell(r.Name), TextCell(r.Category),
			IntCell(r.Quantity), MoneyCell(r.Revenue), PercentCell(r.Percent))
	}
	return t
}

func (p ProductRanking) Report() Report { return tableReport(ViewTopProducts, p.Table()) }

// FilteredProducts classement restreint à une famille de catégories, sans part
type FilteredProducts struct {
	Kind ViewKind
	Rows []ProductSales
}

func (f FilteredProducts) Table() *Table {
	t := NewTable(textCol("id_produto", "ID Produto"), textCol("nome_produto", "Produto"), textCol("categoria", "Categoria"),
		intCol("quantidade", "Quantidade Vendida"), moneyCol("valor_total", "Valor Total"))
	for _, r := range f.Rows {
		t.AddRow(TextCell(r.ProductID), TextCell(r.Name), TextCell(r.Category), IntCell(r.Quantity), MoneyCell(r.Revenue))
	}
	return t
}

func (f FilteredProducts) Report() Report { return tableReport(f.Kind, f.Table()) }

// SegmentSales ventes d'une catégorie
type SegmentSales struct {
	Category string
	Quantity int
	Revenue  float64
	Products int
	Orders   int
	Percent  float64
	AvgOrder float64
}

type SegmentSalesList []SegmentSales

func (s SegmentSalesList) Table() *Table {
	t := NewTable(textCol("categoria", "Categoria"), intCol("quantidade", "Quantidade"), moneyCol("valor_total", "Valor Total"),
		intCol("produtos_distintos", "Produtos Distintos"), intCol("total_pedidos", "Total de Pedidos"),
		pctCol("percentual_receita", "% da Receita"), moneyCol("ticket_medio", "Ticket Médio"))
	for _, r := range s {
		t.AddRow(TextCell(r.Category), IntCell(r.Quantity), MoneyCell(r.Revenue), IntCell(r.Products),
			IntCell(r.Orders), PercentCell(r.Percent), MoneyCell(r.AvgOrder))
	}
	return t
}

func (s SegmentSalesList) Report() Report { return tableReport(ViewSalesBySegment, s.Table()) }

// ColorSales ventes d'une couleur
type ColorSales struct {
	Color    string
	Quantity int
	Revenue  float64
	Orders   int
	Percent  float64
}

type ColorRanking []ColorSales

func (c ColorRanking) Table() *Table {
	t := NewTable(textCol("cor", "Cor"), intCol("quantidade", "Quantidade"), moneyCol("valor_total", "Valor Total"),
		intCol("total_pedidos", "Total de Pedidos"), pctCol("percentual", "% da Quantidade"))
	for _, r := range c {
		t.AddRow(TextCell(r.Color), IntCell(r.Quantity), MoneyCell(r.Revenue), IntCell(r.Orders), PercentCell(r.Percent))
	}
	return t
}

func (c ColorRanking) Report() Report { return tableReport(ViewColorsSold, c.Table()) }

// ProductProfit rentabilité d'un produit
type ProductProfit struct {
	ProductID string
	Name      string
	Category  string
	Quantity  int
	Revenue   float64
	UnitPrice float64
	Percent   float64
}

type ProductProfitability []ProductProfit

func (p ProductProfitability) Table() *Table {
	t := NewTable(textCol("id_produto", "ID Produto"), textCol("nome_produto", "Produto"), textCol("categoria", "Categoria"),
		intCol("quantidade", "Quantidade"), moneyCol("valor_total", "Valor Total"), moneyCol("valor_unitario", "Valor Unitário"),
		pctCol("percentual_receita", "% da Receita"))
	for _, r := range p {
		t.AddRow(TextCell(r.ProductID), TextCell(r.Name), TextCell(r.Category), IntCell(r.Quantity),
			MoneyCell(r.Revenue), MoneyCell(r.UnitPrice), PercentCell(r.Percent))
	}
	return t
}

func (p ProductProfitability) Report() Report { return tableReport(ViewProductProfitability, p.Table()) }

// SegmentRank produit classé dans sa catégorie
type SegmentRank struct {
	Category     string
	ProductID    string
	Name         string
	Quantity     int
	Revenue      float64
	Rank         int
	SegmentTotal float64
	Percent      float64
}

type SegmentTop3 []SegmentRank

func (s SegmentTop3) Table() *Table {
	t := NewTable(textCol("categoria", "Categoria"), intCol("ranking", "Ranking"), textCol("id_produto", "ID Produto"),
		textCol("nome_produto", "Produto"), intCol("quantidade", "Quantidade"), moneyCol("valor_total", "Valor Total"),
		moneyCol("total_segmento", "Total do Segmento"), pctCol("percentual_do_segmento", "% do Segmento"))
	for _, r := range s {
		t.AddRow(TextCell(r.Category), IntCell(r.Rank), TextCell(r.ProductID), TextCell(r.Name), IntCell(r.Quantity),
			MoneyCell(r.Revenue), MoneyCell(r.SegmentTotal), PercentCell(r.Percent))
	}
	return t
}

func (s SegmentTop3) Report() Report { return tableReport(ViewTop3PerSegment, s.Table()) }

// OrderMix composition d'une commande
type OrderMix struct {
	OrderID  string
	Products int
	Quantity int
	Value    float64
}

// ProductMix composition des commandes et statistiques calculées sur toutes les commandes
type ProductMix struct {
	Orders         []OrderMix
	TotalOrders    int
	MeanProducts   float64
	MedianProducts float64
	MeanQuantity   float64
	MeanValue      float64
}

func (m ProductMix) Table() *Table {
	t := NewTable(textCol("id_pedido", "ID Pedido"), intCol("produtos_diferentes", "Produtos Diferentes"),
		intCol("quantidade_total", "Quantidade Total"), moneyCol("valor_total", "Valor Total"))
	for _, r := range m.Orders {
		t.AddRow(TextCell(r.OrderID), IntCell(r.Products), IntCell(r.Quantity), MoneyCell(r.Value))
	}
	return t
}

func (m ProductMix) Report() Report {
	r := NewReport(ViewProductMix)
	r.Add(Section{Fields: []Field{
		{Key: "total_pedidos", Label: "Pedidos analisados", Cell: IntCell(m.TotalOrders)},
		{Key: "media_produtos_por_pedido", Label: "Média de produtos por pedido", Cell: NumberCell(ColumnDecimal, m.MeanProducts)},
		{Key: "mediana_produtos_por_pedido", Label: "Mediana de produtos por pedido", Cell: NumberCell(ColumnDecimal, m.MedianProducts)},
		{Key: "media_quantidade_por_pedido", Label: "Média de quantidade por pedido", Cell: NumberCell(ColumnDecimal, m.MeanQuantity)},
		{Key: "media_valor_por_pedido", Label: "Média de valor por pedido", Cell: MoneyCell(m.MeanValue)},
	}})
	r.Add(Section{Title: "Pedidos", Table: m.Table()})
	return r
}

// ---------------------------------------------------------------- vendas

// YearSales ventes d'une année; les croissances sont absentes pour la première année ou une base nulle
type YearSales struct {
	Year           int
	Orders         int
	Value          float64
	Customers      int
	AvgOrder       float64
	ValueGrowth    float64
	ValueGrowthOK  bool
	OrdersGrowth   float64
	OrdersGrowthOK bool
}

type YearlySales []YearSales

func (y YearlySales) Table() *Table {
	t := NewTable(textCol("ano", "Ano"), intCol("total_pedidos", "Total de Pedidos"), moneyCol("valor_total", "Valor Total"),
		intCol("clientes_unicos", "Clientes Únicos"), moneyCol("ticket_medio", "Ticket Médio"),
		varCol("crescimento_valor", "Crescimento Valor"), varCol("crescimento_pedidos", "Crescimento Pedidos"))
	for _, r := range y {
		t.AddRow(yearCell(r.Year), IntCell(r.Orders), MoneyCell(r.Value), IntCell(r.Customers), MoneyCell(r.AvgOrder),
			VariationCell(r.ValueGrowth, r.ValueGrowthOK), VariationCell(r.OrdersGrowth, r.OrdersGrowthOK))
	}
	return t
}

func (y YearlySales) Report() Report { return tableReport(ViewSalesByYear, y.Table()) }

// yearCell année sans séparateur de milliers
func yearCell(year int) Cell {
	return Cell{Value: float64(year), Text: strconv.Itoa(year)}
}

// MonthSales ventes d'un mois
type MonthSales struct {
	Year      int
	Month     int
	MonthName string
	YearMonth string
	Orders    int
	Value     float64
	Customers int
	AvgOrder  float64
}

type MonthlySales []MonthSales

func (m MonthlySales) Table() *Table {
	t := NewTable(textCol("ano", "Ano"), textCol("mes", "Mês"), textCol("ano_mes", "Ano-Mês"),
		intCol("total_pedidos", "Total de Pedidos"), moneyCol("valor_total", "Valor Total"),
		intCol("clientes_unicos", "Clientes Únicos"), moneyCol("ticket_medio", "Ticket Médio"))
	for _, r := range m {
		t.AddRow(yearCell(r.Year), Cell{Value: float64(r.Month), Text: r.MonthName}, TextCell(r.YearMonth),
			IntCell(r.Orders), MoneyCell(r.Value), IntCell(r.Customers), MoneyCell(r.AvgOrder))
	}
	return t
}

func (m MonthlySales) Report() Report { return tableReport(ViewMonthlySales, m.Table()) }

// MonthBucket agrégats d'un mois donné pour une année
type MonthBucket struct {
	Year      int
	Orders    int
	Value     float64
	Mean      float64
	Customers int
}

// MonthComparison comparaison d'un même mois entre deux années.
// Les variations valent 0 quand la base est vide.
type MonthComparison struct {
	Month           int
	MonthName       string
	Base            MonthBucket
	Compare         MonthBucket
	OrdersVariation float64
	ValueVariation  float64
	MeanVariation   float64
}

func (c MonthComparison) Report() Report {
	r := NewReport(ViewMonthComparison)
	t := NewTable(textCol("ano", "Ano"), intCol("total_pedidos", "Total de Pedidos"), moneyCol("valor_total", "Valor Total"),
		moneyCol("ticket_medio", "Ticket Médio"), intCol("clientes_unicos", "Clientes Únicos"))
	for _, b := range []MonthBucket{c.Base, c.Compare} {
		t.AddRow(yearCell(b.Year), IntCell(b.Orders), MoneyCell(b.Value), MoneyCell(b.Mean), IntCell(b.Customers))
	}
	r.Add(Section{Title: fmt.Sprintf("%s: %d x %d", c.MonthName, c.Base.Year, c.Compare.Year), Table: t})
	r.Add(Section{Fields: []Field{
		{Key: "variacao_pedidos", Label: "Variação de pedidos", Cell: NumberCell(ColumnVariation, c.OrdersVariation)},
		{Key: "variacao_valor", Label: "Variação de valor", Cell: NumberCell(ColumnVariation, c.ValueVariation)},
		{Key: "variacao_ticket_medio", Label: "Variação do ticket médio", Cell: NumberCell(ColumnVariation, c.MeanVariation)},
	}})
	return r
}

// GroupSales ventes agrégées par canal ou forme de paiement
type GroupSales struct {
	Key           string
	Orders        int
	Value         float64
	Customers     int
	AvgOrder      float64
	PercentOrders float64
	PercentValue  float64
}

// GroupBreakdown répartition des commandes selon une dimension
type GroupBreakdown struct {
	Kind ViewKind
	Rows []GroupSales
}

func (g GroupBreakdown) Table() *Table {
	key := textCol("canal_venda", "Canal de Venda")
	if g.Kind == ViewSalesByPayment {
		key = textCol("forma_pagamento", "Forma de Pagamento")
	}
	t := NewTable(key, intCol("total_pedidos", "Total de Pedidos"), moneyCol("valor_total", "Valor Total"),
		intCol("clientes_unicos", "Clientes Únicos"), moneyCol("ticket_medio", "Ticket Médio"),
		pctCol("percentual_pedidos", "% dos Pedidos"), pctCol("percentual_valor", "% do Valor"))
	for _, r := range g.Rows {
		t.AddRow(TextCell(r.Key), IntCell(r.Orders), MoneyCell(r.Value), IntCell(r.Customers), MoneyCell(r.AvgOrder),
			PercentCell(r.PercentOrders), PercentCell(r.PercentValue))
	}
	return t
}

func (g GroupBreakdown) Report() Report { return tableReport(g.Kind, g.Table()) }

// ChannelMonth ventes d'un canal sur un mois
type ChannelMonth struct {
	Year      int
	Month     int
	YearMonth string
	Channel   string
	Orders    int
	Value     float64
}

type ChannelMonthly []ChannelMonth

func (c ChannelMonthly) Table() *Table {
	t := NewTable(textCol("ano_mes", "Ano-Mês"), textCol("canal_venda", "Canal de Venda"),
		intCol("total_pedidos", "Total de Pedidos"), moneyCol("valor_total", "Valor Total"))
	for _, r := range c {
		t.AddRow(TextCell(r.YearMonth), TextCell(r.Channel), IntCell(r.Orders), MoneyCell(r.Value))
	}
	return t
}

func (c ChannelMonthly) Report() Report { return tableReport(ViewChannelSalesByMonth, c.Table()) }

// TotalSales résumé scalaire des ventes sur une période
type TotalSales struct {
	Period    shareddomain.Period
	Value     float64
	Orders    int
	Items     int
	AvgOrder  float64
	Customers int
	Products  int
	AvgItems  float64
}

func (s TotalSales) Report() Report {
	r := NewReport(ViewTotalSales)
	r.Add(Section{Title: "Período: " + s.Period.String(), Fields: []Field{
		{Key: "valor_total_vendas", Label: "Valor total de vendas", Cell: MoneyCell(s.Value)},
		{Key: "total_pedidos", Label: "Total de pedidos", Cell: IntCell(s.Orders)},
		{Key: "total_itens_vendidos", Label: "Total de itens vendidos", Cell: IntCell(s.Items)},
		{Key: "ticket_medio", Label: "Ticket médio", Cell: MoneyCell(s.AvgOrder)},
		{Key: "clientes_unicos", Label: "Clientes únicos", Cell: IntCell(s.Customers)},
		{Key: "produtos_diferentes_vendidos", Label: "Produtos diferentes vendidos", Cell: IntCell(s.Products)},
		{Key: "media_itens_por_pedido", Label: "Média de itens por pedido", Cell: NumberCell(ColumnDecimal, s.AvgItems)},
	}})
	return r
}

// SeasonalityRow un mois d'une année avec son indice de saisonnalité
type SeasonalityRow struct {
	Year      int
	Month     int
	MonthName string
	Value     float64
	Mean      float64
	Orders    int
	Customers int
	Index     float64
}

type Seasonality []SeasonalityRow

func (s Seasonality) Table() *Table {
	t := NewTable(textCol("ano", "Ano"), textCol("mes", "Mês"), moneyCol("valor_total", "Valor Total"),
		moneyCol("ticket_medio", "Ticket Médio"), intCol("total_pedidos", "Total de Pedidos"),
		intCol("clientes_unicos", "Clientes Únicos"), decCol("indice_sazonalidade", "Índice de Sazonalidade"))
	for _, r := range s {
		t.AddRow(yearCell(r.Year), Cell{Value: float64(r.Month), Text: r.MonthName}, MoneyCell(r.Value), MoneyCell(r.Mean),
			IntCell(r.Orders), IntCell(r.Customers), NumberCell(ColumnDecimal, r.Index))
	}
	return t
}

func (s Seasonality) Report() Report { return tableReport(ViewSeasonality, s.Table()) }

// ParetoRow contribution d'un couple (client, canal) et pourcentage cumulé
type ParetoRow struct {
	Rank       int
	CustomerID string
	Name       string
	Channel    string
	Value      float64
	Share      float64
	Cumulative float64
}

type Pareto []ParetoRow

func (p Pareto) Table() *Table {
	t := NewTable(intCol("ranking", "Ranking"), textCol("id_cliente", "ID Cliente"), textCol("nome", "Nome"),
		textCol("canal_venda", "Canal de Venda"), moneyCol("valor_total", "Valor Total"),
		pctCol("percentual", "% do Total"), pctCol("percentual_acumulado", "% Acumulado"))
	for _, r := range p {
		t.AddRow(IntCell(r.Rank), TextCell(r.CustomerID), TextCell(r.Name), TextCell(r.Channel), MoneyCell(r.Value),
			PercentCell(r.Share), PercentCell(r.Cumulative))
	}
	return t
}

func (p Pareto) Report() Report { return tableReport(ViewPareto, p.Table()) }

// CampaignSuggestions suggestions fixes jointes à toute recommandation de campagne
var CampaignSuggestions = []string{
	"1. Focar nos produtos listados acima (maior demanda)",
	"2. Priorizar o canal de venda principal para divulgação",
	"3. Adaptar linguagem ao perfil demográfico predominante",
	"4. Considerar combos/kits com produtos complementares",
	"5. Avaliar sazonalidade para timing ideal da campanha",
}

// Campaign recommandation composite
type Campaign struct {
	Category    string
	Horizon     string
	Products    ProductRanking
	Channels    []GroupSales
	Sexes       SexDistribution
	Suggestions []string
}

func (c Campaign) Report() Report {
	r := NewReport(ViewCampaign)
	title := "Top 5 produtos mais vendidos"
	if c.Category != "" {
		title += " (" + c.Category + ")"
	}
	r.Add(Section{Title: title, Table: c.Products.Table()})
	r.Add(Section{Title: "Canal de venda preferido", Table: GroupBreakdown{Kind: ViewSalesByChannel, Rows: c.Channels}.Table()})
	r.Add(Section{Title: "Perfil dos clientes", Table: c.Sexes.Table()})
	r.Add(Section{Title: "Sugestões (" + c.Horizon + ")", Lines: c.Suggestions})
	return r
}

// ---------------------------------------------------------------- catálogo

// ProductMatches résultat d'une recherche de produits
type ProductMatches []Product

func (p ProductMatches) Table() *Table {
	t := NewTable(textCol("id_produto", "ID Produto"), textCol("nome_produto", "Produto"), textCol("categoria", "Categoria"),
		textCol("fornecedor", "Fornecedor"), moneyCol("valor_unitario", "Valor Unitário"))
	for _, r := range p {
		t.AddRow(TextCell(r.ID), TextCell(r.Name), TextCell(r.Category), TextCell(r.Supplier), MoneyCell(r.UnitPrice))
	}
	return t
}

// Quote cotation d'un produit pour une quantité
type Quote struct {
	Product    Product
	Quantity   int
	UnitPrice  float64
	Total      float64
	SalesCount int
}

func (q Quote) Fields() []Field {
	fields := []Field{
		{Key: "produto", Label: "Produto", Cell: TextCell(q.Product.Name)},
		{Key: "id_produto", Label: "ID Produto", Cell: TextCell(q.Product.ID)},
		{Key: "categoria", Label: "Categoria", Cell: TextCell(q.Product.Category)},
		{Key: "preco_unitario", Label: "Preço unitário", Cell: MoneyCell(q.UnitPrice)},
	}
	if q.Quantity > 1 {
		fields = append(fields,
			Field{Key: "quantidade", Label: "Quantidade", Cell: IntCell(q.Quantity)},
			Field{Key: "valor_total", Label: "Valor total", Cell: MoneyCell(q.Total)},
		)
	}
	if q.SalesCount > 0 {
		fields = append(fields, Field{Key: "vendas_registradas", Label: "Vendas registradas", Cell: IntCell(q.SalesCount)})
	}
	return fields
}
