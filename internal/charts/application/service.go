package application

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	analyticsapp "jnmoveis/internal/analytics/application"
	analyticsdomain "jnmoveis/internal/analytics/domain"
	"jnmoveis/internal/charts/domain"
	shareddomain "jnmoveis/internal/shared/domain"
)

// EngineSource fournit le moteur courant (EngineProvider en production)
type EngineSource interface {
	Engine(ctx context.Context) (*analyticsapp.Engine, error)
}

type builder func(e *analyticsapp.Engine) domain.Figure

type chart struct {
	name  string
	build builder
}

// charts dans l'ordre d'affichage du tableau de bord
var charts = []chart{
	{"clientes_sexo", customersBySex},
	{"clientes_regiao", customersByRegion},
	{"clientes_valiosos", valuableCustomers},
	{"top_produtos", topProducts},
	{"vendas_segmento", salesBySegment},
	{"cores_vendidas", colorsSold},
	{"top_cosmeticos", topCosmetics},
	{"top_cadeiras_lavatorios", topChairs},
	{"top3_segmento", top3PerSegment},
	{"vendas_ano", salesByYear},
	{"vendas_canal", salesByChannel},
	{"vendas_forma_pagamento", salesByPayment},
	{"sazonalidade_heatmap", seasonalityHeatmap},
	{"canal_venda_pareto", channelPareto},
	{"kpi_totais", totals},
}

// Names sélecteurs de graphiques connus, dans l'ordre d'affichage
func Names() []string {
	out := make([]string, len(charts))
	for i, c := range charts {
		out[i] = c.name
	}
	return out
}

func lookup(name string) (builder, bool) {
	i := slices.IndexFunc(charts, func(c chart) bool { return c.name == name })
	if i < 0 {
		return nil, false
	}
	return charts[i].build, true
}

// Service transforme les vues d'analyse en figures
type Service struct {
	source EngineSource
	logger *slog.Logger
}

// NewService crée le service de graphiques
func NewService(source EngineSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{source: source, logger: logger}
}

// Build construit la figure name; ErrChartNotFound si le sélecteur est inconnu
func (s *Service) Build(ctx context.Context, name string) (domain.Figure, error) {
	build, ok := lookup(name)
	if !ok {
		return domain.Figure{}, fmt.Errorf("%w: %q", domain.ErrChartNotFound, name)
	}
	engine, err := s.source.Engine(ctx)
	if err != nil {
		return domain.Figure{}, err
	}
	fig := build(engine)
	fig.Name = name
	return fig, nil
}

// BuildAll construit toutes les figures sur le même moteur
func (s *Service) BuildAll(ctx context.Context) ([]domain.Figure, error) {
	engine, err := s.source.Engine(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Figure, 0, len(charts))
	for _, c := range charts {
		fig := c.build(engine)
		fig.Name = c.name
		out = append(out, fig)
	}
	s.logger.Debug("charts built", "count", len(out))
	return out, nil
}

// ============================================================================
// Clientes
// ============================================================================

func customersBySex(e *analyticsapp.Engine) domain.Figure {
	t := domain.Trace{Name: "Clientes", Mode: domain.TracePie}
	for _, r := range e.CustomersBySex() {
		t.Add(r.Sex, float64(r.Customers), shareddomain.FormatPercent(r.Percent))
	}
	return domain.Figure{Type: domain.FigurePie, Title: "Distribuição de Clientes por Sexo", Traces: []domain.Trace{t}}
}

func customersByRegion(e *analyticsapp.Engine) domain.Figure {
	t := domain.Trace{Name: "Clientes", Mode: domain.TraceBar, Horizontal: true}
	for _, r := range e.CustomersByRegion(15) {
		t.Add(r.City+" - "+r.State, float64(r.Customers), shareddomain.FormatInt(r.Customers))
	}
	return domain.Figure{
		Type:   domain.FigureBar,
		Title:  "Top 15 Regiões com Mais Clientes",
		XLabel: "Quantidade de Clientes",
		YLabel: "Região",
		Traces: []domain.Trace{t},
	}
}

func valuableCustomers(e *analyticsapp.Engine) domain.Figure {
	t := domain.Trace{Name: "Valor Total", Mode: domain.TraceBar, Horizontal: true}
	for _, c := range e.ValuableCustomers(analyticsdomain.DefaultTopCustomers) {
		t.Add(c.Name, c.Value, shareddomain.FormatCurrency(c.Value))
	}
	return domain.Figure{
		Type:   domain.FigureBar,
		Title:  "Top 20 Clientes Mais Valiosos",
		XLabel: "Valor Total (R$)",
		YLabel: "Cliente",
		Traces: []domain.Trace{t},
	}
}

// ============================================================================
// Produtos
// ============================================================================

func productTrace(rows []analyticsdomain.ProductSales, horizontal bool) domain.Trace {
	t := domain.Trace{Name: "Quantidade", Mode: domain.TraceBar, Horizontal: horizontal}
	for _, p := range rows {
		t.Add(domain.ShortLabel(p.Name, 40), float64(p.Quantity), shareddomain.FormatInt(p.Quantity))
	}
	return t
}

func topProducts(e *analyticsapp.Engine) domain.Figure {
	return domain.Figure{
		Type:   domain.FigureBar,
		Title:  "Top 10 Produtos Mais Vendidos",
		XLabel: "Quantidade Vendida",
		YLabel: "Produto",
		Traces: []domain.Trace{productTrace(e.TopProducts(analyticsdomain.DefaultTopProducts), true)},
	}
}

func topCosmetics(e *analyticsapp.Engine) domain.Figure {
	return domain.Figure{
		Type:   domain.FigureBar,
		Title:  "Top 5 Cosméticos Mais Vendidos",
		XLabel: "Quantidade Vendida",
		YLabel: "Produto",
		Traces: []domain.Trace{productTrace(e.TopCosmetics(analyticsdomain.DefaultTopFiltered).Rows, true)},
	}
}

func topChairs(e *analyticsapp.Engine) domain.Figure {
	return domain.Figure{
		Type:   domain.FigureBar,
		Title:  "Top 5 Cadeiras e Lavatórios",
		XLabel: "Produto",
		YLabel: "Quantidade Vendida",
		Traces: []domain.Trace{productTrace(e.TopChairs(analyticsdomain.DefaultTopFiltered).Rows, false)},
	}
}

func salesBySegment(e *analyticsapp.Engine) domain.Figure {
	t := domain.Trace{Name: "Valor Total", Mode: domain.TraceBar, Horizontal: true}
	for _, s := range e.SalesBySegment() {
		t.Add(s.Category, s.Revenue, shareddomain.FormatCurrency(s.Revenue))
	}
	return domain.Figure{
		Type:   domain.FigureBar,
		Title:  "Vendas por Segmento",
		XLabel: "Valor Total (R$)",
		YLabel: "Segmento",
		Traces: []domain.Trace{t},
	}
}

func colorsSold(e *analyticsapp.Engine) domain.Figure {
	t := domain.Trace{Name: "Quantidade", Mode: domain.TraceBar, Horizontal: true}
	for _, c := range e.ColorsSold(10) {
		t.Add(c.Color, float64(c.Quantity), shareddomain.FormatInt(c.Quantity))
	}
	return domain.Figure{
		Type:   domain.FigureBar,
		Title:  "Top 10 Cores Mais Vendidas",
		XLabel: "Quantidade Vendida",
		YLabel: "Cor",
		Traces: []domain.Trace{t},
	}
}

// top3PerSegment une série par segment, dans l'ordre d'apparition
func top3PerSegment(e *analyticsapp.Engine) domain.Figure {
	var traces []domain.Trace
	index := make(map[string]int)
	for _, r := range e.Top3PerSegment() {
		i, ok := index[r.Category]
		if !ok {
			i = len(traces)
			index[r.Category] = i
			traces = append(traces, domain.Trace{Name: r.Category, Mode: domain.TraceBar, Horizontal: true})
		}
		label := r.Category + " - " + domain.ShortLabel(r.Name, 30)
		traces[i].Add(label, r.Revenue, shareddomain.FormatCurrency(r.Revenue))
	}
	return domain.Figure{
		Type:   domain.FigureBar,
		Title:  "Top 3 Produtos por Segmento",
		XLabel: "Valor Total (R$)",
		YLabel: "Produto",
		Traces: traces,
	}
}

// ============================================================================
// Vendas
// ============================================================================

func salesByYear(e *analyticsapp.Engine) domain.Figure {
	value := domain.Trace{Name: "Valor Total", Mode: domain.TraceLine}
	orders := domain.Trace{Name: "Total de Pedidos", Mode: domain.TraceLine, SecondaryY: true}
	for _, y := range e.SalesByYear() {
		label := strconv.Itoa(y.Year)
		value.Add(label, y.Value, shareddomain.FormatCurrency(y.Value))
		orders.Add(label, float64(y.Orders), shareddomain.FormatInt(y.Orders))
	}
	return domain.Figure{
		Type:   domain.FigureLine,
		Title:  "Evolução de Vendas por Ano",
		XLabel: "Ano",
		YLabel: "Valor Total (R$)",
		Traces: []domain.Trace{value, orders},
	}
}

func breakdownFigure(b analyticsdomain.GroupBreakdown, n int, title, axis string) domain.Figure {
	t := domain.Trace{Name: "Valor Total", Mode: domain.TraceBar, Horizontal: true}
	for i, g := range b.Rows {
		if n > 0 && i >= n {
			break
		}
		t.Add(g.Key, g.Value, shareddomain.FormatCurrency(g.Value))
	}
	return domain.Figure{
		Type:   domain.FigureBar,
		Title:  title,
		XLabel: "Valor Total (R$)",
		YLabel: axis,
		Traces: []domain.Trace{t},
	}
}

func salesByChannel(e *analyticsapp.Engine) domain.Figure {
	return breakdownFigure(e.SalesByChannel(), 0, "Vendas por Canal", "Canal de Venda")
}

func salesByPayment(e *analyticsapp.Engine) domain.Figure {
	return breakdownFigure(e.SalesByPayment(), 10, "Vendas por Forma de Pagamento", "Forma de Pagamento")
}

// seasonalityHeatmap valeur vendue par mois (lignes) et par année (colonnes)
func seasonalityHeatmap(e *analyticsapp.Engine) domain.Figure {
	rows := e.Seasonality()

	var years []int
	var months []int
	values := make(map[[2]int]float64)
	for _, r := range rows {
		if !slices.Contains(years, r.Year) {
			years = append(years, r.Year)
		}
		if !slices.Contains(months, r.Month) {
			months = append(months, r.Month)
		}
		values[[2]int{r.Year, r.Month}] += r.Value
	}
	slices.Sort(years)
	slices.Sort(months)

	h := &domain.Heatmap{
		X:     make([]string, len(years)),
		Y:     make([]string, len(months)),
		Z:     make([][]float64, len(months)),
		Texts: make([][]string, len(months)),
	}
	for j, y := range years {
		h.X[j] = strconv.Itoa(y)
	}
	for i, m := range months {
		h.Y[i] = shareddomain.MonthName(m)
		h.Z[i] = make([]float64, len(years))
		h.Texts[i] = make([]string, len(years))
		for j, y := range years {
			v := values[[2]int{y, m}]
			h.Z[i][j] = v
			if v > 0 {
				h.Texts[i][j] = shareddomain.FormatCurrency(v)
			}
		}
	}
	return domain.Figure{
		Type:    domain.FigureHeatmap,
		Title:   "Sazonalidade de Vendas por Ano e Mês",
		XLabel:  "Ano",
		YLabel:  "Mês",
		Heatmap: h,
	}
}

// channelPareto barres de valeur par (client, canal) et cumul relatif aux lignes affichées
func channelPareto(e *analyticsapp.Engine) domain.Figure {
	rows := e.Pareto(analyticsdomain.DefaultTopPareto)

	var shown float64
	for _, r := range rows {
		shown += r.Value
	}
	bars := domain.Trace{Name: "Valor Total", Mode: domain.TraceBar}
	line := domain.Trace{Name: "% Acumulado", Mode: domain.TraceLine, SecondaryY: true}
	var cumulative float64
	for _, r := range rows {
		label := r.Name + " (" + r.Channel + ")"
		cumulative += r.Value
		pct := shareddomain.Share(cumulative, shown)
		bars.Add(label, r.Value, shareddomain.FormatCurrency(r.Value))
		line.Add(label, pct, shareddomain.FormatPercent(pct))
	}
	return domain.Figure{
		Type:      domain.FigureCombo,
		Title:     "Análise de Pareto - Canal de Venda por Cliente",
		XLabel:    "Cliente",
		YLabel:    "Valor Total (R$)",
		Traces:    []domain.Trace{bars, line},
		Threshold: 80,
	}
}

func totals(e *analyticsapp.Engine) domain.Figure {
	t := e.TotalSales(shareddomain.AllTime())
	return domain.Figure{
		Type:  domain.FigureIndicator,
		Title: "Indicadores Gerais de Vendas",
		Indicators: []domain.Indicator{
			{Label: "Valor Total", Value: t.Value, Text: shareddomain.FormatCurrency(t.Value)},
			{Label: "Total de Pedidos", Value: float64(t.Orders), Text: shareddomain.FormatInt(t.Orders)},
			{Label: "Itens Vendidos", Value: float64(t.Items), Text: shareddomain.FormatInt(t.Items)},
			{Label: "Ticket Médio", Value: t.AvgOrder, Text: shareddomain.FormatCurrency(t.AvgOrder)},
			{Label: "Clientes Únicos", Value: float64(t.Customers), Text: shareddomain.FormatInt(t.Customers)},
			{Label: "Produtos Diferentes", Value: float64(t.Products), Text: shareddomain.FormatInt(t.Products)},
		},
	}
}
