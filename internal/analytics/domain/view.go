package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownView sélecteur de vue inconnu
var ErrUnknownView = errors.New("unknown view")

// ErrMissingParameter paramètre obligatoire absent pour la vue demandée
var ErrMissingParameter = errors.New("missing required parameter")

// ErrInvalidParameter paramètre hors domaine (mois 13, top_n négatif...)
var ErrInvalidParameter = errors.New("invalid parameter")

// ViewKind énumération fermée des vues agrégées
type ViewKind int

const (
	ViewCustomersBySex ViewKind = iota + 1
	ViewCustomersByRegion
	ViewChannelPurchases
	ViewCategoryPreference
	ViewValuableCustomers
	ViewTopProducts
	ViewSalesBySegment
	ViewColorsSold
	ViewTopCosmetics
	ViewTopChairs
	ViewProductProfitability
	ViewSalesByYear
	ViewMonthlySales
	ViewMonthComparison
	ViewSalesByChannel
	ViewChannelSalesByMonth
	ViewSalesByPayment
	ViewCustomerValueSummary
	ViewTotalSales
	ViewTop3PerSegment
	ViewSeasonality
	ViewProductMix
	ViewPareto
	ViewCampaign
)

type viewInfo struct {
	slug  string
	title string
}

var views = map[ViewKind]viewInfo{
	ViewCustomersBySex:       {"customers_by_sex", "Distribuição de Clientes por Sexo"},
	ViewCustomersByRegion:    {"customers_by_region", "Distribuição de Clientes por Região"},
	ViewChannelPurchases:     {"channel_purchases", "Compras por Canal por Cliente"},
	ViewCategoryPreference:   {"category_preference", "Preferência de Categoria por Cliente"},
	ViewValuableCustomers:    {"valuable_customers", "Clientes Mais Valiosos"},
	ViewTopProducts:          {"top_products", "Produtos Mais Vendidos"},
	ViewSalesBySegment:       {"sales_by_segment", "Vendas por Segmento"},
	ViewColorsSold:           {"colors_sold", "Cores Mais Vendidas"},
	ViewTopCosmetics:         {"top_cosmetics", "Top Cosméticos"},
	ViewTopChairs:            {"top_chairs", "Top Cadeiras e Lavatórios"},
	ViewProductProfitability: {"product_profitability", "Rentabilidade de Produtos"},
	ViewSalesByYear:          {"sales_by_year", "Vendas por Ano"},
	ViewMonthlySales:         {"monthly_sales", "Vendas Mensais"},
	ViewMonthComparison:      {"month_comparison", "Comparação de Mês entre Anos"},
	ViewSalesByChannel:       {"sales_by_channel", "Vendas por Canal"},
	ViewChannelSalesByMonth:  {"channel_sales_by_month", "Vendas por Canal e Mês"},
	ViewSalesByPayment:       {"sales_by_payment", "Vendas por Forma de Pagamento"},
	ViewCustomerValueSummary: {"customer_value_summary", "Valor Médio por Cliente"},
	ViewTotalSales:           {"total_sales", "Totais de Vendas"},
	ViewTop3PerSegment:       {"top3_per_segment", "Top 3 por Segmento"},
	ViewSeasonality:          {"seasonality", "Sazonalidade de Vendas"},
	ViewProductMix:           {"product_mix", "Mix de Produtos por Pedido"},
	ViewPareto:               {"pareto", "Análise de Pareto por Cliente e Canal"},
	ViewCampaign:             {"campaign", "Recomendação de Campanha"},
}

// AllViews toutes les vues dans l'ordre de déclaration
func AllViews() []ViewKind {
	out := make([]ViewKind, 0, len(views))
	for k := ViewCustomersBySex; k <= ViewCampaign; k++ {
		out = append(out, k)
	}
	return out
}

// String retourne le slug de la vue
func (k ViewKind) String() string {
	if info, ok := views[k]; ok {
		return info.slug
	}
	return fmt.Sprintf("view(%d)", int(k))
}

// Title retourne le titre affiché
func (k ViewKind) Title() string {
	return views[k].title
}

// Valid indique si la valeur appartient à l'énumération
func (k ViewKind) Valid() bool {
	_, ok := views[k]
	return ok
}

// MarshalText encode la vue par son slug
func (k ViewKind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownView, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText décode un slug
func (k *ViewKind) UnmarshalText(text []byte) error {
	parsed, err := ParseViewKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseViewKind convertit un slug ("top_products", "Top-Products") en ViewKind
func ParseViewKind(slug string) (ViewKind, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(slug)), "-", "_")
	for kind, info := range views {
		if info.slug == normalized {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownView, slug)
}
