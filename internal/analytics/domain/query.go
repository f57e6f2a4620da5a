package domain

import (
	"fmt"

	shareddomain "jnmoveis/internal/shared/domain"
)

// Query union fermée des requêtes de vues: chaque vue porte ses propres paramètres typés.
type Query interface {
	Kind() ViewKind
	isQuery()
}

// Tailles par défaut des classements
const (
	DefaultTopCustomers = 20
	DefaultTopProducts  = 10
	DefaultTopFiltered  = 5
	DefaultTopPareto    = 15
	CampaignTopProducts = 5
	CampaignTopChannels = 3
)

type (
	CustomersBySexQuery     struct{}
	CustomersByRegionQuery  struct{ TopN int }
	ChannelPurchasesQuery   struct{ TopN int }
	CategoryPreferenceQuery struct{ TopN int }
	ValuableCustomersQuery  struct{ TopN int }
	TopProductsQuery        struct{ TopN int }
	SalesBySegmentQuery     struct{}
	ColorsSoldQuery         struct{ TopN int }
	TopCosmeticsQuery       struct{ TopN int }
	TopChairsQuery          struct{ TopN int }
	ProductProfitQuery      struct{ TopN int }
	SalesByYearQuery        struct{}
	// MonthlySalesQuery Year=0: toutes les années
	MonthlySalesQuery struct{ Year int }
	// MonthComparisonQuery compare Month de BaseYear avec Month de CompareYear
	MonthComparisonQuery struct {
		Month       int
		BaseYear    int
		CompareYear int
	}
	SalesByChannelQuery      struct{}
	ChannelSalesByMonthQuery struct{ Period shareddomain.Period }
	SalesByPaymentQuery      struct{}
	CustomerValueQuery       struct{ TopN int }
	TotalSalesQuery          struct{ Period shareddomain.Period }
	Top3PerSegmentQuery      struct{}
	SeasonalityQuery         struct{}
	ProductMixQuery          struct{ TopN int }
	ParetoQuery              struct{ TopN int }
	// CampaignQuery Category vide: tous les produits. Horizon est informatif ("trimestre", "semestre", "ano").
	CampaignQuery struct {
		Category string
		Horizon  string
	}
)

func (CustomersBySexQuery) Kind() ViewKind      { return ViewCustomersBySex }
func (CustomersByRegionQuery) Kind() ViewKind   { return ViewCustomersByRegion }
func (ChannelPurchasesQuery) Kind() ViewKind    { return ViewChannelPurchases }
func (CategoryPreferenceQuery) Kind() ViewKind  { return ViewCategoryPreference }
func (ValuableCustomersQuery) Kind() ViewKind   { return ViewValuableCustomers }
func (TopProductsQuery) Kind() ViewKind         { return ViewTopProducts }
func (SalesBySegmentQuery) Kind() ViewKind      { return ViewSalesBySegment }
func (ColorsSoldQuery) Kind() ViewKind          { return ViewColorsSold }
func (TopCosmeticsQuery) Kind() ViewKind        { return ViewTopCosmetics }
func (TopChairsQuery) Kind() ViewKind           { return ViewTopChairs }
func (ProductProfitQuery) Kind() ViewKind       { return ViewProductProfitability }
func (SalesByYearQuery) Kind() ViewKind         { return ViewSalesByYear }
func (MonthlySalesQuery) Kind() ViewKind        { return ViewMonthlySales }
func (MonthComparisonQuery) Kind() ViewKind     { return ViewMonthComparison }
func (SalesByChannelQuery) Kind() ViewKind      { return ViewSalesByChannel }
func (ChannelSalesByMonthQuery) Kind() ViewKind { return ViewChannelSalesByMonth }
func (SalesByPaymentQuery) Kind() ViewKind      { return ViewSalesByPayment }
func (CustomerValueQuery) Kind() ViewKind       { return ViewCustomerValueSummary }
func (TotalSalesQuery) Kind() ViewKind          { return ViewTotalSales }
func (Top3PerSegmentQuery) Kind() ViewKind      { return ViewTop3PerSegment }
func (SeasonalityQuery) Kind() ViewKind         { return ViewSeasonality }
func (ProductMixQuery) Kind() ViewKind          { return ViewProductMix }
func (ParetoQuery) Kind() ViewKind              { return ViewPareto }
func (CampaignQuery) Kind() ViewKind            { return ViewCampaign }

func (CustomersBySexQuery) isQuery()      {}
func (CustomersByRegionQuery) isQuery()   {}
func (ChannelPurchasesQuery) isQuery()    {}
func (CategoryPreferenceQuery) isQuery()  {}
func (ValuableCustomersQuery) isQuery()   {}
func (TopProductsQuery) isQuery()         {}
func (SalesBySegmentQuery) isQuery()      {}
func (ColorsSoldQuery) isQuery()          {}
func (TopCosmeticsQuery) isQuery()        {}
func (TopChairsQuery) isQuery()           {}
func (ProductProfitQuery) isQuery()       {}
func (SalesByYearQuery) isQuery()         {}
func (MonthlySalesQuery) isQuery()        {}
func (MonthComparisonQuery) isQuery()     {}
func (SalesByChannelQuery) isQuery()      {}
func (ChannelSalesByMonthQuery) isQuery() {}
func (SalesByPaymentQuery) isQuery()      {}
func (CustomerValueQuery) isQuery()       {}
func (TotalSalesQuery) isQuery()          {}
func (Top3PerSegmentQuery) isQuery()      {}
func (SeasonalityQuery) isQuery()         {}
func (ProductMixQuery) isQuery()          {}
func (ParetoQuery) isQuery()              {}
func (CampaignQuery) isQuery()            {}

// Params paramètres faiblement typés reçus en bordure (HTTP, outils, CLI)
type Params struct {
	TopN        int
	Year        int
	Month       int
	BaseYear    int
	CompareYear int
	Category    string
	Horizon     string
}

// BuildQuery construit la requête typée d'une vue à partir de paramètres de bordure.
// Les valeurs nulles prennent les défauts de la vue; ErrMissingParameter signale
// un paramètre obligatoire absent.
func BuildQuery(kind ViewKind, p Params) (Query, error) {
	if p.TopN < 0 {
		return nil, fmt.Errorf("%w: top_n must be positive, got %d", ErrInvalidParameter, p.TopN)
	}

	switch kind {
	case ViewCustomersBySex:
		return CustomersBySexQuery{}, nil
	case ViewCustomersByRegion:
		return CustomersByRegionQuery{TopN: p.TopN}, nil
	case ViewChannelPurchases:
		return ChannelPurchasesQuery{TopN: p.TopN}, nil
	case ViewCategoryPreference:
		return CategoryPreferenceQuery{TopN: p.TopN}, nil
	case ViewValuableCustomers:
		return ValuableCustomersQuery{TopN: orDefault(p.TopN, DefaultTopCustomers)}, nil
	case ViewTopProducts:
		return TopProductsQuery{TopN: orDefault(p.TopN, DefaultTopProducts)}, nil
	case ViewSalesBySegment:
		return SalesBySegmentQuery{}, nil
	case ViewColorsSold:
		return ColorsSoldQuery{TopN: p.TopN}, nil
	case ViewTopCosmetics:
		return TopCosmeticsQuery{TopN: orDefault(p.TopN, DefaultTopFiltered)}, nil
	case ViewTopChairs:
		return TopChairsQuery{TopN: orDefault(p.TopN, DefaultTopFiltered)}, nil
	case ViewProductProfitability:
		return ProductProfitQuery{TopN: p.TopN}, nil
	case ViewSalesByYear:
		return SalesByYearQuery{}, nil
	case ViewMonthlySales:
		if p.Year < 0 {
			return nil, fmt.Errorf("%w: year %d", ErrInvalidParameter, p.Year)
		}
		return MonthlySalesQuery{Year: p.Year}, nil
	case ViewMonthComparison:
		return buildMonthComparison(p)
	case ViewSalesByChannel:
		return SalesByChannelQuery{}, nil
	case ViewChannelSalesByMonth:
		period, err := periodOf(p)
		if err != nil {
			return nil, err
		}
		return ChannelSalesByMonthQuery{Period: period}, nil
	case ViewSalesByPayment:
		return SalesByPaymentQuery{}, nil
	case ViewCustomerValueSummary:
		return CustomerValueQuery{TopN: p.TopN}, nil
	case ViewTotalSales:
		period, err := periodOf(p)
		if err != nil {
			return nil, err
		}
		return TotalSalesQuery{Period: period}, nil
	case ViewTop3PerSegment:
		return Top3PerSegmentQuery{}, nil
	case ViewSeasonality:
		return SeasonalityQuery{}, nil
	case ViewProductMix:
		return ProductMixQuery{TopN: p.TopN}, nil
	case ViewPareto:
		return ParetoQuery{TopN: orDefault(p.TopN, DefaultTopPareto)}, nil
	case ViewCampaign:
		horizon := p.Horizon
		if horizon == "" {
			horizon = "trimestre"
		}
		return CampaignQuery{Category: p.Category, Horizon: horizon}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownView, int(kind))
	}
}

func buildMonthComparison(p Params) (Query, error) {
	if p.Month == 0 {
		return nil, fmt.Errorf("%w: month", ErrMissingParameter)
	}
	if p.Month < 1 || p.Month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidParameter, p.Month)
	}

	compare := p.CompareYear
	if compare == 0 {
		compare = p.Year
	}
	if compare == 0 {
		return nil, fmt.Errorf("%w: year", ErrMissingParameter)
	}
	base := p.BaseYear
	if base == 0 {
		base = compare - 1
	}
	return MonthComparisonQuery{Month: p.Month, BaseYear: base, CompareYear: compare}, nil
}

func periodOf(p Params) (shareddomain.Period, error) {
	period, err := shareddomain.NewPeriod(p.Year, p.Month)
	if err != nil {
		return shareddomain.Period{}, fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	return period, nil
}

func orDefault(n, fallback int) int {
	if n <= 0 {
		return fallback
	}
	return n
}
