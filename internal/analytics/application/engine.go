package application

import (
	"context"
	"fmt"
	"time"

	"jnmoveis/internal/analytics/domain"
	"jnmoveis/internal/observability"
)

// DatasetSource fournit les tables normalisées (le chargeur d'infrastructure en production)
type DatasetSource interface {
	Load(ctx context.Context) (*domain.Dataset, error)
}

// Engine moteur d'analyse: tables sources et table de faits, immuables après construction.
// Toutes les vues sont des lectures pures, sûres en accès concurrent.
type Engine struct {
	dataset *domain.Dataset
	facts   []domain.Fact
	builtAt time.Time
	metrics *observability.Metrics
}

// NewEngine charge le jeu de données et construit la table de faits
func NewEngine(ctx context.Context, source DatasetSource, metrics *observability.Metrics) (*Engine, error) {
	ds, err := source.Load(ctx)
	if err != nil {
		return nil, err
	}
	e := NewEngineFromDataset(ds)
	e.metrics = metrics
	return e, nil
}

// NewEngineFromDataset construit un moteur sur un jeu de données déjà chargé
func NewEngineFromDataset(ds *domain.Dataset) *Engine {
	if ds == nil {
		ds = &domain.Dataset{}
	}
	return &Engine{
		dataset: ds,
		facts:   domain.Consolidate(ds),
		builtAt: time.Now(),
	}
}

// Dataset tables sources (lecture seule)
func (e *Engine) Dataset() *domain.Dataset {
	return e.dataset
}

// Facts table consolidée (lecture seule)
func (e *Engine) Facts() []domain.Fact {
	return e.facts
}

// BuiltAt date de construction du moteur
func (e *Engine) BuiltAt() time.Time {
	return e.builtAt
}

// Run exécute une vue et retourne son rapport
func (e *Engine) Run(q domain.Query) (domain.Report, error) {
	if q == nil {
		return domain.Report{}, fmt.Errorf("%w: nil query", domain.ErrUnknownView)
	}
	defer e.metrics.ObserveView(q.Kind().String(), time.Now())

	switch q := q.(type) {
	case domain.CustomersBySexQuery:
		return e.CustomersBySex().Report(), nil
	case domain.CustomersByRegionQuery:
		return e.CustomersByRegion(q.TopN).Report(), nil
	case domain.ChannelPurchasesQuery:
		return e.ChannelPurchases(q.TopN).Report(), nil
	case domain.CategoryPreferenceQuery:
		return e.CategoryPreferences(q.TopN).Report(), nil
	case domain.ValuableCustomersQuery:
		return e.ValuableCustomers(q.TopN).Report(), nil
	case domain.TopProductsQuery:
		return e.TopProducts(q.TopN).Report(), nil
	case domain.SalesBySegmentQuery:
		return e.SalesBySegment().Report(), nil
	case domain.ColorsSoldQuery:
		return e.ColorsSold(q.TopN).Report(), nil
	case domain.TopCosmeticsQuery:
		return e.TopCosmetics(q.TopN).Report(), nil
	case domain.TopChairsQuery:
		return e.TopChairs(q.TopN).Report(), nil
	case domain.ProductProfitQuery:
		return e.ProductProfitability(q.TopN).Report(), nil
	case domain.SalesByYearQuery:
		return e.SalesByYear().Report(), nil
	case domain.MonthlySalesQuery:
		return e.MonthlySales(q.Year).Report(), nil
	case domain.MonthComparisonQuery:
		cmp, err := e.CompareMonth(q.Month, q.BaseYear, q.CompareYear)
		if err != nil {
			return domain.Report{}, err
		}
		return cmp.Report(), nil
	case domain.SalesByChannelQuery:
		return e.SalesByChannel().Report(), nil
	case domain.ChannelSalesByMonthQuery:
		return e.ChannelSalesByMonth(q.Period).Report(), nil
	case domain.SalesByPaymentQuery:
		return e.SalesByPayment().Report(), nil
	case domain.CustomerValueQuery:
		return e.CustomerValueSummary(q.TopN).Report(), nil
	case domain.TotalSalesQuery:
		return e.TotalSales(q.Period).Report(), nil
	case domain.Top3PerSegmentQuery:
		return e.Top3PerSegment().Report(), nil
	case domain.SeasonalityQuery:
		return e.Seasonality().Report(), nil
	case domain.ProductMixQuery:
		return e.ProductMix(q.TopN).Report(), nil
	case domain.ParetoQuery:
		return e.Pareto(q.TopN).Report(), nil
	case domain.CampaignQuery:
		return e.Campaign(q.Category, q.Horizon).Report(), nil
	default:
		return domain.Report{}, fmt.Errorf("%w: %s", domain.ErrUnknownView, q.Kind())
	}
}

// RunKind construit la requête à partir de paramètres de bordure puis l'exécute
func (e *Engine) RunKind(kind domain.ViewKind, params domain.Params) (domain.Report, error) {
	q, err := domain.BuildQuery(kind, params)
	if err != nil {
		return domain.Report{}, err
	}
	return e.Run(q)
}
