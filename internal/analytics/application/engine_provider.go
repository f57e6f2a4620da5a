package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"jnmoveis/internal/analytics/domain"
	"jnmoveis/internal/observability"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

// DefaultEngineTTL durée de vie d'un moteur avant rechargement
const DefaultEngineTTL = 5 * time.Minute

// EngineProvider construit le moteur à la demande et le garde en cache.
// Chaque consommateur (tableau de bord, assistant) possède son propre provider.
type EngineProvider struct {
	consumer string
	source   DatasetSource
	ttl      time.Duration
	engines  *sharedinfra.InMemoryCache
	reports  *sharedinfra.ShardedCache
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewEngineProvider crée un provider; ttl <= 0 prend DefaultEngineTTL
func NewEngineProvider(
	consumer string,
	source DatasetSource,
	ttl time.Duration,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *EngineProvider {
	if ttl <= 0 {
		ttl = DefaultEngineTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &EngineProvider{
		consumer: consumer,
		source:   source,
		ttl:      ttl,
		engines:  sharedinfra.NewInMemoryCache(ttl),
		reports:  sharedinfra.NewShardedCache(16, ttl),
		logger:   logger.With("consumer", consumer),
		metrics:  metrics,
	}
}

func (p *EngineProvider) engineKey() string {
	return sharedinfra.NewCacheKeyBuilder("engine").Add(p.consumer).Build()
}

// Engine retourne le moteur courant, en le construisant s'il est absent ou expiré
func (p *EngineProvider) Engine(ctx context.Context) (*Engine, error) {
	v, err := p.engines.GetOrLoad(p.engineKey(), p.ttl, func() (any, error) {
		start := time.Now()
		engine, err := NewEngine(ctx, p.source, p.metrics)
		p.metrics.RecordEngineBuild(p.consumer, err)
		if err != nil {
			p.logger.Error("engine build failed", "error", err)
			return nil, err
		}
		p.logger.Info("engine built", "facts", len(engine.Facts()), "duration", time.Since(start))
		return engine, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Engine), nil
}

// Run exécute une vue sur le moteur courant; le rapport est mis en cache pour ce moteur
func (p *EngineProvider) Run(ctx context.Context, q domain.Query) (domain.Report, error) {
	if q == nil {
		return domain.Report{}, fmt.Errorf("%w: nil query", domain.ErrUnknownView)
	}
	engine, err := p.Engine(ctx)
	if err != nil {
		return domain.Report{}, err
	}

	key := sharedinfra.NewCacheKeyBuilder("report").
		Add(p.consumer).
		Add(engine.BuiltAt().Format(time.RFC3339Nano)).
		Add(q.Kind().String()).
		Add(fmt.Sprintf("%+v", q)).
		Build()
	v, err := p.reports.GetOrLoad(key, p.ttl, func() (any, error) {
		report, err := engine.Run(q)
		if err != nil {
			return nil, err
		}
		return report, nil
	})
	if err != nil {
		return domain.Report{}, err
	}
	return v.(domain.Report), nil
}

// Refresh oublie le moteur et les rapports; le prochain appel recharge les données
func (p *EngineProvider) Refresh() {
	p.engines.Delete(p.engineKey())
	p.reports.Clear()
	p.logger.Info("engine cache cleared")
}

// Close arrête les goroutines de nettoyage des caches
func (p *EngineProvider) Close() {
	p.engines.Stop()
	p.reports.Stop()
}
