// Package bootstrap assemble les services de l'application à partir de la configuration.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	v1 "jnmoveis/api/v1"
	"jnmoveis/database"
	analyticsapp "jnmoveis/internal/analytics/application"
	analyticsinfra "jnmoveis/internal/analytics/infrastructure"
	assistantapp "jnmoveis/internal/assistant/application"
	assistantinfra "jnmoveis/internal/assistant/infrastructure"
	catalogapp "jnmoveis/internal/catalog/application"
	chartsapp "jnmoveis/internal/charts/application"
	"jnmoveis/internal/config"
	customersapp "jnmoveis/internal/customers/application"
	exportapp "jnmoveis/internal/export/application"
	"jnmoveis/internal/observability"
	ordersapp "jnmoveis/internal/orders/application"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

// App services câblés sur un magasin de documents
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *observability.Metrics
	Store   sharedinfra.DocumentStore

	// Dashboard et Assistant ont chacun leur moteur en cache
	Dashboard *analyticsapp.EngineProvider
	Assistant *analyticsapp.EngineProvider

	Charts    *chartsapp.Service
	Exports   *exportapp.ExportService
	Customers *customersapp.Service
	Catalog   *catalogapp.Service
	Orders    *ordersapp.Service
	Sessions  *assistantapp.SessionStore
	Toolset   *assistantapp.Toolset

	// Agent nil quand aucune clé OpenAI n'est configurée
	Agent *assistantapp.Agent
}

// New ouvre le magasin et construit les services
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	store, err := database.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	return NewWithStore(cfg, store, logger)
}

// NewWithStore construit les services sur un magasin déjà ouvert
func NewWithStore(cfg *config.Config, store sharedinfra.DocumentStore, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	metrics := observability.NewMetrics()
	validate := validator.New(validator.WithRequiredStructEnabled())

	loader := analyticsinfra.NewDatasetLoader(store, logger.With("component", "loader"), metrics)
	dashboard := analyticsapp.NewEngineProvider("dashboard", loader, cfg.Engine.CacheTTL, logger, metrics)
	assistant := analyticsapp.NewEngineProvider("assistant", loader, cfg.Engine.CacheTTL, logger, metrics)

	catalog := catalogapp.NewService(store, validate, logger, metrics)
	app := &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics,
		Store:     store,
		Dashboard: dashboard,
		Assistant: assistant,
		Charts:    chartsapp.NewService(dashboard, logger),
		Exports:   exportapp.NewExportService(dashboard, logger),
		Customers: customersapp.NewService(store, validate, logger, metrics),
		Catalog:   catalog,
		Orders:    ordersapp.NewService(store, catalog.Products, validate, logger, metrics),
		Sessions:  assistantapp.NewSessionStore(0, 0),
		Toolset:   assistantapp.NewToolset(assistant, logger, metrics),
	}

	client, err := assistantinfra.NewOpenAIClient(cfg.Assistant, logger)
	switch {
	case errors.Is(err, assistantinfra.ErrMissingAPIKey):
		logger.Warn("assistant disabled", "reason", err)
	case err != nil:
		app.Close(context.Background())
		return nil, fmt.Errorf("assistant: %w", err)
	default:
		app.Agent = assistantapp.NewAgent(client, cfg.Assistant.Model, cfg.Assistant.MaxSteps, app.Toolset, app.Sessions, logger)
	}
	return app, nil
}

// Handlers handlers HTTP de l'API v1
func (a *App) Handlers() *v1.Handlers {
	return v1.NewHandlers(v1.Deps{
		Dashboard: a.Dashboard,
		Charts:    a.Charts,
		Exports:   a.Exports,
		Customers: a.Customers,
		Catalog:   a.Catalog,
		Orders:    a.Orders,
		Agent:     a.Agent,
		Sessions:  a.Sessions,
		Logger:    a.Logger,
	})
}

// Close libère caches et connexion
func (a *App) Close(ctx context.Context) {
	a.Dashboard.Close()
	a.Assistant.Close()
	a.Sessions.Close()
	if err := a.Store.Close(ctx); err != nil {
		a.Logger.Warn("store close failed", "error", err)
	}
}
