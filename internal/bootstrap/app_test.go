package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsdomain "jnmoveis/internal/analytics/domain"
	"jnmoveis/internal/config"
	"jnmoveis/internal/logging"
	"jnmoveis/internal/testhelpers"
)

func TestNewWithStore(t *testing.T) {
	cfg := config.Default()
	app, err := NewWithStore(cfg, testhelpers.NewFixtureStore(t), logging.Discard())
	require.NoError(t, err)
	defer app.Close(context.Background())

	assert.NotNil(t, app.Handlers())
	assert.NotSame(t, app.Dashboard, app.Assistant)

	report, err := app.Dashboard.Run(context.Background(), analyticsdomain.SalesByYearQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, report.MainTable().Len())

	tool, ok := app.Toolset.Lookup("analisar_vendas")
	require.True(t, ok)
	text, err := tool.Call(context.Background(), `{"tipo":"total"}`)
	require.NoError(t, err)
	assert.Contains(t, text, "R$ 5.155,00")
}

func TestNew_MemoryDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Driver = config.DriverMemory
	cfg.Assistant.APIKey = "sk-test"

	app, err := New(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	defer app.Close(context.Background())

	assert.NotNil(t, app.Agent)
	engine, err := app.Dashboard.Engine(context.Background())
	require.NoError(t, err)
	assert.Empty(t, engine.Facts())
}

func TestNew_UnsupportedDriver(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Driver = "cassandra"

	_, err := New(context.Background(), cfg, logging.Discard())

	assert.Error(t, err)
}
