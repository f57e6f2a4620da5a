package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jnmoveis/database"
	analyticsapp "jnmoveis/internal/analytics/application"
	analyticsinfra "jnmoveis/internal/analytics/infrastructure"
	"jnmoveis/internal/logging"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

var seedEnd = time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)

func seeded(t testing.TB, seed uint64) (*sharedinfra.MemoryStore, database.SeedStats) {
	t.Helper()
	store := sharedinfra.NewMemoryStore()
	stats, err := database.SeedStore(context.Background(), store, database.SeedOptions{
		Years: 2, Customers: 30, Seed: seed, End: seedEnd,
	}, logging.Discard())
	require.NoError(t, err)
	return store, stats
}

func TestSeedStore(t *testing.T) {
	store, stats := seeded(t, 42)
	ctx := context.Background()

	assert.Equal(t, 30, stats.Customers)
	assert.Equal(t, 22, stats.Products)
	assert.Equal(t, 8, stats.Colors)
	assert.Positive(t, stats.Orders)
	assert.GreaterOrEqual(t, stats.SaleLines, stats.Orders)

	orders, err := store.FindAll(ctx, database.CollectionOrders)
	require.NoError(t, err)
	require.Len(t, orders, stats.Orders)

	var previous time.Time
	for i, o := range orders {
		assert.Equal(t, int64(i+1), o.Int(database.FieldOrderID))
		date, err := time.Parse(database.OrderDateLayout, o.Text(database.FieldOrderDate))
		require.NoError(t, err)
		assert.False(t, date.After(seedEnd))
		assert.GreaterOrEqual(t, date.Year(), 2023)
		assert.False(t, date.Before(previous), "orders are numbered chronologically")
		previous = date
	}
}

func TestSeedStore_TotalsMatchLines(t *testing.T) {
	store, _ := seeded(t, 7)

	engine, err := analyticsapp.NewEngine(context.Background(), analyticsinfra.NewDatasetLoader(store, logging.Discard(), nil), nil)
	require.NoError(t, err)

	var lines float64
	for _, f := range engine.Facts() {
		lines += f.Line.Subtotal
	}
	var orders float64
	for _, o := range engine.Dataset().Orders {
		orders += o.Total
	}
	assert.InDelta(t, orders, lines, 0.01*float64(len(engine.Dataset().Orders)))
	assert.Len(t, engine.Facts(), len(engine.Dataset().SaleLines))
}

func TestSeedStore_Deterministic(t *testing.T) {
	a, _ := seeded(t, 99)
	b, _ := seeded(t, 99)

	for _, collection := range database.Collections {
		docsA, err := a.FindAll(context.Background(), collection)
		require.NoError(t, err)
		docsB, err := b.FindAll(context.Background(), collection)
		require.NoError(t, err)
		assert.Equal(t, docsA, docsB, collection)
	}
}

func TestSeedStore_AlreadySeeded(t *testing.T) {
	store, _ := seeded(t, 1)
	opts := database.SeedOptions{Years: 1, Customers: 5, End: seedEnd}

	_, err := database.SeedStore(context.Background(), store, opts, logging.Discard())
	assert.ErrorIs(t, err, database.ErrAlreadySeeded)

	opts.Force = true
	_, err = database.SeedStore(context.Background(), store, opts, logging.Discard())
	assert.NoError(t, err)
}

func TestSeedStore_InvalidOptions(t *testing.T) {
	_, err := database.SeedStore(context.Background(), sharedinfra.NewMemoryStore(), database.SeedOptions{}, nil)

	assert.Error(t, err)
}

func BenchmarkSeedStore(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, err := database.SeedStore(context.Background(), sharedinfra.NewMemoryStore(), database.SeedOptions{
			Years: 3, Customers: 300, Seed: uint64(i), End: seedEnd,
		}, logging.Discard())
		if err != nil {
			b.Fatal(err)
		}
	}
}
