package infrastructure

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsapp "jnmoveis/internal/analytics/application"
	"jnmoveis/internal/logging"
	"jnmoveis/internal/testhelpers"
)

// ========================================
// INTEGRATION - REAL DOCUMENT STORE
// ========================================
// Lecture seule: le magasin désigné par TEST_DOCSTORE_DRIVER doit avoir été
// peuplé au préalable (cmd/seed).

func TestDatasetLoader_RealStore(t *testing.T) {
	testhelpers.SkipIfNoDatabase(t)

	ctx := testhelpers.SetupTestContext(t)
	defer ctx.Cleanup()

	ds, err := NewDatasetLoader(ctx.Store, logging.Discard(), nil).Load(context.Background())
	require.NoError(t, err)

	engine := analyticsapp.NewEngineFromDataset(ds)
	assert.Len(t, engine.Facts(), len(ds.SaleLines))
	for _, y := range engine.SalesByYear() {
		assert.Positive(t, y.Year)
	}
}

func BenchmarkDatasetLoader_RealStore(b *testing.B) {
	testhelpers.SkipIfNoDatabase(b)

	ctx := testhelpers.SetupTestContext(b)
	defer ctx.Cleanup()
	loader := NewDatasetLoader(ctx.Store, logging.Discard(), nil)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		ds, err := loader.Load(context.Background())
		if err != nil {
			b.Fatal(err)
		}
		b.ReportMetric(float64(len(ds.SaleLines)), "sale_lines")
	}
}

func BenchmarkEngineBuild_RealStore(b *testing.B) {
	testhelpers.SkipIfNoDatabase(b)

	ctx := testhelpers.SetupTestContext(b)
	defer ctx.Cleanup()
	ds, err := NewDatasetLoader(ctx.Store, logging.Discard(), nil).Load(context.Background())
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		engine := analyticsapp.NewEngineFromDataset(ds)
		_ = engine.Pareto(15)
	}
}
