package application

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jnmoveis/internal/analytics/domain"
	"jnmoveis/internal/observability"
)

// countingSource source de test qui compte les chargements
type countingSource struct {
	loads atomic.Int32
	err   error
	ds    *domain.Dataset
}

func (s *countingSource) Load(context.Context) (*domain.Dataset, error) {
	s.loads.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return s.ds, nil
}

func newCountingSource() *countingSource {
	return &countingSource{ds: &domain.Dataset{
		Customers: []domain.Customer{{ID: "1", Name: "Ana", Sex: "F"}},
		Orders: []domain.Order{
			datedOrder("10", "1", date(2023, time.May, 2), 300, "Instagram"),
		},
		SaleLines: []domain.SaleLine{{ID: "1", OrderID: "10", ProductID: "7", Quantity: 2, Subtotal: 300}},
		Products:  []domain.Product{{ID: "7", Name: "Cadeira", Category: "Cadeiras", UnitPrice: 150}},
	}}
}

func TestEngineProvider_BuildsOnce(t *testing.T) {
	source := newCountingSource()
	p := NewEngineProvider("dashboard", source, time.Minute, nil, observability.NewMetrics())
	defer p.Close()

	first, err := p.Engine(context.Background())
	require.NoError(t, err)
	second, err := p.Engine(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), source.loads.Load())
}

func TestEngineProvider_Refresh(t *testing.T) {
	source := newCountingSource()
	p := NewEngineProvider("assistant", source, time.Minute, nil, nil)
	defer p.Close()

	_, err := p.Run(context.Background(), domain.TopProductsQuery{TopN: 5})
	require.NoError(t, err)

	p.Refresh()
	report, err := p.Run(context.Background(), domain.TopProductsQuery{TopN: 5})

	require.NoError(t, err)
	assert.Equal(t, 1, report.MainTable().Len())
	assert.Equal(t, int32(2), source.loads.Load())
}

func TestEngineProvider_ErrorsAreNotCached(t *testing.T) {
	boom := errors.New("connection refused")
	source := newCountingSource()
	source.err = boom
	p := NewEngineProvider("dashboard", source, time.Minute, nil, nil)
	defer p.Close()

	_, err := p.Engine(context.Background())
	assert.ErrorIs(t, err, boom)

	source.err = nil
	_, err = p.Engine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), source.loads.Load())
}

func TestEngineProvider_RunPropagatesViewErrors(t *testing.T) {
	p := NewEngineProvider("dashboard", newCountingSource(), time.Minute, nil, nil)
	defer p.Close()

	_, err := p.Run(context.Background(), domain.MonthComparisonQuery{Month: 0, BaseYear: 2022, CompareYear: 2023})

	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestEngineProvider_ConcurrentRuns(t *testing.T) {
	source := newCountingSource()
	p := NewEngineProvider("dashboard", source, time.Minute, nil, nil)
	defer p.Close()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Run(context.Background(), domain.SalesByChannelQuery{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), source.loads.Load())
}

func BenchmarkEngineProvider_CachedRun(b *testing.B) {
	p := NewEngineProvider("bench", newCountingSource(), time.Minute, nil, nil)
	defer p.Close()
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = p.Run(ctx, domain.TopProductsQuery{TopN: domain.DefaultTopProducts})
	}
}
