package application

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsapp "jnmoveis/internal/analytics/application"
	analyticsdomain "jnmoveis/internal/analytics/domain"
	analyticsinfra "jnmoveis/internal/analytics/infrastructure"
	"jnmoveis/internal/export/domain"
	"jnmoveis/internal/logging"
	"jnmoveis/internal/testhelpers"
)

func newExportService(t testing.TB) *ExportService {
	t.Helper()
	loader := analyticsinfra.NewDatasetLoader(testhelpers.NewFixtureStore(t), logging.Discard(), nil)
	provider := analyticsapp.NewEngineProvider("export", loader, time.Minute, logging.Discard(), nil)
	t.Cleanup(provider.Close)
	return NewExportService(provider, logging.Discard())
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

func TestExportService_ViewCSV(t *testing.T) {
	s := newExportService(t)

	export, err := s.ExportView(context.Background(), analyticsdomain.SalesByChannelQuery{}, domain.ExportFormatCSV)

	require.NoError(t, err)
	records := readCSV(t, export.Data)
	require.Len(t, records, 3)
	assert.Equal(t, "canal_venda", records[0][0])
	assert.Contains(t, records[0], "valor_total_texto")
	assert.Equal(t, "Loja Física", records[1][0])
	assert.Contains(t, records[1], "4235")
	assert.Contains(t, records[1], "R$ 4.235,00")
	assert.Equal(t, 2, export.Rows)
}

func TestExportService_ViewCSVSummary(t *testing.T) {
	s := newExportService(t)

	export, err := s.ExportView(context.Background(), analyticsdomain.MonthComparisonQuery{Month: 3, BaseYear: 2022, CompareYear: 2023}, domain.ExportFormatCSV)

	require.NoError(t, err)
	records := readCSV(t, export.Data)
	var found bool
	for _, r := range records {
		if r[0] == "variacao_valor" {
			found = true
			assert.Equal(t, "+3,61%", r[2])
		}
	}
	assert.True(t, found)
}

func TestExportService_ViewJSON(t *testing.T) {
	s := newExportService(t)

	export, err := s.ExportView(context.Background(), analyticsdomain.TopProductsQuery{TopN: 2}, domain.ExportFormatJSON)

	require.NoError(t, err)
	var decoded struct {
		Kind     string `json:"kind"`
		Sections []struct {
			Table struct {
				Rows [][]struct {
					Value float64 `json:"value"`
					Text  string  `json:"text"`
				} `json:"rows"`
			} `json:"table"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(export.Data, &decoded))
	assert.Equal(t, "top_products", decoded.Kind)
	require.Len(t, decoded.Sections, 1)
	assert.Len(t, decoded.Sections[0].Table.Rows, 2)
}

func TestExportService_ViewErrors(t *testing.T) {
	s := newExportService(t)

	_, err := s.ExportView(context.Background(), nil, domain.ExportFormatCSV)
	assert.ErrorIs(t, err, analyticsdomain.ErrUnknownView)

	_, err = s.ExportView(context.Background(), analyticsdomain.MonthComparisonQuery{Month: 13}, domain.ExportFormatCSV)
	assert.ErrorIs(t, err, analyticsdomain.ErrInvalidParameter)
}

func TestExportService_Facts(t *testing.T) {
	s := newExportService(t)
	s.batchSize = 2

	export, err := s.ExportFacts(context.Background())

	require.NoError(t, err)
	records := readCSV(t, export.Data)
	require.Len(t, records, 10)
	assert.Equal(t, domain.CSVHeaders(), records[0])
	for i, r := range records[1:] {
		assert.Equal(t, []string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}[i], r[0], "lines keep their order")
	}
	assert.Equal(t, 9, export.Rows)
}

type failingAnalytics struct{ err error }

func (f failingAnalytics) Run(context.Context, analyticsdomain.Query) (analyticsdomain.Report, error) {
	return analyticsdomain.Report{}, f.err
}

func (f failingAnalytics) Engine(context.Context) (*analyticsapp.Engine, error) {
	return nil, f.err
}

func TestExportService_LoadFailure(t *testing.T) {
	boom := errors.New("store down")
	s := NewExportService(failingAnalytics{err: boom}, nil)

	_, err := s.ExportFacts(context.Background())
	assert.ErrorIs(t, err, boom)

	_, err = s.ExportView(context.Background(), analyticsdomain.SalesByYearQuery{}, domain.ExportFormatJSON)
	assert.ErrorIs(t, err, boom)
}

func BenchmarkExportService_Facts(b *testing.B) {
	s := newExportService(b)
	ctx := context.Background()

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = s.ExportFacts(ctx)
	}
}
