package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsapp "jnmoveis/internal/analytics/application"
	analyticsdomain "jnmoveis/internal/analytics/domain"
	analyticsinfra "jnmoveis/internal/analytics/infrastructure"
	assistantapp "jnmoveis/internal/assistant/application"
	catalogapp "jnmoveis/internal/catalog/application"
	chartsapp "jnmoveis/internal/charts/application"
	chartsdomain "jnmoveis/internal/charts/domain"
	customersapp "jnmoveis/internal/customers/application"
	customersdomain "jnmoveis/internal/customers/domain"
	exportapp "jnmoveis/internal/export/application"
	"jnmoveis/internal/logging"
	"jnmoveis/internal/observability"
	ordersapp "jnmoveis/internal/orders/application"
	ordersdomain "jnmoveis/internal/orders/domain"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
	"jnmoveis/internal/testhelpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router  *gin.Engine
	store   *sharedinfra.MemoryStore
	metrics *observability.Metrics
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := testhelpers.NewFixtureStore(t)
	metrics := observability.NewMetrics()
	logger := logging.Discard()

	loader := analyticsinfra.NewDatasetLoader(store, logger, metrics)
	dashboard := analyticsapp.NewEngineProvider("dashboard", loader, time.Minute, logger, metrics)
	sessions := assistantapp.NewSessionStore(time.Minute, 10)
	t.Cleanup(func() {
		dashboard.Close()
		sessions.Close()
	})

	catalog := catalogapp.NewService(store, nil, logger, metrics)
	h := NewHandlers(Deps{
		Dashboard: dashboard,
		Charts:    chartsapp.NewService(dashboard, logger),
		Exports:   exportapp.NewExportService(dashboard, logger),
		Customers: customersapp.NewService(store, nil, logger, metrics),
		Catalog:   catalog,
		Orders:    ordersapp.NewService(store, catalog.Products, nil, logger, metrics),
		Sessions:  sessions,
		Logger:    logger,
	})
	return &testServer{router: NewRouter(h, metrics, logger), store: store, metrics: metrics}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/health", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[HealthResponse](t, w)
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Assistant)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRequestID_Propagated(t *testing.T) {
	s := newTestServer(t)
	id := "3f1c2b4e-8a4d-4a6b-9c1e-2f5d7e9a0b1c"

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", id)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, id, w.Header().Get("X-Request-ID"))
}

func TestListViews(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/views", nil)

	require.Equal(t, http.StatusOK, w.Code)
	views := decode[[]ViewInfo](t, w)
	assert.Len(t, views, len(analyticsdomain.AllViews()))
	assert.Equal(t, "customers_by_sex", views[0].Slug)
}

func TestGetView_JSON(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/views/top_products?top_n=2", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Shampoo Profissional 1L")
	assert.Contains(t, w.Body.String(), "top_products")
}

func TestGetView_Text(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/views/sales_by_channel?format=text", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "=== VENDAS POR CANAL ==="))
	assert.Contains(t, w.Body.String(), "R$ 4.235,00")
}

func TestGetView_Errors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"unknown view", "/api/v1/views/nope", http.StatusNotFound},
		{"missing month", "/api/v1/views/month_comparison?year=2023", http.StatusBadRequest},
		{"month out of range", "/api/v1/views/month_comparison?month=13&year=2023", http.StatusBadRequest},
		{"negative top", "/api/v1/views/top_products?top_n=-1", http.StatusBadRequest},
		{"bad horizon", "/api/v1/views/campaign?horizon=decada", http.StatusBadRequest},
		{"month without year", "/api/v1/views/total_sales?month=3", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, tt.path, nil)

			assert.Equal(t, tt.status, w.Code, w.Body.String())
			resp := decode[ErrorResponse](t, w)
			assert.NotEmpty(t, resp.Error)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestGetView_MonthComparison(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/views/month_comparison?month=3&base_year=2022&compare_year=2023&format=text", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "+3,61%")
}

func TestGetView_LoadFailure(t *testing.T) {
	s := newTestServer(t)
	s.store.FailWith(errors.New("connection refused"))

	w := s.do(t, http.MethodGet, "/api/v1/views/sales_by_year", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestOverview(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/overview", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[OverviewResponse](t, w)
	assert.Len(t, resp.Reports, 6)
	assert.False(t, resp.BuiltAt.IsZero())
	assert.Contains(t, w.Body.String(), "R$ 5.155,00")
}

// pinnedDashboard moteur fixe; Run échoue pour vérifier que la synthèse n'y passe pas
type pinnedDashboard struct {
	engine *analyticsapp.Engine
}

func (d pinnedDashboard) Run(context.Context, analyticsdomain.Query) (analyticsdomain.Report, error) {
	return analyticsdomain.Report{}, errors.New("rapport d'un autre moteur")
}

func (d pinnedDashboard) Engine(context.Context) (*analyticsapp.Engine, error) { return d.engine, nil }
func (d pinnedDashboard) Refresh()                                              {}

func TestOverview_UsesSingleEngine(t *testing.T) {
	logger := logging.Discard()
	ds, err := analyticsinfra.NewDatasetLoader(testhelpers.NewFixtureStore(t), logger, nil).Load(context.Background())
	require.NoError(t, err)
	engine := analyticsapp.NewEngineFromDataset(ds)
	router := NewRouter(NewHandlers(Deps{Dashboard: pinnedDashboard{engine: engine}, Logger: logger}), observability.NewMetrics(), logger)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/overview", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[OverviewResponse](t, w)
	assert.Len(t, resp.Reports, 6)
	assert.True(t, engine.BuiltAt().Equal(resp.BuiltAt))
}

func TestRefresh(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/refresh", nil)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCharts(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/charts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, chartsapp.Names(), decode[[]string](t, w))

	w = s.do(t, http.MethodGet, "/api/v1/charts/vendas_ano", nil)
	require.Equal(t, http.StatusOK, w.Code)
	fig := decode[chartsdomain.Figure](t, w)
	assert.Equal(t, "vendas_ano", fig.Name)
	require.NotEmpty(t, fig.Traces)
	assert.Equal(t, []float64{2045, 3080}, fig.Traces[0].Values)

	w = s.do(t, http.MethodGet, "/api/v1/charts/inexistente", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportView(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/export/views/sales_by_year?format=csv", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "sales_by_year_")
	assert.Equal(t, "2", w.Header().Get("X-Export-Rows"))
	assert.Contains(t, w.Body.String(), "2045")

	w = s.do(t, http.MethodGet, "/api/v1/export/views/sales_by_year?format=json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.True(t, json.Valid(w.Body.Bytes()))
}

func TestExportFacts(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/export/facts", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "vendas_consolidadas_")
	assert.Equal(t, "9", w.Header().Get("X-Export-Rows"))
}

func TestChat_Disabled(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/chat", ChatRequest{Question: "Quanto vendemos?"})

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestEndChat_UnknownSession(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodDelete, "/api/v1/chat/not-a-session", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomersCRUD(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/customers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]customersdomain.Customer](t, w), 4)

	w = s.do(t, http.MethodPost, "/api/v1/customers", customersdomain.Customer{Name: "Elisa Prado", Sex: "F", City: "Olinda", State: "PE"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[customersdomain.Customer](t, w)
	assert.Equal(t, int64(5), created.ID)

	w = s.do(t, http.MethodPatch, "/api/v1/customers/5", map[string]string{"cidade": "Recife"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Recife", decode[customersdomain.Customer](t, w).City)

	w = s.do(t, http.MethodDelete, "/api/v1/customers/5", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/customers/5", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomersCRUD_BadInput(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/customers/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/customers", customersdomain.Customer{Name: "Sem Sexo", Sex: "X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderLines(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/orders/100/lines", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]ordersdomain.SaleLine](t, w), 2)

	w = s.do(t, http.MethodPost, "/api/v1/orders/100/lines", ordersdomain.SaleLine{ProductID: 12, ColorID: 1, Quantity: 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	line := decode[ordersdomain.SaleLine](t, w)
	assert.Equal(t, int64(100), line.OrderID)
	assert.InDelta(t, 90.0, line.Subtotal, 1e-9)

	w = s.do(t, http.MethodGet, "/api/v1/orders/100", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.InDelta(t, 1335.0, decode[ordersdomain.Order](t, w).Total, 1e-9)

	w = s.do(t, http.MethodGet, "/api/v1/orders/999/lines", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.do(t, http.MethodGet, "/api/v1/views/sales_by_year", nil)

	w := s.do(t, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "jnmoveis_http_requests_total")
	assert.Contains(t, w.Body.String(), "jnmoveis_analytics_engine_builds_total")
}

func BenchmarkGetView(b *testing.B) {
	store := testhelpers.NewFixtureStore(b)
	logger := logging.Discard()
	dashboard := analyticsapp.NewEngineProvider("bench", analyticsinfra.NewDatasetLoader(store, logger, nil), time.Minute, logger, nil)
	defer dashboard.Close()
	router := NewRouter(NewHandlers(Deps{Dashboard: dashboard, Logger: logger}), nil, logger)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/views/top_products", nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}
}
