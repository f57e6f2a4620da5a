package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "jnmoveis"

// Metrics regroupe les métriques Prometheus de l'application
type Metrics struct {
	EngineBuilds     *prometheus.CounterVec
	RowsLoaded       *prometheus.GaugeVec
	ViewDuration     *prometheus.HistogramVec
	ToolCalls        *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	DocumentsWritten *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics enregistre les métriques dans un registre dédié
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		EngineBuilds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "analytics",
			Name:      "engine_builds_total",
			Help:      "Analytics engine constructions by consumer and status.",
		}, []string{"consumer", "status"}),
		RowsLoaded: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "analytics",
			Name:      "rows_loaded",
			Help:      "Rows loaded per collection on the last engine build.",
		}, []string{"collection"}),
		ViewDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "analytics",
			Name:      "view_duration_seconds",
			Help:      "Time spent computing an aggregate view.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"view"}),
		ToolCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "assistant",
			Name:      "tool_calls_total",
			Help:      "Assistant tool invocations by tool and status.",
		}, []string{"tool", "status"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "status"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		DocumentsWritten: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "store",
			Name:      "documents_written_total",
			Help:      "Documents created, updated or deleted through the CRUD layer.",
		}, []string{"collection", "operation"}),
	}
}

// Registry retourne le registre pour l'exposition /metrics
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveView enregistre la durée d'une vue depuis start
func (m *Metrics) ObserveView(view string, start time.Time) {
	if m == nil {
		return
	}
	m.ViewDuration.WithLabelValues(view).Observe(time.Since(start).Seconds())
}

// RecordEngineBuild compte une construction de moteur
func (m *Metrics) RecordEngineBuild(consumer string, err error) {
	if m == nil {
		return
	}
	m.EngineBuilds.WithLabelValues(consumer, statusOf(err)).Inc()
}

// RecordRows publie le nombre de lignes chargées pour une collection
func (m *Metrics) RecordRows(collection string, rows int) {
	if m == nil {
		return
	}
	m.RowsLoaded.WithLabelValues(collection).Set(float64(rows))
}

// RecordToolCall compte un appel d'outil de l'assistant
func (m *Metrics) RecordToolCall(tool string, err error) {
	if m == nil {
		return
	}
	m.ToolCalls.WithLabelValues(tool, statusOf(err)).Inc()
}

// RecordWrite compte une écriture CRUD
func (m *Metrics) RecordWrite(collection, operation string) {
	if m == nil {
		return
	}
	m.DocumentsWritten.WithLabelValues(collection, operation).Inc()
}

// ObserveHTTP compte une requête HTTP et sa durée depuis start
func (m *Metrics) ObserveHTTP(route, method string, status int, start time.Time) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
