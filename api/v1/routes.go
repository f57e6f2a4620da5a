package v1

import (
	"log/slog"
	"net/http"
	_ "net/http/pprof"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"jnmoveis/internal/observability"
)

// RegisterRoutes monte l'API v1 sous rg
func RegisterRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/views", h.ListViews)
	rg.GET("/views/:view", h.GetView)
	rg.GET("/overview", h.Overview)
	rg.POST("/refresh", h.Refresh)

	rg.GET("/charts", h.ListCharts)
	rg.GET("/charts/:name", h.GetChart)

	rg.GET("/export/views/:view", h.ExportView)
	rg.GET("/export/facts", h.ExportFacts)

	rg.POST("/chat", h.Chat)
	rg.DELETE("/chat/:session", h.EndChat)

	if h.customers != nil {
		newCRUD(h, h.customers).register(rg.Group("/customers"))
	}
	if h.catalog != nil {
		newCRUD(h, h.catalog.Products).register(rg.Group("/products"))
		newCRUD(h, h.catalog.Colors).register(rg.Group("/colors"))
	}
	if h.orders != nil {
		orders := rg.Group("/orders")
		newCRUD(h, h.orders.Orders).register(orders)
		orders.GET("/:id/lines", h.OrderLines)
		orders.POST("/:id/lines", h.AddOrderLine)
		newCRUD(h, h.orders.SaleLines).register(rg.Group("/sales"))
	}
}

// NewRouter routeur complet: santé, métriques, profilage et API v1
func NewRouter(h *Handlers, metrics *observability.Metrics, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}
	r := gin.New()
	r.Use(RequestID(), Observe(metrics, logger), gin.Recovery())

	r.GET("/api/health", h.Health)
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{})))
	}
	r.GET("/debug/pprof/*any", gin.WrapH(http.DefaultServeMux))

	RegisterRoutes(r.Group("/api/v1"), h)
	return r
}
