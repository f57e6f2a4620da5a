package v1

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	analyticsapp "jnmoveis/internal/analytics/application"
	analyticsdomain "jnmoveis/internal/analytics/domain"
	assistantapp "jnmoveis/internal/assistant/application"
	catalogapp "jnmoveis/internal/catalog/application"
	chartsapp "jnmoveis/internal/charts/application"
	customersapp "jnmoveis/internal/customers/application"
	exportapp "jnmoveis/internal/export/application"
	exportdomain "jnmoveis/internal/export/domain"
	ordersapp "jnmoveis/internal/orders/application"
	shareddomain "jnmoveis/internal/shared/domain"
)

// Dashboard moteur du tableau de bord (EngineProvider)
type Dashboard interface {
	Run(ctx context.Context, q analyticsdomain.Query) (analyticsdomain.Report, error)
	Engine(ctx context.Context) (*analyticsapp.Engine, error)
	Refresh()
}

// Deps services exposés par l'API; Agent nil désactive le chat
type Deps struct {
	Dashboard Dashboard
	Charts    *chartsapp.Service
	Exports   *exportapp.ExportService
	Customers *customersapp.Service
	Catalog   *catalogapp.Service
	Orders    *ordersapp.Service
	Agent     *assistantapp.Agent
	Sessions  *assistantapp.SessionStore
	Logger    *slog.Logger
}

// Handlers handlers HTTP de l'API v1
type Handlers struct {
	dashboard Dashboard
	charts    *chartsapp.Service
	exports   *exportapp.ExportService
	customers *customersapp.Service
	catalog   *catalogapp.Service
	orders    *ordersapp.Service
	agent     *assistantapp.Agent
	sessions  *assistantapp.SessionStore
	logger    *slog.Logger
}

// NewHandlers crée les handlers
func NewHandlers(d Deps) *Handlers {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		dashboard: d.Dashboard,
		charts:    d.Charts,
		exports:   d.Exports,
		customers: d.Customers,
		catalog:   d.Catalog,
		orders:    d.Orders,
		agent:     d.Agent,
		sessions:  d.Sessions,
		logger:    logger,
	}
}

// HealthResponse réponse de GET /api/health
type HealthResponse struct {
	Status    string `json:"status"`
	Assistant bool   `json:"assistant"`
}

// Health handler pour GET /api/health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok", Assistant: h.agent != nil})
}

// ============================================================================
// Vues
// ============================================================================

// viewParams paramètres de requête communs aux vues
type viewParams struct {
	TopN        int    `form:"top_n" binding:"gte=0"`
	Year        int    `form:"year" binding:"gte=0"`
	Month       int    `form:"month" binding:"gte=0,lte=12"`
	BaseYear    int    `form:"base_year" binding:"gte=0"`
	CompareYear int    `form:"compare_year" binding:"gte=0"`
	Category    string `form:"category"`
	Horizon     string `form:"horizon" binding:"omitempty,oneof=trimestre semestre ano"`
	Format      string `form:"format" binding:"omitempty,oneof=json text csv"`
}

func (p viewParams) params() analyticsdomain.Params {
	return analyticsdomain.Params{
		TopN:        p.TopN,
		Year:        p.Year,
		Month:       p.Month,
		BaseYear:    p.BaseYear,
		CompareYear: p.CompareYear,
		Category:    p.Category,
		Horizon:     p.Horizon,
	}
}

func bindView(c *gin.Context) (analyticsdomain.Query, viewParams, error) {
	var p viewParams
	if err := c.ShouldBindQuery(&p); err != nil {
		return nil, p, fmt.Errorf("%w: %w", errBadRequest, err)
	}
	kind, err := analyticsdomain.ParseViewKind(c.Param("view"))
	if err != nil {
		return nil, p, err
	}
	q, err := analyticsdomain.BuildQuery(kind, p.params())
	return q, p, err
}

// ViewInfo entrée du catalogue des vues
type ViewInfo struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// ListViews handler pour GET /api/v1/views
func (h *Handlers) ListViews(c *gin.Context) {
	kinds := analyticsdomain.AllViews()
	out := make([]ViewInfo, len(kinds))
	for i, k := range kinds {
		out[i] = ViewInfo{Slug: k.String(), Title: k.Title()}
	}
	c.JSON(http.StatusOK, out)
}

// GetView handler pour GET /api/v1/views/:view (?format=text pour le rendu texte)
func (h *Handlers) GetView(c *gin.Context) {
	q, p, err := bindView(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	report, err := h.dashboard.Run(c.Request.Context(), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	if p.Format == "text" {
		c.String(http.StatusOK, analyticsapp.RenderText(report))
		return
	}
	c.JSON(http.StatusOK, report)
}

// OverviewResponse indicateurs de la page d'accueil
type OverviewResponse struct {
	Period  string                   `json:"period"`
	BuiltAt time.Time                `json:"built_at"`
	Reports []analyticsdomain.Report `json:"reports"`
}

// Overview handler pour GET /api/v1/overview: plusieurs vues calculées en parallèle
func (h *Handlers) Overview(c *gin.Context) {
	var p viewParams
	if err := c.ShouldBindQuery(&p); err != nil {
		h.fail(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	period, err := shareddomain.NewPeriod(p.Year, p.Month)
	if err != nil {
		h.fail(c, fmt.Errorf("%w: %w", analyticsdomain.ErrInvalidParameter, err))
		return
	}
	engine, err := h.dashboard.Engine(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	queries := []analyticsdomain.Query{
		analyticsdomain.TotalSalesQuery{Period: period},
		analyticsdomain.SalesByYearQuery{},
		analyticsdomain.SalesByChannelQuery{},
		analyticsdomain.SalesByPaymentQuery{},
		analyticsdomain.TopProductsQuery{TopN: analyticsdomain.CampaignTopProducts},
		analyticsdomain.CustomersBySexQuery{},
	}
	reports := make([]analyticsdomain.Report, len(queries))
	g, ctx := errgroup.WithContext(c.Request.Context())
	for i, q := range queries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r, err := engine.Run(q)
			if err != nil {
				return err
			}
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, OverviewResponse{Period: period.String(), BuiltAt: engine.BuiltAt(), Reports: reports})
}

// Refresh handler pour POST /api/v1/refresh: le prochain appel recharge les données
func (h *Handlers) Refresh(c *gin.Context) {
	h.dashboard.Refresh()
	c.JSON(http.StatusOK, gin.H{"status": "refreshed"})
}

// ============================================================================
// Graphiques
// ============================================================================

// ListCharts handler pour GET /api/v1/charts
func (h *Handlers) ListCharts(c *gin.Context) {
	c.JSON(http.StatusOK, chartsapp.Names())
}

// GetChart handler pour GET /api/v1/charts/:name
func (h *Handlers) GetChart(c *gin.Context) {
	fig, err := h.charts.Build(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fig)
}

// ============================================================================
// Exports
// ============================================================================

// ExportView handler pour GET /api/v1/export/views/:view?format=csv|json
func (h *Handlers) ExportView(c *gin.Context) {
	q, p, err := bindView(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	format, err := exportdomain.ParseFormat(p.Format)
	if err != nil {
		h.fail(c, err)
		return
	}
	export, err := h.exports.ExportView(c.Request.Context(), q, format)
	if err != nil {
		h.fail(c, err)
		return
	}
	attach(c, export)
}

// ExportFacts handler pour GET /api/v1/export/facts
func (h *Handlers) ExportFacts(c *gin.Context) {
	export, err := h.exports.ExportFacts(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	attach(c, export)
}

func attach(c *gin.Context, export exportapp.Export) {
	c.Header("Content-Disposition", "attachment; filename="+export.Job.FileName())
	c.Header("X-Export-Rows", fmt.Sprint(export.Rows))
	c.Data(http.StatusOK, export.Job.Format().ContentType(), export.Data)
}

// ============================================================================
// Assistant
// ============================================================================

// ChatRequest corps de POST /api/v1/chat
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question" binding:"required"`
}

// Chat handler pour POST /api/v1/chat
func (h *Handlers) Chat(c *gin.Context) {
	if h.agent == nil {
		h.fail(c, errAssistantDisabled)
		return
	}
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	answer, err := h.agent.Ask(c.Request.Context(), req.SessionID, req.Question)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

// EndChat handler pour DELETE /api/v1/chat/:session
func (h *Handlers) EndChat(c *gin.Context) {
	if h.sessions == nil {
		h.fail(c, errAssistantDisabled)
		return
	}
	if err := h.sessions.Delete(c.Param("session")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
