package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	analyticsdomain "jnmoveis/internal/analytics/domain"
	assistantdomain "jnmoveis/internal/assistant/domain"
	chartsdomain "jnmoveis/internal/charts/domain"
	exportdomain "jnmoveis/internal/export/domain"
	shareddomain "jnmoveis/internal/shared/domain"
)

// ErrorResponse corps des réponses en erreur
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// statusFor code HTTP d'une erreur applicative
func statusFor(err error) int {
	switch {
	case errors.Is(err, shareddomain.ErrNotFound),
		errors.Is(err, analyticsdomain.ErrUnknownView),
		errors.Is(err, analyticsdomain.ErrProductNotFound),
		errors.Is(err, chartsdomain.ErrChartNotFound),
		errors.Is(err, assistantdomain.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, shareddomain.ErrValidation),
		errors.Is(err, analyticsdomain.ErrMissingParameter),
		errors.Is(err, analyticsdomain.ErrInvalidParameter),
		errors.Is(err, exportdomain.ErrInvalidExport),
		errors.Is(err, assistantdomain.ErrEmptyQuestion),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, analyticsdomain.ErrLoadFailed),
		errors.Is(err, errAssistantDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

var (
	errBadRequest        = errors.New("bad request")
	errAssistantDisabled = errors.New("assistant disabled")
)

// fail écrit l'erreur; les 5xx sont journalisées et leur détail masqué
func (h *Handlers) fail(c *gin.Context, err error) {
	status := statusFor(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.FullPath(), "request_id", requestID(c), "error", err)
		msg = "internal server error"
	} else if status >= http.StatusInternalServerError {
		h.logger.Warn("request failed", "path", c.FullPath(), "request_id", requestID(c), "error", err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg, RequestID: requestID(c)})
}
