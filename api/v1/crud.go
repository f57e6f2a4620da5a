package v1

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	ordersdomain "jnmoveis/internal/orders/domain"
	sharedapp "jnmoveis/internal/shared/application"
)

// crudHandlers handlers REST d'une collection
type crudHandlers[T sharedapp.Entity, P sharedapp.Patch] struct {
	resource *sharedapp.Resource[T, P]
	fail     func(c *gin.Context, err error)
}

func newCRUD[T sharedapp.Entity, P sharedapp.Patch](h *Handlers, r *sharedapp.Resource[T, P]) *crudHandlers[T, P] {
	return &crudHandlers[T, P]{resource: r, fail: h.fail}
}

// register monte les routes CRUD sous rg
func (ch *crudHandlers[T, P]) register(rg *gin.RouterGroup) {
	rg.GET("", ch.list)
	rg.POST("", ch.create)
	rg.GET("/:id", ch.get)
	rg.PATCH("/:id", ch.update)
	rg.DELETE("/:id", ch.delete)
}

func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: identifiant inválido %q", errBadRequest, c.Param(name))
	}
	return id, nil
}

func (ch *crudHandlers[T, P]) list(c *gin.Context) {
	items, err := ch.resource.List(c.Request.Context())
	if err != nil {
		ch.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (ch *crudHandlers[T, P]) get(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		ch.fail(c, err)
		return
	}
	item, err := ch.resource.Get(c.Request.Context(), id)
	if err != nil {
		ch.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (ch *crudHandlers[T, P]) create(c *gin.Context) {
	var item T
	if err := c.ShouldBindJSON(&item); err != nil {
		ch.fail(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	created, err := ch.resource.Create(c.Request.Context(), item)
	if err != nil {
		ch.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (ch *crudHandlers[T, P]) update(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		ch.fail(c, err)
		return
	}
	var patch P
	if err := c.ShouldBindJSON(&patch); err != nil {
		ch.fail(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	updated, err := ch.resource.Update(c.Request.Context(), id, patch)
	if err != nil {
		ch.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (ch *crudHandlers[T, P]) delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		ch.fail(c, err)
		return
	}
	if err := ch.resource.Delete(c.Request.Context(), id); err != nil {
		ch.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// OrderLines handler pour GET /api/v1/orders/:id/lines
func (h *Handlers) OrderLines(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	lines, err := h.orders.Lines(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

// AddOrderLine handler pour POST /api/v1/orders/:id/lines: le sous-total est calculé
// à partir du prix du produit et le total de la commande recalculé
func (h *Handlers) AddOrderLine(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		h.fail(c, err)
		return
	}
	var line ordersdomain.SaleLine
	if err := c.ShouldBindJSON(&line); err != nil {
		h.fail(c, fmt.Errorf("%w: %w", errBadRequest, err))
		return
	}
	line.OrderID = id
	created, err := h.orders.AddLine(c.Request.Context(), line)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
