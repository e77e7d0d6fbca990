package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/farmience/orderdesk/internal/backend"
	"github.com/farmience/orderdesk/internal/domain"
	"github.com/farmience/orderdesk/internal/service"
	pkgerrors "github.com/farmience/orderdesk/pkg/errors"
)

// HandleUpdateOrderStatus handles POST /v1/orders/:id/status — moves a firm
// order along its fulfillment stages.
func HandleUpdateOrderStatus(feed *service.FeedService, lifecycle *service.LifecycleService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.OrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		entity, err := feed.FindByIDOrNumber(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		if entity.SourceKind != domain.SourceOrder {
			respondError(c, logger, &pkgerrors.ErrValidation{Message: "entity is not an order"})
			return
		}

		updated, err := lifecycle.UpdateOrderStatus(c.Request.Context(), entity, domain.UnifiedStatus(req.Status), req.Note)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// HandleCreateOrder handles POST /v1/orders — passthrough create against
// the backend store, returning the normalized record.
func HandleCreateOrder(store backend.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload backend.OrderCreate
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}
		if len(payload.Products) == 0 {
			respondError(c, logger, &pkgerrors.ErrValidation{Message: "order requires at least one product"})
			return
		}

		raw, err := store.CreateOrder(c.Request.Context(), payload)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		created := service.NormalizeOrder(*raw)
		c.JSON(http.StatusCreated, created)
	}
}

// HandleDeleteOrder handles DELETE /v1/orders/:id.
func HandleDeleteOrder(store backend.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.DeleteOrder(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, logger, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
