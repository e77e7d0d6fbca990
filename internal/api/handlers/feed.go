package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/farmience/orderdesk/internal/domain"
	"github.com/farmience/orderdesk/internal/service"
)

// HandleGetFeed handles GET /v1/feed — the merged order+quotation feed,
// most recently touched first. All-or-nothing: a failed sub-fetch fails the
// request.
func HandleGetFeed(feed *service.FeedService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		unified, err := feed.ListUnified(c.Request.Context())
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"entities": unified, "count": len(unified)})
	}
}

// HandleListOrders handles GET /v1/orders. A backend failure degrades to an
// empty list instead of failing the page.
func HandleListOrders(feed *service.FeedService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders := feed.ListOrders(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"entities": orders, "count": len(orders)})
	}
}

// HandleListQuotations handles GET /v1/quotations; degrades like orders.
func HandleListQuotations(feed *service.FeedService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		quotations := feed.ListQuotations(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"entities": quotations, "count": len(quotations)})
	}
}

// HandleGetEntity handles GET /v1/entities/:id — lookup by backend id or
// display number.
func HandleGetEntity(feed *service.FeedService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		entity, err := feed.FindByIDOrNumber(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, entity)
	}
}

// HandleGetTurn handles GET /v1/entities/:id/turn — which party acts next.
func HandleGetTurn(feed *service.FeedService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		entity, err := feed.FindByIDOrNumber(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":     entity.ID,
			"status": entity.Status,
			"turn":   entity.Turn(),
		})
	}
}

// HandleGetProgress handles GET /v1/entities/:id/progress — the stepper
// projection. The backend keeps no status history, so the timeline is
// synthesized from the record's creation and last-update timestamps.
func HandleGetProgress(feed *service.FeedService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		entity, err := feed.FindByIDOrNumber(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, logger, err)
			return
		}

		initial := domain.StatusPaymentPending
		if entity.SourceKind == domain.SourceQuotation {
			initial = domain.StatusQuoteRequested
		}
		timeline := []domain.TimelineEvent{
			{Status: initial, At: entity.CreatedAt},
			{Status: entity.Status, At: entity.UpdatedAt},
		}

		c.JSON(http.StatusOK, gin.H{
			"id":     entity.ID,
			"status": entity.Status,
			"stages": domain.ProjectProgress(entity.Status, timeline),
		})
	}
}
