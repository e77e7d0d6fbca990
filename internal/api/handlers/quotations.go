package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/farmience/orderdesk/internal/domain"
	"github.com/farmience/orderdesk/internal/service"
	pkgerrors "github.com/farmience/orderdesk/pkg/errors"
)

// resolveQuotation fetches the entity for an action and checks it is a
// quotation.
func resolveQuotation(c *gin.Context, feed *service.FeedService) (*domain.UnifiedOrder, error) {
	entity, err := feed.FindByIDOrNumber(c.Request.Context(), c.Param("id"))
	if err != nil {
		return nil, err
	}
	if entity.SourceKind != domain.SourceQuotation {
		return nil, &pkgerrors.ErrValidation{Message: "entity is not a quotation"}
	}
	return entity, nil
}

// HandleSendQuote handles POST /v1/quotations/:id/quote — admin submits
// pricing for a requested or negotiated quotation.
func HandleSendQuote(feed *service.FeedService, lifecycle *service.LifecycleService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SendQuoteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
			return
		}

		entity, err := resolveQuotation(c, feed)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		updated, err := lifecycle.SendQuote(c.Request.Context(), entity, req)
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// HandleAcceptQuotation handles POST /v1/quotations/:id/accept. Whether
// this books a fresh request or a counter is picked from the current
// status.
func HandleAcceptQuotation(feed *service.FeedService, lifecycle *service.LifecycleService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RejectRequest // optional notes share the reason shape
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
				return
			}
		}

		entity, err := resolveQuotation(c, feed)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		var updated *domain.UnifiedOrder
		if entity.Status == domain.StatusNegotiation {
			updated, err = lifecycle.AcceptCounter(c.Request.Context(), entity, req.Reason)
		} else {
			updated, err = lifecycle.AcceptQuoteRequest(c.Request.Context(), entity, req.Reason)
		}
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// HandleRejectQuotation handles POST /v1/quotations/:id/reject with an
// optional reason stored as notes.
func HandleRejectQuotation(feed *service.FeedService, lifecycle *service.LifecycleService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.RejectRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
				return
			}
		}

		entity, err := resolveQuotation(c, feed)
		if err != nil {
			respondError(c, logger, err)
			return
		}

		var updated *domain.UnifiedOrder
		if entity.Status == domain.StatusNegotiation {
			updated, err = lifecycle.RejectCounter(c.Request.Context(), entity, req.Reason)
		} else {
			updated, err = lifecycle.RejectQuoteRequest(c.Request.Context(), entity, req.Reason)
		}
		if err != nil {
			respondError(c, logger, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
