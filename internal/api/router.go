package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/farmience/orderdesk/internal/api/handlers"
	"github.com/farmience/orderdesk/internal/api/middleware"
	"github.com/farmience/orderdesk/internal/backend"
	"github.com/farmience/orderdesk/internal/config"
	"github.com/farmience/orderdesk/internal/service"
)

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, store backend.Store, logger *zap.Logger) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	feed := service.NewFeedService(store, logger)
	lifecycle := service.NewLifecycleService(store, feed, logger)

	router := gin.New()

	// Middleware
	router.Use(customRecovery(logger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(loggingMiddleware(logger))

	// Root: friendly response so GET / returns 200 instead of 404
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "Order Desk API",
			"endpoints": []string{
				"GET /health",
				"GET /v1/feed",
				"GET /v1/orders",
				"GET /v1/quotations",
				"GET /v1/entities/:id",
				"GET /v1/entities/:id/turn",
				"GET /v1/entities/:id/progress",
				"POST /v1/quotations/:id/quote",
				"POST /v1/quotations/:id/accept",
				"POST /v1/quotations/:id/reject",
				"POST /v1/orders",
				"POST /v1/orders/:id/status",
				"DELETE /v1/orders/:id",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	v1.Use(middleware.AuthMiddleware(cfg.API.ServiceKey, logger))
	{
		v1.GET("/feed", handlers.HandleGetFeed(feed, logger))
		v1.GET("/orders", handlers.HandleListOrders(feed, logger))
		v1.GET("/quotations", handlers.HandleListQuotations(feed, logger))
		v1.GET("/entities/:id", handlers.HandleGetEntity(feed, logger))
		v1.GET("/entities/:id/turn", handlers.HandleGetTurn(feed, logger))
		v1.GET("/entities/:id/progress", handlers.HandleGetProgress(feed, logger))

		v1.POST("/quotations/:id/quote", handlers.HandleSendQuote(feed, lifecycle, logger))
		v1.POST("/quotations/:id/accept", handlers.HandleAcceptQuotation(feed, lifecycle, logger))
		v1.POST("/quotations/:id/reject", handlers.HandleRejectQuotation(feed, lifecycle, logger))

		v1.POST("/orders", handlers.HandleCreateOrder(store, logger))
		v1.POST("/orders/:id/status", handlers.HandleUpdateOrderStatus(feed, lifecycle, logger))
		v1.DELETE("/orders/:id", handlers.HandleDeleteOrder(store, logger))
	}

	return router
}

// customRecovery is a custom recovery middleware that logs panics
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal server error",
			"details": fmt.Sprintf("%v", recovered),
		})
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}
