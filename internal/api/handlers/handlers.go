package handlers

import (
	std "errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	pkgerrors "github.com/farmience/orderdesk/pkg/errors"
)

// respondError maps the error taxonomy to HTTP responses. Action errors
// arrive wrapped with the action name, so matching goes through errors.As.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		notFound   *pkgerrors.ErrLookupNotFound
		transition *pkgerrors.ErrInvalidStateTransition
		validation *pkgerrors.ErrValidation
		stale      *pkgerrors.ErrStaleWrite
		transport  *pkgerrors.ErrTransport
	)
	switch {
	case std.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case std.As(err, &transition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case std.As(err, &validation):
		body := gin.H{"error": err.Error()}
		if len(validation.Fields) > 0 {
			body["fields"] = validation.Fields
		}
		c.JSON(http.StatusBadRequest, body)
	case std.As(err, &stale):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case std.As(err, &transport):
		logger.Error("Backend call failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "backend unavailable"})
	default:
		logger.Error("Unhandled error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
