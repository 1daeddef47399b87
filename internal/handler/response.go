package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"signalx/internal/service"
)

func jsonError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// respondError maps domain errors to the HTTP surface. Anything unexpected is
// a storage-layer failure and must not leak details to the client.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		jsonError(c, http.StatusBadRequest, verr.Msg)
	case errors.Is(err, service.ErrSignalNotFound):
		jsonError(c, http.StatusNotFound, "Signal not found")
	case errors.Is(err, service.ErrStrategyNotFound):
		jsonError(c, http.StatusNotFound, "Strategy not found")
	case errors.Is(err, service.ErrAlreadyResolved):
		jsonError(c, http.StatusConflict, "signal already resolved")
	default:
		if logger != nil {
			logger.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
		}
		jsonError(c, http.StatusInternalServerError, "internal error")
	}
}
