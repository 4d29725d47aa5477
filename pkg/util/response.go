package util

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
)

// RespondError aborts the request with the JSON error body for err.
// Errors that are neither AppErrors nor store outages are reported as 500.
func RespondError(c *gin.Context, log *logger.Logger, err error) {
	if userID, ok := GetUserID(c); ok {
		log = log.WithUserID(userID)
	}
	appErr, isAppErr := domain.AsAppError(err)
	switch {
	case isAppErr:
		if appErr.StatusCode >= http.StatusInternalServerError {
			log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		}
		body := gin.H{"error": appErr.Message}
		if appErr.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(appErr.RetryAfter))
			body["retryAfter"] = appErr.RetryAfter
		}
		c.AbortWithStatusJSON(appErr.StatusCode, body)
	case domain.IsStoreUnavailable(err):
		log.Error("store unavailable", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Database unavailable"})
	default:
		log.Error("internal error", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
