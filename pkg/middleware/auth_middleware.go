package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/util"
)

// Authenticator resolves a session token to its user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// AuthMiddleware requires a valid "Authorization: Bearer <session token>" header.
func AuthMiddleware(auth Authenticator, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := util.BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			util.RespondError(c, log, err)
			return
		}

		util.SetUser(c, user)
		c.Next()
	}
}

// OptionalAuth attaches the session user when a valid bearer token is
// present and lets anonymous requests through otherwise.
func OptionalAuth(auth Authenticator, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := util.BearerToken(c)
		if !ok {
			c.Next()
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			util.SetUser(c, user)
		case domain.IsStoreUnavailable(err):
			log.Warn("optional auth skipped", zap.Error(err))
		}
		c.Next()
	}
}

// RequireRole rejects authenticated users without the given role.
// It must run after AuthMiddleware.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := util.CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
