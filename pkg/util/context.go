package util

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
)

const userKey = "user"

// SetUser stores the authenticated user on the context and mirrors its
// identity into the X-User-Id and X-Username request headers.
func SetUser(c *gin.Context, user *domain.User) {
	c.Set(userKey, user)
	c.Request.Header.Set("X-User-Id", user.ID)
	c.Request.Header.Set("X-Username", user.Username)
}

// CurrentUser returns the user set by the auth middleware.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}

// GetUserID returns the authenticated user id. Client-sent X-User-Id
// headers are ignored unless the auth middleware set them.
func GetUserID(c *gin.Context) (string, bool) {
	if _, ok := CurrentUser(c); !ok {
		return "", false
	}
	userID := c.GetHeader("X-User-Id")
	return userID, userID != ""
}

// GetUsername extracts username from X-Username header
func GetUsername(c *gin.Context) (string, bool) {
	if _, ok := CurrentUser(c); !ok {
		return "", false
	}
	username := c.GetHeader("X-Username")
	return username, username != ""
}

// BearerToken returns the token from an "Authorization: Bearer <token>" header.
func BearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	return token, token != ""
}
