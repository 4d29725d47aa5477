package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/util"
)

// bindJSON decodes the request body into req, answering 400 on malformed input.
func bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}

// bindOptionalJSON is bindJSON for endpoints whose body may be empty.
func bindOptionalJSON(c *gin.Context, req any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	return true
}

// mustUser returns the session user set by the auth middleware.
func mustUser(c *gin.Context) (*domain.User, bool) {
	user, ok := util.CurrentUser(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return user, ok
}

// viewer returns the session user when one is attached, or nil.
func viewer(c *gin.Context) *domain.User {
	user, _ := util.CurrentUser(c)
	return user
}

func fail(c *gin.Context, log *logger.Logger, err error) {
	util.RespondError(c, log, err)
}
