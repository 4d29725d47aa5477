package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
)

// UserHandler handles profile and presence requests.
type UserHandler struct {
	Service domain.UserService
	log     *logger.Logger
}

func NewUserHandler(service domain.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{Service: service, log: log.WithComponent("user_handler")}
}

// GetProfile handles GET /users/profile?userId=.
func (h *UserHandler) GetProfile(c *gin.Context) {
	profile, err := h.Service.GetProfile(c.Request.Context(), c.Query("userId"))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// UpdateProfile handles PUT /users/profile for the session user.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	var req domain.UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.Service.UpdateProfile(c.Request.Context(), user.ID, req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "user": updated})
}

// GetOnlineUsers handles GET /users/online.
func (h *UserHandler) GetOnlineUsers(c *gin.Context) {
	users, err := h.Service.GetOnlineUsers(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// SetOnline handles POST /users/online.
func (h *UserHandler) SetOnline(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	var req domain.OnlineStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.SetOnline(c.Request.Context(), user.ID, req.IsOnline); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
