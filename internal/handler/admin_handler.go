package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/model"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/notify"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
)

// SampleSender sends one sample email of a kind synchronously.
type SampleSender interface {
	SendSample(kind, to string) error
}

var _ SampleSender = (*notify.Sender)(nil)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// AdminHandler serves the admin-only endpoints and the health probe.
type AdminHandler struct {
	Users  domain.UserService
	Mailer SampleSender
	Store  Pinger
	log    *logger.Logger
}

func NewAdminHandler(users domain.UserService, mailer SampleSender, store Pinger, log *logger.Logger) *AdminHandler {
	return &AdminHandler{Users: users, Mailer: mailer, Store: store, log: log.WithComponent("admin_handler")}
}

// Stats handles GET /admin/stats.
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.Users.GetStats(c.Request.Context())
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// TestEmail handles POST /admin/test-email. Type "all" (or empty) sends
// every kind; the response lists the outcome of each.
func (h *AdminHandler) TestEmail(c *gin.Context) {
	var req model.TestEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	kinds := notify.Kinds
	if req.Type != "" && req.Type != "all" {
		if !validKind(req.Type) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email type"})
			return
		}
		kinds = []string{req.Type}
	}

	results := make([]model.TestEmailResult, 0, len(kinds))
	sent := 0
	for _, kind := range kinds {
		result := model.TestEmailResult{Type: kind, Success: true}
		if err := h.Mailer.SendSample(kind, req.Email); err != nil {
			h.log.Warn("test email failed", zap.String("kind", kind), zap.Error(err))
			result.Success = false
			result.Error = err.Error()
		} else {
			sent++
		}
		results = append(results, result)
	}
	c.JSON(http.StatusOK, gin.H{"success": sent == len(kinds), "results": results})
}

// Health handles GET /health.
func (h *AdminHandler) Health(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		h.log.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func validKind(kind string) bool {
	for _, k := range notify.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}
