package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
)

// MessageHandler handles private messages and typing indicators.
type MessageHandler struct {
	Service domain.MessageService
	log     *logger.Logger
}

func NewMessageHandler(service domain.MessageService, log *logger.Logger) *MessageHandler {
	return &MessageHandler{Service: service, log: log.WithComponent("message_handler")}
}

// GetConversation handles GET /messages?userId=.
func (h *MessageHandler) GetConversation(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	messages, err := h.Service.GetConversation(c.Request.Context(), user, c.Query("userId"))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// SendMessage handles POST /messages.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	var req domain.SendMessageRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.Service.SendMessage(c.Request.Context(), user, req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": msg})
}

// MarkRead handles POST /messages/:id/read.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	if err := h.Service.MarkRead(c.Request.Context(), user, c.Param("id")); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UnreadCount handles GET /messages/unread.
func (h *MessageHandler) UnreadCount(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	n, err := h.Service.UnreadCount(c.Request.Context(), user)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": n})
}

// SetTyping handles POST /messages/typing.
func (h *MessageHandler) SetTyping(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	var req domain.TypingRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.SetTyping(c.Request.Context(), user, req); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetTyping handles GET /messages/typing?userId=.
func (h *MessageHandler) GetTyping(c *gin.Context) {
	status, err := h.Service.GetTyping(c.Request.Context(), c.Query("userId"))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"typingStatus": status})
}
