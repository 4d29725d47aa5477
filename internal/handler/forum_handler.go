package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
)

// ForumHandler handles forum post and reply requests.
type ForumHandler struct {
	Service domain.ForumService
	log     *logger.Logger
}

// NewForumHandler creates a new ForumHandler.
func NewForumHandler(service domain.ForumService, log *logger.Logger) *ForumHandler {
	return &ForumHandler{Service: service, log: log.WithComponent("forum_handler")}
}

// ListPosts handles GET /forum/posts with optional category and userId filters.
func (h *ForumHandler) ListPosts(c *gin.Context) {
	posts, err := h.Service.ListPosts(c.Request.Context(), domain.PostFilter{
		Category: c.Query("category"),
		UserID:   c.Query("userId"),
	})
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// CreatePost handles POST /forum/posts.
func (h *ForumHandler) CreatePost(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	var req domain.CreatePostRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.Service.CreatePost(c.Request.Context(), user, req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "post": post})
}

// ReactToPost handles POST /forum/posts/:id/react.
func (h *ForumHandler) ReactToPost(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	var req domain.ReactRequest
	if !bindJSON(c, &req) {
		return
	}
	reactions, err := h.Service.ReactToPost(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reactions": reactions})
}

// ReactToReply handles POST /forum/replies/:id/react.
func (h *ForumHandler) ReactToReply(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	var req domain.ReactRequest
	if !bindJSON(c, &req) {
		return
	}
	reactions, err := h.Service.ReactToReply(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reactions": reactions})
}

// ViewPost handles POST /forum/posts/:id/view. Without a userId in the body
// the session user, if any, is recorded as the viewer.
func (h *ForumHandler) ViewPost(c *gin.Context) {
	var req domain.ViewRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	if req.UserID == "" {
		if user := viewer(c); user != nil {
			req.UserID = user.ID
		}
	}
	res, err := h.Service.ViewPost(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// SharePost handles POST /forum/posts/:id/share.
func (h *ForumHandler) SharePost(c *gin.Context) {
	shares, err := h.Service.SharePost(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "shares": shares})
}

// ListReplies handles GET /forum/posts/:id/replies.
func (h *ForumHandler) ListReplies(c *gin.Context) {
	replies, err := h.Service.ListReplies(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"replies": replies})
}

// CreateReply handles POST /forum/posts/:id/replies.
func (h *ForumHandler) CreateReply(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	var req domain.CreateReplyRequest
	if !bindJSON(c, &req) {
		return
	}
	reply, err := h.Service.CreateReply(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reply": reply})
}
