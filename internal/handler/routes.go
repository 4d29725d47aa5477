package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth    *AuthHandler
	Forum   *ForumHandler
	Message *MessageHandler
	User    *UserHandler
	Gallery *GalleryHandler
	Admin   *AdminHandler
}

// RegisterRoutes mounts the site API on r. authn resolves bearer sessions.
func RegisterRoutes(r gin.IRouter, h Handlers, authn middleware.Authenticator, log *logger.Logger) {
	requireAuth := middleware.AuthMiddleware(authn, log)
	optionalAuth := middleware.OptionalAuth(authn, log)

	r.GET("/health", h.Admin.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/verify-email", h.Auth.VerifyEmail)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/logout", requireAuth, h.Auth.Logout)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/reset-password", h.Auth.ResetPassword)
		auth.POST("/password-strength", h.Auth.PasswordStrength)
	}

	forum := r.Group("/forum")
	{
		forum.GET("/posts", h.Forum.ListPosts)
		forum.POST("/posts", requireAuth, h.Forum.CreatePost)
		forum.POST("/posts/:id/react", requireAuth, h.Forum.ReactToPost)
		forum.POST("/posts/:id/view", optionalAuth, h.Forum.ViewPost)
		forum.POST("/posts/:id/share", h.Forum.SharePost)
		forum.GET("/posts/:id/replies", h.Forum.ListReplies)
		forum.POST("/posts/:id/replies", requireAuth, h.Forum.CreateReply)
		forum.POST("/replies/:id/react", requireAuth, h.Forum.ReactToReply)
	}

	messages := r.Group("/messages")
	{
		messages.GET("", requireAuth, h.Message.GetConversation)
		messages.POST("", requireAuth, h.Message.SendMessage)
		messages.GET("/unread", requireAuth, h.Message.UnreadCount)
		messages.POST("/typing", requireAuth, h.Message.SetTyping)
		messages.GET("/typing", h.Message.GetTyping)
		messages.POST("/:id/read", requireAuth, h.Message.MarkRead)
	}

	users := r.Group("/users")
	{
		users.GET("/online", h.User.GetOnlineUsers)
		users.POST("/online", requireAuth, h.User.SetOnline)
		users.GET("/profile", h.User.GetProfile)
		users.PUT("/profile", requireAuth, h.User.UpdateProfile)
	}

	gallery := r.Group("/gallery")
	{
		gallery.GET("/albums", h.Gallery.ListAlbums)
		gallery.POST("/albums", requireAuth, h.Gallery.CreateAlbum)
		gallery.GET("/albums/:id", optionalAuth, h.Gallery.GetAlbum)
		gallery.POST("/albums/:id/unlock", h.Gallery.UnlockAlbum)
		gallery.POST("/albums/:id/photos", requireAuth, h.Gallery.AddPhoto)
		gallery.DELETE("/albums/:id", requireAuth, h.Gallery.DeleteAlbum)
	}

	admin := r.Group("/admin", requireAuth, middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/stats", h.Admin.Stats)
		admin.POST("/test-email", h.Admin.TestEmail)
	}
}
