package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/credential"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/internal/model"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/util"
)

// AuthHandler handles signup, login and password recovery requests.
type AuthHandler struct {
	Service domain.AuthService
	log     *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service domain.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{Service: service, log: log.WithComponent("auth_handler")}
}

// Signup handles POST /auth/signup.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req domain.SignupRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Service.Signup(c.Request.Context(), req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// VerifyEmail handles POST /auth/verify-email.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req domain.VerifyEmailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.VerifyEmail(c.Request.Context(), req); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified successfully! You can now login."})
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Service.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := util.BearerToken(c)
	if err := h.Service.Logout(c.Request.Context(), token); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ForgotPassword handles POST /auth/forgot-password. The answer is the same
// whether or not the address belongs to an account.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req domain.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.ForgotPassword(c.Request.Context(), req); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "If the email exists, a reset code has been sent."})
}

// ResetPassword handles POST /auth/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req domain.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Service.ResetPassword(c.Request.Context(), req); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password reset successfully! You can now login."})
}

// PasswordStrength handles POST /auth/password-strength.
func (h *AuthHandler) PasswordStrength(c *gin.Context) {
	var req model.PasswordStrengthRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, credential.CheckPasswordStrength(req.Password))
}
