package handlers

import (
	"net/http"

	"github.com/getmentor/mentorlink-api/internal/middleware"
	"github.com/getmentor/mentorlink-api/internal/models"
	"github.com/getmentor/mentorlink-api/internal/services"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles account and session endpoints
type AuthHandler struct {
	service services.AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to register")
		return
	}

	h.startSession(c, token)
	c.JSON(http.StatusCreated, models.AuthResponse{User: user.Public(), Token: token})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to log in")
		return
	}

	h.startSession(c, token)
	c.JSON(http.StatusOK, models.AuthResponse{User: user.Public(), Token: token})
}

// Logout handles POST /api/v1/auth/logout
// Clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(
		c,
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)

	c.JSON(http.StatusOK, models.LogoutResponse{
		Success: true,
	})
}

// GetSession handles GET /api/v1/auth/session
// Returns the current user (for session validation)
func (h *AuthHandler) GetSession(c *gin.Context) {
	user, err := h.service.CurrentUser(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		respondServiceError(c, err, "Failed to load session")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user.Public()})
}

func (h *AuthHandler) startSession(c *gin.Context, token string) {
	middleware.SetSessionCookie(
		c,
		token,
		h.service.GetSessionTTL(),
		h.service.GetCookieDomain(),
		h.service.GetCookieSecure(),
	)
}
