package auth

import (
	"net/http"

	apperrors "staff-backoffice-backend/internal/errors"
	"staff-backoffice-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	service Authenticator
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(service Authenticator) *AuthHandler {
	return &AuthHandler{service: service}
}

// AuthLogoutResponse represents the response from the logout endpoint
type AuthLogoutResponse struct {
	Message string `json:"message" example:"Logged out successfully"`
}

// Login handles POST /auth/login
// @Summary Sign in
// @Description Authenticate with email and password and receive an access and refresh token
// @Tags authentication
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse "Successfully authenticated"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Invalid email or password"
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	response, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Refresh handles POST /auth/refresh
// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair. The presented refresh token is revoked.
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body RefreshTokenRequest true "Refresh token"
// @Success 200 {object} LoginResponse "Successfully refreshed token"
// @Failure 400 {object} map[string]interface{} "Invalid request body"
// @Failure 401 {object} map[string]interface{} "Invalid refresh token"
// @Failure 500 {object} map[string]interface{} "Token refresh failed"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	response, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err, "Token refresh failed")
		return
	}

	c.JSON(http.StatusOK, response)
}

// Logout handles POST /auth/logout
// @Summary Sign out
// @Description Revoke the refresh token and the current access token
// @Tags authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body LogoutRequest false "Refresh token to revoke"
// @Success 200 {object} AuthLogoutResponse "Successfully logged out"
// @Failure 401 {object} map[string]interface{} "Authentication required"
// @Failure 500 {object} map[string]interface{} "Logout failed"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req LogoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}
	}

	if err := h.service.Logout(c.Request.Context(), &req); err != nil {
		h.respondError(c, err, "Logout failed")
		return
	}

	c.JSON(http.StatusOK, AuthLogoutResponse{Message: "Logged out successfully"})
}

// Me handles GET /auth/me
// @Summary Current user
// @Description Return the authenticated user with roles and permissions
// @Tags authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse "Authenticated user"
// @Failure 401 {object} map[string]interface{} "Authentication required"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	response, err := h.service.Me(c.Request.Context())
	if err != nil {
		h.respondError(c, err, "Failed to load current user")
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) respondError(c *gin.Context, err error, fallback string) {
	switch {
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsAuthentication(err), apperrors.IsNotFound(err):
		// Never reveal which part of the credentials was wrong
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logger.WithContext(c.Request.Context()).WithError(err).Error(fallback)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}
