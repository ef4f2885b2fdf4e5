package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lcqueiroz/users-api/internal/application"
	"github.com/lcqueiroz/users-api/pkg/helpers"
	"github.com/lcqueiroz/users-api/pkg/response"
	"github.com/lcqueiroz/users-api/pkg/validation"
)

// AuthHandler exposes login, token refresh, and logout.
type AuthHandler struct {
	Auth    *application.AuthService
	Cookies *helpers.CookieManager
	Logger  *logrus.Logger
}

func NewAuthHandler(auth *application.AuthService, cookies *helpers.CookieManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Auth: auth, Cookies: cookies, Logger: logger}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login POST /api/auth/login
// Credential failures are a single 401 regardless of which check failed.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	u, pair, err := h.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		resp := response.Error[any](c, http.StatusUnauthorized, "Incorrect username or password", nil)
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(resp.Status, resp)
		return
	}

	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessExpiry, pair.RefreshToken, pair.RefreshExpiry)
	resp := response.Success(c, http.StatusOK, publicUser(u), "login successful", gin.H{
		"access_expires_at":  pair.AccessExpiry,
		"refresh_expires_at": pair.RefreshExpiry,
	})
	c.JSON(resp.Status, resp)
}

// Refresh POST /api/auth/refresh
// Reads the refresh cookie and replaces the access cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		resp := response.Error[any](c, http.StatusUnauthorized, "Refresh token missing", nil)
		c.JSON(resp.Status, resp)
		return
	}

	_, access, exp, err := h.Auth.Refresh(c.Request.Context(), refresh)
	if err != nil {
		resp := response.Error[any](c, http.StatusUnauthorized, "Invalid refresh token", nil)
		c.JSON(resp.Status, resp)
		return
	}

	h.Cookies.SetAccess(c, access, exp)
	resp := response.Success[any](c, http.StatusOK, gin.H{"refreshed": true}, "Access token refreshed", gin.H{
		"access_expires_at": exp,
	})
	c.JSON(resp.Status, resp)
}

// Logout POST /api/auth/logout
// Tokens are stateless; logout only clears the cookie pair.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	resp := response.Success[any](c, http.StatusOK, gin.H{"logged_out": true}, "Logged out successfully", nil)
	c.JSON(resp.Status, resp)
}
