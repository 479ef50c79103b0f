package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/repo"
)

type AuthHandler struct {
	users  UserStore
	tokens *auth.Tokens
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.users.UserByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && !auth.CheckPassword(user.PasswordHash, req.Password)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		c.Error(err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(auth.TokenCookie, token, 0, "/", "", false, true)
	c.JSON(http.StatusOK, models.LoginResponse{Token: token, User: user})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.TokenCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusNoContent)
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
		return
	}
	c.JSON(http.StatusOK, user)
}
