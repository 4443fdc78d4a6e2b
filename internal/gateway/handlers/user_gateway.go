package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"warehouse-system/internal/services/user"
)

type AuthHTTPHandler struct {
	auth   *user.AuthService
	logger *zap.Logger
}

func NewAuthHTTPHandler(auth *user.AuthService, logger *zap.Logger) *AuthHTTPHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHTTPHandler{auth: auth, logger: logger}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=1"`
}

func (h *AuthHTTPHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Bad Request", "Invalid request body: "+err.Error())
		return
	}

	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		success(c, res)
	case errors.Is(err, user.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, "Unauthorized", "Invalid email or password")
	case errors.Is(err, user.ErrRateLimited):
		fail(c, http.StatusTooManyRequests, "Too Many Requests", "Too many login attempts, retry later")
	default:
		h.logger.Error("login failed", zap.Error(err))
		fail(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// Logout only acknowledges; tokens are stateless and dropped by the client.
func (h *AuthHTTPHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logged out successfully",
	})
}

func (h *AuthHTTPHandler) Me(c *gin.Context) {
	id, ok := user.IdentityFromContext(c.Request.Context())
	if !ok {
		fail(c, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	u, err := h.auth.Me(c.Request.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			fail(c, http.StatusNotFound, "User not found", "")
			return
		}
		fail(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	success(c, u)
}

func (h *AuthHTTPHandler) Refresh(c *gin.Context) {
	id, ok := user.IdentityFromContext(c.Request.Context())
	if !ok {
		fail(c, http.StatusUnauthorized, "Unauthorized", "")
		return
	}

	tok, err := h.auth.Refresh(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("token refresh failed", zap.String("user_id", id.UserID), zap.Error(err))
		fail(c, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	success(c, tok)
}
