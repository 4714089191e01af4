// internal/handlers/auth/auth_handler.go
package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fieldserve-backend/internal/domain/auth"
	"fieldserve-backend/internal/pkg/response"
	service "fieldserve-backend/internal/service/auth"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// RequestOTP issues a one-time code for a registered phone. The code is
// delivered out-of-band; the response only acknowledges the request.
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req auth.RequestOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	if err := h.authService.RequestOTP(c.Request.Context(), req.Phone); err != nil {
		response.FromError(c, "failed to send otp", err)
		return
	}

	response.Success(c, http.StatusOK, "otp sent", nil)
}

// VerifyOTP checks the submitted code and establishes the session cookie.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req auth.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.authService.VerifyOTP(c.Request.Context(), req.Phone, req.Code)
	if err != nil {
		response.FromError(c, "otp verification failed", err)
		return
	}

	// Session cookie: HTTP-only, strict same-site, whole site, no
	// explicit max-age. The token itself carries the expiry.
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", result.Token, 0, "/", "", false, true)

	response.Success(c, http.StatusOK, "login successful", result)
}

// Logout discards the session cookie. The token stays cryptographically
// valid until its natural expiry; there is no server-side blacklist.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("token", "", -1, "/", "", false, true)

	response.Success(c, http.StatusOK, "logged out", nil)
}

// Unauthorized is the landing page for denied requests.
func (h *AuthHandler) Unauthorized(c *gin.Context) {
	response.Error(c, http.StatusForbidden, "you do not have access to this page", nil)
}
