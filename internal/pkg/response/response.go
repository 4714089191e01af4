// internal/pkg/response/response.go
package response

import (
	"net/http"

	xerrors "fieldserve-backend/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Response defines the standard API response format.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response.
func Error(c *gin.Context, code int, message string, err error) {
	// Abort FIRST before writing response
	c.Abort()

	resp := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}

	c.JSON(code, resp)
}

// FromError maps an application error to the matching HTTP status.
// Store/connectivity failures are never leaked to the client.
func FromError(c *gin.Context, message string, err error) {
	switch {
	case xerrors.Is(err, xerrors.ErrInvalidInput):
		Error(c, http.StatusBadRequest, message, err)
	case xerrors.Is(err, xerrors.ErrNotFound), xerrors.Is(err, xerrors.ErrOTPExpired):
		Error(c, http.StatusNotFound, message, err)
	case xerrors.Is(err, xerrors.ErrInvalidOTP), xerrors.Is(err, xerrors.ErrInvalidToken), xerrors.Is(err, xerrors.ErrUnauthorized):
		Error(c, http.StatusUnauthorized, message, err)
	case xerrors.Is(err, xerrors.ErrForbidden):
		Error(c, http.StatusForbidden, message, err)
	case xerrors.Is(err, xerrors.ErrConflict):
		Error(c, http.StatusConflict, message, err)
	case xerrors.Is(err, xerrors.ErrRateLimited):
		Error(c, http.StatusTooManyRequests, message, err)
	default:
		Error(c, http.StatusInternalServerError, message, xerrors.ErrInternal)
	}
}
