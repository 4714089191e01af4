// internal/pkg/jwt/claims.go
package jwt

import (
	"github.com/golang-jwt/jwt/v5"

	"fieldserve-backend/internal/pkg/policy"
)

// SessionClaims are the claims embedded in a session token. The token is
// self-contained: verification never consults a server-side store.
type SessionClaims struct {
	EmployeeID int64       `json:"employee_id"`
	FullName   string      `json:"full_name,omitempty"`
	Role       policy.Role `json:"role"`
	jwt.RegisteredClaims
}

// VerifyAudience checks if the expected audience is listed in the claims.
func (c *SessionClaims) VerifyAudience(audience string, required bool) bool {
	if len(c.Audience) == 0 {
		return !required
	}
	for _, aud := range c.Audience {
		if aud == audience {
			return true
		}
	}
	return false
}
