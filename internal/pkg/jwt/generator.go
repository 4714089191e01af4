// internal/pkg/jwt/generator.go
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"

	"fieldserve-backend/internal/pkg/policy"
)

type Generator struct {
	secret   []byte
	issuer   string
	audience string
	Ttl      time.Duration
}

func NewGenerator(secret []byte, issuer, audience string, ttl time.Duration) *Generator {
	return &Generator{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		Ttl:      ttl,
	}
}

// Generate mints a signed session token embedding the employee's identity
// and role. Expiry is fixed at the generator's TTL from now.
func (g *Generator) Generate(employeeID int64, fullName string, role policy.Role) (string, string, error) {
	if len(g.secret) == 0 {
		return "", "", fmt.Errorf("jwt generator has empty secret")
	}

	now := time.Now()
	jti := ulid.Make().String()

	claims := &SessionClaims{
		EmployeeID: employeeID,
		FullName:   fullName,
		Role:       role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    g.issuer,
			Subject:   fmt.Sprintf("%d", employeeID),
			Audience:  []string{g.audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(g.Ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        jti,
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(g.secret)
	return signed, jti, err
}
