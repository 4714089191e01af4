// internal/pkg/jwt/verifier.go
package jwt

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	xerrors "fieldserve-backend/internal/pkg/errors"
)

type Verifier struct {
	secret   []byte
	issuer   string
	audience string
}

func NewVerifier(secret []byte, issuer, audience string) *Verifier {
	return &Verifier{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
	}
}

// Verify validates a session token and returns its claims. This is a pure
// signature + expiry check with no I/O, cheap enough to run on every
// request.
func (v *Verifier) Verify(tokenString string) (*SessionClaims, error) {
	if len(v.secret) == 0 {
		return nil, fmt.Errorf("jwt verifier has empty secret")
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, xerrors.Wrap(xerrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, xerrors.Wrap(xerrors.ErrInvalidToken, "invalid token claims")
	}

	if claims.Issuer != v.issuer {
		return nil, xerrors.Wrap(xerrors.ErrInvalidToken, "invalid issuer")
	}
	if !claims.VerifyAudience(v.audience, true) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidToken, "invalid audience")
	}

	return claims, nil
}
