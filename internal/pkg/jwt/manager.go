// internal/pkg/jwt/manager.go
package jwt

import (
	"time"

	xerrors "fieldserve-backend/internal/pkg/errors"
)

type Config struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

type Manager struct {
	Generator *Generator
	Verifier  *Verifier
}

// NewManager builds a generator/verifier pair from config. A missing
// signing secret is a startup failure, not a silent no-op.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Secret == "" {
		return nil, xerrors.Wrap(xerrors.ErrConfig, "JWT_SECRET is not set")
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 7 * 24 * time.Hour
	}

	secret := []byte(cfg.Secret)
	return &Manager{
		Generator: NewGenerator(secret, cfg.Issuer, cfg.Audience, cfg.TTL),
		Verifier:  NewVerifier(secret, cfg.Issuer, cfg.Audience),
	}, nil
}
