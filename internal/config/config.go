package config

import (
	"os"
	"strings"
	"time"

	xerrors "fieldserve-backend/internal/pkg/errors"
	"fieldserve-backend/internal/pkg/jwt"
)

type AppConfig struct {
	// Server
	HTTPAddr    string
	DatabaseURL string
	RedisAddr   string
	RedisPass   string

	// JWT
	JWT jwt.Config

	// CORS origin allow-list for API paths
	CORSOrigins []string

	// SMS gateway (optional; empty URL falls back to the logging sender)
	SMSGatewayURL string
	SMSGatewayKey string
}

// Load loads environment variables into AppConfig. Missing required values
// fail here rather than surfacing later as silent no-ops.
func Load() (AppConfig, error) {
	cfg := AppConfig{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:   getEnv("REDIS_PASS", ""),

		JWT: jwt.Config{
			Secret:   os.Getenv("JWT_SECRET"),
			Issuer:   "fieldserve",
			Audience: "fieldserve-employees",
			TTL:      7 * 24 * time.Hour,
		},

		CORSOrigins: getEnvSlice("CORS_ORIGINS", []string{"http://localhost:3000"}),

		SMSGatewayURL: getEnv("SMS_GATEWAY_URL", ""),
		SMSGatewayKey: getEnv("SMS_GATEWAY_KEY", ""),
	}

	if cfg.DatabaseURL == "" {
		return cfg, xerrors.Wrap(xerrors.ErrConfig, "DATABASE_URL is not set")
	}
	if cfg.JWT.Secret == "" {
		return cfg, xerrors.Wrap(xerrors.ErrConfig, "JWT_SECRET is not set")
	}

	return cfg, nil
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
