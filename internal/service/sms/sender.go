// internal/service/sms/sender.go
package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Sender delivers a text message to a phone number. OTP delivery is an
// out-of-band concern: the auth flow only needs the capability, never the
// gateway details.
type Sender interface {
	Send(ctx context.Context, phone, message string) error
}

// GatewaySender posts messages to an HTTP SMS gateway.
type GatewaySender struct {
	url    string
	apiKey string
	client *http.Client
	logger *zap.Logger
}

func NewGatewaySender(url, apiKey string, logger *zap.Logger) *GatewaySender {
	return &GatewaySender{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (s *GatewaySender) Send(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(map[string]string{
		"to":      phone,
		"message": message,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal sms payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}

	s.logger.Info("sms delivered", zap.String("phone", phone))
	return nil
}

// LogSender writes the message to the log instead of delivering it.
// Development fallback when no gateway is configured.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, phone, message string) error {
	s.logger.Info("sms (log only)",
		zap.String("phone", phone),
		zap.String("message", message),
	)
	return nil
}
