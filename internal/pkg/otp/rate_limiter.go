// internal/pkg/otp/rate_limiter.go
package otp

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RateLimiter struct {
	client *redis.Client
}

func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// CheckIssueAttempt checks whether another code may be issued for the
// phone. Allows up to 5 issues per 10 minutes.
func (r *RateLimiter) CheckIssueAttempt(ctx context.Context, phone string) (bool, error) {
	key := fmt.Sprintf("ratelimit:otp:%s", phone)

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment otp attempt: %w", err)
	}

	// Set expiration on first attempt
	if count == 1 {
		r.client.Expire(ctx, key, 10*time.Minute)
	}

	return count <= 5, nil
}

// ResetIssueAttempts clears the counter, called after a successful verify.
func (r *RateLimiter) ResetIssueAttempts(ctx context.Context, phone string) error {
	key := fmt.Sprintf("ratelimit:otp:%s", phone)
	return r.client.Del(ctx, key).Err()
}
