// internal/pkg/otp/store.go
package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	xerrors "fieldserve-backend/internal/pkg/errors"
)

// CodeTTL is how long an issued code stays valid.
const CodeTTL = 180 * time.Second

// Store keeps one live code per phone number in Redis. A new code for the
// same phone overwrites the prior one (last-writer-wins); a verify racing
// that overwrite reads the new code and fails the string compare, which is
// the correct outcome.
type Store struct {
	client *redis.Client
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func codeKey(phone string) string {
	return "phone:" + phone
}

// Save persists a code for the phone with the standard TTL, replacing any
// prior code for that phone.
func (s *Store) Save(ctx context.Context, phone, code string) error {
	if err := s.client.Set(ctx, codeKey(phone), code, CodeTTL).Err(); err != nil {
		return xerrors.Wrap(xerrors.ErrUnavailable, fmt.Sprintf("failed to store otp: %v", err))
	}
	return nil
}

// Get reads the live code for the phone without consuming it. Returns
// ErrOTPExpired when no code exists (never issued, expired, or already
// consumed).
func (s *Store) Get(ctx context.Context, phone string) (string, error) {
	code, err := s.client.Get(ctx, codeKey(phone)).Result()
	if err == redis.Nil {
		return "", xerrors.ErrOTPExpired
	}
	if err != nil {
		return "", xerrors.Wrap(xerrors.ErrUnavailable, fmt.Sprintf("failed to read otp: %v", err))
	}
	return code, nil
}

// Consume atomically reads and deletes the stored code, making it
// single-use. Returns ErrOTPExpired when no code exists (never issued,
// expired, or already consumed).
func (s *Store) Consume(ctx context.Context, phone string) (string, error) {
	code, err := s.client.GetDel(ctx, codeKey(phone)).Result()
	if err == redis.Nil {
		return "", xerrors.ErrOTPExpired
	}
	if err != nil {
		return "", xerrors.Wrap(xerrors.ErrUnavailable, fmt.Sprintf("failed to read otp: %v", err))
	}
	return code, nil
}

// GenerateCode returns a uniformly random 6-digit code in
// [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
