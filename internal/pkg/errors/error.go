package xerrors

import (
	"errors"
	"fmt"
)

// Common reusable application errors
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized access")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidOTP   = errors.New("invalid otp")
	ErrOTPExpired   = errors.New("otp expired or not issued")
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrRateLimited  = errors.New("too many requests")
	ErrConflict     = errors.New("conflict: resource already exists")
	ErrConfig       = errors.New("missing or invalid configuration")
	ErrUnavailable  = errors.New("backing store unavailable")
	ErrInternal     = errors.New("internal server error")
)

// Wrap adds context to an error (similar to fmt.Errorf("%w")).
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is allows checking whether an error is a specific sentinel error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// MessageOrDefault returns err.Error() or a fallback message if err is nil.
func MessageOrDefault(err error, fallback string) string {
	if err != nil {
		return err.Error()
	}
	return fallback
}
