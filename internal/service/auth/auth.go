// internal/service/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"fieldserve-backend/internal/domain/auth"
	"fieldserve-backend/internal/domain/employee"
	xerrors "fieldserve-backend/internal/pkg/errors"
	"fieldserve-backend/internal/pkg/jwt"
	"fieldserve-backend/internal/pkg/otp"
	"fieldserve-backend/internal/pkg/policy"
	"fieldserve-backend/internal/service/sms"
)

// EmployeeDirectory resolves login phone numbers to employees.
type EmployeeDirectory interface {
	FindByPhone(ctx context.Context, phone string) (*employee.Employee, error)
}

// CodeStore holds at most one live code per phone.
type CodeStore interface {
	Save(ctx context.Context, phone, code string) error
	Get(ctx context.Context, phone string) (string, error)
	Consume(ctx context.Context, phone string) (string, error)
}

// IssueLimiter throttles code issuance per phone.
type IssueLimiter interface {
	CheckIssueAttempt(ctx context.Context, phone string) (bool, error)
	ResetIssueAttempts(ctx context.Context, phone string) error
}

type AuthService struct {
	employees  EmployeeDirectory
	codes      CodeStore
	limiter    IssueLimiter
	jwtManager *jwt.Manager
	sender     sms.Sender
	logger     *zap.Logger
}

func NewAuthService(
	employees EmployeeDirectory,
	codes CodeStore,
	limiter IssueLimiter,
	jwtManager *jwt.Manager,
	sender sms.Sender,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		employees:  employees,
		codes:      codes,
		limiter:    limiter,
		jwtManager: jwtManager,
		sender:     sender,
		logger:     logger,
	}
}

// RequestOTP issues a one-time code for a registered phone number. The
// code travels out-of-band over SMS; the response never carries it. A new
// request overwrites any live code for the same phone.
func (s *AuthService) RequestOTP(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return xerrors.Wrap(xerrors.ErrInvalidInput, "phone number is required")
	}

	emp, err := s.employees.FindByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if emp.Status != employee.StatusActive {
		return xerrors.Wrap(xerrors.ErrForbidden, "employee is not active")
	}

	allowed, err := s.limiter.CheckIssueAttempt(ctx, phone)
	if err != nil {
		s.logger.Error("otp rate limiter error", zap.Error(err))
		return xerrors.ErrInternal
	}
	if !allowed {
		return xerrors.ErrRateLimited
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return err
	}
	if err := s.codes.Save(ctx, phone, code); err != nil {
		s.logger.Error("failed to store otp", zap.Error(err))
		return err
	}

	// Delivery failure is logged, not surfaced: the code is live and an
	// SMS retry path exists on the gateway side.
	message := fmt.Sprintf("Your verification code is %s. It expires in 3 minutes.", code)
	if err := s.sender.Send(ctx, phone, message); err != nil {
		s.logger.Error("failed to deliver otp",
			zap.String("phone", phone),
			zap.Error(err),
		)
	}

	s.logger.Info("otp issued", zap.String("phone", phone), zap.Int64("employee_id", emp.ID))
	return nil
}

// VerifyOTP checks a submitted code and mints a session token on match.
// The comparison is between trimmed strings, so leading zeros compare
// correctly. A matched code is consumed atomically; a second verify with
// the same code fails as expired.
func (s *AuthService) VerifyOTP(ctx context.Context, phone, code string) (*auth.LoginResponse, error) {
	phone = strings.TrimSpace(phone)
	code = strings.TrimSpace(code)
	if phone == "" || code == "" {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "phone number and code are required")
	}

	emp, err := s.employees.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	stored, err := s.codes.Get(ctx, phone)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(stored) != code {
		return nil, xerrors.ErrInvalidOTP
	}

	// Consume and re-compare: a concurrent issue may have overwritten the
	// code between the read and the delete.
	consumed, err := s.codes.Consume(ctx, phone)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(consumed) != code {
		return nil, xerrors.ErrOTPExpired
	}

	if err := s.limiter.ResetIssueAttempts(ctx, phone); err != nil {
		s.logger.Warn("failed to reset otp attempts", zap.Error(err))
	}

	token, jti, err := s.jwtManager.Generator.Generate(emp.ID, emp.FullName, emp.Role)
	if err != nil {
		s.logger.Error("failed to mint session token", zap.Error(err))
		return nil, xerrors.ErrInternal
	}

	s.logger.Info("employee logged in",
		zap.Int64("employee_id", emp.ID),
		zap.String("role", string(emp.Role)),
		zap.String("jti", jti),
	)

	return &auth.LoginResponse{
		EmployeeID:   emp.ID,
		FullName:     emp.FullName,
		Role:         emp.Role,
		LandingRoute: policy.DefaultLandingRoute(emp.Role),
		Token:        token,
	}, nil
}
