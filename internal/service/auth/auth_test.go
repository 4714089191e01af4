package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"fieldserve-backend/internal/domain/employee"
	xerrors "fieldserve-backend/internal/pkg/errors"
	"fieldserve-backend/internal/pkg/jwt"
	"fieldserve-backend/internal/pkg/policy"
)

type fakeDirectory struct {
	byPhone map[string]*employee.Employee
}

func (f fakeDirectory) FindByPhone(ctx context.Context, phone string) (*employee.Employee, error) {
	e, ok := f.byPhone[phone]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	return e, nil
}

// fakeCodeStore mirrors the single-code-per-phone semantics of the real
// store: last write wins and a consume removes the code.
type fakeCodeStore struct {
	codes   map[string]string
	saveErr error
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{codes: map[string]string{}}
}

func (f *fakeCodeStore) Save(ctx context.Context, phone, code string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.codes[phone] = code
	return nil
}

func (f *fakeCodeStore) Get(ctx context.Context, phone string) (string, error) {
	code, ok := f.codes[phone]
	if !ok {
		return "", xerrors.ErrOTPExpired
	}
	return code, nil
}

func (f *fakeCodeStore) Consume(ctx context.Context, phone string) (string, error) {
	code, ok := f.codes[phone]
	if !ok {
		return "", xerrors.ErrOTPExpired
	}
	delete(f.codes, phone)
	return code, nil
}

type fakeLimiter struct {
	allowed bool
	resets  []string
}

func (f *fakeLimiter) CheckIssueAttempt(ctx context.Context, phone string) (bool, error) {
	return f.allowed, nil
}

func (f *fakeLimiter) ResetIssueAttempts(ctx context.Context, phone string) error {
	f.resets = append(f.resets, phone)
	return nil
}

type fakeSender struct {
	sent []string
	err  error
}

func (f *fakeSender) Send(ctx context.Context, phone, message string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, phone)
	return nil
}

const testPhone = "+919900112233"

func activeEmployee() *employee.Employee {
	return &employee.Employee{
		ID:       7,
		FullName: "Jane Tech",
		Phone:    testPhone,
		Role:     policy.RoleTechnician,
		Status:   employee.StatusActive,
	}
}

func newTestAuthService(t *testing.T, dir fakeDirectory, codes *fakeCodeStore, limiter *fakeLimiter, sender *fakeSender) *AuthService {
	t.Helper()
	m, err := jwt.NewManager(jwt.Config{
		Secret:   "auth-test-secret",
		Issuer:   "fieldserve",
		Audience: "fieldserve-employees",
		TTL:      time.Hour,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return NewAuthService(dir, codes, limiter, m, sender, zap.NewNop())
}

func TestRequestOTPIssuesAndDelivers(t *testing.T) {
	codes := newFakeCodeStore()
	sender := &fakeSender{}
	svc := newTestAuthService(t,
		fakeDirectory{byPhone: map[string]*employee.Employee{testPhone: activeEmployee()}},
		codes, &fakeLimiter{allowed: true}, sender)

	if err := svc.RequestOTP(context.Background(), testPhone); err != nil {
		t.Fatalf("RequestOTP: %v", err)
	}
	code, ok := codes.codes[testPhone]
	if !ok {
		t.Fatal("no code stored")
	}
	if len(code) != 6 {
		t.Fatalf("code %q is not 6 digits", code)
	}
	if len(sender.sent) != 1 || sender.sent[0] != testPhone {
		t.Fatalf("sent = %v", sender.sent)
	}
}

func TestRequestOTPUnknownPhone(t *testing.T) {
	svc := newTestAuthService(t, fakeDirectory{byPhone: map[string]*employee.Employee{}},
		newFakeCodeStore(), &fakeLimiter{allowed: true}, &fakeSender{})

	if err := svc.RequestOTP(context.Background(), testPhone); !xerrors.Is(err, xerrors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRequestOTPInactiveEmployee(t *testing.T) {
	emp := activeEmployee()
	emp.Status = employee.StatusInactive
	svc := newTestAuthService(t, fakeDirectory{byPhone: map[string]*employee.Employee{testPhone: emp}},
		newFakeCodeStore(), &fakeLimiter{allowed: true}, &fakeSender{})

	if err := svc.RequestOTP(context.Background(), testPhone); !xerrors.Is(err, xerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequestOTPRateLimited(t *testing.T) {
	svc := newTestAuthService(t, fakeDirectory{byPhone: map[string]*employee.Employee{testPhone: activeEmployee()}},
		newFakeCodeStore(), &fakeLimiter{allowed: false}, &fakeSender{})

	if err := svc.RequestOTP(context.Background(), testPhone); !xerrors.Is(err, xerrors.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}

func TestRequestOTPDeliveryFailureIsNotFatal(t *testing.T) {
	codes := newFakeCodeStore()
	svc := newTestAuthService(t, fakeDirectory{byPhone: map[string]*employee.Employee{testPhone: activeEmployee()}},
		codes, &fakeLimiter{allowed: true}, &fakeSender{err: errors.New("gateway down")})

	if err := svc.RequestOTP(context.Background(), testPhone); err != nil {
		t.Fatalf("RequestOTP: %v", err)
	}
	if _, ok := codes.codes[testPhone]; !ok {
		t.Fatal("code must stay live even when delivery fails")
	}
}

func TestRequestOTPOverwritesPriorCode(t *testing.T) {
	codes := newFakeCodeStore()
	codes.codes[testPhone] = "111111"
	svc := newTestAuthService(t, fakeDirectory{byPhone: map[string]*employee.Employee{testPhone: activeEmployee()}},
		codes, &fakeLimiter{allowed: true}, &fakeSender{})

	if err := svc.RequestOTP(context.Background(), testPhone); err != nil {
		t.Fatalf("RequestOTP: %v", err)
	}
	if codes.codes[testPhone] == "111111" {
		t.Fatal("new issue must replace the prior code")
	}
}

func TestVerifyOTPSuccess(t *testing.T) {
	codes := newFakeCodeStore()
	codes.codes[testPhone] = "123456"
	limiter := &fakeLimiter{allowed: true}
	svc := newTestAuthService(t, fakeDirectory{byPhone: map[string]*employee.Employee{testPhone: activeEmployee()}},
		codes, limiter, &fakeSender{})

	result, err := svc.VerifyOTP(context.Background(), testPhone, "123456")
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if result.EmployeeID != 7 {
		t.Errorf("employee id = %d", result.EmployeeID)
	}
	if result.Role != policy.RoleTechnician {
		t.Errorf("role = %q", result.Role)
	}
	if result.LandingRoute != "/employee/workspace" {
		t.Errorf("landing route = %q", result.LandingRoute)
	}
	if result.Token == "" {
		t.Error("expected a session token")
	}
	if len(limiter.resets) != 1 {
		t.Errorf("limiter resets = %v", limiter.resets)
	}
}

func TestVerifyOTPWhitespaceTolerance(t *testing.T) {
	codes := newFakeCodeStore()
	codes.codes[testPhone] = " 043210 "
	svc := newTestAuthService(t, fakeDirectory{byPhone: map[string]*employee.Employee{testPhone: activeEmployee()}},
		codes, &fakeLimiter{allowed: true}, &fakeSender{})

	if _, err := svc.VerifyOTP(context.Background(), testPhone, " 043210 "); err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
}

func TestVerifyOTPMismatchLeavesCodeLive(t *testing.T) {
	codes := newFakeCodeStore()
	codes.codes[testPhone] = "123456"
	svc := newTestAuthService(t, fakeDirectory{byPhone: map[string]*employee.Employee{testPhone: activeEmployee()}},
		codes, &fakeLimiter{allowed: true}, &fakeSender{})

	if _, err := svc.VerifyOTP(context.Background(), testPhone, "654321"); !xerrors.Is(err, xerrors.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
	// A wrong guess must not burn the live code.
	if _, err := svc.VerifyOTP(context.Background(), testPhone, "123456"); err != nil {
		t.Fatalf("correct code after a wrong guess: %v", err)
	}
}

func TestVerifyOTPSingleUse(t *testing.T) {
	codes := newFakeCodeStore()
	codes.codes[testPhone] = "123456"
	svc := newTestAuthService(t, fakeDirectory{byPhone: map[string]*employee.Employee{testPhone: activeEmployee()}},
		codes, &fakeLimiter{allowed: true}, &fakeSender{})

	if _, err := svc.VerifyOTP(context.Background(), testPhone, "123456"); err != nil {
		t.Fatalf("first verify: %v", err)
	}
	if _, err := svc.VerifyOTP(context.Background(), testPhone, "123456"); !xerrors.Is(err, xerrors.ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired on reuse, got %v", err)
	}
}

func TestVerifyOTPNoLiveCode(t *testing.T) {
	svc := newTestAuthService(t, fakeDirectory{byPhone: map[string]*employee.Employee{testPhone: activeEmployee()}},
		newFakeCodeStore(), &fakeLimiter{allowed: true}, &fakeSender{})

	if _, err := svc.VerifyOTP(context.Background(), testPhone, "123456"); !xerrors.Is(err, xerrors.ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}
}

func TestVerifyOTPValidation(t *testing.T) {
	svc := newTestAuthService(t, fakeDirectory{}, newFakeCodeStore(), &fakeLimiter{allowed: true}, &fakeSender{})

	if _, err := svc.VerifyOTP(context.Background(), "", "123456"); !xerrors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty phone, got %v", err)
	}
	if _, err := svc.VerifyOTP(context.Background(), testPhone, "  "); !xerrors.Is(err, xerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty code, got %v", err)
	}
}
