package jwt

import (
	"testing"
	"time"

	xerrors "fieldserve-backend/internal/pkg/errors"
	"fieldserve-backend/internal/pkg/policy"
)

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		Secret:   "test-secret",
		Issuer:   "fieldserve",
		Audience: "fieldserve-employees",
		TTL:      ttl,
	})
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func TestGenerateVerifyRoundTrip(t *testing.T) {
	m := newTestManager(t, time.Hour)

	token, jti, err := m.Generator.Generate(42, "Jane Tech", policy.RoleTechnician)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if jti == "" {
		t.Fatal("expected a non-empty token id")
	}

	claims, err := m.Verifier.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.EmployeeID != 42 {
		t.Errorf("employee id = %d, want 42", claims.EmployeeID)
	}
	if claims.FullName != "Jane Tech" {
		t.Errorf("full name = %q", claims.FullName)
	}
	if claims.Role != policy.RoleTechnician {
		t.Errorf("role = %q", claims.Role)
	}
	if claims.ID != jti {
		t.Errorf("jti = %q, want %q", claims.ID, jti)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	// Expired tokens get TTL explicitly negative; NewManager would
	// substitute the default for a zero TTL.
	m := newTestManager(t, time.Hour)
	m.Generator.Ttl = -time.Minute

	token, _, err := m.Generator.Generate(1, "Old Session", policy.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := m.Verifier.Verify(token); !xerrors.Is(err, xerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	m := newTestManager(t, time.Hour)
	token, _, err := m.Generator.Generate(1, "A", policy.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if _, err := m.Verifier.Verify(token + "x"); !xerrors.Is(err, xerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for tampered token, got %v", err)
	}
	if _, err := m.Verifier.Verify("not-a-token"); !xerrors.Is(err, xerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	m := newTestManager(t, time.Hour)
	token, _, err := m.Generator.Generate(1, "A", policy.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	other := NewVerifier([]byte("different-secret"), "fieldserve", "fieldserve-employees")
	if _, err := other.Verify(token); !xerrors.Is(err, xerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerifyWrongAudience(t *testing.T) {
	m := newTestManager(t, time.Hour)
	token, _, err := m.Generator.Generate(1, "A", policy.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	other := NewVerifier([]byte("test-secret"), "fieldserve", "another-audience")
	if _, err := other.Verify(token); !xerrors.Is(err, xerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong audience, got %v", err)
	}
}

func TestNewManagerRequiresSecret(t *testing.T) {
	if _, err := NewManager(Config{}); !xerrors.Is(err, xerrors.ErrConfig) {
		t.Fatalf("expected ErrConfig, got %v", err)
	}
}
