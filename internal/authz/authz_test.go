package authz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/GoArmGo/StyleInspo/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func newManager(t *testing.T) *SessionManager {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	m, err := NewSessionManager("Admin@StyleInspo.com", "", string(hash), "jwt-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestLoginAndParse(t *testing.T) {
	m := newManager(t)

	token, expires, err := m.Login(" admin@styleinspo.com ", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Fatalf("expiry in the past: %v", expires)
	}

	p, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if p.Role != RoleAdmin || p.Subject != "admin@styleinspo.com" {
		t.Fatalf("principal = %+v", p)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	m := newManager(t)
	for _, c := range [][2]string{{"admin@styleinspo.com", "wrong"}, {"someone@else.com", "s3cret"}} {
		if _, _, err := m.Login(c[0], c[1]); !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("Login(%q) err = %v, want ErrUnauthorized", c[0], err)
		}
	}
}

func TestParseRejectsExpiredAndForeignTokens(t *testing.T) {
	m := newManager(t)
	token, _, err := m.Login("admin@styleinspo.com", "s3cret")
	if err != nil {
		t.Fatal(err)
	}

	m.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := m.Parse(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expired token err = %v", err)
	}

	other, err := NewSessionManager("admin@styleinspo.com", "s3cret", "", "other-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.Parse(token); !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("foreign token err = %v", err)
	}
}

func TestRequireAdmin(t *testing.T) {
	ctx := context.Background()
	if err := RequireAdmin(ctx); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("anonymous err = %v", err)
	}
	if err := RequireAdmin(WithPrincipal(ctx, Principal{Subject: "x", Role: "viewer"})); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("viewer err = %v", err)
	}
	if err := RequireAdmin(WithPrincipal(ctx, Principal{Subject: "a", Role: RoleAdmin})); err != nil {
		t.Fatalf("admin err = %v", err)
	}
	if err := RequireAdmin(System(ctx)); err != nil {
		t.Fatalf("system err = %v", err)
	}
}
