package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssuerRoundTrip(t *testing.T) {
	issuer, err := NewIssuer("s3cret", "dev", time.Hour)
	if err != nil {
		t.Fatalf("NewIssuer: %v", err)
	}

	token, err := issuer.Sign(Claims{UserID: "user-1", Email: "jane@example.com", Name: "Jane Doe", IsAdmin: true})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-1" || !claims.IsAdmin || claims.Subject != "user-1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestIssuerRejectsExpiredAndForeignTokens(t *testing.T) {
	issuer, _ := NewIssuer("s3cret", "dev", time.Minute)
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return start }
	token, err := issuer.Sign(Claims{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	issuer.now = func() time.Time { return start.Add(2 * time.Minute) }
	if _, err := issuer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}

	other, _ := NewIssuer("other", "dev", time.Hour)
	foreign, _ := other.Sign(Claims{UserID: "user-2"})
	issuer.now = time.Now
	if _, err := issuer.Verify(foreign); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign token, got %v", err)
	}
}

func TestNewIssuerRequiresSecretInProduction(t *testing.T) {
	if _, err := NewIssuer("", "production", 0); err == nil {
		t.Fatal("expected error without secret in production")
	}
	issuer, err := NewIssuer("", "dev", 0)
	if err != nil {
		t.Fatalf("dev fallback: %v", err)
	}
	if issuer.TTL() != 7*24*time.Hour {
		t.Fatalf("expected default ttl of 7 days, got %s", issuer.TTL())
	}
}
