package token

import (
	"strings"
	"testing"
	"time"

	"github.com/nexaa/auth-service/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssuer_IssueVerify_RoundTrip(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	signed, expiresAt, err := issuer.Issue("user-1", "alice", []string{domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected token, got empty")
	}

	claims, err := issuer.Verify(signed)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Subject != "user-1" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Username != "alice" {
		t.Fatalf("unexpected username: %s", claims.Username)
	}
	if len(claims.Roles) != 1 || claims.Roles[0] != domain.RoleUser {
		t.Fatalf("unexpected roles: %v", claims.Roles)
	}
	if !claims.ExpiresAt.Equal(expiresAt.Truncate(time.Second)) {
		t.Fatalf("expiry mismatch: claims %v vs issued %v", claims.ExpiresAt, expiresAt)
	}
}

func TestIssuer_ExpiryIsIssuedAtPlusTTL(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewIssuer("secret", 24*time.Hour)
	issuer.now = fixedClock(issued)

	_, expiresAt, err := issuer.Issue("user-1", "alice", []string{domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if !expiresAt.Equal(issued.Add(24 * time.Hour)) {
		t.Fatalf("expected expiry %v, got %v", issued.Add(24*time.Hour), expiresAt)
	}
}

func TestIssuer_Verify_TTLBoundary(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewIssuer("secret", 24*time.Hour)
	issuer.now = fixedClock(issued)

	signed, _, err := issuer.Issue("user-1", "alice", []string{domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	issuer.now = fixedClock(issued.Add(23*time.Hour + 59*time.Minute))
	if _, err := issuer.Verify(signed); err != nil {
		t.Fatalf("token should be valid at 23h59m: %v", err)
	}

	issuer.now = fixedClock(issued.Add(24*time.Hour + time.Minute))
	if _, err := issuer.Verify(signed); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid at 24h01m, got %v", err)
	}
}

func TestIssuer_Verify_TamperedSignature(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	signed, _, err := issuer.Issue("user-1", "alice", []string{domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	// Flip one bit in the signature segment.
	i := strings.LastIndex(signed, ".") + 1
	tampered := signed[:i] + flipBit(signed[i]) + signed[i+1:]

	if _, err := issuer.Verify(tampered); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for tampered signature, got %v", err)
	}
}

func flipBit(b byte) string {
	return string(b ^ 0x01)
}

func TestIssuer_Verify_WrongSecret(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)
	other := NewIssuer("another-secret", time.Hour)

	signed, _, err := issuer.Issue("user-1", "alice", []string{domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := other.Verify(signed); err != domain.ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
}

func TestIssuer_Verify_Malformed(t *testing.T) {
	issuer := NewIssuer("secret", time.Hour)

	for _, tok := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		if _, err := issuer.Verify(tok); err != domain.ErrTokenInvalid {
			t.Fatalf("expected ErrTokenInvalid for %q, got %v", tok, err)
		}
	}
}

func TestIssuer_DefaultTTL(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewIssuer("secret", 0)
	issuer.now = fixedClock(issued)

	_, expiresAt, err := issuer.Issue("user-1", "alice", []string{domain.RoleUser})
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if !expiresAt.Equal(issued.Add(24 * time.Hour)) {
		t.Fatalf("expected 24h default TTL, got expiry %v", expiresAt)
	}
}
