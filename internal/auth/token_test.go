package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func testIdentity() domain.Identity {
	return domain.Identity{
		ID:    "user-1",
		Email: "ada@example.com",
		Name:  "Ada",
		Role:  domain.RoleUser,
	}
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, expiresAt, err := tm.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expected future expiry, got %v", expiresAt)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	identity := claims.Identity()
	if identity != testIdentity() {
		t.Fatalf("claims do not round-trip: %+v", identity)
	}
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, _, err := tm.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", token)
	}
	prefix := "AAAA"
	if strings.HasPrefix(parts[2], prefix) {
		prefix = "BBBB"
	}
	tampered := parts[0] + "." + parts[1] + "." + prefix + parts[2][4:]
	if _, err := tm.Verify(tampered); err == nil {
		t.Fatalf("tampered token was accepted")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", time.Hour)
	verifier := NewTokenManager("secret-b", time.Hour)

	token, _, err := issuer.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Fatalf("token signed with another secret was accepted")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Millisecond)

	token, _, err := tm.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := tm.Verify(token); err == nil {
		t.Fatalf("expired token was accepted")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	if _, err := tm.Verify("not-a-token"); err == nil {
		t.Fatalf("garbage token was accepted")
	}
}

func TestDefaultTTLIsSevenDays(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)

	_, expiresAt, err := tm.Issue(testIdentity())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	want := time.Now().Add(7 * 24 * time.Hour)
	if diff := expiresAt.Sub(want); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("expected ~7 day expiry, got %v", expiresAt)
	}
}
