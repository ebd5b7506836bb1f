package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueSetsSubjectAndExpiry(t *testing.T) {
	issuedAt := time.Date(2026, 1, 23, 10, 0, 0, 0, time.UTC)
	m := NewJWTManager("secret").WithClock(fixedClock(issuedAt))

	token, exp, err := m.Issue(SubjectFor(42))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if token == "" {
		t.Fatal("expected token")
	}
	if want := issuedAt.Add(24 * time.Hour); !exp.Equal(want) {
		t.Fatalf("exp = %v, want %v", exp, want)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.Subject != "42" {
		t.Fatalf("subject = %q, want 42", claims.Subject)
	}
	id, err := claims.UserID()
	if err != nil || id != 42 {
		t.Fatalf("UserID = (%d, %v), want (42, nil)", id, err)
	}
	if !claims.ExpiresAt.Time.Equal(issuedAt.Add(TokenValidity)) {
		t.Fatalf("exp claim = %v", claims.ExpiresAt.Time)
	}
}

func TestIssueIsDeterministicForFixedInputs(t *testing.T) {
	now := time.Date(2026, 1, 23, 10, 0, 0, 0, time.UTC)
	m := NewJWTManager("secret").WithClock(fixedClock(now))
	a, _, _ := m.Issue("7")
	b, _, _ := m.Issue("7")
	if a != b {
		t.Fatal("expected identical tokens for identical subject, time and secret")
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Date(2026, 1, 23, 10, 0, 0, 0, time.UTC)
	issuer := NewJWTManager("secret").WithClock(fixedClock(issuedAt))
	token, _, err := issuer.Issue("1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	later := issuer.WithClock(fixedClock(issuedAt.Add(TokenValidity + time.Minute)))
	if _, err := later.Parse(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseRejectsForeignSecret(t *testing.T) {
	token, _, err := NewJWTManager("secret-a").Issue("1")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := NewJWTManager("secret-b").Parse(token); err == nil {
		t.Fatal("expected signature failure")
	}
}

func TestParseRejectsUnsignedToken(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := NewJWTManager("secret").Parse(token); err == nil {
		t.Fatal("expected alg=none token to be rejected")
	}
}

func TestClaimsUserIDRejectsNonNumericSubject(t *testing.T) {
	for _, sub := range []string{"", "abc", "0", "-3"} {
		c := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: sub}}
		if _, err := c.UserID(); err == nil {
			t.Fatalf("subject %q: expected error", sub)
		}
	}
}
