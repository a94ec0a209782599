package token

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewService("test_secret", 30*time.Minute)

	raw, err := svc.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	subject, err := svc.Validate(raw)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if subject != "a@x.com" {
		t.Errorf("subject = %q, want %q", subject, "a@x.com")
	}
}

func TestValidateExpired(t *testing.T) {
	svc := NewService("test_secret", 30*time.Minute)

	issuedAt := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	raw, err := svc.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	// Still valid one minute before the TTL elapses.
	svc.now = func() time.Time { return issuedAt.Add(29 * time.Minute) }
	if _, err := svc.Validate(raw); err != nil {
		t.Fatalf("Validate() before expiry error = %v", err)
	}

	// Rejected once issuance time + TTL has passed.
	svc.now = func() time.Time { return issuedAt.Add(31 * time.Minute) }
	if _, err := svc.Validate(raw); !errors.Is(err, ErrExpired) {
		t.Errorf("Validate() after expiry error = %v, want ErrExpired", err)
	}
}

func TestValidateBadSignature(t *testing.T) {
	issuer := NewService("secret_a", 30*time.Minute)
	verifier := NewService("secret_b", 30*time.Minute)

	raw, err := issuer.Issue("a@x.com")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	if _, err := verifier.Validate(raw); !errors.Is(err, ErrBadSignature) {
		t.Errorf("Validate() error = %v, want ErrBadSignature", err)
	}
}

func TestValidateMalformed(t *testing.T) {
	svc := NewService("test_secret", 30*time.Minute)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Validate(raw); !errors.Is(err, ErrMalformed) {
			t.Errorf("Validate(%q) error = %v, want ErrMalformed", raw, err)
		}
	}
}
