package token

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	t.Parallel()

	svc := NewService([]byte("super-secret"), 24*time.Hour)

	tok, err := svc.Issue("user-123", "alice@campus.edu", "staff")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "user-123" {
		t.Fatalf("user id mismatch: got %q want %q", claims.UserID, "user-123")
	}
	if claims.Email != "alice@campus.edu" {
		t.Fatalf("email mismatch: got %q", claims.Email)
	}
	if claims.Role != "staff" {
		t.Fatalf("role mismatch: got %q", claims.Role)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	// A negative lifetime produces a token that is already expired.
	svc := NewService([]byte("secret"), -1*time.Second)

	tok, err := svc.Issue("u1", "u1@campus.edu", "student")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := svc.Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := NewService([]byte("right-secret"), time.Hour).Issue("u2", "u2@campus.edu", "student")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := NewService([]byte("wrong-secret"), time.Hour).Verify(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for bad signature, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	svc := NewService([]byte("k"), time.Hour)
	if _, err := svc.Verify("not.a.jwt"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken for malformed token, got %v", err)
	}
}
