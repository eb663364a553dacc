package util

import (
	"strings"
	"testing"
)

func TestHashPasswordProducesVerifiableHash(t *testing.T) {
	hash, err := HashPassword("SuperSecret1!")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if hash == "SuperSecret1!" {
		t.Fatal("hash must not equal the plaintext password")
	}
	if !VerifyPassword("SuperSecret1!", hash) {
		t.Fatal("expected password to verify against its own hash")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyPasswordWrongPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if VerifyPassword("battery-staple", hash) {
		t.Fatal("expected mismatched password to fail verification")
	}
}

func TestVerifyPasswordEmptyInputs(t *testing.T) {
	if VerifyPassword("", "some-hash") {
		t.Fatal("empty password must not verify")
	}
	if VerifyPassword("password", "") {
		t.Fatal("empty hash must not verify")
	}
}

func TestHashPasswordSaltsEachHash(t *testing.T) {
	first, err := HashPassword("repeatable")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	second, err := HashPassword("repeatable")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if first == second {
		t.Fatal("expected two hashes of the same password to differ")
	}
}

func TestNewResetToken(t *testing.T) {
	raw, hashed, err := NewResetToken()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(raw) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(raw))
	}
	if strings.EqualFold(raw, hashed) {
		t.Fatal("hashed token must differ from the raw token")
	}
	if HashResetToken(raw) != hashed {
		t.Fatal("hashing the raw token must reproduce the stored hash")
	}

	other, _, err := NewResetToken()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if raw == other {
		t.Fatal("expected successive tokens to differ")
	}
}
