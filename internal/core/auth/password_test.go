package auth

import (
	"errors"
	"testing"
)

func TestHashPassword_TooShort(t *testing.T) {
	for _, pw := range []string{"", "short", "1234567"} {
		if _, err := HashPassword(pw); !errors.Is(err, ErrWeakCredential) {
			t.Fatalf("password %q: expected ErrWeakCredential, got %v", pw, err)
		}
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if hash == "correct horse" {
		t.Fatalf("hash must not equal plaintext")
	}

	ok, err := ComparePassword("correct horse", hash)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected match against original password")
	}

	ok, err = ComparePassword("wrong horse!", hash)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if ok {
		t.Fatalf("expected mismatch against different password")
	}
}

func TestComparePassword_MissingArguments(t *testing.T) {
	if _, err := ComparePassword("", "hash"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty plaintext, got %v", err)
	}
	if _, err := ComparePassword("plaintext", ""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty hash, got %v", err)
	}
}
