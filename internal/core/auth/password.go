package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is fixed so hashes stay comparable across deployments.
const bcryptCost = 12

// minPasswordLength is the shortest password accepted at registration.
const minPasswordLength = 8

var ErrWeakCredential = errors.New("password too weak")
var ErrInvalidArgument = errors.New("invalid argument")

// HashPassword returns a salted bcrypt hash of plaintext. Passwords shorter
// than minPasswordLength are rejected with ErrWeakCredential.
func HashPassword(plaintext string) (string, error) {
	if len(plaintext) < minPasswordLength {
		return "", ErrWeakCredential
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// ComparePassword reports whether plaintext matches the stored hash. Both
// arguments must be present; timing behaviour is delegated to bcrypt.
func ComparePassword(plaintext, hash string) (bool, error) {
	if plaintext == "" || hash == "" {
		return false, ErrInvalidArgument
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
