package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/medicore/hospital-system/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{
		ID:    "user_1",
		Email: "alice@example.com",
		Role:  domain.RoleDoctor,
	}
}

func TestNewTokenIssuer_MissingSecret(t *testing.T) {
	if _, err := NewTokenIssuer("", 0, 0); !errors.Is(err, ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestVerifyToken_RoundTrip(t *testing.T) {
	ti, err := NewTokenIssuer("secret", time.Hour, 0)
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}

	token, err := ti.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ti.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID() != "user_1" {
		t.Fatalf("unexpected subject: %s", claims.UserID())
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}
	if claims.Role != domain.RoleDoctor {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
}

func TestVerifyToken_Expired(t *testing.T) {
	ti, _ := NewTokenIssuer("secret", time.Nanosecond, 0)
	token, err := ti.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := ti.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	issuer, _ := NewTokenIssuer("secret-a", time.Hour, 0)
	verifier, _ := NewTokenIssuer("secret-b", time.Hour, 0)

	token, err := issuer.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := verifier.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestVerifyToken_RejectsOtherAlgorithms(t *testing.T) {
	ti, _ := NewTokenIssuer("secret", time.Hour, 0)

	// HS512 signed with the same secret must still be rejected.
	claims := &Claims{
		Role: domain.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user_1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := ti.VerifyToken(forged); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for HS512 token, got %v", err)
	}
}

func TestVerifyToken_Malformed(t *testing.T) {
	ti, _ := NewTokenIssuer("secret", time.Hour, 0)
	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := ti.VerifyToken(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestGenerateRefreshToken(t *testing.T) {
	ti, _ := NewTokenIssuer("secret", time.Hour, time.Hour)

	token, err := ti.GenerateRefreshToken("user_9")
	if err != nil {
		t.Fatalf("generate refresh: %v", err)
	}

	claims, err := ti.VerifyToken(token)
	if err != nil {
		t.Fatalf("verify refresh: %v", err)
	}
	if claims.UserID() != "user_9" {
		t.Fatalf("unexpected subject: %s", claims.UserID())
	}
	if claims.Email != "" || claims.Role != "" {
		t.Fatalf("refresh token must carry subject only, got %+v", claims)
	}

	if _, err := ti.GenerateRefreshToken(""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty user id, got %v", err)
	}
}
