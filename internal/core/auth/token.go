package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/medicore/hospital-system/internal/core/domain"
)

const (
	defaultAccessTTL  = 24 * time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
)

var ErrConfiguration = errors.New("missing signing secret")

// ErrInvalidToken is the single unauthenticated outcome for every verification
// failure. Signature mismatch, expiry, malformed payload and algorithm
// substitution are deliberately indistinguishable to callers.
var ErrInvalidToken = errors.New("invalid token")

// Claims is the decoded identity assertion carried by an access token.
type Claims struct {
	Email string      `json:"email,omitempty"`
	Role  domain.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the token subject.
func (c *Claims) UserID() string {
	if c == nil {
		return ""
	}
	return c.Subject
}

// TokenIssuer signs and verifies session tokens with a single shared secret
// and a pinned signing algorithm (HS256).
type TokenIssuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewTokenIssuer builds a TokenIssuer. An empty secret is a configuration
// fault and must prevent startup.
func NewTokenIssuer(secret string, accessTTL, refreshTTL time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, ErrConfiguration
	}
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenIssuer{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}, nil
}

// GenerateToken signs an access token carrying {id, email, role}.
func (ti *TokenIssuer) GenerateToken(user *domain.User) (string, error) {
	if user == nil || user.ID == "" {
		return "", ErrInvalidArgument
	}
	now := time.Now()
	claims := &Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			// ID feeds the revocation list on logout.
			ID:        uuid.NewString(),
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ti.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
}

// GenerateRefreshToken signs a refresh token carrying only the user ID.
func (ti *TokenIssuer) GenerateRefreshToken(userID string) (string, error) {
	if userID == "" {
		return "", ErrInvalidArgument
	}
	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ti.refreshTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ti.secret)
}

// VerifyToken parses and validates an access token. Only HS256 signatures are
// accepted; every failure mode collapses into ErrInvalidToken.
func (ti *TokenIssuer) VerifyToken(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return ti.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
