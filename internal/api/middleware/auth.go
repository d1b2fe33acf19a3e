package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/medicore/hospital-system/internal/core/auth"
)

// Context keys populated by Auth for downstream handlers.
const (
	ClaimsKey = "claims"
	UserIDKey = "user_id"
	RoleKey   = "role"
)

// RevocationChecker reports whether an access token ID has been revoked.
type RevocationChecker interface {
	IsAccessRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Auth validates the bearer token and injects claims into the request
// context. Every verification failure maps to the same 401 so callers cannot
// probe which check failed. A revoked token (post-logout) is also a 401.
func Auth(verifier *auth.TokenIssuer, revocations RevocationChecker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing or invalid authorization header")
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			if revocations != nil && claims.ID != "" {
				revoked, err := revocations.IsAccessRevoked(c.Request().Context(), claims.ID)
				if err == nil && revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
			}

			c.Set(ClaimsKey, claims)
			c.Set(UserIDKey, claims.UserID())
			c.Set(RoleKey, claims.Role)

			return next(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
