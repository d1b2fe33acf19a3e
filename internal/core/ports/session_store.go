package ports

import (
	"context"
	"time"
)

// SessionStore tracks server-side session state: the refresh-token allow-list
// and the revocation list consulted for access tokens after logout.
type SessionStore interface {
	// SaveRefresh records a refresh token for a user with the given TTL.
	SaveRefresh(ctx context.Context, userID, refreshToken string, ttl time.Duration) error
	// RefreshExists reports whether the refresh token is still on the allow-list.
	RefreshExists(ctx context.Context, userID, refreshToken string) (bool, error)
	// DeleteRefresh drops every refresh token held for the user.
	DeleteRefresh(ctx context.Context, userID string) error
	// RevokeAccess marks an access token ID as revoked until its natural expiry.
	RevokeAccess(ctx context.Context, tokenID string, until time.Time) error
	// IsAccessRevoked reports whether an access token ID has been revoked.
	IsAccessRevoked(ctx context.Context, tokenID string) (bool, error)
}
