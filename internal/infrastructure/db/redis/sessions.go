package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps the refresh-token allow-list and the access-token
// revocation list in Redis. Keys carry TTLs so both lists self-expire.
//
// Key formats:
//
//	session:refresh:<user_id>  -> sha256 of the active refresh token
//	session:revoked:<token_id> -> "1", expiring at the token's natural expiry
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// SaveRefresh records the user's active refresh token. A user holds at most
// one refresh token; saving replaces any previous one.
func (s *SessionStore) SaveRefresh(ctx context.Context, userID, refreshToken string, ttl time.Duration) error {
	if err := s.client.Set(ctx, refreshKey(userID), hashToken(refreshToken), ttl).Err(); err != nil {
		return fmt.Errorf("save refresh: %w", err)
	}
	return nil
}

// RefreshExists reports whether the token is the user's active refresh token.
func (s *SessionStore) RefreshExists(ctx context.Context, userID, refreshToken string) (bool, error) {
	stored, err := s.client.Get(ctx, refreshKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("refresh lookup: %w", err)
	}
	return stored == hashToken(refreshToken), nil
}

// DeleteRefresh drops the user's refresh token.
func (s *SessionStore) DeleteRefresh(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, refreshKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete refresh: %w", err)
	}
	return nil
}

// RevokeAccess marks an access token ID as revoked until its natural expiry.
// Already-expired tokens need no entry.
func (s *SessionStore) RevokeAccess(ctx context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKey(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke access: %w", err)
	}
	return nil
}

// IsAccessRevoked reports whether an access token ID has been revoked.
func (s *SessionStore) IsAccessRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedKey(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

func refreshKey(userID string) string {
	return "session:refresh:" + userID
}

func revokedKey(tokenID string) string {
	return "session:revoked:" + tokenID
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
