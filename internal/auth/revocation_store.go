package auth

import (
	"context"
	"time"

	"heatshield/internal/cache"
)

const revokedTokenKeyPrefix = "revoked:access_token:"

// RevocationStore records access tokens that were logged out before expiry.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

// RedisRevocationStore keeps revoked token ids in Redis until the token
// would have expired anyway.
type RedisRevocationStore struct {
	cache *cache.Client
}

var _ RevocationStore = (*RedisRevocationStore)(nil)

// NewRevocationStore creates a Redis-backed revocation store.
func NewRevocationStore(cache *cache.Client) *RedisRevocationStore {
	return &RedisRevocationStore{cache: cache}
}

// Revoke marks tokenID as revoked for ttl.
func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return nil
	}
	return s.cache.Set(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked fails open: an unreachable Redis reports false.
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) bool {
	if tokenID == "" {
		return false
	}
	return s.cache.Exists(ctx, revokedTokenKeyPrefix+tokenID)
}
