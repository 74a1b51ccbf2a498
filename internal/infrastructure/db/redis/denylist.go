package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist tracks revoked token ids (the jti claim) in Redis. Entries
// expire with the token itself, so the set stays bounded by the token TTL.
// Key format: denylist:jti:<token_id>
type TokenDenylist struct {
	client *redis.Client
}

// NewTokenDenylist creates a TokenDenylist wrapping the given Redis client.
func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

// IsRevoked reports whether the token id has been revoked.
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

// Revoke marks the token id as revoked for the remaining token lifetime.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, remaining time.Duration) error {
	if remaining <= 0 {
		return nil
	}
	return d.client.Set(ctx, d.key(tokenID), "1", remaining).Err()
}

func (d *TokenDenylist) key(tokenID string) string {
	return "denylist:jti:" + tokenID
}
