package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/buildhub/module-catalog/internal/core/domain"
)

const identityTTL = 5 * time.Minute

// IdentityCache caches the resolved identity per IdP subject, keyed by a
// SHA-256 digest so keys stay fixed-width regardless of subject format.
// It shortcuts the user store lookup only; credential verification always
// runs upstream. Entries expire quickly; a role change is visible after
// at most identityTTL.
type IdentityCache struct {
	client *redis.Client
}

// NewIdentityCache creates an IdentityCache wrapping the given Redis client.
func NewIdentityCache(client *redis.Client) *IdentityCache {
	return &IdentityCache{client: client}
}

// Get returns the cached identity for the subject, if present.
func (c *IdentityCache) Get(ctx context.Context, subject string) (*domain.Identity, bool, error) {
	raw, err := c.client.Get(ctx, c.key(subject)).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("identity cache get: %w", err)
	}

	var identity domain.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		// Treat a corrupt entry as a miss; it will be overwritten.
		return nil, false, nil
	}
	return &identity, true, nil
}

// Set stores the resolved identity for the subject (expires after identityTTL).
func (c *IdentityCache) Set(ctx context.Context, subject string, identity domain.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("identity cache set: %w", err)
	}
	return c.client.Set(ctx, c.key(subject), raw, identityTTL).Err()
}

func (c *IdentityCache) key(subject string) string {
	sum := sha256.Sum256([]byte(subject))
	return "identity:" + hex.EncodeToString(sum[:])
}
