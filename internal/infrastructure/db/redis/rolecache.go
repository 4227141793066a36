package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/pathagar/bookshop-api/internal/core/ports"
)

const defaultRoleTTL = time.Minute

// RoleCache decorates a ports.RoleStore with a TTL'd read-through cache.
// Key format: role:<email>
//
// Redis failures degrade to pass-through: the guard must stay correct when
// the cache is down, so every cache error is logged and ignored. A cached
// role can outlive a deleted profile for at most the TTL; keep it short.
type RoleCache struct {
	store  ports.RoleStore
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRoleCache wraps store with a cache on client. A non-positive ttl falls
// back to the default.
func NewRoleCache(store ports.RoleStore, client *redis.Client, ttl time.Duration, log zerolog.Logger) *RoleCache {
	if ttl <= 0 {
		ttl = defaultRoleTTL
	}
	return &RoleCache{store: store, client: client, ttl: ttl, log: log}
}

func (c *RoleCache) RoleOf(ctx context.Context, email string) (string, error) {
	role, err := c.client.Get(ctx, c.key(email)).Result()
	if err == nil && role != "" {
		return role, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		c.log.Warn().Err(err).Str("email", email).Msg("role cache read failed, falling through")
	}

	role, err = c.store.RoleOf(ctx, email)
	if err != nil {
		return "", err
	}

	if setErr := c.client.Set(ctx, c.key(email), role, c.ttl).Err(); setErr != nil {
		c.log.Warn().Err(setErr).Str("email", email).Msg("role cache write failed")
	}
	return role, nil
}

// SetRole writes through to the store and invalidates the cached entry.
func (c *RoleCache) SetRole(ctx context.Context, email, role string) error {
	if err := c.store.SetRole(ctx, email, role); err != nil {
		return err
	}

	if err := c.client.Del(ctx, c.key(email)).Err(); err != nil {
		c.log.Warn().Err(err).Str("email", email).Msg("role cache invalidation failed")
	}
	return nil
}

// EvictRole drops the cached entry and forwards to the store. A failed cache
// delete is logged but not returned: the entry still expires with the TTL.
func (c *RoleCache) EvictRole(ctx context.Context, email string) error {
	if err := c.client.Del(ctx, c.key(email)).Err(); err != nil {
		c.log.Warn().Err(err).Str("email", email).Msg("role cache eviction failed")
	}
	return c.store.EvictRole(ctx, email)
}

func (c *RoleCache) key(email string) string {
	return fmt.Sprintf("role:%s", email)
}
