package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"rentease/internal/pkg/config"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// SnapshotCache is a read-through JSON cache. Misses and Redis errors
// both fall through to the loader; a broken cache never breaks reads.
type SnapshotCache struct {
	client *redis.Client
}

func NewSnapshotCache(client *redis.Client) *SnapshotCache {
	return &SnapshotCache{client: client}
}

func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err.Error())
		}
	}
	return client, cleanup, nil
}

// GetOrLoad returns the cached value for key, or invokes load and
// caches the result with the given TTL.
func GetOrLoad[T any](ctx context.Context, c *SnapshotCache, key string, ttl time.Duration, load func(ctx context.Context) (*T, error)) (*T, error) {
	if c != nil && c.client != nil {
		data, err := c.client.Get(ctx, key).Bytes()
		if err == nil {
			var value T
			if err := json.Unmarshal(data, &value); err == nil {
				return &value, nil
			}
			// Corrupt entry, drop it and reload.
			c.client.Del(ctx, key)
		} else if !errors.Is(err, redis.Nil) {
			slog.Warn("cache read failed", "key", key, "error", err.Error())
		}
	}

	value, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if c != nil && c.client != nil {
		if data, err := json.Marshal(value); err == nil {
			if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
				slog.Warn("cache write failed", "key", key, "error", err.Error())
			}
		}
	}
	return value, nil
}

// Invalidate removes keys after a mutation to the backing rows.
func (c *SnapshotCache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("cache invalidation failed", "keys", keys, "error", err.Error())
	}
}

func (c *SnapshotCache) InvalidateListing(ctx context.Context, listingID uuid.UUID) {
	c.Invalidate(ctx, ListingKey(listingID.String()))
}

func (c *SnapshotCache) InvalidateUser(ctx context.Context, userID uuid.UUID) {
	c.Invalidate(ctx, UserKey(userID.String()))
}

func ListingKey(id string) string { return "listing:" + id }
func UserKey(id string) string    { return "user:" + id }
