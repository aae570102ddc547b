// Package cache stores serialized values with a TTL, in process or in Redis.
package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"linkhub/internal/platform/config"
)

type Cache interface {
	// Get reports false on a miss or an expired entry.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// New picks the backend named by cfg.Driver. rdb is only used for "redis".
func New(cfg config.CacheConfig, rdb *redis.Client) Cache {
	if cfg.Driver == "redis" && rdb != nil {
		return NewRedis(rdb)
	}
	return NewMemory()
}
