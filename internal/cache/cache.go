// Package cache stores encoded analysis reports keyed by dataset, horizon
// and series fingerprint.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/eskmag/greenpulse/internal/config"
)

// ErrCacheMiss is returned by Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

// Cache is a byte-oriented TTL cache
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New creates the cache selected by cfg.Type. It returns a nil Cache for
// "none" or an empty type.
func New(cfg config.CacheConfig) (Cache, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "none":
		return nil, nil
	case "memory":
		return NewMemoryCache(time.Minute), nil
	case "redis":
		c, err := NewRedisCache(RedisConfig{
			URL:               cfg.RedisURL,
			Prefix:            cfg.RedisPrefix,
			CompressThreshold: cfg.CompressThreshold,
		})
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported cache type: %s (supported: none, memory, redis)", cfg.Type)
	}
}
