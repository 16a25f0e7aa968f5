package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang/snappy"
	"github.com/redis/go-redis/v9"
)

// Payload header bytes
const (
	encodingRaw    byte = 0x00
	encodingSnappy byte = 0x01
)

// RedisConfig holds Redis cache configuration
type RedisConfig struct {
	URL               string // redis://[:password@]host:port/db
	Prefix            string // Key prefix (default: "greenpulse:")
	CompressThreshold int    // Snappy-compress payloads of at least this many bytes; 0 compresses everything
}

// RedisCache stores entries in Redis with an encoding header byte
type RedisCache struct {
	client    *redis.Client
	prefix    string
	threshold int
}

// NewRedisCache connects to Redis and verifies the connection
func NewRedisCache(cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return newRedisCacheWithClient(client, cfg), nil
}

func newRedisCacheWithClient(client *redis.Client, cfg RedisConfig) *RedisCache {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "greenpulse:"
	}
	return &RedisCache{
		client:    client,
		prefix:    prefix,
		threshold: cfg.CompressThreshold,
	}
}

// Get fetches and decodes an entry
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return decodePayload(data)
}

// Set encodes and stores an entry for ttl
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, encodePayload(value, c.threshold), ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes an entry
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	return c.client.Unlink(ctx, c.prefix+key).Err()
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func encodePayload(value []byte, threshold int) []byte {
	if len(value) >= threshold && len(value) > 0 {
		compressed := snappy.Encode(nil, value)
		if len(compressed) < len(value) {
			return append([]byte{encodingSnappy}, compressed...)
		}
	}
	return append([]byte{encodingRaw}, value...)
}

func decodePayload(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cache payload has no header")
	}

	switch data[0] {
	case encodingRaw:
		return data[1:], nil
	case encodingSnappy:
		decoded, err := snappy.Decode(nil, data[1:])
		if err != nil {
			return nil, fmt.Errorf("snappy decompress failed: %w", err)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("unknown cache payload encoding 0x%02x", data[0])
	}
}
