package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/leefowlercu/cinemalens/internal/entities"
)

const redisKeyPrefix = "cinemalens:entities"

// RedisEntityCache caches entity records in Redis with a TTL.
type RedisEntityCache struct {
	client redis.UniversalClient
	config Config
}

// RedisOptions holds Redis connection settings.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisEntityCache connects to Redis and verifies the connection.
func NewRedisEntityCache(ctx context.Context, opts RedisOptions, config Config) (*RedisEntityCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s; %w", opts.Addr, err)
	}

	return NewRedisEntityCacheWithClient(client, config), nil
}

// NewRedisEntityCacheWithClient uses an existing client.
func NewRedisEntityCacheWithClient(client redis.UniversalClient, config Config) *RedisEntityCache {
	return &RedisEntityCache{client: client, config: config}
}

// redisKey namespaces key by prefix and version: cinemalens:entities:v1:<hash>.
func (c *RedisEntityCache) redisKey(key string) string {
	if idx := strings.Index(key, ":"); idx != -1 {
		key = key[idx+1:]
	}
	return fmt.Sprintf("%s:v%d:%s", redisKeyPrefix, c.config.Version, key)
}

// Get retrieves a cached record by key.
func (c *RedisEntityCache) Get(ctx context.Context, key string) (*entities.Entities, error) {
	data, err := c.client.Get(ctx, c.redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to read cache entry; %w", err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data; %w", err)
	}
	// Redis expires entries itself; the TTL check covers entries written without one.
	if err := e.check(c.config.Version, c.config.TTL, time.Now()); err != nil {
		return nil, err
	}
	return e.Entities, nil
}

// Set stores a record under key with the configured TTL.
func (c *RedisEntityCache) Set(ctx context.Context, key string, rec *entities.Entities) error {
	data, err := json.Marshal(entry{
		Version:  c.config.Version,
		CachedAt: time.Now().UTC(),
		Entities: rec,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal entry; %w", err)
	}

	if err := c.client.Set(ctx, c.redisKey(key), data, c.config.TTL).Err(); err != nil {
		return fmt.Errorf("failed to write cache entry; %w", err)
	}
	return nil
}

// Delete removes a cached entry.
func (c *RedisEntityCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete cache entry; %w", err)
	}
	return nil
}

// Clear removes every entry of the current version.
func (c *RedisEntityCache) Clear(ctx context.Context) error {
	pattern := fmt.Sprintf("%s:v%d:*", redisKeyPrefix, c.config.Version)

	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var batch []string
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == 100 {
			if err := c.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("failed to clear cache; %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys; %w", err)
	}
	if len(batch) > 0 {
		if err := c.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("failed to clear cache; %w", err)
		}
	}
	return nil
}

// Close closes the Redis client.
func (c *RedisEntityCache) Close() error {
	return c.client.Close()
}
