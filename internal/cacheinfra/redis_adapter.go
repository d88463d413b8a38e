package cacheinfra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisConfig holds connection settings for the Redis backend.
type RedisConfig struct {
	Addr     string
	DB       int
	Password string
}

// RedisBackend caches entries in Redis. Redis can delete by glob pattern
// natively (SCAN MATCH + DEL), so the store uses it as the pattern-capable
// strategy, and per-key TTLs are honored exactly.
type RedisBackend struct {
	rdb *redis.Client
	log logrus.FieldLogger
}

// NewRedisBackend creates a Redis-backed cache adapter.
func NewRedisBackend(cfg RedisConfig, log logrus.FieldLogger) *RedisBackend {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		DB:       cfg.DB,
		Password: cfg.Password,
	})
	return &RedisBackend{rdb: rdb, log: NopLogger(log)}
}

// NewRedisBackendWithClient wraps an existing client. Used by tests and by
// callers that share one connection pool across subsystems.
func NewRedisBackendWithClient(rdb *redis.Client, log logrus.FieldLogger) *RedisBackend {
	return &RedisBackend{rdb: rdb, log: NopLogger(log)}
}

// Ping verifies connectivity.
func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.rdb.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (b *RedisBackend) Close() error {
	return b.rdb.Close()
}

// Get returns the entry for key, reporting a missing key as absent rather
// than an error.
func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := b.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set stores the entry with the given TTL.
func (b *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.rdb.Set(ctx, key, value, ttl).Err()
}

// Delete removes a single entry.
func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	return b.rdb.Del(ctx, key).Err()
}

// DeleteByPattern removes every key matching the glob pattern. SCAN is used
// instead of KEYS so a large keyspace does not block the server.
func (b *RedisBackend) DeleteByPattern(ctx context.Context, pattern string) error {
	iter := b.rdb.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}

	deleted, err := b.rdb.Del(ctx, keys...).Result()
	if err != nil {
		return err
	}
	b.log.WithFields(logrus.Fields{"pattern": pattern, "deleted": deleted}).Debug("cache pattern invalidation")
	return nil
}
