package cacheinfra

import (
	"context"
	"io"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
	"github.com/viccon/sturdyc"
)

// MemoryConfig holds the configuration for the in-process sturdyc backend.
type MemoryConfig struct {
	// Capacity defines the maximum number of entries the cache can store.
	Capacity int

	// NumShards determines the number of cache shards for concurrent
	// access. Higher values improve concurrency at some memory cost.
	NumShards int

	// TTL is the time-to-live applied to entries. sturdyc TTLs are
	// client-wide, so this backend cannot honor a different TTL per key;
	// expiry is absolute from insertion.
	TTL time.Duration

	// EvictionPercentage specifies what percentage of entries to evict
	// when the cache reaches capacity. Must be between 1-100.
	EvictionPercentage int

	// EvictionInterval sets how often expired entries are collected.
	// Zero uses the sturdyc default.
	EvictionInterval time.Duration
}

// DefaultMemoryConfig returns a MemoryConfig with sensible defaults.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Capacity:           10000,
		NumShards:          256,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
	}
}

// Validate checks if the configuration values are valid.
func (c MemoryConfig) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// MemoryBackend caches entries in process memory via sturdyc. It has no
// native pattern deletion; instead it tracks the keys it has written in a
// concurrent registry and exposes them through ScanKeys, so the store falls
// back to full-scan invalidation.
type MemoryBackend struct {
	client *sturdyc.Client[[]byte]
	keys   *xsync.MapOf[string, struct{}]
	log    logrus.FieldLogger
}

// NewMemoryBackend creates a sturdyc-backed cache adapter.
func NewMemoryBackend(cfg MemoryConfig, log logrus.FieldLogger) (*MemoryBackend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var opts []sturdyc.Option
	if cfg.EvictionInterval > 0 {
		opts = append(opts, sturdyc.WithEvictionInterval(cfg.EvictionInterval))
	}

	client := sturdyc.New[[]byte](cfg.Capacity, cfg.NumShards, cfg.TTL, cfg.EvictionPercentage, opts...)

	return &MemoryBackend{
		client: client,
		keys:   xsync.NewMapOf[string, struct{}](),
		log:    NopLogger(log),
	}, nil
}

// Get returns the entry for key. Expired entries read as absent; the key
// registry is pruned lazily when that happens.
func (b *MemoryBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, ok := b.client.Get(key)
	if !ok {
		b.keys.Delete(key)
		return nil, false, nil
	}
	return value, true, nil
}

// Set stores the entry and registers its key for later invalidation scans.
// The per-call TTL is advisory here: expiry follows the client-wide TTL.
func (b *MemoryBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	b.client.Set(key, value)
	b.keys.Store(key, struct{}{})
	return nil
}

// Delete removes the entry and its registry record.
func (b *MemoryBackend) Delete(ctx context.Context, key string) error {
	b.client.Delete(key)
	b.keys.Delete(key)
	return nil
}

// ScanKeys enumerates every key this backend has written and not yet
// deleted. The registry may still name expired entries; deleting those is
// harmless.
func (b *MemoryBackend) ScanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	b.keys.Range(func(key string, _ struct{}) bool {
		keys = append(keys, key)
		return true
	})
	return keys, nil
}

// NopLogger returns log unchanged, or a discarding logger when log is nil.
func NopLogger(log logrus.FieldLogger) logrus.FieldLogger {
	if log != nil {
		return log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
