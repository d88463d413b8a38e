package cache

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/medtrain/go-records-core/internal/cacheinfra"
)

// DefaultTTL bounds the staleness of any cached entry. Entries expire this
// long after insertion; TTL is absolute, not sliding.
const DefaultTTL = 300 * time.Second

// Config exposes cache configuration for consumers of the cache package.
// When Redis is nil the store runs on the in-process memory backend.
type Config struct {
	DefaultTTL         time.Duration
	Capacity           int
	NumShards          int
	EvictionPercentage int
	Redis              *RedisConfig
}

// RedisConfig selects the pattern-capable Redis backend.
type RedisConfig struct {
	Addr     string
	DB       int
	Password string
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	mem := cacheinfra.DefaultMemoryConfig()
	return Config{
		DefaultTTL:         DefaultTTL,
		Capacity:           mem.Capacity,
		NumShards:          mem.NumShards,
		EvictionPercentage: mem.EvictionPercentage,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	if c.DefaultTTL <= 0 {
		return &cacheinfra.ConfigError{Field: "DefaultTTL", Message: "must be greater than 0"}
	}
	if c.Redis != nil {
		if c.Redis.Addr == "" {
			return &cacheinfra.ConfigError{Field: "Redis.Addr", Message: "must not be empty"}
		}
		return nil
	}
	return c.memoryConfig().Validate()
}

// NewDefaultStore constructs a Store from the configuration, selecting the
// Redis backend when configured and the memory backend otherwise.
func NewDefaultStore(cfg Config, log logrus.FieldLogger) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Redis != nil {
		backend := cacheinfra.NewRedisBackend(cacheinfra.RedisConfig{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			Password: cfg.Redis.Password,
		}, log)
		return NewStore(backend, cfg.DefaultTTL, log)
	}

	backend, err := cacheinfra.NewMemoryBackend(cfg.memoryConfig(), log)
	if err != nil {
		return nil, err
	}
	return NewStore(backend, cfg.DefaultTTL, log)
}

func (c Config) memoryConfig() cacheinfra.MemoryConfig {
	return cacheinfra.MemoryConfig{
		Capacity:           c.Capacity,
		NumShards:          c.NumShards,
		TTL:                c.DefaultTTL,
		EvictionPercentage: c.EvictionPercentage,
	}
}
