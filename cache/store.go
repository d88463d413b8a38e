package cache

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// writeMarker splits the write key namespace from the read key namespace.
// An invalidation pattern of the form {ns}:{entity}:write:{param}:* must
// clear read-path keys stored under {ns}:{entity}:list:..., so the scan
// fallback truncates patterns at this marker before matching.
const writeMarker = ":write:"

// Backend is the raw key-value surface a cache adapter provides. Single-key
// operations rely on the backend's own atomicity; no locking happens above
// this interface.
type Backend interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// PatternDeleter is implemented by backends with native pattern deletion,
// e.g. Redis glob deletes.
type PatternDeleter interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// KeyScanner is implemented by backends that can enumerate live keys,
// enabling the full-scan invalidation fallback.
type KeyScanner interface {
	ScanKeys(ctx context.Context) ([]string, error)
}

// Store exposes get/set/invalidate over a Backend. Invalidation strategy is
// chosen once at construction by probing the backend's capabilities: native
// pattern deletion when available, full key scan otherwise.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Invalidate(ctx context.Context, patterns ...string) error
}

// ErrNoInvalidationSupport is returned by NewStore when the backend supports
// neither pattern deletion nor key scanning.
var ErrNoInvalidationSupport = errors.New("cache backend supports neither pattern deletion nor key scanning")

type store struct {
	backend    Backend
	patterns   PatternDeleter // nil when the backend cannot pattern-delete
	scanner    KeyScanner     // fallback, nil when patterns is set
	defaultTTL time.Duration
	log        logrus.FieldLogger
}

// NewStore wraps a backend in a Store, applying defaultTTL whenever a caller
// sets without a TTL. The invalidation capability probe happens here, once,
// not per call.
func NewStore(backend Backend, defaultTTL time.Duration, log logrus.FieldLogger) (Store, error) {
	s := &store{
		backend:    backend,
		defaultTTL: defaultTTL,
		log:        ensureLogger(log),
	}
	if s.defaultTTL <= 0 {
		s.defaultTTL = DefaultTTL
	}

	if pd, ok := backend.(PatternDeleter); ok {
		s.patterns = pd
	} else if ks, ok := backend.(KeyScanner); ok {
		s.scanner = ks
	} else {
		return nil, ErrNoInvalidationSupport
	}
	return s, nil
}

func (s *store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.backend.Get(ctx, key)
}

func (s *store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	return s.backend.Set(ctx, key, value, ttl)
}

func (s *store) Invalidate(ctx context.Context, patterns ...string) error {
	// Patterns are processed independently; a failure part way through
	// leaves earlier patterns cleared, which only costs hit rate.
	for _, pattern := range patterns {
		if s.patterns != nil {
			if err := s.patterns.DeleteByPattern(ctx, pattern); err != nil {
				return errors.Wrapf(err, "pattern delete %q", pattern)
			}
			continue
		}
		if err := s.scanInvalidate(ctx, pattern); err != nil {
			return errors.Wrapf(err, "scan invalidate %q", pattern)
		}
	}
	return nil
}

// scanInvalidate deletes every live key the pattern's prefix matches.
func (s *store) scanInvalidate(ctx context.Context, pattern string) error {
	prefix := invalidationPrefix(pattern)

	keys, err := s.scanner.ScanKeys(ctx)
	if err != nil {
		return err
	}

	deleted := 0
	for _, key := range keys {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		if err := s.backend.Delete(ctx, key); err != nil {
			return err
		}
		deleted++
	}
	s.log.WithFields(logrus.Fields{"pattern": pattern, "deleted": deleted}).Debug("cache scan invalidation")
	return nil
}

// invalidationPrefix reduces a pattern to the literal prefix used for
// matching: the trailing glob is stripped, and patterns addressing the write
// namespace are truncated at the marker so they catch the entity's read keys.
func invalidationPrefix(pattern string) string {
	prefix := strings.TrimRight(pattern, "*")
	if i := strings.Index(prefix, writeMarker); i >= 0 {
		prefix = prefix[:i]
	}
	return prefix
}

func ensureLogger(log logrus.FieldLogger) logrus.FieldLogger {
	if log != nil {
		return log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
