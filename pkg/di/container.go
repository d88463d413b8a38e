// Package di wires the caching and access-control components together.
package di

import (
	"github.com/sirupsen/logrus"

	"github.com/medtrain/go-records-core/cache"
	"github.com/medtrain/go-records-core/grants"
	"github.com/medtrain/go-records-core/querycache"
	"github.com/medtrain/go-records-core/records"
)

// Container holds singleton instances of the cache codec, the store, and
// the grant index, and provides the factory for cached resources.
type Container struct {
	config cache.Config
	codec  *cache.KeyCodec
	store  cache.Store
	grants *grants.Index
	log    logrus.FieldLogger
}

// New creates a container for one cache namespace. The store backend is
// selected from the configuration: Redis when configured, process memory
// otherwise.
func New(namespace string, cfg cache.Config, finder grants.Finder, log logrus.FieldLogger) (*Container, error) {
	store, err := cache.NewDefaultStore(cfg, log)
	if err != nil {
		return nil, err
	}

	return &Container{
		config: cfg,
		codec:  cache.NewKeyCodec(namespace),
		store:  store,
		grants: grants.NewIndex(finder),
		log:    log,
	}, nil
}

// NewWithDefaults creates a container using the default configuration.
func NewWithDefaults(namespace string, finder grants.Finder, log logrus.FieldLogger) (*Container, error) {
	return New(namespace, cache.DefaultConfig(), finder, log)
}

// Codec returns the singleton key codec.
func (c *Container) Codec() *cache.KeyCodec {
	return c.codec
}

// Store returns the singleton cache store.
func (c *Container) Store() cache.Store {
	return c.store
}

// Grants returns the singleton grant index.
func (c *Container) Grants() *grants.Index {
	return c.grants
}

// Config returns a copy of the cache configuration.
func (c *Container) Config() cache.Config {
	return c.config
}

// NewCachedResource wires a resource declaration and its engine into the
// container's codec and store. Methods cannot have type parameters, so this
// is a package-level function:
//
//	notes := di.NewCachedResource(container, noteResource, noteEngine)
func NewCachedResource[T any](c *Container, res querycache.Resource[T], engine records.Engine[T]) *querycache.Cached[T] {
	return querycache.New(res, c.codec, c.store, engine, c.log)
}
