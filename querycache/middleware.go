package querycache

import (
	"context"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/medtrain/go-records-core/cache"
	"github.com/medtrain/go-records-core/internal/cacheinfra"
	"github.com/medtrain/go-records-core/records"
)

// DefaultPageSize bounds a list page when the resource declares none.
const DefaultPageSize = 25

// Resource declares how one record collection participates in caching: its
// key entity, which request parameters reach the key, whether results are
// user-sensitive, and which record attributes scope invalidation.
type Resource[T any] struct {
	// Entity names the collection inside cache keys.
	Entity string

	// AllowedParams restricts which query parameters enter the cache key.
	// Nil admits every parameter except the presentation set.
	AllowedParams []string

	// UserSensitive marks collections whose results differ per principal.
	// All personal-observation and request collections are user-sensitive;
	// shared reference data like the patient directory is not.
	UserSensitive bool

	// TTL overrides the store default when positive.
	TTL time.Duration

	// PageSize is the page length used when querying. Zero means
	// DefaultPageSize.
	PageSize int

	// Scope extracts the record attributes that decide which cached lists a
	// write invalidates, e.g. the parent patient id and the owning user id.
	// A nil Scope disables write invalidation for the resource.
	Scope func(record T) cache.Params
}

// ListRequest is the request surface the middleware caches on: the HTTP
// method, the parsed query parameters, and any routing path parameters.
type ListRequest struct {
	Method     string
	Query      map[string]string
	PathParams map[string]string
}

// Cached wraps a record collection's query engine with read caching and
// write-triggered invalidation.
type Cached[T any] struct {
	res    Resource[T]
	codec  *cache.KeyCodec
	store  cache.Store
	engine records.Engine[T]
	log    logrus.FieldLogger
}

// New builds the cached wrapper for one resource.
func New[T any](res Resource[T], codec *cache.KeyCodec, store cache.Store, engine records.Engine[T], log logrus.FieldLogger) *Cached[T] {
	return &Cached[T]{
		res:    res,
		codec:  codec,
		store:  store,
		engine: engine,
		log:    cacheinfra.NopLogger(log),
	}
}

// IsCachedRead reports whether a request method routes through the read
// cache. Everything except GET passes through untouched.
func IsCachedRead(method string) bool {
	return method == "GET"
}

// List serves a list request, from cache when possible. On a hit the stored
// payload is returned without touching the engine; on a miss the engine
// runs and a successful result is stored before being returned.
func (c *Cached[T]) List(ctx context.Context, req ListRequest) (records.ListResult[T], error) {
	var zero records.ListResult[T]

	if !IsCachedRead(req.Method) {
		return c.runList(ctx, req)
	}

	params := c.buildParams(ctx, req)
	key := c.codec.EncodeKey(c.res.Entity, cache.OpList, params)

	payload, ok, err := c.store.Get(ctx, key)
	if err != nil {
		return zero, errors.Wrap(err, "cache get")
	}
	if ok {
		var res records.ListResult[T]
		if derr := msgpack.Unmarshal(payload, &res); derr == nil {
			c.log.WithField("key", key).Debug("cache hit")
			return res, nil
		}
		// Undecodable entry: treat as a miss and overwrite below.
		c.log.WithField("key", key).Warn("discarding undecodable cache entry")
	}

	res, err := c.runList(ctx, req)
	if err != nil {
		return zero, err
	}

	payload, err = msgpack.Marshal(res)
	if err != nil {
		return zero, errors.Wrap(err, "encode cached payload")
	}
	if err := c.store.Set(ctx, key, payload, c.res.TTL); err != nil {
		return zero, errors.Wrap(err, "cache set")
	}
	return res, nil
}

func (c *Cached[T]) buildParams(ctx context.Context, req ListRequest) cache.Params {
	principalID := ""
	if c.res.UserSensitive {
		if p := PrincipalFromContext(ctx); p != nil {
			principalID = p.ID.String()
		}
	}
	spec := cache.BagSpec{Allowed: c.res.AllowedParams, UserSensitive: c.res.UserSensitive}
	return cache.BuildParams(spec, req.Query, req.PathParams, principalID)
}

// runList executes the underlying query, bypassing the cache.
func (c *Cached[T]) runList(ctx context.Context, req ListRequest) (records.ListResult[T], error) {
	q := records.ListQuery{
		Filters:  map[string]string{},
		Page:     1,
		PageSize: c.res.PageSize,
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}

	for name, v := range req.Query {
		if name == "page" {
			if page, err := strconv.Atoi(v); err == nil && page > 0 {
				q.Page = page
			}
			continue
		}
		if name == "format" || name == "callback" {
			continue
		}
		q.Filters[name] = v
	}
	for name, v := range req.PathParams {
		q.Filters[name] = v
	}

	recs, total, err := c.engine.List(ctx, q)
	if err != nil {
		return records.ListResult[T]{}, err
	}
	return records.ListResult[T]{Records: recs, Total: total}, nil
}
