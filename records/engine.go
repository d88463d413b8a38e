package records

import "context"

// ListQuery is the filter surface of one list request after request parsing:
// equality filters by column, plus pagination.
type ListQuery struct {
	Filters  map[string]string
	Page     int
	PageSize int
}

// ListResult wraps the page of records and the unpaginated total, the unit
// the cache serializes.
type ListResult[T any] struct {
	Records []T `json:"records" msgpack:"records"`
	Total   int `json:"total" msgpack:"total"`
}

// Engine executes queries and writes against the underlying storage. The
// caching layer treats it as opaque: it caches serialized list results and
// invalidates on successful writes, nothing more.
type Engine[T any] interface {
	List(ctx context.Context, q ListQuery) ([]T, int, error)
	Create(ctx context.Context, record T) (T, error)
	Update(ctx context.Context, record T) (T, error)
	Delete(ctx context.Context, record T) error
}
