// Package bunquery adapts a go-repository-bun repository to the records
// query-engine contract, translating list-request filter maps into select
// criteria.
package bunquery

import (
	"context"
	"sort"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"

	"github.com/medtrain/go-records-core/records"
)

// Repository is the subset of a go-repository-bun repository the engine
// drives. Any repository.Repository[T] satisfies it.
type Repository[T any] interface {
	List(ctx context.Context, criteria ...repository.SelectCriteria) ([]T, int, error)
	Create(ctx context.Context, record T, criteria ...repository.InsertCriteria) (T, error)
	Update(ctx context.Context, record T, criteria ...repository.UpdateCriteria) (T, error)
	Delete(ctx context.Context, record T) error
}

// Interface assertion to ensure Engine implements records.Engine.
var _ records.Engine[records.Note] = (*Engine[records.Note])(nil)

// Engine executes record queries through a bun repository.
type Engine[T any] struct {
	base Repository[T]
}

// New wraps a base repository.
func New[T any](base Repository[T]) *Engine[T] {
	return &Engine[T]{base: base}
}

// List applies equality filters and pagination as select criteria. Filters
// are applied in sorted column order so generated SQL is stable for
// identical queries.
func (e *Engine[T]) List(ctx context.Context, q records.ListQuery) ([]T, int, error) {
	columns := make([]string, 0, len(q.Filters))
	for column := range q.Filters {
		columns = append(columns, column)
	}
	sort.Strings(columns)

	criteria := make([]repository.SelectCriteria, 0, len(columns)+1)
	for _, column := range columns {
		column, value := column, q.Filters[column]
		criteria = append(criteria, func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Where("? = ?", bun.Ident(column), value)
		})
	}

	if q.PageSize > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		offset := (page - 1) * q.PageSize
		criteria = append(criteria, func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Limit(q.PageSize).Offset(offset)
		})
	}

	return e.base.List(ctx, criteria...)
}

// Create inserts a record.
func (e *Engine[T]) Create(ctx context.Context, record T) (T, error) {
	return e.base.Create(ctx, record)
}

// Update persists changes to a record.
func (e *Engine[T]) Update(ctx context.Context, record T) (T, error) {
	return e.base.Update(ctx, record)
}

// Delete removes a record.
func (e *Engine[T]) Delete(ctx context.Context, record T) error {
	return e.base.Delete(ctx, record)
}
