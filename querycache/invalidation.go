package querycache

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/medtrain/go-records-core/cache"
)

// Write path. Every successful create, update, and delete invalidates the list
// caches scoped by the record's declared attributes. Deletion captures the
// scope before the destructive call; afterwards the attributes are gone.

// Create runs the write and invalidates affected list caches.
func (c *Cached[T]) Create(ctx context.Context, record T) (T, error) {
	created, err := c.engine.Create(ctx, record)
	if err != nil {
		return created, err
	}
	return created, c.InvalidateOnWrite(ctx, created)
}

// Update runs the write and invalidates affected list caches.
func (c *Cached[T]) Update(ctx context.Context, record T) (T, error) {
	updated, err := c.engine.Update(ctx, record)
	if err != nil {
		return updated, err
	}
	return updated, c.InvalidateOnWrite(ctx, updated)
}

// Delete removes the record, invalidating from its pre-deletion attributes.
func (c *Cached[T]) Delete(ctx context.Context, record T) error {
	patterns := c.scopePatterns(record)
	if err := c.engine.Delete(ctx, record); err != nil {
		return err
	}
	return c.invalidatePatterns(ctx, patterns)
}

// InvalidateOnWrite clears the list caches a committed write affects. It is
// exposed for write paths that bypass this wrapper's engine, e.g. bulk
// imports. Resources without a scope declaration no-op.
func (c *Cached[T]) InvalidateOnWrite(ctx context.Context, record T) error {
	return c.invalidatePatterns(ctx, c.scopePatterns(record))
}

func (c *Cached[T]) scopePatterns(record T) []string {
	if c.res.Scope == nil {
		return nil
	}
	return c.codec.EncodeInvalidationPatterns(c.res.Entity, c.res.Scope(record))
}

func (c *Cached[T]) invalidatePatterns(ctx context.Context, patterns []string) error {
	if len(patterns) == 0 {
		return nil
	}
	if err := c.store.Invalidate(ctx, patterns...); err != nil {
		return errors.Wrap(err, "invalidate on write")
	}
	return nil
}

// InvalidateOnGrantChange clears the file list caches of the one student a
// grant change affects, for the grant's patient. Grant writes happen outside
// any cached resource wrapper, so this runs as a standalone hook after the
// grant (or its originating request) is created, updated, or deleted.
func InvalidateOnGrantChange(ctx context.Context, codec *cache.KeyCodec, store cache.Store, patientID, userID uuid.UUID) error {
	patterns := codec.EncodeInvalidationPatterns("files", cache.Params{
		"patient_id": patientID.String(),
		"user_id":    userID.String(),
	})
	if err := store.Invalidate(ctx, patterns...); err != nil {
		return errors.Wrap(err, "invalidate on grant change")
	}
	return nil
}
