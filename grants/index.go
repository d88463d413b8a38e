package grants

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/medtrain/go-records-core/access"
)

// Finder looks up a student's grants for a file, one origin at a time.
// Request-origin lookups must only return grants whose underlying request
// belongs to the student and has records.StatusCompleted status; the storage
// layer owns that filter. A missing grant is (nil, nil), not an error.
type Finder interface {
	ImagingGrant(ctx context.Context, fileID, userID uuid.UUID) (*Grant, error)
	BloodTestGrant(ctx context.Context, fileID, userID uuid.UUID) (*Grant, error)
	ManualGrant(ctx context.Context, fileID, userID uuid.UUID) (*Grant, error)
}

// Authorization is the outcome of a grant lookup: either unrestricted access
// or a concrete page range. A nil *Authorization means no access at all.
type Authorization struct {
	Unrestricted bool
	PageRange    string
}

// Index answers which page subset of a file a principal may request.
type Index struct {
	finder Finder
}

// NewIndex creates a grant index over the given finder.
func NewIndex(finder Finder) *Index {
	return &Index{finder: finder}
}

// AuthorizedRange resolves a principal's access to a file. Admins and
// instructors are unrestricted. Students get the page range of their first
// matching grant, probed in fixed precedence: completed imaging request,
// then completed blood-test request, then manual release. No grant means no
// access (nil, nil).
func (ix *Index) AuthorizedRange(ctx context.Context, fileID uuid.UUID, p *access.Principal) (*Authorization, error) {
	role, ok := access.ResolveRole(p)
	if !ok {
		return nil, nil
	}
	if role == access.RoleAdmin || role == access.RoleInstructor {
		return &Authorization{Unrestricted: true}, nil
	}

	lookups := []func(context.Context, uuid.UUID, uuid.UUID) (*Grant, error){
		ix.finder.ImagingGrant,
		ix.finder.BloodTestGrant,
		ix.finder.ManualGrant,
	}
	for _, lookup := range lookups {
		grant, err := lookup(ctx, fileID, p.ID)
		if err != nil {
			return nil, errors.Wrap(err, "grant lookup")
		}
		if grant != nil {
			return &Authorization{PageRange: grant.PageRange}, nil
		}
	}
	return nil, nil
}
