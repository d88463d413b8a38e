package grants

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Origin identifies where a grant came from.
type Origin string

const (
	OriginImaging   Origin = "imaging_request"
	OriginBloodTest Origin = "blood_test_request"
	OriginManual    Origin = "manual_release"
)

// Grant authorizes one student to view one file, in full or by page subset.
// Exactly one origin reference is set: the completed imaging request, the
// completed blood-test request, or the manual release target. Grants are
// deleted when their origin goes away; they are never orphaned.
type Grant struct {
	ID        uuid.UUID `bun:"id,pk" json:"id"`
	FileID    uuid.UUID `bun:"file_id" json:"file_id"`
	PageRange string    `bun:"page_range" json:"page_range"`

	ImagingRequestID   *uuid.UUID `bun:"imaging_request_id" json:"imaging_request_id,omitempty"`
	BloodTestRequestID *uuid.UUID `bun:"blood_test_request_id" json:"blood_test_request_id,omitempty"`
	ReleasedToUserID   *uuid.UUID `bun:"released_to_user_id" json:"released_to_user_id,omitempty"`
	ReleasedByID       *uuid.UUID `bun:"released_by_id" json:"released_by_id,omitempty"`

	CreatedAt time.Time `bun:"created_at" json:"created_at"`
}

// Origin reports which origin reference is set. ok is false when the grant
// is malformed (zero or multiple origins).
func (g Grant) Origin() (Origin, bool) {
	switch {
	case g.ImagingRequestID != nil && g.BloodTestRequestID == nil && g.ReleasedToUserID == nil:
		return OriginImaging, true
	case g.ImagingRequestID == nil && g.BloodTestRequestID != nil && g.ReleasedToUserID == nil:
		return OriginBloodTest, true
	case g.ImagingRequestID == nil && g.BloodTestRequestID == nil && g.ReleasedToUserID != nil:
		return OriginManual, true
	}
	return "", false
}

// Validate enforces grant integrity at write time: a target file, a
// parseable page range, and exactly one origin. A grant failing this never
// reaches storage.
func (g Grant) Validate() error {
	if err := validation.ValidateStruct(&g,
		validation.Field(&g.FileID, validation.By(requiredID)),
		validation.Field(&g.PageRange, validation.By(parseablePageRange)),
	); err != nil {
		return err
	}

	if _, ok := g.Origin(); !ok {
		return validation.NewError("grant_origin",
			"exactly one of imaging request, blood test request, or manual release must be set")
	}
	return nil
}

func requiredID(value any) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("required_id", "must be a non-zero id")
	}
	return nil
}

func parseablePageRange(value any) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if _, err := ParsePageRange(s); err != nil {
		return validation.NewError("page_range", "must be a comma-separated list of pages or start-end ranges")
	}
	return nil
}
