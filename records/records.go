// Package records defines the clinical-training domain records and the
// query-engine contract the caching layer wraps. Persistence itself lives
// behind the Engine interface; this package only carries the shapes access
// control and cache scoping work against.
package records

import (
	"time"

	"github.com/google/uuid"
)

// Request lifecycle statuses.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Patient is a training-case patient. Patient data is shared reference
// data: every role reads the same directory, so its caches are not
// user-sensitive.
type Patient struct {
	ID          uuid.UUID `bun:"id,pk" json:"id"`
	FirstName   string    `bun:"first_name" json:"first_name"`
	LastName    string    `bun:"last_name" json:"last_name"`
	DateOfBirth time.Time `bun:"date_of_birth" json:"date_of_birth"`
	CreatedAt   time.Time `bun:"created_at" json:"created_at"`
}

// Note is a free-text clinical observation a student records against a
// patient.
type Note struct {
	ID        uuid.UUID `bun:"id,pk" json:"id"`
	PatientID uuid.UUID `bun:"patient_id" json:"patient_id"`
	UserID    uuid.UUID `bun:"user_id" json:"user_id"`
	Content   string    `bun:"content" json:"content"`
	CreatedAt time.Time `bun:"created_at" json:"created_at"`
}

// OwnerID implements access.Ownable.
func (n Note) OwnerID() (uuid.UUID, bool) { return n.UserID, true }

// BloodPressure is a vitals observation in mmHg.
type BloodPressure struct {
	ID        uuid.UUID `bun:"id,pk" json:"id"`
	PatientID uuid.UUID `bun:"patient_id" json:"patient_id"`
	UserID    uuid.UUID `bun:"user_id" json:"user_id"`
	Systolic  int       `bun:"systolic" json:"systolic"`
	Diastolic int       `bun:"diastolic" json:"diastolic"`
	CreatedAt time.Time `bun:"created_at" json:"created_at"`
}

// OwnerID implements access.Ownable.
func (bp BloodPressure) OwnerID() (uuid.UUID, bool) { return bp.UserID, true }

// HeartRate is a vitals observation in beats per minute.
type HeartRate struct {
	ID        uuid.UUID `bun:"id,pk" json:"id"`
	PatientID uuid.UUID `bun:"patient_id" json:"patient_id"`
	UserID    uuid.UUID `bun:"user_id" json:"user_id"`
	Rate      int       `bun:"rate" json:"rate"`
	CreatedAt time.Time `bun:"created_at" json:"created_at"`
}

// OwnerID implements access.Ownable.
func (hr HeartRate) OwnerID() (uuid.UUID, bool) { return hr.UserID, true }

// BodyTemperature is a vitals observation in degrees Celsius.
type BodyTemperature struct {
	ID          uuid.UUID `bun:"id,pk" json:"id"`
	PatientID   uuid.UUID `bun:"patient_id" json:"patient_id"`
	UserID      uuid.UUID `bun:"user_id" json:"user_id"`
	Temperature float64   `bun:"temperature" json:"temperature"`
	CreatedAt   time.Time `bun:"created_at" json:"created_at"`
}

// OwnerID implements access.Ownable.
func (bt BodyTemperature) OwnerID() (uuid.UUID, bool) { return bt.UserID, true }

// File is the metadata of a stored clinical document. The bytes themselves
// live in an external byte store; TotalPages is carried here so page
// requests can be bounds-checked without opening the document.
type File struct {
	ID                 uuid.UUID `bun:"id,pk" json:"id"`
	PatientID          uuid.UUID `bun:"patient_id" json:"patient_id"`
	DisplayName        string    `bun:"display_name" json:"display_name"`
	Category           string    `bun:"category" json:"category"`
	RequiresPagination bool      `bun:"requires_pagination" json:"requires_pagination"`
	TotalPages         int       `bun:"total_pages" json:"total_pages"`
	CreatedAt          time.Time `bun:"created_at" json:"created_at"`
}

// ImagingRequest is a student's request for an imaging study on a patient.
type ImagingRequest struct {
	ID        uuid.UUID `bun:"id,pk" json:"id"`
	PatientID uuid.UUID `bun:"patient_id" json:"patient_id"`
	UserID    uuid.UUID `bun:"user_id" json:"user_id"`
	TestType  string    `bun:"test_type" json:"test_type"`
	Status    string    `bun:"status" json:"status"`
	CreatedAt time.Time `bun:"created_at" json:"created_at"`
}

// OwnerID implements access.Ownable.
func (r ImagingRequest) OwnerID() (uuid.UUID, bool) { return r.UserID, true }

// BloodTestRequest is a student's request for a blood panel on a patient.
type BloodTestRequest struct {
	ID        uuid.UUID `bun:"id,pk" json:"id"`
	PatientID uuid.UUID `bun:"patient_id" json:"patient_id"`
	UserID    uuid.UUID `bun:"user_id" json:"user_id"`
	TestTypes []string  `bun:"test_types,array" json:"test_types"`
	Status    string    `bun:"status" json:"status"`
	CreatedAt time.Time `bun:"created_at" json:"created_at"`
}

// OwnerID implements access.Ownable.
func (r BloodTestRequest) OwnerID() (uuid.UUID, bool) { return r.UserID, true }
