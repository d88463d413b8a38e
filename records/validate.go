package records

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// Observation write validation. Rejected observations never reach the
// engine, so they never trigger cache invalidation either.

// Validate checks a note before persistence.
func (n Note) Validate() error {
	return validation.ValidateStruct(&n,
		validation.Field(&n.PatientID, validation.By(requiredID)),
		validation.Field(&n.UserID, validation.By(requiredID)),
		validation.Field(&n.Content, validation.Required),
	)
}

// Validate checks a blood pressure reading. Systolic below diastolic is
// physiologically impossible and rejected outright.
func (bp BloodPressure) Validate() error {
	if err := validation.ValidateStruct(&bp,
		validation.Field(&bp.PatientID, validation.By(requiredID)),
		validation.Field(&bp.UserID, validation.By(requiredID)),
		validation.Field(&bp.Systolic, validation.By(positiveReading)),
		validation.Field(&bp.Diastolic, validation.By(positiveReading)),
	); err != nil {
		return err
	}
	if bp.Systolic < bp.Diastolic {
		return validation.NewError("blood_pressure", "systolic pressure cannot be less than diastolic pressure")
	}
	return nil
}

// Validate checks a heart rate reading.
func (hr HeartRate) Validate() error {
	return validation.ValidateStruct(&hr,
		validation.Field(&hr.PatientID, validation.By(requiredID)),
		validation.Field(&hr.UserID, validation.By(requiredID)),
		validation.Field(&hr.Rate, validation.By(positiveReading)),
	)
}

// Validate checks a body temperature reading against the plausible clinical
// range.
func (bt BodyTemperature) Validate() error {
	return validation.ValidateStruct(&bt,
		validation.Field(&bt.PatientID, validation.By(requiredID)),
		validation.Field(&bt.UserID, validation.By(requiredID)),
		validation.Field(&bt.Temperature, validation.By(plausibleTemperature)),
	)
}

func requiredID(value any) error {
	id, _ := value.(uuid.UUID)
	if id == uuid.Nil {
		return validation.NewError("required_id", "must be a non-zero id")
	}
	return nil
}

// positiveReading rejects zero explicitly: threshold rules skip empty
// values, and an unset vitals field must not slip through as valid.
func positiveReading(value any) error {
	n, _ := value.(int)
	if n < 1 {
		return validation.NewError("positive_reading", "must be a positive value")
	}
	return nil
}

func plausibleTemperature(value any) error {
	t, _ := value.(float64)
	if t < 30.0 || t > 45.0 {
		return validation.NewError("temperature_range", "must be between 30 and 45 degrees Celsius")
	}
	return nil
}
