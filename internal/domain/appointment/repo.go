package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no appointment matches the lookup. It
	// also covers appointments the caller is not allowed to see.
	ErrNotFound = errors.New("appointment not found")
	// ErrStale is returned when a status update lost a race with another
	// writer.
	ErrStale = errors.New("appointment was modified concurrently")
)

// Repository is the persistence boundary for appointments.
type Repository interface {
	Create(ctx context.Context, a *Appointment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	// ListByPatient returns the patient's bookings with doctor summaries
	// attached.
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	// ListByDoctor returns the doctor's schedule with patient summaries
	// attached.
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Appointment, int, error)
	// UpdateStatus moves id from one status to another. It fails with
	// ErrStale when the row is no longer in the from status.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to Status) error
}
