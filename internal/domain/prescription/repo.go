package prescription

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no prescription matches the lookup or
	// the caller is not a party to it.
	ErrNotFound = errors.New("prescription not found")
	// ErrDuplicate is returned when the appointment already has a
	// prescription.
	ErrDuplicate = errors.New("appointment already has a prescription")
)

// Repository is the persistence boundary for prescriptions.
type Repository interface {
	Create(ctx context.Context, p *Prescription) error
	GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*Prescription, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, limit, offset int) ([]*Prescription, int, error)
	ListByDoctor(ctx context.Context, doctorID uuid.UUID, limit, offset int) ([]*Prescription, int, error)
}
