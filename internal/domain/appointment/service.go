package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/clinixsphere/clinix/internal/domain/identity"
	"github.com/clinixsphere/clinix/internal/platform/auth"
)

// ErrDoctorNotFound rejects a booking against an id that is not a doctor.
var ErrDoctorNotFound = errors.New("doctor not found")

// ValidationError marks a rejected input; handlers map it to 400.
type ValidationError struct{ msg string }

func (e *ValidationError) Error() string { return e.msg }

// DoctorDirectory is the slice of the identity service the booking flow
// needs.
type DoctorDirectory interface {
	GetDoctor(ctx context.Context, id uuid.UUID) (*identity.User, error)
}

// Service implements booking and the appointment lifecycle.
type Service struct {
	repo    Repository
	doctors DoctorDirectory
}

func NewService(repo Repository, doctors DoctorDirectory) *Service {
	return &Service{repo: repo, doctors: doctors}
}

// Book creates a scheduled appointment for the calling patient. The
// doctor id must reference a doctor account.
func (s *Service) Book(ctx context.Context, patientID uuid.UUID, in CreateInput) (*Appointment, error) {
	if in.DoctorID == uuid.Nil {
		return nil, &ValidationError{msg: "doctor_id is required"}
	}
	if in.Date == "" || in.Time == "" {
		return nil, &ValidationError{msg: "date and time are required"}
	}

	if _, err := s.doctors.GetDoctor(ctx, in.DoctorID); err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, fmt.Errorf("look up doctor: %w", err)
	}

	a := &Appointment{
		PatientID: patientID,
		DoctorID:  in.DoctorID,
		Date:      in.Date,
		Time:      in.Time,
		Reason:    in.Reason,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListFor returns the caller's appointments: bookings for a patient, the
// schedule for a doctor.
func (s *Service) ListFor(ctx context.Context, ident *auth.Identity, limit, offset int) ([]*Appointment, int, error) {
	if ident.Role == auth.RoleDoctor {
		return s.repo.ListByDoctor(ctx, ident.ID, limit, offset)
	}
	return s.repo.ListByPatient(ctx, ident.ID, limit, offset)
}

// UpdateStatus moves an appointment owned by the doctor to the next
// status. Appointments of other doctors read as not found.
func (s *Service) UpdateStatus(ctx context.Context, doctorID, id uuid.UUID, next Status) (*Appointment, error) {
	if !next.Valid() {
		return nil, &ValidationError{msg: fmt.Sprintf("unknown status %q", next)}
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.DoctorID != doctorID {
		return nil, ErrNotFound
	}
	if !a.Status.CanTransitionTo(next) {
		return nil, &InvalidTransitionError{From: a.Status, To: next}
	}

	if err := s.repo.UpdateStatus(ctx, id, a.Status, next); err != nil {
		if errors.Is(err, ErrStale) {
			return nil, &InvalidTransitionError{From: a.Status, To: next}
		}
		return nil, err
	}
	a.Status = next
	return a, nil
}

// GetForDoctor returns the appointment when it is owned by the doctor,
// ErrNotFound otherwise.
func (s *Service) GetForDoctor(ctx context.Context, doctorID, id uuid.UUID) (*Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a.DoctorID != doctorID {
		return nil, ErrNotFound
	}
	return a, nil
}
