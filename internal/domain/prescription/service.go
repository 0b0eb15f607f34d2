package prescription

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/clinixsphere/clinix/internal/domain/appointment"
	"github.com/clinixsphere/clinix/internal/platform/auth"
)

// ErrAppointmentNotEligible rejects prescriptions against appointments the
// doctor does not own or that are not completed. Both cases read the same
// so callers cannot probe other doctors' schedules.
var ErrAppointmentNotEligible = errors.New("completed appointment not found")

// ValidationError marks a rejected input; handlers map it to 400.
type ValidationError struct{ msg string }

func (e *ValidationError) Error() string { return e.msg }

// AppointmentSource is the slice of the appointment service the
// prescription flow needs.
type AppointmentSource interface {
	GetForDoctor(ctx context.Context, doctorID, id uuid.UUID) (*appointment.Appointment, error)
}

// Service implements prescription creation and retrieval.
type Service struct {
	repo  Repository
	appts AppointmentSource
}

func NewService(repo Repository, appts AppointmentSource) *Service {
	return &Service{repo: repo, appts: appts}
}

// Create writes a prescription for a completed appointment owned by the
// calling doctor. The patient is taken from the appointment, never from
// the request.
func (s *Service) Create(ctx context.Context, doctorID uuid.UUID, in CreateInput) (*Prescription, error) {
	if in.AppointmentID == uuid.Nil {
		return nil, &ValidationError{msg: "appointment_id is required"}
	}
	if len(in.Medicines) == 0 {
		return nil, &ValidationError{msg: "at least one medicine is required"}
	}
	for _, m := range in.Medicines {
		if m.Name == "" {
			return nil, &ValidationError{msg: "every medicine needs a name"}
		}
	}

	a, err := s.appts.GetForDoctor(ctx, doctorID, in.AppointmentID)
	if errors.Is(err, appointment.ErrNotFound) {
		return nil, ErrAppointmentNotEligible
	}
	if err != nil {
		return nil, err
	}
	if a.Status != appointment.StatusCompleted {
		return nil, ErrAppointmentNotEligible
	}

	p := &Prescription{
		AppointmentID: a.ID,
		PatientID:     a.PatientID,
		DoctorID:      doctorID,
		Symptoms:      in.Symptoms,
		Diagnosis:     in.Diagnosis,
		Medicines:     in.Medicines,
		Notes:         in.Notes,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListFor returns the caller's prescriptions: received for a patient,
// written for a doctor.
func (s *Service) ListFor(ctx context.Context, ident *auth.Identity, limit, offset int) ([]*Prescription, int, error) {
	if ident.Role == auth.RoleDoctor {
		return s.repo.ListByDoctor(ctx, ident.ID, limit, offset)
	}
	return s.repo.ListByPatient(ctx, ident.ID, limit, offset)
}

// GetByAppointment returns the prescription for an appointment the caller
// is a party to. Anyone else gets ErrNotFound, same as a missing record.
func (s *Service) GetByAppointment(ctx context.Context, ident *auth.Identity, appointmentID uuid.UUID) (*Prescription, error) {
	p, err := s.repo.GetByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if p.PatientID != ident.ID && p.DoctorID != ident.ID {
		return nil, ErrNotFound
	}
	return p, nil
}
