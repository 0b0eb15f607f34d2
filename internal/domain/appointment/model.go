// Package appointment implements booking between patients and doctors and
// the appointment lifecycle.
package appointment

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the move from s to next is allowed.
// Completed and cancelled are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusScheduled && (next == StatusCompleted || next == StatusCancelled)
}

// InvalidTransitionError rejects a disallowed status change.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move appointment from %s to %s", e.From, e.To)
}

// Appointment is a booking made by a patient with a doctor. The Patient and
// Doctor summaries are filled in on reads so clients need no extra lookups.
type Appointment struct {
	ID        uuid.UUID    `json:"id"`
	PatientID uuid.UUID    `json:"patient_id"`
	DoctorID  uuid.UUID    `json:"doctor_id"`
	Date      string       `json:"date"`
	Time      string       `json:"time"`
	Reason    string       `json:"reason,omitempty"`
	Status    Status       `json:"status"`
	Patient   *UserSummary `json:"patient,omitempty"`
	Doctor    *UserSummary `json:"doctor,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// UserSummary is the counterpart denormalized onto appointment reads.
type UserSummary struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	Image          string    `json:"image,omitempty"`
}

// CreateInput is the booking payload.
type CreateInput struct {
	DoctorID uuid.UUID `json:"doctor_id"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
	Reason   string    `json:"reason"`
}

// UpdateStatusInput carries the requested lifecycle move.
type UpdateStatusInput struct {
	Status Status `json:"status"`
}
