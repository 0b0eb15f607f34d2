// Package prescription covers prescriptions written by doctors against
// completed appointments.
package prescription

import (
	"time"

	"github.com/google/uuid"
)

// Medicine is one line item on a prescription.
type Medicine struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage"`
	Duration string `json:"duration"`
}

// Party is a patient or doctor summary denormalized onto prescription
// reads.
type Party struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
}

// Prescription is the outcome record of a completed appointment. At most
// one exists per appointment.
type Prescription struct {
	ID            uuid.UUID  `json:"id"`
	AppointmentID uuid.UUID  `json:"appointment_id"`
	PatientID     uuid.UUID  `json:"patient_id"`
	DoctorID      uuid.UUID  `json:"doctor_id"`
	Symptoms      string     `json:"symptoms,omitempty"`
	Diagnosis     string     `json:"diagnosis,omitempty"`
	Medicines     []Medicine `json:"medicines"`
	Notes         string     `json:"notes,omitempty"`
	Patient       *Party     `json:"patient,omitempty"`
	Doctor        *Party     `json:"doctor,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CreateInput is the payload for writing a prescription.
type CreateInput struct {
	AppointmentID uuid.UUID  `json:"appointment_id"`
	Symptoms      string     `json:"symptoms"`
	Diagnosis     string     `json:"diagnosis"`
	Medicines     []Medicine `json:"medicines"`
	Notes         string     `json:"notes"`
}
