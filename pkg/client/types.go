package client

import "time"

// User mirrors the account payloads returned by the API.
type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Specialization string    `json:"specialization,omitempty"`
	Experience     string    `json:"experience,omitempty"`
	Rating         float64   `json:"rating,omitempty"`
	Image          string    `json:"image,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Appointment mirrors the booking payloads returned by the API.
type Appointment struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	DoctorID  string    `json:"doctor_id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Reason    string    `json:"reason,omitempty"`
	Status    string    `json:"status"`
	Patient   *User     `json:"patient,omitempty"`
	Doctor    *User     `json:"doctor,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Medicine is one line item on a prescription.
type Medicine struct {
	Name     string `json:"name"`
	Dosage   string `json:"dosage,omitempty"`
	Duration string `json:"duration,omitempty"`
}

// Prescription mirrors the prescription payloads returned by the API.
type Prescription struct {
	ID            string     `json:"id"`
	AppointmentID string     `json:"appointment_id"`
	PatientID     string     `json:"patient_id"`
	DoctorID      string     `json:"doctor_id"`
	Symptoms      string     `json:"symptoms,omitempty"`
	Diagnosis     string     `json:"diagnosis,omitempty"`
	Medicines     []Medicine `json:"medicines"`
	Notes         string     `json:"notes,omitempty"`
	Patient       *User      `json:"patient,omitempty"`
	Doctor        *User      `json:"doctor,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// RegisterInput is the payload for Register.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// BookAppointmentInput is the payload for BookAppointment.
type BookAppointmentInput struct {
	DoctorID string `json:"doctor_id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Reason   string `json:"reason,omitempty"`
}

// CreatePrescriptionInput is the payload for CreatePrescription.
type CreatePrescriptionInput struct {
	AppointmentID string     `json:"appointment_id"`
	Symptoms      string     `json:"symptoms,omitempty"`
	Diagnosis     string     `json:"diagnosis,omitempty"`
	Medicines     []Medicine `json:"medicines"`
	Notes         string     `json:"notes,omitempty"`
}

// UpdateDoctorProfileInput carries profile changes; empty fields are left
// unchanged server-side.
type UpdateDoctorProfileInput struct {
	Name           string `json:"name,omitempty"`
	Email          string `json:"email,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Experience     string `json:"experience,omitempty"`
	Image          string `json:"image,omitempty"`
}

// Page is the paginated list shape used by list endpoints.
type Page[T any] struct {
	Items   []T  `json:"items"`
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// ListParams selects a page for list endpoints. The zero value uses the
// server defaults.
type ListParams struct {
	Limit  int
	Offset int
}
