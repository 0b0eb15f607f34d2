// Package identity covers accounts for the two user roles, registration
// and login, and the public doctor directory.
package identity

import (
	"time"

	"github.com/google/uuid"
)

// User is a platform account. Doctors carry the profile fields; for
// patients they stay empty.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	Role           string    `json:"role"`
	Specialization string    `json:"specialization,omitempty"`
	Experience     string    `json:"experience,omitempty"`
	Rating         float64   `json:"rating,omitempty"`
	Image          string    `json:"image,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RegisterInput is the payload for account creation.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginInput is the payload for authentication.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateDoctorInput carries profile changes. Empty fields are left
// unchanged.
type UpdateDoctorInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Specialization string `json:"specialization"`
	Experience     string `json:"experience"`
	Image          string `json:"image"`
}

// AuthResult is returned by Register and Login: the account plus a signed
// bearer token.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
