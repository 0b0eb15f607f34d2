package identity

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinixsphere/clinix/internal/platform/auth"
)

// ErrInvalidCredentials is returned by Login for any unknown email or
// wrong password. Callers must not distinguish the two cases.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError marks a rejected input; handlers map it to 400.
type ValidationError struct{ msg string }

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

const minPasswordLen = 6

// Service implements registration, login and the doctor directory.
type Service struct {
	repo       Repository
	codec      *auth.TokenCodec
	bcryptCost int
}

func NewService(repo Repository, codec *auth.TokenCodec, bcryptCost int) *Service {
	return &Service{repo: repo, codec: codec, bcryptCost: bcryptCost}
}

// Register creates an account and signs a token for it. The role defaults
// to patient when omitted.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))

	if in.Name == "" {
		return nil, validationErrorf("name is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, validationErrorf("a valid email is required")
	}
	if len(in.Password) < minPasswordLen {
		return nil, validationErrorf("password must be at least %d characters", minPasswordLen)
	}
	if in.Role == "" {
		in.Role = auth.RolePatient
	}
	if !auth.ValidRole(in.Role) {
		return nil, validationErrorf("role must be doctor or patient")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	token, err := s.codec.Issue(u.ID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, User: u}, nil
}

// Login verifies the credentials and signs a fresh token. Unknown email
// and wrong password both come back as ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" || in.Password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.codec.Issue(u.ID, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, User: u}, nil
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListDoctors returns the public doctor directory, optionally filtered by
// specialization.
func (s *Service) ListDoctors(ctx context.Context, specialization string, limit, offset int) ([]*User, int, error) {
	return s.repo.ListDoctors(ctx, specialization, limit, offset)
}

// GetDoctor returns a doctor profile. Any id that does not belong to a
// doctor reads as not found.
func (s *Service) GetDoctor(ctx context.Context, id uuid.UUID) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u.Role != auth.RoleDoctor {
		return nil, ErrNotFound
	}
	return u, nil
}

// UpdateDoctorProfile applies non-empty fields from the input to the
// doctor owning the session.
func (s *Service) UpdateDoctorProfile(ctx context.Context, doctorID uuid.UUID, in UpdateDoctorInput) (*User, error) {
	u, err := s.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		u.Name = name
	}
	if email := strings.TrimSpace(strings.ToLower(in.Email)); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, validationErrorf("a valid email is required")
		}
		u.Email = email
	}
	if in.Specialization != "" {
		u.Specialization = in.Specialization
	}
	if in.Experience != "" {
		u.Experience = in.Experience
	}
	if in.Image != "" {
		u.Image = in.Image
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Resolve adapts the account store to the auth middleware.
func (s *Service) Resolve(ctx context.Context, id uuid.UUID) (*auth.Identity, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &auth.Identity{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}, nil
}
