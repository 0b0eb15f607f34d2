package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinixsphere/clinix/internal/platform/auth"
)

type mockRepo struct {
	users map[uuid.UUID]*User
}

func newMockRepo() *mockRepo {
	return &mockRepo{users: make(map[uuid.UUID]*User)}
}

func (m *mockRepo) Create(_ context.Context, u *User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users[u.ID] = u
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, id uuid.UUID) (*User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return u, nil
}

func (m *mockRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) Update(_ context.Context, u *User) error {
	if _, ok := m.users[u.ID]; !ok {
		return ErrNotFound
	}
	m.users[u.ID] = u
	return nil
}

func (m *mockRepo) ListDoctors(_ context.Context, specialization string, limit, offset int) ([]*User, int, error) {
	var doctors []*User
	for _, u := range m.users {
		if u.Role != auth.RoleDoctor {
			continue
		}
		if specialization != "" && !strings.EqualFold(u.Specialization, specialization) {
			continue
		}
		doctors = append(doctors, u)
	}
	total := len(doctors)
	if offset > len(doctors) {
		offset = len(doctors)
	}
	doctors = doctors[offset:]
	if limit < len(doctors) {
		doctors = doctors[:limit]
	}
	return doctors, total, nil
}

func newTestService() (*Service, *mockRepo) {
	repo := newMockRepo()
	codec := auth.NewTokenCodec("test-secret", time.Hour)
	return NewService(repo, codec, bcrypt.MinCost), repo
}

func TestRegister(t *testing.T) {
	svc, _ := newTestService()

	res, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: "secret1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Token == "" {
		t.Error("expected a signed token")
	}
	if res.User.Role != auth.RolePatient {
		t.Errorf("expected role to default to patient, got %s", res.User.Role)
	}
	if res.User.PasswordHash == "secret1" {
		t.Error("expected password to be hashed")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	in := RegisterInput{Name: "Asha Rao", Email: "asha@example.com", Password: "secret1"}

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); err != ErrDuplicateEmail {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name string
		in   RegisterInput
	}{
		{"missing name", RegisterInput{Email: "a@example.com", Password: "secret1"}},
		{"bad email", RegisterInput{Name: "A", Email: "nope", Password: "secret1"}},
		{"short password", RegisterInput{Name: "A", Email: "a@example.com", Password: "hi"}},
		{"bad role", RegisterInput{Name: "A", Email: "a@example.com", Password: "secret1", Role: "admin"}},
	}
	for _, tc := range cases {
		_, err := svc.Register(context.Background(), tc.in)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("%s: expected ValidationError, got %v", tc.name, err)
		}
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Asha Rao", Email: "asha@example.com", Password: "secret1",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	res, err := svc.Login(context.Background(), LoginInput{Email: "Asha@Example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Token == "" || res.User.Email != "asha@example.com" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestLogin_UniformRejection(t *testing.T) {
	svc, _ := newTestService()
	if _, err := svc.Register(context.Background(), RegisterInput{
		Name: "Asha Rao", Email: "asha@example.com", Password: "secret1",
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Wrong password and unknown email must be indistinguishable.
	_, errWrongPass := svc.Login(context.Background(), LoginInput{Email: "asha@example.com", Password: "wrong12"})
	_, errNoUser := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "secret1"})

	if errWrongPass != ErrInvalidCredentials || errNoUser != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials for both, got %v and %v", errWrongPass, errNoUser)
	}
}

func TestGetDoctor_PatientReadsAsNotFound(t *testing.T) {
	svc, _ := newTestService()
	res, err := svc.Register(context.Background(), RegisterInput{
		Name: "Asha Rao", Email: "asha@example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.GetDoctor(context.Background(), res.User.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for a patient id, got %v", err)
	}
}

func TestUpdateDoctorProfile_EmptyMeansUnchanged(t *testing.T) {
	svc, _ := newTestService()
	res, err := svc.Register(context.Background(), RegisterInput{
		Name: "Dr. Bose", Email: "bose@example.com", Password: "secret1", Role: auth.RoleDoctor,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdateDoctorProfile(context.Background(), res.User.ID, UpdateDoctorInput{
		Specialization: "Cardiology",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Dr. Bose" {
		t.Errorf("expected name unchanged, got %q", updated.Name)
	}
	if updated.Specialization != "Cardiology" {
		t.Errorf("expected specialization updated, got %q", updated.Specialization)
	}
}

func TestListDoctors_FiltersBySpecialization(t *testing.T) {
	svc, _ := newTestService()
	for _, in := range []RegisterInput{
		{Name: "Dr. Bose", Email: "bose@example.com", Password: "secret1", Role: auth.RoleDoctor},
		{Name: "Dr. Iyer", Email: "iyer@example.com", Password: "secret1", Role: auth.RoleDoctor},
		{Name: "Asha Rao", Email: "asha@example.com", Password: "secret1"},
	} {
		if _, err := svc.Register(context.Background(), in); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	doctors, total, err := svc.ListDoctors(context.Background(), "", 20, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 2 || len(doctors) != 2 {
		t.Errorf("expected 2 doctors, got total=%d len=%d", total, len(doctors))
	}
}

func TestResolve(t *testing.T) {
	svc, _ := newTestService()
	res, err := svc.Register(context.Background(), RegisterInput{
		Name: "Asha Rao", Email: "asha@example.com", Password: "secret1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ident, err := svc.Resolve(context.Background(), res.User.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ident.Role != auth.RolePatient || ident.ID != res.User.ID {
		t.Errorf("unexpected identity %+v", ident)
	}

	if _, err := svc.Resolve(context.Background(), uuid.New()); err == nil {
		t.Error("expected error for unknown id")
	}
}
