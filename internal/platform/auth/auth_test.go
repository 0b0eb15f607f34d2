package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type stubResolver struct {
	users map[uuid.UUID]*Identity
}

func (s *stubResolver) Resolve(_ context.Context, id uuid.UUID) (*Identity, error) {
	ident, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("not found")
	}
	return ident, nil
}

func newStubResolver(idents ...*Identity) *stubResolver {
	s := &stubResolver{users: make(map[uuid.UUID]*Identity)}
	for _, i := range idents {
		s.users[i.ID] = i
	}
	return s
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	tc := NewTokenCodec("test-secret", 24*time.Hour)
	id := uuid.New()

	token, err := tc.Issue(id, RoleDoctor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := tc.Parse(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.Subject != id.String() {
		t.Errorf("expected subject %s, got %s", id, claims.Subject)
	}
	if claims.Role != RoleDoctor {
		t.Errorf("expected role doctor, got %s", claims.Role)
	}
}

func TestTokenCodec_Expired(t *testing.T) {
	tc := NewTokenCodec("test-secret", -time.Minute)
	token, err := tc.Issue(uuid.New(), RolePatient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := tc.Parse(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestTokenCodec_WrongKey(t *testing.T) {
	tc := NewTokenCodec("test-secret", time.Hour)
	token, _ := tc.Issue(uuid.New(), RolePatient)

	other := NewTokenCodec("other-secret", time.Hour)
	if _, err := other.Parse(token); err == nil {
		t.Error("expected error for token signed with a different key")
	}
}

func invoke(mw echo.MiddlewareFunc, header string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := mw(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	return rec, h(c)
}

func TestMiddleware_MissingHeader(t *testing.T) {
	tc := NewTokenCodec("test-secret", time.Hour)
	mw := Middleware(tc, newStubResolver())

	_, err := invoke(mw, "")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestMiddleware_MalformedHeader(t *testing.T) {
	tc := NewTokenCodec("test-secret", time.Hour)
	mw := Middleware(tc, newStubResolver())

	for _, header := range []string{"garbage", "Basic abc", "Bearer"} {
		_, err := invoke(mw, header)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %v", header, err)
		}
	}
}

func TestMiddleware_ValidToken(t *testing.T) {
	tc := NewTokenCodec("test-secret", time.Hour)
	ident := &Identity{ID: uuid.New(), Name: "Dr. Bose", Role: RoleDoctor}
	mw := Middleware(tc, newStubResolver(ident))

	token, _ := tc.Issue(ident.ID, ident.Role)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *Identity
	h := mw(func(c echo.Context) error {
		got = IdentityFromContext(c.Request().Context())
		return c.String(http.StatusOK, "ok")
	})
	if err := h(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.ID != ident.ID {
		t.Error("expected identity on request context")
	}
}

func TestMiddleware_StaleSubjectRejected(t *testing.T) {
	tc := NewTokenCodec("test-secret", time.Hour)
	mw := Middleware(tc, newStubResolver()) // resolver knows no users

	token, _ := tc.Issue(uuid.New(), RolePatient)
	_, err := invoke(mw, "Bearer "+token)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unresolvable subject, got %v", err)
	}
}

func TestOptionalMiddleware_AnonymousPasses(t *testing.T) {
	tc := NewTokenCodec("test-secret", time.Hour)
	mw := OptionalMiddleware(tc, newStubResolver())

	rec, err := invoke(mw, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestOptionalMiddleware_BadTokenStillRejected(t *testing.T) {
	tc := NewTokenCodec("test-secret", time.Hour)
	mw := OptionalMiddleware(tc, newStubResolver())

	_, err := invoke(mw, "Bearer not-a-token")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	ctx := WithIdentity(context.Background(), &Identity{ID: uuid.New(), Role: RolePatient})
	c.SetRequest(c.Request().WithContext(ctx))

	h := RequireRole(RoleDoctor)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	err := h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusForbidden {
		t.Errorf("expected 403 for wrong role, got %v", err)
	}

	h = RequireRole(RolePatient)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	if err := h(c); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRequireRole_Anonymous(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := RequireRole(RoleDoctor)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	err := h(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for anonymous caller, got %v", err)
	}
}
