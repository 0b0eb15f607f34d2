// Package client is a Go client for the Clinix Sphere API. Authentication
// state lives in an explicit Session rather than process-wide storage, so
// one process can drive several accounts at once.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Session is the authenticated state returned by Register and Login.
type Session struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// Client talks to a Clinix Sphere server. It is safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client

	mu      sync.RWMutex
	session *Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// WithSession starts the client with a previously saved session.
func WithSession(s *Session) Option {
	return func(c *Client) { c.session = s }
}

// New returns a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the current session, or nil when logged out.
func (c *Client) Session() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session
}

// Logout drops the session. It is purely client-side; bearer tokens are
// stateless and expire on their own.
func (c *Client) Logout() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

func (c *Client) setSession(s *Session) {
	c.mu.Lock()
	c.session = s
	c.mu.Unlock()
}

type wireEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// do sends one request and decodes the envelope into out (when non-nil).
// A 401 clears the session: the token is expired or the account is gone,
// so retrying with it is pointless.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s := c.Session(); s != nil {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env wireEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.Logout()
	}
	if !env.Success {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response data: %w", err)
		}
	}
	return nil
}

func listQuery(p ListParams) string {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Register creates an account and opens a session for it.
func (c *Client) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	var s Session
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", in, &s); err != nil {
		return nil, err
	}
	c.setSession(&s)
	return &s, nil
}

// Login authenticates and opens a session.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	var s Session
	in := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &s); err != nil {
		return nil, err
	}
	c.setSession(&s)
	return &s, nil
}

// Me returns the account behind the session.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListDoctors returns a page of the public doctor directory, optionally
// filtered by specialization.
func (c *Client) ListDoctors(ctx context.Context, specialization string, p ListParams) (*Page[User], error) {
	q := url.Values{}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Offset > 0 {
		q.Set("offset", strconv.Itoa(p.Offset))
	}
	if specialization != "" {
		q.Set("specialization", specialization)
	}
	path := "/api/doctors"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var page Page[User]
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetDoctor returns one doctor profile.
func (c *Client) GetDoctor(ctx context.Context, id string) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodGet, "/api/doctors/"+url.PathEscape(id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateDoctorProfile updates the calling doctor's profile.
func (c *Client) UpdateDoctorProfile(ctx context.Context, in UpdateDoctorProfileInput) (*User, error) {
	var u User
	if err := c.do(ctx, http.MethodPut, "/api/doctors", in, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// BookAppointment books an appointment for the calling patient.
func (c *Client) BookAppointment(ctx context.Context, in BookAppointmentInput) (*Appointment, error) {
	var a Appointment
	if err := c.do(ctx, http.MethodPost, "/api/appointments", in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListAppointments returns the caller's appointments.
func (c *Client) ListAppointments(ctx context.Context, p ListParams) (*Page[Appointment], error) {
	var page Page[Appointment]
	if err := c.do(ctx, http.MethodGet, "/api/appointments"+listQuery(p), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// UpdateAppointmentStatus moves one of the calling doctor's appointments
// to the given status.
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id, status string) (*Appointment, error) {
	var a Appointment
	in := map[string]string{"status": status}
	if err := c.do(ctx, http.MethodPatch, "/api/appointments/"+url.PathEscape(id)+"/status", in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreatePrescription writes a prescription as the calling doctor.
func (c *Client) CreatePrescription(ctx context.Context, in CreatePrescriptionInput) (*Prescription, error) {
	var p Prescription
	if err := c.do(ctx, http.MethodPost, "/api/prescriptions", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListPrescriptions returns the caller's prescriptions.
func (c *Client) ListPrescriptions(ctx context.Context, p ListParams) (*Page[Prescription], error) {
	var page Page[Prescription]
	if err := c.do(ctx, http.MethodGet, "/api/prescriptions"+listQuery(p), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// PrescriptionByAppointment returns the prescription for an appointment
// the caller is a party to.
func (c *Client) PrescriptionByAppointment(ctx context.Context, appointmentID string) (*Prescription, error) {
	var p Prescription
	if err := c.do(ctx, http.MethodGet, "/api/prescriptions/"+url.PathEscape(appointmentID), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
