package identity

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinixsphere/clinix/internal/platform/auth"
	"github.com/clinixsphere/clinix/pkg/envelope"
	"github.com/clinixsphere/clinix/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the auth and doctor-directory endpoints.
// authed carries the bearer middleware; public endpoints go on api.
func (h *Handler) RegisterRoutes(api, authed *echo.Group) {
	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)
	authed.GET("/auth/me", h.Me)

	// The directory is public; profile updates need a doctor session.
	api.GET("/doctors", h.ListDoctors)
	api.GET("/doctors/:id", h.GetDoctor)
	authed.PUT("/doctors", h.UpdateProfile, auth.RequireRole(auth.RoleDoctor))
}

func (h *Handler) Register(c echo.Context) error {
	var in RegisterInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res, err := h.svc.Register(c.Request().Context(), in)
	if err != nil {
		return mapError(err)
	}
	return envelope.Created(c, "Successfully created account", res)
}

func (h *Handler) Login(c echo.Context) error {
	var in LoginInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	res, err := h.svc.Login(c.Request().Context(), in)
	if err != nil {
		return mapError(err)
	}
	return envelope.OK(c, "Login successful", res)
}

func (h *Handler) Me(c echo.Context) error {
	ident := auth.IdentityFromContext(c.Request().Context())
	u, err := h.svc.Get(c.Request().Context(), ident.ID)
	if err != nil {
		return mapError(err)
	}
	return envelope.OK(c, "Profile fetched successfully", u)
}

func (h *Handler) ListDoctors(c echo.Context) error {
	p := pagination.FromContext(c)
	doctors, total, err := h.svc.ListDoctors(c.Request().Context(), c.QueryParam("specialization"), p.Limit, p.Offset)
	if err != nil {
		return mapError(err)
	}
	if doctors == nil {
		doctors = []*User{}
	}
	return envelope.OK(c, "Doctors fetched successfully", pagination.NewPage(doctors, total, p))
}

func (h *Handler) GetDoctor(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
	}

	doctor, err := h.svc.GetDoctor(c.Request().Context(), id)
	if errors.Is(err, ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
	}
	if err != nil {
		return mapError(err)
	}
	return envelope.OK(c, "Doctor fetched successfully", doctor)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	var in UpdateDoctorInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ident := auth.IdentityFromContext(c.Request().Context())
	doctor, err := h.svc.UpdateDoctorProfile(c.Request().Context(), ident.ID, in)
	if err != nil {
		return mapError(err)
	}
	return envelope.OK(c, "Profile updated successfully", doctor)
}

func mapError(err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	case errors.Is(err, ErrDuplicateEmail):
		return echo.NewHTTPError(http.StatusBadRequest, "User already exists")
	case errors.Is(err, ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	default:
		return err
	}
}
