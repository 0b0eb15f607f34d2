package appointment

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

func (h *Handler) RegisterRoutes(authed *echo.Group) {
	authed.POST("/appointments", h.Create, auth.RequireRole(auth.RolePatient))
	authed.GET("/appointments", h.List)
	authed.PATCH("/appointments/:id/status", h.UpdateStatus, auth.RequireRole(auth.RoleDoctor))
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ident := auth.IdentityFromContext(c.Request().Context())
	a, err := h.svc.Book(c.Request().Context(), ident.ID, in)
	if err != nil {
		return mapError(err)
	}
	return envelope.Created(c, "Appointment booked successfully", a)
}

func (h *Handler) List(c echo.Context) error {
	ident := auth.IdentityFromContext(c.Request().Context())
	p := pagination.FromContext(c)

	items, total, err := h.svc.ListFor(c.Request().Context(), ident, p.Limit, p.Offset)
	if err != nil {
		return mapError(err)
	}
	if items == nil {
		items = []*Appointment{}
	}
	return envelope.OK(c, "Appointments fetched successfully", pagination.NewPage(items, total, p))
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
	}

	var in UpdateStatusInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ident := auth.IdentityFromContext(c.Request().Context())
	a, err := h.svc.UpdateStatus(c.Request().Context(), ident.ID, id, in.Status)
	if err != nil {
		return mapError(err)
	}
	return envelope.OK(c, "Appointment status updated successfully", a)
}

func mapError(err error) error {
	var ve *ValidationError
	var te *InvalidTransitionError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	case errors.As(err, &te):
		return echo.NewHTTPError(http.StatusBadRequest, te.Error())
	case errors.Is(err, ErrDoctorNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Appointment not found")
	default:
		return err
	}
}
