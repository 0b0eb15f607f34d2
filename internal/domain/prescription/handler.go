package prescription

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
	authed.POST("/prescriptions", h.Create, auth.RequireRole(auth.RoleDoctor))
	authed.GET("/prescriptions", h.List)
	authed.GET("/prescriptions/:appointmentId", h.GetByAppointment)
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	ident := auth.IdentityFromContext(c.Request().Context())
	p, err := h.svc.Create(c.Request().Context(), ident.ID, in)
	if err != nil {
		return mapError(err)
	}
	return envelope.Created(c, "Prescription created successfully", p)
}

func (h *Handler) List(c echo.Context) error {
	ident := auth.IdentityFromContext(c.Request().Context())
	p := pagination.FromContext(c)

	items, total, err := h.svc.ListFor(c.Request().Context(), ident, p.Limit, p.Offset)
	if err != nil {
		return mapError(err)
	}
	if items == nil {
		items = []*Prescription{}
	}
	return envelope.OK(c, "Prescriptions fetched successfully", pagination.NewPage(items, total, p))
}

func (h *Handler) GetByAppointment(c echo.Context) error {
	appointmentID, err := uuid.Parse(c.Param("appointmentId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Prescription not found")
	}

	ident := auth.IdentityFromContext(c.Request().Context())
	p, err := h.svc.GetByAppointment(c.Request().Context(), ident, appointmentID)
	if err != nil {
		return mapError(err)
	}
	return envelope.OK(c, "Prescription fetched successfully", p)
}

func mapError(err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return echo.NewHTTPError(http.StatusBadRequest, ve.Error())
	case errors.Is(err, ErrAppointmentNotEligible):
		return echo.NewHTTPError(http.StatusNotFound, "Completed appointment not found")
	case errors.Is(err, ErrDuplicate):
		return echo.NewHTTPError(http.StatusConflict, "Appointment already has a prescription")
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "Prescription not found")
	default:
		return err
	}
}
