package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Account roles. Role is fixed at registration; no role-change operation exists.
const (
	RoleDoctor  = "doctor"
	RolePatient = "patient"
)

// ValidRole reports whether s is a known account role.
func ValidRole(s string) bool {
	return s == RoleDoctor || s == RolePatient
}

// RequireRole returns middleware that rejects callers whose role matches none
// of the given roles. It must run after Middleware.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident := IdentityFromContext(c.Request().Context())
			if ident == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
			}
			for _, required := range roles {
				if ident.Role == required {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}
