package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	ID    uuid.UUID
	Name  string
	Email string
	Role  string
}

// IdentityResolver looks up a live user account for a token subject. A token
// whose subject no longer resolves is rejected.
type IdentityResolver interface {
	Resolve(ctx context.Context, id uuid.UUID) (*Identity, error)
}

// Middleware validates the bearer token on every request and resolves its
// subject against the identity store before any handler runs. Missing,
// malformed, expired and stale-subject tokens are all rejected with the same
// 401 so a caller cannot distinguish the failure mode.
func Middleware(codec *TokenCodec, resolver IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, err := authenticate(c, codec, resolver)
			if err != nil {
				return err
			}

			ctx := context.WithValue(c.Request().Context(), identityKey, ident)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// OptionalMiddleware authenticates the caller when a bearer token is present
// but lets anonymous requests through. Routes that serve both public and
// authenticated traffic (the doctor directory) use this.
func OptionalMiddleware(codec *TokenCodec, resolver IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return next(c)
			}
			ident, err := authenticate(c, codec, resolver)
			if err != nil {
				return err
			}
			ctx := context.WithValue(c.Request().Context(), identityKey, ident)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func authenticate(c echo.Context, codec *TokenCodec, resolver IdentityResolver) (*Identity, error) {
	unauthorized := echo.NewHTTPError(http.StatusUnauthorized, "not authorized")

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, unauthorized
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, unauthorized
	}

	claims, err := codec.Parse(parts[1])
	if err != nil {
		return nil, unauthorized
	}

	subject, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, unauthorized
	}

	ident, err := resolver.Resolve(c.Request().Context(), subject)
	if err != nil || ident == nil {
		return nil, unauthorized
	}

	return ident, nil
}

// IdentityFromContext returns the authenticated caller, or nil for anonymous
// requests.
func IdentityFromContext(ctx context.Context) *Identity {
	ident, _ := ctx.Value(identityKey).(*Identity)
	return ident
}

// WithIdentity returns a context carrying the given identity. Used by tests
// and internal callers that bypass the HTTP middleware.
func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}
