package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/cymbol-superstore/marketplace-api/internal/api/metrics"
	"github.com/cymbol-superstore/marketplace-api/internal/core/domain"
	"github.com/cymbol-superstore/marketplace-api/internal/core/ports"
)

const identityKey = "identity"

// Auth extracts the bearer token from the Authorization header, verifies it
// with authorizer and stores the resulting identity in the context. Every
// failure is reported as domain.ErrUnauthorized.
func Auth(authorizer ports.TokenAuthorizer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return domain.ErrUnauthorized
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("malformed_header").Inc()
				return domain.ErrUnauthorized
			}

			id, err := authorizer.Authorize(parts[1])
			if err != nil {
				return err
			}

			SetIdentity(c, id)
			return next(c)
		}
	}
}

// SetIdentity stores id as the caller of the current request.
func SetIdentity(c echo.Context, id domain.Identity) {
	c.Set(identityKey, id)
}

// IdentityFrom returns the identity stored by Auth.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}
