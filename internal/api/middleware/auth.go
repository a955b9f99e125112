package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/movieportal/portal-api/internal/core/domain"
	"github.com/movieportal/portal-api/internal/core/ports"
)

// Context keys set by Auth.
const (
	IdentityKey = "identity"
	UsernameKey = "username"
	RoleKey     = "role"
)

// Auth validates the bearer token and injects the caller identity into
// context. Every failure is reported as domain.ErrUnauthenticated.
func Auth(guard ports.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				_, err := guard.Authenticate("")
				return err
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return fmt.Errorf("%w: invalid authorization header", domain.ErrUnauthenticated)
			}

			id, err := guard.Authenticate(parts[1])
			if err != nil {
				return err
			}

			c.Set(IdentityKey, id)
			c.Set(UsernameKey, id.Username)
			c.Set(RoleKey, id.Role)

			return next(c)
		}
	}
}
