package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/movieportal/portal-api/internal/core/domain"
	"github.com/movieportal/portal-api/internal/core/service"
)

// RBAC admits the identity set by Auth when its role satisfies required.
// It must run after Auth; a missing identity fails closed with 401.
func RBAC(required ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, _ := c.Get(IdentityKey).(*domain.Identity)
			if err := service.Admit(id, required...); err != nil {
				return err
			}
			return next(c)
		}
	}
}
