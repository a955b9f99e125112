package handler

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/movieportal/portal-api/internal/api/middleware"
	"github.com/movieportal/portal-api/internal/core/domain"
)

const defaultPage = 1

// ctxIdentity returns the identity injected by the Auth middleware. Its
// absence means the route was mounted without Auth; fail closed.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	id, _ := c.Get(middleware.IdentityKey).(*domain.Identity)
	if id == nil || id.Username == "" {
		return nil, domain.ErrUnauthenticated
	}
	return id, nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int, error) {
	raw := c.Param(name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", domain.ErrInvalidInput, name, raw)
	}
	return id, nil
}

// queryPage reads ?page, defaulting to 1 when absent.
func queryPage(c echo.Context) (int, error) {
	raw := c.QueryParam("page")
	if raw == "" {
		return defaultPage, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: page must be an integer, got %q", domain.ErrInvalidInput, raw)
	}
	return page, nil
}

// bindAndValidate decodes the request body into req and validates it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrInvalidInput)
	}
	return c.Validate(req)
}
