package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/movieportal/portal-api/internal/core/domain"
)

func rbacContext(id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		c.Set(IdentityKey, id)
	}
	return c, rec
}

func TestRBAC_Allows(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleFilm, domain.RoleAdmin} {
		c, rec := rbacContext(&domain.Identity{Username: "u", Role: role})

		called := false
		handler := RBAC(domain.RoleFilm)(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})

		if err := handler(c); err != nil {
			t.Fatalf("%s: handler error: %v", role, err)
		}
		if !called {
			t.Fatalf("%s: next handler not called", role)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", role, rec.Code)
		}
	}
}

func TestRBAC_Forbids(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleActor, domain.RoleUser} {
		c, _ := rbacContext(&domain.Identity{Username: "u", Role: role})

		handler := RBAC(domain.RoleFilm)(func(c echo.Context) error {
			t.Fatalf("should not reach next handler")
			return nil
		})

		if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("%s: expected ErrForbidden, got %v", role, err)
		}
	}
}

func TestRBAC_MissingIdentity(t *testing.T) {
	c, _ := rbacContext(nil)

	handler := RBAC(domain.RoleActor)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
