package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/movieportal/portal-api/internal/core/domain"
	"github.com/movieportal/portal-api/internal/core/service"
)

func newGuard() (*service.AccessGuard, *service.TokenIssuer) {
	tokens := service.NewTokenIssuer("secret", time.Hour)
	return service.NewAccessGuard(tokens), tokens
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	guard, tokens := newGuard()
	tok, err := tokens.Issue(domain.Identity{Username: "alice", Role: domain.RoleAdmin})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok.Value)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth(guard)(func(c echo.Context) error {
		called = true
		if c.Get(UsernameKey) != "alice" {
			t.Fatalf("username not set")
		}
		if c.Get(RoleKey) != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		id, ok := c.Get(IdentityKey).(*domain.Identity)
		if !ok || id.Username != "alice" {
			t.Fatalf("identity not set: %v", c.Get(IdentityKey))
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_LowercaseScheme(t *testing.T) {
	guard, tokens := newGuard()
	tok, _ := tokens.Issue(domain.Identity{Username: "bob", Role: domain.RoleFilm})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+tok.Value)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth(guard)(func(c echo.Context) error { return nil })
	if err := handler(c); err != nil {
		t.Fatalf("expected lowercase scheme accepted, got %v", err)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	guard, _ := newGuard()
	other := service.NewTokenIssuer("other-secret", time.Hour)
	foreign, _ := other.Issue(domain.Identity{Username: "mallory", Role: domain.RoleAdmin})

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token abc",
		"no token":       "Bearer",
		"garbage":        "Bearer not-a-token",
		"foreign key":    "Bearer " + foreign.Value,
	}

	for name, header := range cases {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		c := e.NewContext(req, httptest.NewRecorder())

		handler := Auth(guard)(func(c echo.Context) error {
			t.Fatalf("%s: should not reach next", name)
			return nil
		})

		if err := handler(c); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("%s: expected ErrUnauthenticated, got %v", name, err)
		}
	}
}
