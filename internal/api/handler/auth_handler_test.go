package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/movieportal/portal-api/internal/core/domain"
	"github.com/movieportal/portal-api/internal/core/ports"
)

func TestAuthHandler_Login_Success(t *testing.T) {
	expires := time.Date(2026, 1, 1, 13, 0, 0, 0, time.UTC)
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (*ports.LoginResult, error) {
			if username != "filmuser" || password != "123456" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &ports.LoginResult{
				Token: domain.SessionToken{Value: "tok", ExpiresAt: expires},
				User:  domain.Identity{Username: username, Role: domain.RoleFilm},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/auth/login", `{"username":"filmuser","password":"123456"}`, nil)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok" {
		t.Fatalf("unexpected token: %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "filmuser" || user["role"] != "film" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	for _, body := range []string{`{"username":"   ","password":"x"}`, `{"username":"a"}`, `{bad json`} {
		c, _ := newContext(http.MethodPost, "/api/auth/login", body, nil)
		if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("body %s: expected ErrInvalidInput, got %v", body, err)
		}
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub)

	c, _ := newContext(http.MethodPost, "/api/auth/login", `{"username":"a","password":"b"}`, nil)
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_GoogleToken(t *testing.T) {
	stub := &stubAuthService{
		externalFn: func(ctx context.Context, providerToken string) (*ports.LoginResult, error) {
			if providerToken != "id-token" {
				return nil, domain.ErrInvalidProviderToken
			}
			return &ports.LoginResult{
				Token: domain.SessionToken{Value: "session"},
				User:  domain.Identity{Username: "jane@example.com", Role: domain.RoleUser},
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	c, rec := newContext(http.MethodPost, "/api/auth/google-token", `{"tokenId":"id-token"}`, nil)
	if err := handler.GoogleToken(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newContext(http.MethodPost, "/api/auth/google-token", `{"tokenId":"forged"}`, nil)
	if err := handler.GoogleToken(c); !errors.Is(err, domain.ErrInvalidProviderToken) {
		t.Fatalf("expected ErrInvalidProviderToken, got %v", err)
	}

	c, _ = newContext(http.MethodPost, "/api/auth/google-token", `{}`, nil)
	if err := handler.GoogleToken(c); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing token, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{})

	c, rec := newContext(http.MethodGet, "/api/auth/me", "", &domain.Identity{Username: "adminuser", Role: domain.RoleAdmin})
	if err := handler.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var id domain.Identity
	if err := json.Unmarshal(rec.Body.Bytes(), &id); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if id.Username != "adminuser" || id.Role != domain.RoleAdmin {
		t.Fatalf("unexpected identity: %+v", id)
	}

	c, _ = newContext(http.MethodGet, "/api/auth/me", "", nil)
	if err := handler.Me(c); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
