package ports

import (
	"context"

	"github.com/movieportal/portal-api/internal/core/domain"
)

// LoginResult is returned by both login paths.
type LoginResult struct {
	Token domain.SessionToken
	User  domain.Identity
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	LoginExternal(ctx context.Context, providerToken string) (*LoginResult, error)
}

// Guard validates bearer tokens and admits roles.
type Guard interface {
	Authenticate(rawToken string) (*domain.Identity, error)
	Authorize(rawToken string, required ...domain.Role) (*domain.Identity, error)
}
