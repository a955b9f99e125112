package ports

import (
	"context"

	"github.com/movieportal/portal-api/internal/core/domain"
)

// IdentityRepository stores known accounts.
type IdentityRepository interface {
	// FindByUsername returns domain.ErrUserNotFound when no account matches.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	// Create inserts a new account. It fails if the username is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// ResolveExternal atomically returns the account for profile.Email,
	// creating it with defaultRole when missing and refreshing the display
	// name when the provider supplies a different one.
	ResolveExternal(ctx context.Context, profile domain.ExternalProfile, provider string, defaultRole domain.Role) (*domain.User, error)
}

// IdentityVerifier checks a third-party identity token.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawToken string) (*domain.ExternalProfile, error)
}

// LoginThrottle tracks failed local logins per username.
type LoginThrottle interface {
	// Allow returns domain.ErrTooManyAttempts when key is locked out.
	Allow(ctx context.Context, key string) error
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
