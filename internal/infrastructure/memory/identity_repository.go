package memory

import (
	"context"
	"sync"
	"time"

	"github.com/movieportal/portal-api/internal/core/domain"
)

// IdentityRepository keeps accounts for the lifetime of the process.
type IdentityRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
	now   func() time.Time
}

func NewIdentityRepository() *IdentityRepository {
	return &IdentityRepository{users: make(map[string]domain.User), now: time.Now}
}

func (r *IdentityRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *IdentityRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username]; ok {
		return nil, domain.ErrUserExists
	}

	u := *user
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.now().UTC()
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = u.CreatedAt
	}
	r.users[u.Username] = u
	return &u, nil
}

// ResolveExternal keys accounts by email. A first sign-in creates the
// account with defaultRole; later sign-ins keep the stored role.
func (r *IdentityRepository) ResolveExternal(_ context.Context, profile domain.ExternalProfile, provider string, defaultRole domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	u, ok := r.users[profile.Email]
	if !ok {
		u = domain.User{
			Username:    profile.Email,
			Subject:     profile.Subject,
			Role:        defaultRole,
			DisplayName: profile.Name,
			Provider:    provider,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		r.users[u.Username] = u
		return &u, nil
	}

	if profile.Name != "" && profile.Name != u.DisplayName {
		u.DisplayName = profile.Name
		u.UpdatedAt = now
		r.users[u.Username] = u
	}
	return &u, nil
}
