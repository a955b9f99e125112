package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/movieportal/portal-api/internal/core/domain"
)

func TestIdentityRepository_CreateAndFind(t *testing.T) {
	repo := NewIdentityRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, &domain.User{Username: "filmuser", Role: domain.RoleFilm, Provider: domain.ProviderLocal}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := repo.Create(ctx, &domain.User{Username: "filmuser"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	u, err := repo.FindByUsername(ctx, "filmuser")
	if err != nil {
		t.Fatalf("FindByUsername returned error: %v", err)
	}
	if u.Role != domain.RoleFilm || u.CreatedAt.IsZero() {
		t.Fatalf("unexpected user: %+v", u)
	}

	if _, err := repo.FindByUsername(ctx, "nobody"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestIdentityRepository_ResolveExternal(t *testing.T) {
	repo := NewIdentityRepository()
	ctx := context.Background()
	profile := domain.ExternalProfile{Subject: "g-1", Email: "jane@example.com", Name: "Jane"}

	first, err := repo.ResolveExternal(ctx, profile, domain.ProviderGoogle, domain.RoleUser)
	if err != nil {
		t.Fatalf("ResolveExternal returned error: %v", err)
	}
	if first.Role != domain.RoleUser || first.DisplayName != "Jane" {
		t.Fatalf("unexpected created user: %+v", first)
	}

	profile.Name = "Jane Doe"
	second, err := repo.ResolveExternal(ctx, profile, domain.ProviderGoogle, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("ResolveExternal returned error: %v", err)
	}
	if second.Role != domain.RoleUser {
		t.Fatalf("expected stored role kept, got %s", second.Role)
	}
	if second.DisplayName != "Jane Doe" {
		t.Fatalf("expected name refreshed, got %q", second.DisplayName)
	}
}

func TestIdentityRepository_ResolveExternalConcurrent(t *testing.T) {
	repo := NewIdentityRepository()
	profile := domain.ExternalProfile{Email: "race@example.com"}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.ResolveExternal(context.Background(), profile, domain.ProviderGoogle, domain.RoleUser); err != nil {
				t.Errorf("ResolveExternal returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	if _, err := repo.FindByUsername(context.Background(), "race@example.com"); err != nil {
		t.Fatalf("expected identity stored once, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected 1 identity, got %d", len(repo.users))
	}
}
