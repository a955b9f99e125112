package ports

import (
	"context"

	"github.com/movieportal/portal-api/internal/core/domain"
)

// ReviewRepository is the process-wide review store.
type ReviewRepository interface {
	// Insert atomically stores review unless one already exists for
	// (FilmID, Username), in which case it returns domain.ErrDuplicateReview.
	// The stored copy, with ID and CreatedAt assigned, is returned.
	Insert(ctx context.Context, review domain.Review) (*domain.Review, error)
	// Get returns nil, nil when no review exists for the key.
	Get(ctx context.Context, filmID int, username string) (*domain.Review, error)
	ListByFilm(ctx context.Context, filmID int) ([]domain.Review, error)
}
