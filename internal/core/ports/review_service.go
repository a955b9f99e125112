package ports

import (
	"context"
	"encoding/json"

	"github.com/movieportal/portal-api/internal/core/domain"
)

// SubmitReviewInput carries a new rating from the transport layer.
type SubmitReviewInput struct {
	FilmID   int
	Username string
	Rating   int
	Note     string
}

// FilmReviews is the aggregate view of a film's reviews.
type FilmReviews struct {
	FilmID  int
	Summary domain.AverageRating
	Reviews []domain.Review
}

// FilmDetail combines the upstream film record with local review data.
type FilmDetail struct {
	Film       json.RawMessage
	Summary    domain.AverageRating
	UserReview *domain.Review
}

type ReviewService interface {
	SubmitReview(ctx context.Context, in SubmitReviewInput) (*domain.Review, error)
	GetReview(ctx context.Context, filmID int, username string) (*domain.Review, error)
	ListReviews(ctx context.Context, filmID int) (*FilmReviews, error)
	AverageRating(ctx context.Context, filmID int) (domain.AverageRating, error)
}
