package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/movieportal/portal-api/internal/core/domain"
	"github.com/movieportal/portal-api/internal/core/ports"
	"github.com/movieportal/portal-api/internal/pkg/metrics"
)

// ReviewService validates ratings and derives per-film aggregates.
type ReviewService struct {
	repo ports.ReviewRepository
	log  zerolog.Logger
}

func NewReviewService(repo ports.ReviewRepository, log zerolog.Logger) *ReviewService {
	return &ReviewService{repo: repo, log: log}
}

// SubmitReview stores the first review a user leaves for a film. Out of range
// ratings and repeat submissions are rejected without touching the store.
func (s *ReviewService) SubmitReview(ctx context.Context, in ports.SubmitReviewInput) (*domain.Review, error) {
	if in.FilmID <= 0 {
		return nil, fmt.Errorf("%w: film id must be positive", domain.ErrInvalidInput)
	}
	if in.Username == "" {
		return nil, domain.ErrUnauthenticated
	}
	if err := domain.ValidateRating(in.Rating); err != nil {
		metrics.ReviewsSubmittedTotal.WithLabelValues("out_of_range").Inc()
		return nil, err
	}

	review, err := s.repo.Insert(ctx, domain.Review{
		FilmID:   in.FilmID,
		Username: in.Username,
		Rating:   in.Rating,
		Note:     strings.TrimSpace(in.Note),
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateReview) {
			metrics.ReviewsSubmittedTotal.WithLabelValues("duplicate").Inc()
			return nil, err
		}
		return nil, fmt.Errorf("submit review: %w", err)
	}

	metrics.ReviewsSubmittedTotal.WithLabelValues("created").Inc()
	s.log.Info().
		Int("film_id", review.FilmID).
		Str("username", review.Username).
		Int("rating", review.Rating).
		Msg("review submitted")

	return review, nil
}

func (s *ReviewService) GetReview(ctx context.Context, filmID int, username string) (*domain.Review, error) {
	return s.repo.Get(ctx, filmID, username)
}

func (s *ReviewService) ListReviews(ctx context.Context, filmID int) (*ports.FilmReviews, error) {
	reviews, err := s.repo.ListByFilm(ctx, filmID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	return &ports.FilmReviews{FilmID: filmID, Summary: domain.Aggregate(reviews), Reviews: reviews}, nil
}

// AverageRating returns the mean rating for filmID, or 0 with no reviews.
func (s *ReviewService) AverageRating(ctx context.Context, filmID int) (domain.AverageRating, error) {
	reviews, err := s.repo.ListByFilm(ctx, filmID)
	if err != nil {
		return domain.AverageRating{}, fmt.Errorf("average rating: %w", err)
	}
	return domain.Aggregate(reviews), nil
}
