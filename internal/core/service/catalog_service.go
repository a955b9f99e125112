package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/movieportal/portal-api/internal/core/domain"
	"github.com/movieportal/portal-api/internal/core/ports"
)

// CatalogService fronts the upstream provider. It rejects malformed input
// before any outbound request is made.
type CatalogService struct {
	catalog ports.Catalog
	reviews ports.ReviewService
	log     zerolog.Logger
}

func NewCatalogService(catalog ports.Catalog, reviews ports.ReviewService, log zerolog.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, reviews: reviews, log: log}
}

func (s *CatalogService) ListPopular(ctx context.Context, resource domain.Resource, page int) (json.RawMessage, error) {
	if err := validatePage(page); err != nil {
		return nil, err
	}
	return s.catalog.Popular(ctx, resource, page)
}

func (s *CatalogService) GetByID(ctx context.Context, resource domain.Resource, id int) (json.RawMessage, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: id must be positive", domain.ErrInvalidInput)
	}
	return s.catalog.Details(ctx, resource, id)
}

// Search forwards the trimmed query. Empty or whitespace-only queries fail
// with domain.ErrInvalidQuery.
func (s *CatalogService) Search(ctx context.Context, resource domain.Resource, query string, page int) (json.RawMessage, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, domain.ErrInvalidQuery
	}
	if err := validatePage(page); err != nil {
		return nil, err
	}
	return s.catalog.Search(ctx, resource, q, page)
}

// FilmDetail returns the upstream film with its local rating aggregate and
// the caller's own review, if any.
func (s *CatalogService) FilmDetail(ctx context.Context, filmID int, username string) (*ports.FilmDetail, error) {
	film, err := s.GetByID(ctx, domain.ResourceFilm, filmID)
	if err != nil {
		return nil, err
	}

	summary, err := s.reviews.AverageRating(ctx, filmID)
	if err != nil {
		return nil, err
	}

	var own *domain.Review
	if username != "" {
		if own, err = s.reviews.GetReview(ctx, filmID, username); err != nil {
			return nil, err
		}
	}

	return &ports.FilmDetail{Film: film, Summary: summary, UserReview: own}, nil
}

func validatePage(page int) error {
	if page < 1 {
		return fmt.Errorf("%w: page must be 1 or greater", domain.ErrInvalidInput)
	}
	return nil
}
