package memory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/movieportal/portal-api/internal/core/domain"
)

type reviewKey struct {
	filmID   int
	username string
}

// ReviewRepository is a process-wide review store. All reads and the
// check-and-insert in Insert happen under one lock, so concurrent
// submissions for the same key yield exactly one stored review.
type ReviewRepository struct {
	mu      sync.RWMutex
	reviews map[reviewKey]domain.Review
	byFilm  map[int][]reviewKey
	nextID  uint64
	now     func() time.Time
}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{
		reviews: make(map[reviewKey]domain.Review),
		byFilm:  make(map[int][]reviewKey),
		now:     time.Now,
	}
}

func (r *ReviewRepository) Insert(_ context.Context, review domain.Review) (*domain.Review, error) {
	key := reviewKey{filmID: review.FilmID, username: review.Username}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reviews[key]; ok {
		return nil, domain.ErrDuplicateReview
	}

	r.nextID++
	review.ID = strconv.FormatUint(r.nextID, 10)
	review.CreatedAt = r.now().UTC()

	r.reviews[key] = review
	r.byFilm[review.FilmID] = append(r.byFilm[review.FilmID], key)
	return &review, nil
}

func (r *ReviewRepository) Get(_ context.Context, filmID int, username string) (*domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	review, ok := r.reviews[reviewKey{filmID: filmID, username: username}]
	if !ok {
		return nil, nil
	}
	return &review, nil
}

// ListByFilm returns the film's reviews in submission order.
func (r *ReviewRepository) ListByFilm(_ context.Context, filmID int) ([]domain.Review, error) {
	r.mu.RLock()
	keys := r.byFilm[filmID]
	out := make([]domain.Review, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.reviews[k])
	}
	r.mu.RUnlock()

	return out, nil
}

// Len reports the number of stored reviews.
func (r *ReviewRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.reviews)
}
