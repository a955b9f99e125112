package domain

import (
	"fmt"
	"time"
)

const (
	MinRating = 1
	MaxRating = 10
)

// Review is one user's rating for one film. (FilmID, Username) is unique.
type Review struct {
	ID        string    `json:"id"`
	FilmID    int       `json:"filmId"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ValidateRating rejects values outside [MinRating, MaxRating]. Values are
// never clamped.
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("%w: got %d, want %d-%d", ErrOutOfRangeRating, rating, MinRating, MaxRating)
	}
	return nil
}

// AverageRating is the derived aggregate for a film. Average is 0 when
// Count is 0.
type AverageRating struct {
	Average float64 `json:"averageRating"`
	Count   int     `json:"count"`
}

// Aggregate computes the mean rating of reviews.
func Aggregate(reviews []Review) AverageRating {
	if len(reviews) == 0 {
		return AverageRating{}
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return AverageRating{Average: float64(sum) / float64(len(reviews)), Count: len(reviews)}
}
