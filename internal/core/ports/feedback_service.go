package ports

import (
	"context"

	"github.com/movieportal/portal-api/internal/core/domain"
)

// FeedbackInput is a rating-style comment that is acknowledged but not stored.
type FeedbackInput struct {
	FilmID   int
	Username string
	Rating   int
	Note     string
}

// SuggestionInput proposes a film for the catalogue.
type SuggestionInput struct {
	Username string
	FilmName string
}

// Acknowledgement is returned once a submission has been accepted.
type Acknowledgement struct {
	ReceiptID string
	Message   string
}

type FeedbackService interface {
	SubmitFeedback(ctx context.Context, in FeedbackInput) (*Acknowledgement, error)
	SubmitSuggestion(ctx context.Context, in SuggestionInput) (*Acknowledgement, error)
}

// SubmissionSink receives accepted submissions off the request path.
type SubmissionSink interface {
	Record(ctx context.Context, s domain.Submission) error
}
