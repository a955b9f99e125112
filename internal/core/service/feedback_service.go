package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/movieportal/portal-api/internal/core/domain"
	"github.com/movieportal/portal-api/internal/core/ports"
	"github.com/movieportal/portal-api/internal/pkg/metrics"
)

// SubmissionQueue hands accepted submissions to background workers. Enqueue
// must not block; it reports false when the submission was dropped.
type SubmissionQueue interface {
	Enqueue(s domain.Submission) bool
}

// FeedbackService acknowledges feedback and suggestions. Nothing is stored;
// accepted items are passed to the queue for logging.
type FeedbackService struct {
	queue SubmissionQueue
	log   zerolog.Logger
	now   func() time.Time
}

func NewFeedbackService(queue SubmissionQueue, log zerolog.Logger) *FeedbackService {
	return &FeedbackService{queue: queue, log: log, now: time.Now}
}

func (s *FeedbackService) SubmitFeedback(ctx context.Context, in ports.FeedbackInput) (*ports.Acknowledgement, error) {
	if in.Username == "" {
		return nil, domain.ErrUnauthenticated
	}
	if in.FilmID <= 0 {
		return nil, fmt.Errorf("%w: film id must be positive", domain.ErrInvalidInput)
	}
	if err := domain.ValidateRating(in.Rating); err != nil {
		return nil, err
	}

	sub := s.accept(domain.Submission{
		Kind:     domain.SubmissionFeedback,
		Username: in.Username,
		FilmID:   in.FilmID,
		Rating:   in.Rating,
		Note:     strings.TrimSpace(in.Note),
	})
	return &ports.Acknowledgement{ReceiptID: sub.ReceiptID, Message: "feedback recorded"}, nil
}

func (s *FeedbackService) SubmitSuggestion(ctx context.Context, in ports.SuggestionInput) (*ports.Acknowledgement, error) {
	if in.Username == "" {
		return nil, domain.ErrUnauthenticated
	}
	name := strings.TrimSpace(in.FilmName)
	if name == "" {
		return nil, fmt.Errorf("%w: film name must not be empty", domain.ErrInvalidInput)
	}

	sub := s.accept(domain.Submission{
		Kind:     domain.SubmissionSuggestion,
		Username: in.Username,
		FilmName: name,
	})
	return &ports.Acknowledgement{ReceiptID: sub.ReceiptID, Message: "film suggestion received"}, nil
}

func (s *FeedbackService) accept(sub domain.Submission) domain.Submission {
	sub.ReceiptID = uuid.NewString()
	sub.SubmittedAt = s.now().UTC()

	// The acknowledgement does not depend on the log line being written.
	if s.queue.Enqueue(sub) {
		metrics.SubmissionsTotal.WithLabelValues(string(sub.Kind)).Inc()
	}
	return sub
}
