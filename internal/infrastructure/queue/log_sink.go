package queue

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/movieportal/portal-api/internal/core/domain"
)

// LogSink records submissions as structured log lines. Nothing is persisted.
type LogSink struct {
	log zerolog.Logger
}

func NewLogSink(log zerolog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Record(_ context.Context, sub domain.Submission) error {
	ev := s.log.Info().
		Str("receipt_id", sub.ReceiptID).
		Str("kind", string(sub.Kind)).
		Str("username", sub.Username).
		Time("submitted_at", sub.SubmittedAt)

	switch sub.Kind {
	case domain.SubmissionFeedback:
		ev = ev.Int("film_id", sub.FilmID).Int("rating", sub.Rating).Str("note", sub.Note)
	case domain.SubmissionSuggestion:
		ev = ev.Str("film_name", sub.FilmName)
	}

	ev.Msg("submission received")
	return nil
}
