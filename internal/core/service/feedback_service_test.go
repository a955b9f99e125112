package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/movieportal/portal-api/internal/core/domain"
	"github.com/movieportal/portal-api/internal/core/ports"
)

type recordingQueue struct {
	items []domain.Submission
	full  bool
}

func (q *recordingQueue) Enqueue(s domain.Submission) bool {
	if q.full {
		return false
	}
	q.items = append(q.items, s)
	return true
}

func newFeedbackService(q *recordingQueue) *FeedbackService {
	svc := NewFeedbackService(q, zerolog.Nop())
	svc.now = fixedClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	return svc
}

func TestFeedbackService_SubmitFeedback(t *testing.T) {
	q := &recordingQueue{}
	svc := newFeedbackService(q)

	ack, err := svc.SubmitFeedback(context.Background(), ports.FeedbackInput{FilmID: 550, Username: "filmuser", Rating: 9, Note: " nice "})
	if err != nil {
		t.Fatalf("SubmitFeedback returned error: %v", err)
	}
	if _, err := uuid.Parse(ack.ReceiptID); err != nil {
		t.Fatalf("expected uuid receipt, got %q", ack.ReceiptID)
	}
	if ack.Message == "" {
		t.Fatalf("expected acknowledgement message")
	}
	if len(q.items) != 1 {
		t.Fatalf("expected one queued submission, got %d", len(q.items))
	}
	got := q.items[0]
	if got.Kind != domain.SubmissionFeedback || got.Note != "nice" || got.ReceiptID != ack.ReceiptID {
		t.Fatalf("unexpected submission: %+v", got)
	}
}

func TestFeedbackService_SubmitFeedback_Rejects(t *testing.T) {
	q := &recordingQueue{}
	svc := newFeedbackService(q)

	cases := []struct {
		in   ports.FeedbackInput
		want error
	}{
		{ports.FeedbackInput{FilmID: 1, Rating: 5}, domain.ErrUnauthenticated},
		{ports.FeedbackInput{FilmID: 0, Username: "u", Rating: 5}, domain.ErrInvalidInput},
		{ports.FeedbackInput{FilmID: 1, Username: "u", Rating: 11}, domain.ErrOutOfRangeRating},
	}
	for _, tc := range cases {
		if _, err := svc.SubmitFeedback(context.Background(), tc.in); !errors.Is(err, tc.want) {
			t.Fatalf("input %+v: expected %v, got %v", tc.in, tc.want, err)
		}
	}
	if len(q.items) != 0 {
		t.Fatalf("expected nothing queued, got %d", len(q.items))
	}
}

func TestFeedbackService_SubmitSuggestion(t *testing.T) {
	q := &recordingQueue{}
	svc := newFeedbackService(q)

	ack, err := svc.SubmitSuggestion(context.Background(), ports.SuggestionInput{Username: "actoruser", FilmName: " Heat "})
	if err != nil {
		t.Fatalf("SubmitSuggestion returned error: %v", err)
	}
	if ack.ReceiptID == "" {
		t.Fatalf("expected receipt id")
	}
	if len(q.items) != 1 || q.items[0].FilmName != "Heat" || q.items[0].Kind != domain.SubmissionSuggestion {
		t.Fatalf("unexpected queued items: %+v", q.items)
	}

	if _, err := svc.SubmitSuggestion(context.Background(), ports.SuggestionInput{Username: "actoruser", FilmName: "   "}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestFeedbackService_DistinctReceipts(t *testing.T) {
	svc := newFeedbackService(&recordingQueue{})

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		ack, err := svc.SubmitSuggestion(context.Background(), ports.SuggestionInput{Username: "u", FilmName: "x"})
		if err != nil {
			t.Fatalf("SubmitSuggestion returned error: %v", err)
		}
		if _, dup := seen[ack.ReceiptID]; dup {
			t.Fatalf("duplicate receipt %s", ack.ReceiptID)
		}
		seen[ack.ReceiptID] = struct{}{}
	}
}

func TestFeedbackService_FullQueueStillAcknowledges(t *testing.T) {
	q := &recordingQueue{full: true}
	svc := newFeedbackService(q)

	ack, err := svc.SubmitSuggestion(context.Background(), ports.SuggestionInput{Username: "filmuser", FilmName: "Alien"})
	if err != nil {
		t.Fatalf("SubmitSuggestion returned error: %v", err)
	}
	if ack.ReceiptID == "" {
		t.Fatalf("expected receipt id")
	}
	if len(q.items) != 0 {
		t.Fatalf("expected nothing queued, got %d", len(q.items))
	}
}
