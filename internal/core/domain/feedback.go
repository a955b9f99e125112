package domain

import "time"

// SubmissionKind distinguishes the acknowledged-only user inputs.
type SubmissionKind string

const (
	SubmissionFeedback   SubmissionKind = "feedback"
	SubmissionSuggestion SubmissionKind = "suggestion"
)

// Submission is a feedback entry or a film suggestion. Neither is persisted.
type Submission struct {
	ReceiptID   string
	Kind        SubmissionKind
	Username    string
	FilmID      int
	Rating      int
	Note        string
	FilmName    string
	SubmittedAt time.Time
}
