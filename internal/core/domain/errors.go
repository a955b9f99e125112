package domain

import "errors"

// Access errors.
var (
	ErrUnauthenticated      = errors.New("authentication required")
	ErrForbidden            = errors.New("access forbidden")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidProviderToken = errors.New("invalid provider token")
	ErrTooManyAttempts      = errors.New("too many failed login attempts")
	ErrUserNotFound         = errors.New("user not found")
	ErrUserExists           = errors.New("user already exists")
)

// Validation errors.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidQuery     = errors.New("search query must not be empty")
	ErrOutOfRangeRating = errors.New("rating out of range")
	ErrDuplicateReview  = errors.New("review already exists for this film")
)

// Upstream errors.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")
)
