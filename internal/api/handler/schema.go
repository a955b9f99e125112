package handler

import (
	"encoding/json"
	"time"

	"github.com/movieportal/portal-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type loginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required"`
}

type googleTokenRequest struct {
	TokenID string `json:"tokenId" validate:"required,notblank"`
}

type tokenResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      domain.Identity `json:"user"`
}

// --- Films ---

type reviewRequest struct {
	Rating int    `json:"rating"`
	Note   string `json:"note" validate:"max=2000"`
}

type filmDetailResponse struct {
	Film          json.RawMessage `json:"film" swaggertype:"object"`
	AverageRating float64         `json:"averageRating"`
	ReviewCount   int             `json:"reviewCount"`
	UserReview    *domain.Review  `json:"userReview"`
}

type filmReviewsResponse struct {
	FilmID        int             `json:"filmId"`
	AverageRating float64         `json:"averageRating"`
	Count         int             `json:"count"`
	Reviews       []domain.Review `json:"reviews"`
}

// --- Feedback ---

// feedbackRequest also accepts the web client's field names, puan and not.
// The English names win when both are sent.
type feedbackRequest struct {
	Rating int    `json:"rating"`
	Note   string `json:"note" validate:"max=2000"`
	Puan   int    `json:"puan"`
	Not    string `json:"not" validate:"max=2000"`
}

func (r feedbackRequest) rating() int {
	if r.Rating != 0 {
		return r.Rating
	}
	return r.Puan
}

func (r feedbackRequest) note() string {
	if r.Note != "" {
		return r.Note
	}
	return r.Not
}

type suggestionRequest struct {
	FilmName string `json:"filmName" validate:"required,notblank,max=200"`
}

type acknowledgementResponse struct {
	Message       string `json:"message"`
	ReceiptID     string `json:"receiptId"`
	FilmID        int    `json:"filmId,omitempty"`
	SuggestedFilm string `json:"suggestedFilm,omitempty"`
}
