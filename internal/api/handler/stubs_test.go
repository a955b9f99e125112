package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/movieportal/portal-api/internal/api/middleware"
	"github.com/movieportal/portal-api/internal/core/domain"
	"github.com/movieportal/portal-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn    func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	externalFn func(ctx context.Context, providerToken string) (*ports.LoginResult, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) LoginExternal(ctx context.Context, providerToken string) (*ports.LoginResult, error) {
	return s.externalFn(ctx, providerToken)
}

type stubCatalogService struct {
	popularFn func(resource domain.Resource, page int) (json.RawMessage, error)
	getFn     func(resource domain.Resource, id int) (json.RawMessage, error)
	searchFn  func(resource domain.Resource, query string, page int) (json.RawMessage, error)
	detailFn  func(filmID int, username string) (*ports.FilmDetail, error)
}

func (s *stubCatalogService) ListPopular(_ context.Context, resource domain.Resource, page int) (json.RawMessage, error) {
	return s.popularFn(resource, page)
}

func (s *stubCatalogService) GetByID(_ context.Context, resource domain.Resource, id int) (json.RawMessage, error) {
	return s.getFn(resource, id)
}

func (s *stubCatalogService) Search(_ context.Context, resource domain.Resource, query string, page int) (json.RawMessage, error) {
	return s.searchFn(resource, query, page)
}

func (s *stubCatalogService) FilmDetail(_ context.Context, filmID int, username string) (*ports.FilmDetail, error) {
	return s.detailFn(filmID, username)
}

type stubReviewService struct {
	submitFn func(in ports.SubmitReviewInput) (*domain.Review, error)
	listFn   func(filmID int) (*ports.FilmReviews, error)
}

func (s *stubReviewService) SubmitReview(_ context.Context, in ports.SubmitReviewInput) (*domain.Review, error) {
	return s.submitFn(in)
}

func (s *stubReviewService) GetReview(context.Context, int, string) (*domain.Review, error) {
	return nil, nil
}

func (s *stubReviewService) ListReviews(_ context.Context, filmID int) (*ports.FilmReviews, error) {
	return s.listFn(filmID)
}

func (s *stubReviewService) AverageRating(context.Context, int) (domain.AverageRating, error) {
	return domain.AverageRating{}, nil
}

type stubFeedbackService struct {
	feedbackFn   func(in ports.FeedbackInput) (*ports.Acknowledgement, error)
	suggestionFn func(in ports.SuggestionInput) (*ports.Acknowledgement, error)
}

func (s *stubFeedbackService) SubmitFeedback(_ context.Context, in ports.FeedbackInput) (*ports.Acknowledgement, error) {
	return s.feedbackFn(in)
}

func (s *stubFeedbackService) SubmitSuggestion(_ context.Context, in ports.SuggestionInput) (*ports.Acknowledgement, error) {
	return s.suggestionFn(in)
}

// newContext builds an echo context with the validator wired and, when id is
// non-nil, the identity the Auth middleware would have set.
func newContext(method, target, body string, id *domain.Identity) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != nil {
		c.Set(middleware.IdentityKey, id)
	}
	return c, rec
}
