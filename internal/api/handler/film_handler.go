package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movieportal/portal-api/internal/core/domain"
	"github.com/movieportal/portal-api/internal/core/ports"
)

// FilmHandler serves the film catalogue and its reviews.
type FilmHandler struct {
	catalog ports.CatalogService
	reviews ports.ReviewService
}

func NewFilmHandler(catalog ports.CatalogService, reviews ports.ReviewService) *FilmHandler {
	return &FilmHandler{catalog: catalog, reviews: reviews}
}

// Popular handles GET /api/film/popular.
//
// @Summary      Popular films
// @Tags         films
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page (default 1)"
// @Success      200   {object}  object
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/film/popular [get]
func (h *FilmHandler) Popular(c echo.Context) error {
	page, err := queryPage(c)
	if err != nil {
		return err
	}
	body, err := h.catalog.ListPopular(c.Request().Context(), domain.ResourceFilm, page)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}

// Search handles GET /api/film/search.
//
// @Summary      Search films
// @Tags         films
// @Produce      json
// @Security     BearerAuth
// @Param        query  query     string  true   "Search text"
// @Param        page   query     int     false  "Page (default 1)"
// @Success      200    {object}  object
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      502    {object}  errorResponse
// @Router       /api/film/search [get]
func (h *FilmHandler) Search(c echo.Context) error {
	page, err := queryPage(c)
	if err != nil {
		return err
	}
	body, err := h.catalog.Search(c.Request().Context(), domain.ResourceFilm, c.QueryParam("query"), page)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}

// Get handles GET /api/film/:id. The upstream record is combined with the
// local rating aggregate and the caller's own review.
//
// @Summary      Film details with ratings
// @Tags         films
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "TMDB film id"
// @Success      200  {object}  filmDetailResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/film/{id} [get]
func (h *FilmHandler) Get(c echo.Context) error {
	filmID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	detail, err := h.catalog.FilmDetail(c.Request().Context(), filmID, id.Username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, filmDetailResponse{
		Film:          detail.Film,
		AverageRating: detail.Summary.Average,
		ReviewCount:   detail.Summary.Count,
		UserReview:    detail.UserReview,
	})
}

// Reviews handles GET /api/film/:id/reviews.
//
// @Summary      Reviews for a film
// @Tags         films
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "TMDB film id"
// @Success      200  {object}  filmReviewsResponse
// @Failure      400  {object}  errorResponse
// @Router       /api/film/{id}/reviews [get]
func (h *FilmHandler) Reviews(c echo.Context) error {
	filmID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	list, err := h.reviews.ListReviews(c.Request().Context(), filmID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, filmReviewsResponse{
		FilmID:        list.FilmID,
		AverageRating: list.Summary.Average,
		Count:         list.Summary.Count,
		Reviews:       list.Reviews,
	})
}

// SubmitReview handles POST /api/film/:id/review. A user may review a film
// once; ratings must lie in 1..10.
//
// @Summary      Rate a film
// @Tags         films
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int            true  "TMDB film id"
// @Param        body  body      reviewRequest  true  "Rating and optional note"
// @Success      200   {object}  domain.Review
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/film/{id}/review [post]
func (h *FilmHandler) SubmitReview(c echo.Context) error {
	filmID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req reviewRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	review, err := h.reviews.SubmitReview(c.Request().Context(), ports.SubmitReviewInput{
		FilmID:   filmID,
		Username: id.Username,
		Rating:   req.Rating,
		Note:     req.Note,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, review)
}
