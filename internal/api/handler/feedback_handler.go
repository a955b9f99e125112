package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/movieportal/portal-api/internal/core/ports"
)

// FeedbackHandler acknowledges feedback and film suggestions.
type FeedbackHandler struct {
	service ports.FeedbackService
}

func NewFeedbackHandler(service ports.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// Feedback handles POST /api/film/:id/feedback.
//
// @Summary      Send feedback about a film
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int              true  "TMDB film id"
// @Param        body  body      feedbackRequest  true  "Rating and note (puan and not are accepted as aliases)"
// @Success      200   {object}  acknowledgementResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/film/{id}/feedback [post]
func (h *FeedbackHandler) Feedback(c echo.Context) error {
	filmID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req feedbackRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ack, err := h.service.SubmitFeedback(c.Request().Context(), ports.FeedbackInput{
		FilmID:   filmID,
		Username: id.Username,
		Rating:   req.rating(),
		Note:     req.note(),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, acknowledgementResponse{
		Message:   ack.Message,
		ReceiptID: ack.ReceiptID,
		FilmID:    filmID,
	})
}

// Suggest handles POST /api/film/suggest and POST /api/suggest.
//
// @Summary      Suggest a film for the catalogue
// @Tags         feedback
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      suggestionRequest  true  "Film name"
// @Success      200   {object}  acknowledgementResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/film/suggest [post]
// @Router       /api/suggest [post]
func (h *FeedbackHandler) Suggest(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req suggestionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ack, err := h.service.SubmitSuggestion(c.Request().Context(), ports.SuggestionInput{
		Username: id.Username,
		FilmName: req.FilmName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, acknowledgementResponse{
		Message:       ack.Message,
		ReceiptID:     ack.ReceiptID,
		SuggestedFilm: strings.TrimSpace(req.FilmName),
	})
}
