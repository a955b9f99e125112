package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movieportal/portal-api/internal/core/domain"
	"github.com/movieportal/portal-api/internal/core/ports"
)

// ActorHandler relays the actor catalogue.
type ActorHandler struct {
	catalog ports.CatalogService
}

func NewActorHandler(catalog ports.CatalogService) *ActorHandler {
	return &ActorHandler{catalog: catalog}
}

// Popular handles GET /api/actor/popular.
//
// @Summary      Popular actors
// @Tags         actors
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page (default 1)"
// @Success      200   {object}  object
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /api/actor/popular [get]
func (h *ActorHandler) Popular(c echo.Context) error {
	page, err := queryPage(c)
	if err != nil {
		return err
	}
	body, err := h.catalog.ListPopular(c.Request().Context(), domain.ResourceActor, page)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}

// Search handles GET /api/actor/search.
//
// @Summary      Search actors
// @Tags         actors
// @Produce      json
// @Security     BearerAuth
// @Param        query  query     string  true   "Search text"
// @Param        page   query     int     false  "Page (default 1)"
// @Success      200    {object}  object
// @Failure      400    {object}  errorResponse
// @Failure      502    {object}  errorResponse
// @Router       /api/actor/search [get]
func (h *ActorHandler) Search(c echo.Context) error {
	page, err := queryPage(c)
	if err != nil {
		return err
	}
	body, err := h.catalog.Search(c.Request().Context(), domain.ResourceActor, c.QueryParam("query"), page)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}

// Get handles GET /api/actor/:id.
//
// @Summary      Actor details
// @Tags         actors
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "TMDB person id"
// @Success      200  {object}  object
// @Failure      404  {object}  errorResponse
// @Failure      502  {object}  errorResponse
// @Router       /api/actor/{id} [get]
func (h *ActorHandler) Get(c echo.Context) error {
	actorID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	body, err := h.catalog.GetByID(c.Request().Context(), domain.ResourceActor, actorID)
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, body)
}
