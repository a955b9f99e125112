package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/movieportal/portal-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates a local user and returns a session token.
//
// @Summary      Login with username and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTokenResponse(res))
}

// GoogleToken exchanges a Google ID token for a session token.
//
// @Summary      Login with a Google ID token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      googleTokenRequest  true  "Google ID token"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/google-token [post]
func (h *AuthHandler) GoogleToken(c echo.Context) error {
	var req googleTokenRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.LoginExternal(c.Request().Context(), req.TokenID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTokenResponse(res))
}

// Me returns the identity carried by the caller's token.
//
// @Summary      Current identity
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, id)
}

func toTokenResponse(res *ports.LoginResult) tokenResponse {
	return tokenResponse{
		Token:     res.Token.Value,
		ExpiresAt: res.Token.ExpiresAt,
		User:      res.User,
	}
}
