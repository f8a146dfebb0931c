package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kinshiplabs/tracker/internal/core/ports"
	"github.com/kinshiplabs/tracker/internal/core/service"
)

type AuthHandler struct {
	authService ports.AuthService
	tokenTTL    time.Duration
}

func NewAuthHandler(authService ports.AuthService, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{authService: authService, tokenTTL: tokenTTL}
}

// Login authenticates against the chosen role and returns a JWT token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials and the role to log in as"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password, req.Role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Token:     token,
		ExpiresIn: int64(h.tokenTTL.Seconds()),
		User:      user.Public(),
	})
}

// Signup registers a new friend and logs them in.
//
// @Summary      Sign up as a friend
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Name, username and password"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, user, err := h.authService.Signup(c.Request().Context(), req.Name, req.Username, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, authResponse{
		Token:     token,
		ExpiresIn: int64(h.tokenTTL.Seconds()),
		User:      user.Public(),
	})
}

// Logout ends the active session. Every token issued for it stops working.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401   {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context()); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SessionHandler tells a client which screen to show.
type SessionHandler struct {
	tracker ports.TrackerService
}

func NewSessionHandler(tracker ports.TrackerService) *SessionHandler {
	return &SessionHandler{tracker: tracker}
}

// Current handles GET /v1/session.
//
// @Summary      Resolve the current view
// @Tags         auth
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /v1/session [get]
func (h *SessionHandler) Current(c echo.Context) error {
	user, err := h.tracker.ActiveSession()
	if err != nil {
		return c.JSON(http.StatusOK, sessionResponse{View: string(service.ResolveView(nil))})
	}
	public := user.Public()
	return c.JSON(http.StatusOK, sessionResponse{
		View: string(service.ResolveView(&user)),
		User: &public,
	})
}
