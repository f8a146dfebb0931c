package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

// ctxClaims extracts the identity injected by the Auth middleware. Both
// values must be present; their absence means the route was mounted without
// authentication.
func ctxClaims(c echo.Context) (userID string, role domain.Role, err error) {
	userID, _ = c.Get("user_id").(string)
	r, _ := c.Get("role").(string)
	if userID == "" || r == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, domain.Role(r), nil
}

// bindAndValidate decodes the request body into req and runs the validator
// registered on Echo.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
