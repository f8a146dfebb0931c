package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kinshiplabs/tracker/internal/core/ports"
)

// DashboardHandler serves the read models behind both dashboards.
type DashboardHandler struct {
	tracker ports.TrackerService
}

func NewDashboardHandler(tracker ports.TrackerService) *DashboardHandler {
	return &DashboardHandler{tracker: tracker}
}

// Tasks handles GET /v1/tasks.
//
// @Summary      Task catalogue
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Task
// @Router       /v1/tasks [get]
func (h *DashboardHandler) Tasks(c echo.Context) error {
	return c.JSON(http.StatusOK, h.tracker.Tasks())
}

// Users handles GET /v1/users. Passwords are never returned.
//
// @Summary      All users
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.PublicUser
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *DashboardHandler) Users(c echo.Context) error {
	return c.JSON(http.StatusOK, h.tracker.Users())
}

// Overview handles GET /v1/overview.
//
// @Summary      Per-friend progress summary
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   ports.FriendSummary
// @Failure      403  {object}  errorResponse
// @Router       /v1/overview [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	rows, err := h.tracker.Overview()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rows)
}
