package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kinshiplabs/tracker/internal/core/ports"
)

type StatusHandler struct {
	tracker ports.TrackerService
}

func NewStatusHandler(tracker ports.TrackerService) *StatusHandler {
	return &StatusHandler{tracker: tracker}
}

// Upload handles POST /v1/statuses.
//
// @Summary      Upload a status update
// @Tags         statuses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      statusRequest  true  "Status"
// @Success      201   {object}  domain.StatusUpdate
// @Failure      422   {object}  errorResponse
// @Router       /v1/statuses [post]
func (h *StatusHandler) Upload(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	var req statusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	status, err := h.tracker.UploadStatus(c.Request().Context(), req.Content, req.Attachment.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, status)
}

// List handles GET /v1/statuses.
//
// @Summary      Status feed, newest first
// @Tags         statuses
// @Produce      json
// @Security     BearerAuth
// @Param        since  query     string  false  "Only statuses after this RFC 3339 instant"
// @Success      200    {array}   domain.StatusUpdate
// @Failure      400    {object}  errorResponse
// @Router       /v1/statuses [get]
func (h *StatusHandler) List(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	var since time.Time
	if raw := c.QueryParam("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "since must be an RFC 3339 timestamp")
		}
		since = t
	}
	return c.JSON(http.StatusOK, h.tracker.Statuses(since))
}
