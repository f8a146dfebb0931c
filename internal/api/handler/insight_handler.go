package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kinshiplabs/tracker/internal/core/domain"
	"github.com/kinshiplabs/tracker/internal/core/ports"
)

// InsightHandler exposes the generated texts. Generation never fails from
// the client's point of view; collaborator errors surface as fallback text.
type InsightHandler struct {
	tracker  ports.TrackerService
	insights ports.InsightService
	now      func() time.Time
}

func NewInsightHandler(tracker ports.TrackerService, insights ports.InsightService) *InsightHandler {
	return &InsightHandler{tracker: tracker, insights: insights, now: time.Now}
}

// JournalSummary handles GET /v1/insights/journal-summary/:user_id.
//
// @Summary      Summarise a friend's recent journals
// @Tags         insights
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  path      string  true  "Friend id"
// @Success      200      {object}  textResponse
// @Failure      404      {object}  errorResponse
// @Router       /v1/insights/journal-summary/{user_id} [get]
func (h *InsightHandler) JournalSummary(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	user, err := h.tracker.User(c.Param("user_id"))
	if err != nil {
		return err
	}
	records, err := h.tracker.Records(ports.RecordFilter{UserID: user.ID})
	if err != nil {
		return err
	}

	text := h.insights.SummarizeJournals(c.Request().Context(), user, records)
	return c.JSON(http.StatusOK, textResponse{Text: text, GeneratedAt: h.now().UTC()})
}

// Inspiration handles GET /v1/insights/inspiration?date=YYYY-MM-DD.
//
// @Summary      Inspiration for the caller's record of a day
// @Tags         insights
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  false  "Record date (defaults to today, UTC)"
// @Success      200   {object}  textResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/insights/inspiration [get]
func (h *InsightHandler) Inspiration(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}
	date := c.QueryParam("date")
	if date == "" {
		date = h.now().UTC().Format(domain.DateLayout)
	}
	record, err := h.tracker.Record(userID, date)
	if err != nil {
		return err
	}

	text := h.insights.InspirationFor(c.Request().Context(), record)
	return c.JSON(http.StatusOK, textResponse{Text: text, GeneratedAt: h.now().UTC()})
}
