package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kinshiplabs/tracker/internal/core/ports"
)

// RecordHandler serves progress records.
type RecordHandler struct {
	tracker ports.TrackerService
}

func NewRecordHandler(tracker ports.TrackerService) *RecordHandler {
	return &RecordHandler{tracker: tracker}
}

// Upsert handles PUT /v1/records. The record for (userId, date) is created
// or merged with the fields present in the body.
//
// @Summary      Create or update a progress record
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      upsertRecordRequest  true  "Partial record keyed by userId and date"
// @Success      200   {object}  domain.ProgressRecord
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/records [put]
func (h *RecordHandler) Upsert(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	var req upsertRecordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	record, err := h.tracker.UpsertRecord(c.Request().Context(), req.toPatch())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, record)
}

// List handles GET /v1/records.
//
// @Summary      List progress records, newest first
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query     string  false  "Only records of this user (friends always get their own)"
// @Param        from     query     string  false  "Inclusive start date (YYYY-MM-DD)"
// @Param        to       query     string  false  "Inclusive end date (YYYY-MM-DD)"
// @Success      200      {array}   domain.ProgressRecord
// @Failure      403      {object}  errorResponse
// @Router       /v1/records [get]
func (h *RecordHandler) List(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}
	records, err := h.tracker.Records(ports.RecordFilter{
		UserID: c.QueryParam("user_id"),
		From:   c.QueryParam("from"),
		To:     c.QueryParam("to"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, records)
}
