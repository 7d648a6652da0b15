package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/threecat/bonus-service/internal/dtos"
	"github.com/threecat/bonus-service/internal/services"
	"github.com/threecat/bonus-service/internal/utils"
)

var timesheetValidate = validator.New()

type TimesheetController struct {
	pipeline *services.PipelineService
}

func NewTimesheetController(pipeline *services.PipelineService) *TimesheetController {
	return &TimesheetController{pipeline: pipeline}
}

// POST /api/v1/timesheet/reload
func (c *TimesheetController) ReloadHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.ReloadTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := timesheetValidate.Struct(req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "start_date and end_date must be YYYY-MM-DD", nil, err)
		return
	}
	if req.EndDate < req.StartDate {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "end_date must not precede start_date", nil)
		return
	}

	segments, skipped, err := c.pipeline.Reload(r.Context(), req.StartDate, req.EndDate)
	if err != nil {
		c.respondReloadError(w, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.ReloadTimesheetResponse{
		SegmentCount:   len(segments),
		SkippedPunches: skipped,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
	})
}

// GET /api/v1/timesheet/segments
func (c *TimesheetController) ListSegmentsHandler(w http.ResponseWriter, r *http.Request) {
	segments := c.pipeline.Segments()
	start, end, reloadedAt := c.pipeline.Window()
	utils.RespondWithJSON(w, http.StatusOK, dtos.SegmentListResponse{
		Segments:       segments,
		Count:          len(segments),
		StartDate:      start,
		EndDate:        end,
		LastReloadedAt: reloadedAt,
	})
}

// Reload failures need distinguishable messages so the operator can
// pick a remedy: retry, narrow the range, or fix the upstream service.
func (c *TimesheetController) respondReloadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, utils.ErrStaleReload):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeStaleReload, "A newer reload superseded this one; its result was discarded", nil, err)
	case errors.Is(err, utils.ErrNoTimesheetData):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNoData, "The timeclock returned no punches for that date range", nil, err)
	case errors.Is(err, utils.ErrTimeclockTimeout):
		utils.RespondErrorWithCode(w, http.StatusGatewayTimeout, utils.ErrCodeExternalServiceFailure, "Timeclock request timed out; try a narrower date range", nil, err)
	case errors.Is(err, utils.ErrTimeclockUnreachable):
		utils.RespondErrorWithCode(w, http.StatusBadGateway, utils.ErrCodeExternalServiceFailure, "Could not reach the timeclock service; check connectivity and retry", nil, err)
	case errors.Is(err, utils.ErrTimeclockServer):
		utils.RespondErrorWithCode(w, http.StatusBadGateway, utils.ErrCodeExternalServiceFailure, "The timeclock service reported an internal error; retry shortly", nil, err)
	case errors.Is(err, utils.ErrTimeclockRequest):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeExternalServiceFailure, "The timeclock service rejected the request", nil, err)
	default:
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to reload timesheet data", nil, err)
	}
}
