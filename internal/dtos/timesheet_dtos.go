package dtos

import (
	"time"

	"github.com/threecat/bonus-service/internal/models"
)

// ReloadTimesheetRequest selects the punch window to fetch, both dates
// inclusive.
type ReloadTimesheetRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// ReloadTimesheetResponse reports what the reload produced.
type ReloadTimesheetResponse struct {
	SegmentCount   int    `json:"segment_count"`
	SkippedPunches int    `json:"skipped_punches"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
}

// SegmentListResponse returns the current segmented timesheet.
type SegmentListResponse struct {
	Segments       []models.ShiftSegment `json:"segments"`
	Count          int                   `json:"count"`
	StartDate      string                `json:"start_date"`
	EndDate        string                `json:"end_date"`
	LastReloadedAt time.Time             `json:"last_reloaded_at"`
}
