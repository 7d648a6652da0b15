package dtos

import "github.com/threecat/bonus-service/internal/models"

// BonusListResponse returns the current allocations, optionally
// filtered to one date by the caller.
type BonusListResponse struct {
	Allocations []models.BonusAllocation `json:"allocations"`
	Count       int                      `json:"count"`
	TotalPaid   float64                  `json:"total_paid"`
}

// ShiftSummaryDTO is one (date, shift) aggregate row.
type ShiftSummaryDTO struct {
	Date          string  `json:"date"`
	Shift         string  `json:"shift"`
	DrinkCount    int     `json:"drink_count"`
	BonusPool     float64 `json:"bonus_pool"`
	TotalHours    float64 `json:"total_hours"`
	EmployeeCount int     `json:"employee_count"`
	TotalPaid     float64 `json:"total_paid"`
}

// EmployeeSummaryDTO is one employee's aggregate across the window.
type EmployeeSummaryDTO struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	ShiftCount   int     `json:"shift_count"`
	TotalHours   float64 `json:"total_hours"`
	TotalBonus   float64 `json:"total_bonus"`
	BonusPerHour float64 `json:"bonus_per_hour"`
}

// BonusSummaryResponse returns both aggregate views plus the grand
// total.
type BonusSummaryResponse struct {
	Shifts     []ShiftSummaryDTO    `json:"shifts"`
	Employees  []EmployeeSummaryDTO `json:"employees"`
	TotalPaid  float64              `json:"total_paid"`
	TotalCount int                  `json:"total_count"`
}

// DayFilterRequest toggles one date's participation in the payout.
type DayFilterRequest struct {
	Date    string `json:"date" validate:"required,datetime=2006-01-02"`
	Enabled *bool  `json:"enabled" validate:"required"`
	Reason  string `json:"reason"`
}

// DayFilterListResponse returns the recorded filters.
type DayFilterListResponse struct {
	Filters []models.DayFilter `json:"filters"`
	Count   int                `json:"count"`
}
