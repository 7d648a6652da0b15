package dtos

import "github.com/threecat/bonus-service/internal/models"

// ShiftKeyDTO addresses one (date, shift) pair.
type ShiftKeyDTO struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Shift string `json:"shift" validate:"required,oneof=morning night"`
}

// EmployeeShiftKeyDTO addresses one employee within one shift.
type EmployeeShiftKeyDTO struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Shift      string `json:"shift" validate:"required,oneof=morning night"`
}

// ToggleShiftRequest sets a shift's eligibility by hand.
type ToggleShiftRequest struct {
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Shift      string `json:"shift" validate:"required,oneof=morning night"`
	IsEligible *bool  `json:"is_eligible" validate:"required"`
}

// ToggleEmployeeRequest sets one employee's eligibility for one shift.
type ToggleEmployeeRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	Shift      string `json:"shift" validate:"required,oneof=morning night"`
	IsEligible *bool  `json:"is_eligible" validate:"required"`
}

// BulkShiftUpdateRequest applies one eligibility transition to many
// shifts at once.
type BulkShiftUpdateRequest struct {
	Keys       []ShiftKeyDTO `json:"keys" validate:"required,min=1,dive"`
	IsEligible *bool         `json:"is_eligible" validate:"required"`
}

// BulkEmployeeUpdateRequest applies one eligibility transition to many
// employee-shift pairs at once.
type BulkEmployeeUpdateRequest struct {
	Keys       []EmployeeShiftKeyDTO `json:"keys" validate:"required,min=1,dive"`
	IsEligible *bool                 `json:"is_eligible" validate:"required"`
}

// BulkUpdateResponse reports how many records a bulk call touched.
type BulkUpdateResponse struct {
	Updated int `json:"updated"`
}

// CriteriaFilterRequest runs the automatic shift filter with the given
// thresholds.
type CriteriaFilterRequest struct {
	MinDrinksPerShift    int  `json:"min_drinks_per_shift" validate:"gte=0"`
	MinEmployeesPerShift int  `json:"min_employees_per_shift" validate:"gte=0"`
	ExcludeWeekends      bool `json:"exclude_weekends"`
	ExcludeHolidays      bool `json:"exclude_holidays"`
}

// CriteriaFilterResponse reports what the automatic filter disabled.
type CriteriaFilterResponse struct {
	Disabled int `json:"disabled"`
}

// ShiftEligibilityListResponse returns the shift-level records.
type ShiftEligibilityListResponse struct {
	Shifts []models.ShiftEligibility `json:"shifts"`
	Count  int                       `json:"count"`
}

// EmployeeEligibilityListResponse returns the employee-level records.
type EmployeeEligibilityListResponse struct {
	Employees []models.EmployeeEligibility `json:"employees"`
	Count     int                          `json:"count"`
}
