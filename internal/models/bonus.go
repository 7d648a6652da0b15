package models

// BonusAllocation is one employee's share of one shift's bonus pool.
// Purely derived; recomputed whenever any upstream input changes.
type BonusAllocation struct {
	Date            string    `json:"date"`
	Shift           ShiftType `json:"shift_type"`
	EmployeeID      string    `json:"employee_id"`
	EmployeeName    string    `json:"employee_name"`
	Role            string    `json:"role"`
	HoursWorked     float64   `json:"hours_worked"`
	Multiplier      float64   `json:"multiplier"`     // always 1 under pro-rata
	AdjustedHours   float64   `json:"adjusted_hours"` // same as HoursWorked
	BonusAmount     float64   `json:"bonus_amount"`
	DrinkCount      int       `json:"drink_count"`
	BonusPool       float64   `json:"bonus_pool"`
	HoursRatio      float64   `json:"hours_ratio"`
	TotalShiftHours float64   `json:"total_shift_hours"`
}

// DayFilter marks a calendar day's allocations for inclusion in or
// exclusion from the export, with the reason the automatic criteria
// filter (or a manager) disabled it.
type DayFilter struct {
	Date    string `json:"date"`
	Enabled bool   `json:"enabled"`
	Reason  string `json:"reason,omitempty"`
}
