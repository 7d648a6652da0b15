package models

import (
	"time"

	"github.com/google/uuid"
)

// ShiftEligibility is the shift-level bonus eligibility record, created
// default-eligible the first time a shift appears in the segmented
// timesheet. Records are superseded in place by toggles and bulk
// updates, never deleted.
type ShiftEligibility struct {
	ID             uuid.UUID `json:"id"`
	Date           string    `json:"date"`
	Shift          ShiftType `json:"shift_type"`
	IsEligible     bool      `json:"is_eligible"`
	Reason         string    `json:"reason,omitempty"`
	ManualOverride bool      `json:"manual_override"`
	OverrideReason string    `json:"override_reason,omitempty"`
	LastUpdated    time.Time `json:"last_updated"`
	UpdatedBy      string    `json:"updated_by"`
}

func (e ShiftEligibility) Key() ShiftKey {
	return ShiftKey{Date: e.Date, Shift: e.Shift}
}

// EmployeeEligibility is the per-employee, per-shift record. Independent
// of shift-level eligibility; the effective eligibility for a bonus is
// the AND of both.
type EmployeeEligibility struct {
	ID             uuid.UUID `json:"id"`
	EmployeeID     string    `json:"employee_id"`
	EmployeeName   string    `json:"employee_name"`
	Date           string    `json:"date"`
	Shift          ShiftType `json:"shift_type"`
	IsEligible     bool      `json:"is_eligible"`
	Reason         string    `json:"reason,omitempty"`
	InfractionIDs  []string  `json:"infraction_ids"`
	ManualOverride bool      `json:"manual_override"`
	LastUpdated    time.Time `json:"last_updated"`
	UpdatedBy      string    `json:"updated_by"`
}

func (e EmployeeEligibility) Key() EmployeeShiftKey {
	return EmployeeShiftKey{EmployeeID: e.EmployeeID, Date: e.Date, Shift: e.Shift}
}
