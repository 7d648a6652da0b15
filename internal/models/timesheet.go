package models

// BreakInterval is one break inside a raw shift, minutes being
// local-clock minutes since midnight on the shift's date. Paid breaks
// are carried but never reduce worked hours.
type BreakInterval struct {
	StartMinutes    int  `json:"start_minutes"`
	EndMinutes      int  `json:"end_minutes"`
	IsUnpaid        bool `json:"is_unpaid"`
	DurationMinutes int  `json:"duration_minutes"`
}

// RawShift is one clock-in/clock-out record as reported by the
// timeclock collaborator, before segmentation. ClockOutMinutes may be
// numerically less than ClockInMinutes when the shift crosses midnight;
// duration arithmetic must normalize it first. An empty Breaks slice
// means the collaborator sent no break timing at all.
type RawShift struct {
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name"`
	Date             string          `json:"date"` // YYYY-MM-DD
	ClockInMinutes   int             `json:"clock_in_minutes"`
	ClockOutMinutes  int             `json:"clock_out_minutes"`
	Breaks           []BreakInterval `json:"breaks,omitempty"`
	NetWorkedHours   float64         `json:"net_worked_hours"`
	UnpaidBreakHours float64         `json:"unpaid_break_hours"`
	Role             string          `json:"role"`
}

// SegmentStatus mirrors the timeclock approval workflow.
type SegmentStatus string

const (
	SegmentApproved SegmentStatus = "approved"
	SegmentPending  SegmentStatus = "pending"
	SegmentRejected SegmentStatus = "rejected"
)

// ShiftSegment is one time-bounded slice of a RawShift after cutoff
// splitting. A raw shift yields up to two of these.
type ShiftSegment struct {
	ID               string        `json:"id"`
	EmployeeID       string        `json:"employee_id"`
	EmployeeName     string        `json:"employee_name"`
	Date             string        `json:"date"`
	Shift            ShiftType     `json:"shift_type"`
	ClockIn          string        `json:"clock_in"`  // local ISO timestamp
	ClockOut         string        `json:"clock_out"` // local ISO timestamp
	HoursWorked      float64       `json:"hours_worked"`
	UnpaidBreakHours float64       `json:"unpaid_break_hours"`
	Role             string        `json:"role"`
	IsTrainee        bool          `json:"is_trainee"`
	HourlyRate       float64       `json:"hourly_rate"`
	TotalPay         float64       `json:"total_pay"`
	Status           SegmentStatus `json:"status"`
}

// Key returns the employee-level composite key for this segment.
func (s ShiftSegment) Key() EmployeeShiftKey {
	return EmployeeShiftKey{EmployeeID: s.EmployeeID, Date: s.Date, Shift: s.Shift}
}
