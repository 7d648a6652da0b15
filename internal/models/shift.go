package models

// ShiftType is the closed set of buckets a segment or order can land in.
// Unassigned appears only on raw entries that predate classification.
type ShiftType string

const (
	ShiftMorning    ShiftType = "morning"
	ShiftNight      ShiftType = "night"
	ShiftUnassigned ShiftType = "unassigned"
)

// ShiftKey identifies one shift of one calendar day. Structured rather
// than a delimiter-joined string so dates or ids containing the
// delimiter cannot collide.
type ShiftKey struct {
	Date  string    `json:"date"` // YYYY-MM-DD
	Shift ShiftType `json:"shift_type"`
}

// EmployeeShiftKey identifies one employee's participation in one shift.
type EmployeeShiftKey struct {
	EmployeeID string    `json:"employee_id"`
	Date       string    `json:"date"`
	Shift      ShiftType `json:"shift_type"`
}

// ShiftKeyOf is a convenience for deriving the shift-level key.
func (k EmployeeShiftKey) ShiftKeyOf() ShiftKey {
	return ShiftKey{Date: k.Date, Shift: k.Shift}
}

// SplitMethod selects how order times and swing shifts are bucketed.
type SplitMethod string

const (
	SplitTimeBased SplitMethod = "time-based"
	SplitCustom    SplitMethod = "custom"
)

// SplitSettings holds the resolved shift split configuration, all
// boundaries in minutes since midnight.
type SplitSettings struct {
	Method       SplitMethod `json:"split_method"`
	MorningStart int         `json:"morning_start_minutes"`
	MorningEnd   int         `json:"morning_end_minutes"`
	NightStart   int         `json:"night_start_minutes"`
	NightEnd     int         `json:"night_end_minutes"`
	CustomCutoff int         `json:"custom_cutoff_minutes"`
}

// CutoffMinutes resolves the single boundary used for swing-shift
// segmentation. In time-based mode this is the end of the morning
// range; the night range only matters for order classification display.
func (s SplitSettings) CutoffMinutes() int {
	if s.Method == SplitCustom {
		return s.CustomCutoff
	}
	return s.MorningEnd
}
