package constants

import "time"

// Bonus business logic
const (
	DefaultBonusRatePerDrink  = 0.12
	DefaultMorningHours       = "06:00-14:00"
	DefaultNightHours         = "14:00-23:00"
	DefaultCustomSplitTime    = "14:00"
	TraineeRole               = "Trainee"
	HoursRoundingToleranceHrs = 0.01
)

// Eligibility reasons and actors. The reason strings end up in exports
// reviewed by payroll, so they are fixed copy, not log text.
const (
	ReasonManuallyDisabled = "Manually disabled"
	ReasonBulkDisabled     = "Bulk update - manually disabled"
	ReasonWeekendExcluded  = "Weekend excluded"
	ReasonHolidayExcluded  = "Holiday closure"

	UpdatedByManager    = "Manager"
	UpdatedByAutoFilter = "CriteriaFilter"
	UpdatedBySystem     = "System"
)

// Automatic criteria filter defaults
const (
	DefaultMinDrinksPerShift    = 10
	DefaultMinEmployeesPerShift = 2
)

// Export formatting
const (
	UnknownEmployeeIDSentinel = "UNKNOWN_ID"
	UnknownLocationCode       = "UNK"
)

// LocationCodes maps timeclock location ids to the short store codes
// used in export filenames.
var LocationCodes = map[string]string{
	"435860": "CH", // Chino Hills
	"438073": "TT", // Tustin
	"442910": "KT", // Koreatown
	"442908": "SG", // San Gabriel
	"442909": "AC", // Arcadia
	"442912": "RH", // Rowland Heights
}

// Timeclock collaborator
const (
	TimeclockRequestTimeout = 2 * time.Minute
	LongRangeDays           = 7 // ranges longer than this fetch from the prior Monday
)

// Scheduled refresh
const (
	RefreshCronSpec   = "0 5 * * *" // 05:00 daily, server local time
	RefreshJobTimeout = 10 * time.Minute
)

// Persistence
const (
	StorageKeyPipelineState = "bonus-allocation-state"
	StorageKeySettings      = "bonus-split-settings"
)
