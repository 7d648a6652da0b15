package dtos

// SplitSettingsDTO is the wire form of the split policy, windows as
// "HH:MM-HH:MM" ranges and the custom cutoff as "HH:MM".
type SplitSettingsDTO struct {
	SplitMethod     string `json:"split_method" validate:"required,oneof=time-based custom"`
	MorningHours    string `json:"morning_hours" validate:"required"`
	NightHours      string `json:"night_hours" validate:"required"`
	CustomSplitTime string `json:"custom_split_time" validate:"required"`
}

// UpdateSettingsRequest replaces the operator-tunable knobs.
type UpdateSettingsRequest struct {
	Split        SplitSettingsDTO `json:"split" validate:"required"`
	RatePerDrink float64          `json:"rate_per_drink" validate:"required,gt=0"`
}

// SettingsResponse returns the current knobs in wire form.
type SettingsResponse struct {
	Split        SplitSettingsDTO `json:"split"`
	RatePerDrink float64          `json:"rate_per_drink"`
}
