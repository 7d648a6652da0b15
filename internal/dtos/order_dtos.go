package dtos

// ShiftDrinkCountDTO is one date's morning/night drink totals.
type ShiftDrinkCountDTO struct {
	Date    string `json:"date"`
	Morning int    `json:"morning"`
	Night   int    `json:"night"`
}

// OrderUploadResponse reports how an uploaded order export was
// ingested. Dropped rows are an expected filter, not an error.
type OrderUploadResponse struct {
	Accepted int                  `json:"accepted"`
	Dropped  int                  `json:"dropped"`
	Totals   []ShiftDrinkCountDTO `json:"totals"`
}

// OrderSummaryResponse returns the current per-shift drink counts.
type OrderSummaryResponse struct {
	Accepted int                  `json:"accepted"`
	Dropped  int                  `json:"dropped"`
	Totals   []ShiftDrinkCountDTO `json:"totals"`
}
