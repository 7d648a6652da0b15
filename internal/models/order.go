package models

// OrderRecord is one accepted row of a POS order export. Immutable once
// parsed; rows that cannot yield a date, a time, and at least one drink
// never become records.
type OrderRecord struct {
	OrderNumber string `json:"order_number"`
	OrderedAt   string `json:"ordered_at"` // raw timestamp field, kept for audit
	Status      string `json:"status"`
	Customer    string `json:"customer"`
	Items       string `json:"items"`
	Total       string `json:"total"`
	Date        string `json:"date"`         // YYYY-MM-DD
	TimeMinutes int    `json:"time_minutes"` // minutes since midnight
	DrinkCount  int    `json:"drink_count"`
}

// BucketCounts are the per-day drink totals split by shift.
type BucketCounts struct {
	Morning int `json:"morning"`
	Night   int `json:"night"`
}

// ShiftBucketTotals maps calendar date to its drink counts.
type ShiftBucketTotals map[string]*BucketCounts

// Count returns the drink total for one shift bucket.
func (t ShiftBucketTotals) Count(key ShiftKey) int {
	counts, ok := t[key.Date]
	if !ok {
		return 0
	}
	if key.Shift == ShiftMorning {
		return counts.Morning
	}
	return counts.Night
}
