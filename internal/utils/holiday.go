package utils

import (
	"time"

	cal "github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/us"
)

// closureDays lists the federal holidays every location closes for.
var closureDays = cal.NewBusinessCalendar()

func init() {
	closureDays.AddHoliday(
		us.NewYear,
		us.IndependenceDay,
		us.ThanksgivingDay,
		us.ChristmasDay,
	)
}

// IsClosureHoliday reports whether a normalized date falls on a holiday
// the locations close for.
func IsClosureHoliday(date string) bool {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	ok, _, _ := closureDays.IsHoliday(day)
	return ok
}
