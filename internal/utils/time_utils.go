package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Clock strings arrive in two shapes: 12-hour with an AM/PM suffix
// ("1:45 PM") from the timeclock collaborator and order exports, and
// 24-hour "HH:MM" from the split configuration.
var (
	twelveHourRe     = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp])\.?[Mm]\.?$`)
	twentyFourHourRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ParseClockTime converts a clock string to minutes since midnight.
// "12:xx AM" is hour 0 and "12:xx PM" stays hour 12.
func ParseClockTime(s string) (int, error) {
	trimmed := strings.TrimSpace(s)

	if m := twelveHourRe.FindStringSubmatch(trimmed); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour < 1 || hour > 12 || minute > 59 {
			return 0, &ParseError{Input: s, Kind: "clock_time"}
		}
		isPM := strings.EqualFold(m[3], "p")
		if isPM && hour != 12 {
			hour += 12
		} else if !isPM && hour == 12 {
			hour = 0
		}
		return hour*60 + minute, nil
	}

	if m := twentyFourHourRe.FindStringSubmatch(trimmed); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return 0, &ParseError{Input: s, Kind: "clock_time"}
		}
		return hour*60 + minute, nil
	}

	return 0, &ParseError{Input: s, Kind: "clock_time"}
}

// NormalizeOvernight adjusts a clock-out that is numerically before the
// clock-in, which means the shift crossed midnight into the next day.
func NormalizeOvernight(clockInMinutes, clockOutMinutes int) int {
	if clockOutMinutes < clockInMinutes {
		return clockOutMinutes + 24*60
	}
	return clockOutMinutes
}

// MinutesToClock renders minutes-since-midnight as 24-hour "HH:MM".
// Minutes past 1439 wrap into the next day's wall clock.
func MinutesToClock(minutes int) string {
	minutes %= 24 * 60
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeDate accepts "M/D/YYYY" or "YYYY-MM-DD" and returns "YYYY-MM-DD".
func NormalizeDate(s string) (string, error) {
	trimmed := strings.TrimSpace(s)

	if strings.Contains(trimmed, "/") {
		parts := strings.Split(trimmed, "/")
		if len(parts) != 3 {
			return "", &ParseError{Input: s, Kind: "date"}
		}
		month, err1 := strconv.Atoi(parts[0])
		day, err2 := strconv.Atoi(parts[1])
		year, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 || day < 1 || day > 31 {
			return "", &ParseError{Input: s, Kind: "date"}
		}
		return fmt.Sprintf("%04d-%02d-%02d", year, month, day), nil
	}

	if _, err := time.Parse("2006-01-02", trimmed); err != nil {
		return "", &ParseError{Input: s, Kind: "date"}
	}
	return trimmed, nil
}

// ToISOTimestamp combines a normalized date with minutes-since-midnight
// into a local ISO-8601 timestamp. Minutes past 1439 roll the date forward.
func ToISOTimestamp(date string, minutes int) (string, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", &ParseError{Input: date, Kind: "date"}
	}
	ts := day.Add(time.Duration(minutes) * time.Minute)
	return ts.Format("2006-01-02T15:04:05"), nil
}

// IsWeekend reports whether a normalized date falls on Saturday or Sunday.
func IsWeekend(date string) bool {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return false
	}
	wd := day.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// RoundHours rounds an hour value to 2 decimal places, the resolution
// the payroll system accepts.
func RoundHours(h float64) float64 {
	if h < 0 {
		return -RoundHours(-h)
	}
	return float64(int64(h*100+0.5)) / 100
}
