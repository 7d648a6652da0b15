package services

import (
	"context"
	"fmt"
	"time"

	"github.com/threecat/bonus-service/internal/models"
	"github.com/threecat/bonus-service/internal/timeclock"
	"github.com/threecat/bonus-service/internal/utils"
)

// MockFetcher generates a synthetic roster for demo environments with
// no timeclock access. The punches it fabricates carry net figures but
// no break detail, which is why the demo pipeline pairs it with
// ConvertPunchesProportional rather than the exact-overlap splitter.
type MockFetcher struct{}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{}
}

type mockEmployee struct {
	id   string
	name string
	role string
}

var mockRoster = []mockEmployee{
	{"emp1", "Alice Johnson", "Shift Lead"},
	{"emp2", "Bob Smith", "Barista"},
	{"emp3", "Carol Davis", "Barista"},
	{"emp4", "David Wilson", "Shift Lead"},
	{"emp5", "Emma Brown", "Barista"},
	{"emp6", "Frank Miller", "Trainee"},
}

// FetchShiftRange fabricates one morning crew and one night crew per
// date in the window, with staggered start times so swing shifts and
// uneven hours show up in the demo data.
func (f *MockFetcher) FetchShiftRange(_ context.Context, startDate, endDate string) ([]timeclock.ShiftDisplay, error) {
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return nil, err
	}

	var punches []timeclock.ShiftDisplay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")

		// First three employees open, staggered by half an hour.
		for i, emp := range mockRoster[:3] {
			stagger := 30 * i
			punches = append(punches, mockPunch(emp, date, 6*60+stagger, 14*60+stagger, 0.5))
		}
		// Last four close, staggered by fifteen minutes, overlapping
		// the cutoff.
		for i, emp := range mockRoster[2:] {
			stagger := 15 * i
			punches = append(punches, mockPunch(emp, date, 14*60+stagger, 22*60+stagger, 0.5))
		}
	}

	utils.Logger.Infof("Generated %d mock punches for %s to %s", len(punches), startDate, endDate)
	return punches, nil
}

func mockPunch(emp mockEmployee, date string, inMinutes, outMinutes int, unpaidBreakHours float64) timeclock.ShiftDisplay {
	gross := float64(outMinutes-inMinutes) / 60
	return timeclock.ShiftDisplay{
		EmployeeID:           emp.id,
		UserName:             emp.name,
		Role:                 emp.role,
		ClockedInPacific:     utils.MinutesToClock(inMinutes),
		ClockedOutPacific:    utils.MinutesToClock(outMinutes),
		ClockedInDatePacific: date,
		NetWorkedHours:       utils.RoundHours(gross - unpaidBreakHours),
		UnpaidBreakHours:     &unpaidBreakHours,
	}
}

// SegmentShiftProportional splits a swing shift at the cutoff
// apportioning the reported unpaid break time by span-length ratio.
// This is the fallback for punch sources that report only a break
// total, with no interval timing; real timeclock data goes through
// SegmentShift instead, and the two must stay separate because only
// exact-overlap allocation preserves the per-side break sums.
func SegmentShiftProportional(shift models.RawShift, cutoffMinutes int) (segments []models.ShiftSegment, degenerate bool) {
	clockIn := shift.ClockInMinutes
	clockOut := utils.NormalizeOvernight(clockIn, shift.ClockOutMinutes)

	hasMorning := clockIn < cutoffMinutes
	hasNight := clockOut > cutoffMinutes

	switch {
	case hasMorning && hasNight:
		totalSpan := clockOut - clockIn
		morningSpan := cutoffMinutes - clockIn
		nightSpan := clockOut - cutoffMinutes

		morningRatio := float64(morningSpan) / float64(totalSpan)
		morningBreak := shift.UnpaidBreakHours * morningRatio
		nightBreak := shift.UnpaidBreakHours - morningBreak

		morningWorked := float64(morningSpan)/60 - morningBreak
		if morningWorked < 0 {
			morningWorked = 0
		}
		nightWorked := float64(nightSpan)/60 - nightBreak
		if nightWorked < 0 {
			nightWorked = 0
		}

		segments = append(segments,
			newSegment(shift, models.ShiftMorning, clockIn, cutoffMinutes,
				utils.RoundHours(morningWorked), utils.RoundHours(morningBreak)),
			newSegment(shift, models.ShiftNight, cutoffMinutes, clockOut,
				utils.RoundHours(nightWorked), utils.RoundHours(nightBreak)),
		)

	case hasMorning:
		segments = append(segments,
			newSegment(shift, models.ShiftMorning, clockIn, clockOut,
				utils.RoundHours(shift.NetWorkedHours),
				utils.RoundHours(shift.UnpaidBreakHours)))

	case hasNight:
		segments = append(segments,
			newSegment(shift, models.ShiftNight, clockIn, clockOut,
				utils.RoundHours(shift.NetWorkedHours),
				utils.RoundHours(shift.UnpaidBreakHours)))

	default:
		degenerate = true
	}

	return segments, degenerate
}

// ConvertPunchesProportional is the demo-path counterpart of
// ConvertPunches.
func ConvertPunchesProportional(punches []timeclock.ShiftDisplay, settings models.SplitSettings) (segments []models.ShiftSegment, skipped int) {
	cutoff := settings.CutoffMinutes()

	for _, punch := range punches {
		raw, err := punchToRawShift(punch)
		if err != nil {
			utils.Logger.WithError(err).Warnf("Excluding punch for %s on %s", punch.UserName, punch.ClockedInDatePacific)
			skipped++
			continue
		}

		segs, degenerate := SegmentShiftProportional(raw, cutoff)
		if degenerate {
			utils.Logger.Warn(fmt.Sprintf("Punch for %s on %s produced no segments", raw.EmployeeName, raw.Date))
			continue
		}
		segments = append(segments, segs...)
	}

	return segments, skipped
}
