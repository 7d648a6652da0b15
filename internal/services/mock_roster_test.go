package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/threecat/bonus-service/internal/models"
)

func TestSegmentShiftProportionalApportionsBreakBySpan(t *testing.T) {
	// 10:00 to 18:00 with 1h of unpaid break and no interval detail:
	// the morning side spans half the shift, so it absorbs half the break.
	shift := models.RawShift{
		EmployeeID:       "emp1",
		EmployeeName:     "Alice Johnson",
		Date:             "2024-06-03",
		ClockInMinutes:   10 * 60,
		ClockOutMinutes:  18 * 60,
		NetWorkedHours:   7,
		UnpaidBreakHours: 1,
	}
	segments, degenerate := SegmentShiftProportional(shift, cutoff1400)
	require.False(t, degenerate)
	require.Len(t, segments, 2)

	require.InDelta(t, 0.5, segments[0].UnpaidBreakHours, 0.001)
	require.InDelta(t, 0.5, segments[1].UnpaidBreakHours, 0.001)
	require.InDelta(t, 3.5, segments[0].HoursWorked, 0.001)
	require.InDelta(t, 3.5, segments[1].HoursWorked, 0.001)
}

func TestSegmentShiftProportionalDiffersFromExactOverlap(t *testing.T) {
	// Same punch, break entirely in the morning: the exact-overlap
	// splitter charges it all to the morning side, the proportional one
	// spreads it. The two must stay distinct.
	shift := models.RawShift{
		EmployeeID:      "emp1",
		EmployeeName:    "Alice Johnson",
		Date:            "2024-06-03",
		ClockInMinutes:  10 * 60,
		ClockOutMinutes: 18 * 60,
		Breaks: []models.BreakInterval{
			{StartMinutes: 11 * 60, EndMinutes: 12 * 60, IsUnpaid: true, DurationMinutes: 60},
		},
		UnpaidBreakHours: 1,
	}

	exact, _ := SegmentShift(shift, cutoff1400)
	proportional, _ := SegmentShiftProportional(shift, cutoff1400)

	require.Equal(t, 1.0, exact[0].UnpaidBreakHours)
	require.Equal(t, 0.0, exact[1].UnpaidBreakHours)
	require.Equal(t, 0.5, proportional[0].UnpaidBreakHours)
	require.Equal(t, 0.5, proportional[1].UnpaidBreakHours)
}

func TestMockFetcherGeneratesRosterPerDate(t *testing.T) {
	fetcher := NewMockFetcher()
	punches, err := fetcher.FetchShiftRange(context.Background(), "2024-06-03", "2024-06-04")
	require.NoError(t, err)
	// 3 openers + 4 closers per day, two days.
	require.Len(t, punches, 14)

	segments, skipped := ConvertPunchesProportional(punches, timeBasedSettings())
	require.Zero(t, skipped)
	require.NotEmpty(t, segments)

	dates := map[string]bool{}
	for _, seg := range segments {
		dates[seg.Date] = true
	}
	require.True(t, dates["2024-06-03"])
	require.True(t, dates["2024-06-04"])
}
