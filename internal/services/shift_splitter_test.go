package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/threecat/bonus-service/internal/models"
	"github.com/threecat/bonus-service/internal/timeclock"
)

const cutoff1400 = 14 * 60

func swingShift() models.RawShift {
	// 10:30 to 18:15 with an unpaid break straddling the cutoff.
	return models.RawShift{
		EmployeeID:      "emp1",
		EmployeeName:    "Alice Johnson",
		Date:            "2024-06-03",
		ClockInMinutes:  10*60 + 30,
		ClockOutMinutes: 18*60 + 15,
		Breaks: []models.BreakInterval{
			{StartMinutes: 13*60 + 50, EndMinutes: 14*60 + 10, IsUnpaid: true, DurationMinutes: 20},
		},
		NetWorkedHours:   7.42,
		UnpaidBreakHours: 0.33,
		Role:             "Barista",
	}
}

func TestSegmentShiftSwingSplitsAtCutoff(t *testing.T) {
	segments, degenerate := SegmentShift(swingShift(), cutoff1400)
	require.False(t, degenerate)
	require.Len(t, segments, 2)

	morning, night := segments[0], segments[1]
	require.Equal(t, models.ShiftMorning, morning.Shift)
	require.Equal(t, models.ShiftNight, night.Shift)

	// 210 min span minus 10 break min = 3.33h; 255 minus 10 = 4.08h.
	require.InDelta(t, 3.33, morning.HoursWorked, 0.001)
	require.InDelta(t, 4.08, night.HoursWorked, 0.001)
	require.InDelta(t, 0.17, morning.UnpaidBreakHours, 0.005)
	require.InDelta(t, 0.17, night.UnpaidBreakHours, 0.005)

	require.Equal(t, "2024-06-03T10:30:00", morning.ClockIn)
	require.Equal(t, "2024-06-03T14:00:00", morning.ClockOut)
	require.Equal(t, "2024-06-03T14:00:00", night.ClockIn)
	require.Equal(t, "2024-06-03T18:15:00", night.ClockOut)
}

func TestSegmentShiftHourSumsWithinTolerance(t *testing.T) {
	shift := swingShift()
	segments, _ := SegmentShift(shift, cutoff1400)
	require.Len(t, segments, 2)

	workedSum := segments[0].HoursWorked + segments[1].HoursWorked
	require.InDelta(t, shift.NetWorkedHours, workedSum, 0.01)

	breakSum := segments[0].UnpaidBreakHours + segments[1].UnpaidBreakHours
	require.InDelta(t, 20.0/60, breakSum, 0.01)
}

func TestBreakAllocationRelativeToCutoff(t *testing.T) {
	before := models.BreakInterval{StartMinutes: 11 * 60, EndMinutes: 11*60 + 30, IsUnpaid: true, DurationMinutes: 30}
	after := models.BreakInterval{StartMinutes: 15 * 60, EndMinutes: 15*60 + 45, IsUnpaid: true, DurationMinutes: 45}
	straddle := models.BreakInterval{StartMinutes: 13*60 + 45, EndMinutes: 14*60 + 15, IsUnpaid: true, DurationMinutes: 30}
	paid := models.BreakInterval{StartMinutes: 12 * 60, EndMinutes: 12*60 + 10, IsUnpaid: false, DurationMinutes: 10}

	morning, night := breakMinutesRelativeToCutoff([]models.BreakInterval{before, after, straddle, paid}, cutoff1400)
	require.Equal(t, 30+15, morning)
	require.Equal(t, 45+15, night)
}

func TestSegmentShiftNoBreakDetailStaysWhole(t *testing.T) {
	// 10:00 to 18:00, reported 7.5h net over a 0.5h unpaid break, but
	// no break timing. The unpaid minutes cannot be placed around the
	// cutoff, so the punch stays one segment carrying the reported
	// figures instead of span-splitting into 4.0h + 4.0h.
	shift := models.RawShift{
		EmployeeID:       "emp7",
		EmployeeName:     "Grace Lee",
		Date:             "2024-06-03",
		ClockInMinutes:   10 * 60,
		ClockOutMinutes:  18 * 60,
		NetWorkedHours:   7.5,
		UnpaidBreakHours: 0.5,
	}
	segments, degenerate := SegmentShift(shift, cutoff1400)
	require.False(t, degenerate)
	require.Len(t, segments, 1)
	// Equal spans on both sides of the cutoff resolve to morning.
	require.Equal(t, models.ShiftMorning, segments[0].Shift)
	require.Equal(t, 7.5, segments[0].HoursWorked)
	require.Equal(t, 0.5, segments[0].UnpaidBreakHours)
}

func TestSegmentShiftNoBreakDetailPicksMajoritySide(t *testing.T) {
	shift := models.RawShift{
		EmployeeID:      "emp8",
		EmployeeName:    "Henry Park",
		Date:            "2024-06-03",
		ClockInMinutes:  12 * 60,
		ClockOutMinutes: 20 * 60,
		NetWorkedHours:  8,
	}
	segments, _ := SegmentShift(shift, cutoff1400)
	require.Len(t, segments, 1)
	require.Equal(t, models.ShiftNight, segments[0].Shift)
	require.Equal(t, 8.0, segments[0].HoursWorked)
}

func TestSegmentShiftPureMorningUsesReportedNet(t *testing.T) {
	shift := models.RawShift{
		EmployeeID:       "emp2",
		EmployeeName:     "Bob Smith",
		Date:             "2024-06-03",
		ClockInMinutes:   6 * 60,
		ClockOutMinutes:  13 * 60,
		NetWorkedHours:   6.5,
		UnpaidBreakHours: 0.5,
	}
	segments, degenerate := SegmentShift(shift, cutoff1400)
	require.False(t, degenerate)
	require.Len(t, segments, 1)
	require.Equal(t, models.ShiftMorning, segments[0].Shift)
	require.Equal(t, 6.5, segments[0].HoursWorked)
	require.Equal(t, 0.5, segments[0].UnpaidBreakHours)
}

func TestSegmentShiftPureNight(t *testing.T) {
	shift := models.RawShift{
		EmployeeID:      "emp3",
		EmployeeName:    "Carol Davis",
		Date:            "2024-06-03",
		ClockInMinutes:  15 * 60,
		ClockOutMinutes: 22 * 60,
		NetWorkedHours:  7,
	}
	segments, degenerate := SegmentShift(shift, cutoff1400)
	require.False(t, degenerate)
	require.Len(t, segments, 1)
	require.Equal(t, models.ShiftNight, segments[0].Shift)
}

func TestSegmentShiftOvernightNormalization(t *testing.T) {
	// 6 PM in, 2 AM out: a single night segment whose clock-out lands
	// on the next calendar day.
	shift := models.RawShift{
		EmployeeID:      "emp4",
		EmployeeName:    "David Wilson",
		Date:            "2024-06-03",
		ClockInMinutes:  18 * 60,
		ClockOutMinutes: 2 * 60,
		NetWorkedHours:  8,
	}
	segments, degenerate := SegmentShift(shift, cutoff1400)
	require.False(t, degenerate)
	require.Len(t, segments, 1)
	require.Equal(t, models.ShiftNight, segments[0].Shift)
	require.Equal(t, "2024-06-04T02:00:00", segments[0].ClockOut)
}

func TestSegmentShiftDegenerate(t *testing.T) {
	// Zero-length punch exactly at the cutoff produces nothing.
	shift := models.RawShift{
		EmployeeID:      "emp5",
		EmployeeName:    "Emma Brown",
		Date:            "2024-06-03",
		ClockInMinutes:  cutoff1400,
		ClockOutMinutes: cutoff1400,
	}
	segments, degenerate := SegmentShift(shift, cutoff1400)
	require.True(t, degenerate)
	require.Empty(t, segments)
}

func TestSegmentShiftClampsNegativeWorkedMinutes(t *testing.T) {
	// Break longer than the morning span: worked hours floor at zero
	// rather than going negative.
	shift := models.RawShift{
		EmployeeID:      "emp6",
		EmployeeName:    "Frank Miller",
		Date:            "2024-06-03",
		ClockInMinutes:  13*60 + 50,
		ClockOutMinutes: 18 * 60,
		Breaks: []models.BreakInterval{
			{StartMinutes: 13 * 60, EndMinutes: 14 * 60, IsUnpaid: true, DurationMinutes: 60},
		},
	}
	segments, degenerate := SegmentShift(shift, cutoff1400)
	require.False(t, degenerate)
	require.Len(t, segments, 2)
	require.Equal(t, 0.0, segments[0].HoursWorked)
}

func TestSegmentShiftIdempotent(t *testing.T) {
	first, _ := SegmentShift(swingShift(), cutoff1400)
	second, _ := SegmentShift(swingShift(), cutoff1400)
	require.Equal(t, first, second)
}

func TestSegmentShiftMarksTrainee(t *testing.T) {
	shift := swingShift()
	shift.Role = "Trainee"
	segments, _ := SegmentShift(shift, cutoff1400)
	for _, seg := range segments {
		require.True(t, seg.IsTrainee)
	}
}

func TestConvertPunchesSkipsUnparseableRows(t *testing.T) {
	settings := timeBasedSettings()
	punches := []timeclock.ShiftDisplay{
		{
			EmployeeID:           "emp1",
			UserName:             "Alice Johnson",
			ClockedInPacific:     "10:30 AM",
			ClockedOutPacific:    "6:15 PM",
			ClockedInDatePacific: "6/3/2024",
			NetWorkedHours:       7.75,
			BreakPeriods: []timeclock.BreakPeriod{
				{StartTime: "1:00 PM", EndTime: "1:30 PM", IsUnpaid: false, DurationMinutes: 30},
			},
		},
		{
			EmployeeID:           "emp2",
			UserName:             "Bob Smith",
			ClockedInPacific:     "not a time",
			ClockedOutPacific:    "6:15 PM",
			ClockedInDatePacific: "6/3/2024",
		},
	}

	segments, skipped := ConvertPunches(punches, settings)
	require.Equal(t, 1, skipped)
	require.Len(t, segments, 2) // the good punch spans the cutoff
	for _, seg := range segments {
		require.Equal(t, "2024-06-03", seg.Date)
		require.Equal(t, "emp1", seg.EmployeeID)
	}
}

func timeBasedSettings() models.SplitSettings {
	return models.SplitSettings{
		Method:       models.SplitTimeBased,
		MorningStart: 6 * 60,
		MorningEnd:   14 * 60,
		NightStart:   14 * 60,
		NightEnd:     23 * 60,
		CustomCutoff: 14 * 60,
	}
}
