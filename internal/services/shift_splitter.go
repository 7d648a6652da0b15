package services

import (
	"fmt"

	"github.com/threecat/bonus-service/internal/constants"
	"github.com/threecat/bonus-service/internal/models"
	"github.com/threecat/bonus-service/internal/timeclock"
	"github.com/threecat/bonus-service/internal/utils"
)

// SegmentShift splits one raw punch into up to two segments at the
// cutoff. Unpaid break minutes are credited to the side of the cutoff
// where they actually occurred (exact overlap), never apportioned by
// shift-length ratio. A spanning punch without break intervals cannot
// be split that way and stays whole, carrying the collaborator's
// reported net figures. A punch that produces no segments is a
// data-integrity signal, reported through the degenerate flag rather
// than an error.
func SegmentShift(shift models.RawShift, cutoffMinutes int) (segments []models.ShiftSegment, degenerate bool) {
	clockIn := shift.ClockInMinutes
	clockOut := utils.NormalizeOvernight(clockIn, shift.ClockOutMinutes)

	hasMorning := clockIn < cutoffMinutes
	hasNight := clockOut > cutoffMinutes

	if hasMorning && hasNight && len(shift.Breaks) == 0 {
		// No break timing means the unpaid minutes cannot be placed on
		// either side of the cutoff. The punch goes whole to the side
		// holding more of its span, so reported worked hours are
		// conserved.
		side := models.ShiftNight
		if cutoffMinutes-clockIn >= clockOut-cutoffMinutes {
			side = models.ShiftMorning
		}
		segments = append(segments,
			newSegment(shift, side, clockIn, clockOut,
				utils.RoundHours(shift.NetWorkedHours),
				utils.RoundHours(shift.UnpaidBreakHours)))
		return segments, false
	}

	switch {
	case hasMorning && hasNight:
		morningSpan := cutoffMinutes - clockIn
		nightSpan := clockOut - cutoffMinutes

		morningBreak, nightBreak := breakMinutesRelativeToCutoff(shift.Breaks, cutoffMinutes)

		morningWorked := morningSpan - morningBreak
		if morningWorked < 0 {
			morningWorked = 0
		}
		nightWorked := nightSpan - nightBreak
		if nightWorked < 0 {
			nightWorked = 0
		}

		segments = append(segments,
			newSegment(shift, models.ShiftMorning, clockIn, cutoffMinutes,
				utils.RoundHours(float64(morningWorked)/60),
				utils.RoundHours(float64(morningBreak)/60)),
			newSegment(shift, models.ShiftNight, cutoffMinutes, clockOut,
				utils.RoundHours(float64(nightWorked)/60),
				utils.RoundHours(float64(nightBreak)/60)),
		)

	case hasMorning:
		// Pure morning shift: trust the collaborator's own net figures,
		// no re-derivation from break intervals.
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

// breakMinutesRelativeToCutoff allocates unpaid break minutes to the
// morning or night side of the cutoff. An interval entirely on one side
// contributes its reported duration to that side; one straddling the
// cutoff is split exactly at the boundary. Paid breaks are ignored.
func breakMinutesRelativeToCutoff(breaks []models.BreakInterval, cutoffMinutes int) (morning, night int) {
	for _, brk := range breaks {
		if !brk.IsUnpaid {
			continue
		}
		switch {
		case brk.EndMinutes <= cutoffMinutes:
			morning += brk.DurationMinutes
		case brk.StartMinutes >= cutoffMinutes:
			night += brk.DurationMinutes
		default:
			morning += cutoffMinutes - brk.StartMinutes
			night += brk.EndMinutes - cutoffMinutes
		}
	}
	return morning, night
}

func newSegment(shift models.RawShift, shiftType models.ShiftType, inMinutes, outMinutes int, hoursWorked, unpaidBreakHours float64) models.ShiftSegment {
	clockIn, _ := utils.ToISOTimestamp(shift.Date, inMinutes)
	clockOut, _ := utils.ToISOTimestamp(shift.Date, outMinutes)

	return models.ShiftSegment{
		ID:               fmt.Sprintf("%s-%s-%s", shift.Date, shift.EmployeeID, shiftType),
		EmployeeID:       shift.EmployeeID,
		EmployeeName:     shift.EmployeeName,
		Date:             shift.Date,
		Shift:            shiftType,
		ClockIn:          clockIn,
		ClockOut:         clockOut,
		HoursWorked:      hoursWorked,
		UnpaidBreakHours: unpaidBreakHours,
		Role:             shift.Role,
		IsTrainee:        shift.Role == constants.TraineeRole,
		Status:           models.SegmentApproved,
	}
}

// ConvertPunches turns raw timeclock rows into segmented timesheet
// entries using the configured cutoff. A punch with an unparseable
// clock string is logged and excluded; the rest of the batch proceeds.
func ConvertPunches(punches []timeclock.ShiftDisplay, settings models.SplitSettings) (segments []models.ShiftSegment, skipped int) {
	cutoff := settings.CutoffMinutes()

	for _, punch := range punches {
		raw, err := punchToRawShift(punch)
		if err != nil {
			utils.Logger.WithError(err).Warnf("Excluding punch for %s on %s", punch.UserName, punch.ClockedInDatePacific)
			skipped++
			continue
		}

		segs, degenerate := SegmentShift(raw, cutoff)
		if degenerate {
			utils.Logger.Warnf("Punch for %s on %s produced no segments (in=%d out=%d cutoff=%d)",
				raw.EmployeeName, raw.Date, raw.ClockInMinutes, raw.ClockOutMinutes, cutoff)
			continue
		}
		segments = append(segments, segs...)
	}

	return segments, skipped
}

func punchToRawShift(punch timeclock.ShiftDisplay) (models.RawShift, error) {
	date, err := utils.NormalizeDate(punch.ClockedInDatePacific)
	if err != nil {
		return models.RawShift{}, err
	}
	clockIn, err := utils.ParseClockTime(punch.ClockedInPacific)
	if err != nil {
		return models.RawShift{}, err
	}
	clockOut, err := utils.ParseClockTime(punch.ClockedOutPacific)
	if err != nil {
		return models.RawShift{}, err
	}

	var unpaidBreakHours float64
	if punch.UnpaidBreakHours != nil {
		unpaidBreakHours = *punch.UnpaidBreakHours
	}

	raw := models.RawShift{
		EmployeeID:       punch.EmployeeID,
		EmployeeName:     punch.UserName,
		Date:             date,
		ClockInMinutes:   clockIn,
		ClockOutMinutes:  clockOut,
		NetWorkedHours:   punch.NetWorkedHours,
		UnpaidBreakHours: unpaidBreakHours,
		Role:             punch.Role,
	}

	for _, brk := range punch.BreakPeriods {
		start, err := utils.ParseClockTime(brk.StartTime)
		if err != nil {
			return models.RawShift{}, err
		}
		end, err := utils.ParseClockTime(brk.EndTime)
		if err != nil {
			return models.RawShift{}, err
		}
		raw.Breaks = append(raw.Breaks, models.BreakInterval{
			StartMinutes:    start,
			EndMinutes:      end,
			IsUnpaid:        brk.IsUnpaid,
			DurationMinutes: brk.DurationMinutes,
		})
	}

	return raw, nil
}
