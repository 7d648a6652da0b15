package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseClockTimeTwelveHour(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"1:45 PM", 13*60 + 45},
		{"11:12 AM", 11*60 + 12},
		{"12:00 AM", 0},
		{"12:30 AM", 30},
		{"12:00 PM", 12 * 60},
		{"12:15 PM", 12*60 + 15},
		{"9:05pm", 21*60 + 5},
		{"9:05 p.m.", 21*60 + 5},
		{" 6:00 AM ", 6 * 60},
	}
	for _, tc := range cases {
		got, err := ParseClockTime(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		require.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestParseClockTimeTwentyFourHour(t *testing.T) {
	got, err := ParseClockTime("14:00")
	require.NoError(t, err)
	require.Equal(t, 840, got)

	got, err = ParseClockTime("00:00")
	require.NoError(t, err)
	require.Equal(t, 0, got)

	got, err = ParseClockTime("23:59")
	require.NoError(t, err)
	require.Equal(t, 23*60+59, got)
}

func TestParseClockTimeRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "noon", "25:00", "13:75", "13:00 PM", "0:30 AM"} {
		_, err := ParseClockTime(input)
		require.Error(t, err, "input %q", input)

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		require.Equal(t, "clock_time", parseErr.Kind)
	}
}

func TestNormalizeOvernight(t *testing.T) {
	// 10 PM in, 2 AM out: out gains a day.
	require.Equal(t, 26*60, NormalizeOvernight(22*60, 2*60))
	// Same-day shift untouched.
	require.Equal(t, 17*60, NormalizeOvernight(9*60, 17*60))
}

func TestMinutesToClock(t *testing.T) {
	require.Equal(t, "06:00", MinutesToClock(360))
	require.Equal(t, "14:05", MinutesToClock(845))
	// Past-midnight minutes wrap to next day's wall clock.
	require.Equal(t, "02:00", MinutesToClock(26*60))
}

func TestNormalizeDate(t *testing.T) {
	got, err := NormalizeDate("6/1/2024")
	require.NoError(t, err)
	require.Equal(t, "2024-06-01", got)

	got, err = NormalizeDate("12/25/2024")
	require.NoError(t, err)
	require.Equal(t, "2024-12-25", got)

	got, err = NormalizeDate("2024-06-01")
	require.NoError(t, err)
	require.Equal(t, "2024-06-01", got)

	_, err = NormalizeDate("June first")
	require.Error(t, err)
	_, err = NormalizeDate("13/1/2024")
	require.Error(t, err)
}

func TestToISOTimestampRollsForwardPastMidnight(t *testing.T) {
	got, err := ToISOTimestamp("2024-06-01", 840)
	require.NoError(t, err)
	require.Equal(t, "2024-06-01T14:00:00", got)

	got, err = ToISOTimestamp("2024-06-01", 26*60)
	require.NoError(t, err)
	require.Equal(t, "2024-06-02T02:00:00", got)
}

func TestIsWeekend(t *testing.T) {
	require.True(t, IsWeekend("2024-06-01"))  // Saturday
	require.True(t, IsWeekend("2024-06-02"))  // Sunday
	require.False(t, IsWeekend("2024-06-03")) // Monday
}

func TestRoundHours(t *testing.T) {
	require.Equal(t, 3.33, RoundHours(200.0/60))
	require.Equal(t, 4.08, RoundHours(245.0/60))
	require.Equal(t, -1.25, RoundHours(-1.2549))
	require.Equal(t, 0.0, RoundHours(0))
}
