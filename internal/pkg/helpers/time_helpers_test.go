package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCalendarDate(t *testing.T) {
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	cases := map[string]string{
		"plain date":         "2024-03-15",
		"padded":             "  2024-03-15 ",
		"utc timestamp":      "2024-03-15T10:30:00Z",
		"offset timestamp":   "2024-03-15T23:30:00+05:30",
		"fractional seconds": "2024-03-15T00:00:00.123Z",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParseCalendarDate(in)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}

	for _, bad := range []string{"", "15/03/2024", "2024-13-01", "tomorrow"} {
		_, err := ParseCalendarDate(bad)
		assert.ErrorIs(t, err, ErrInvalidDate, "input %q", bad)
	}
}

func TestDayWindow(t *testing.T) {
	start, end := DayWindow(time.Date(2024, 3, 15, 17, 45, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 59, 999_000_000, time.UTC), end)
}

func TestSameCalendarDay(t *testing.T) {
	morning := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	night := time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC)
	next := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameCalendarDay(morning, night))
	assert.False(t, SameCalendarDay(night, next))
}

func TestParseClock(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"9:00":  540,
		"09:00": 540,
		"14:30": 870,
		"23:59": 1439,
	}
	for in, want := range cases {
		got, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "24:00", "12:60", "1200", "12:5", "ab:cd", "123:00", "+9:00", "10:+5", "-0:00", "-1:00", " 9: 00"} {
		_, err := ParseClock(bad)
		assert.ErrorIs(t, err, ErrInvalidClock, "input %q", bad)
	}
}

func TestNormalizeClock(t *testing.T) {
	got, err := NormalizeClock("9:05")
	require.NoError(t, err)
	assert.Equal(t, "09:05", got)

	_, err = NormalizeClock("9h05")
	assert.Error(t, err)

	for _, signed := range []string{"+9:00", "10:+5"} {
		_, err = NormalizeClock(signed)
		assert.ErrorIs(t, err, ErrInvalidClock, signed)
	}
}

func TestClockRangesOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"identical", 600, 660, 600, 660, true},
		{"partial", 600, 660, 630, 700, true},
		{"contained", 600, 720, 630, 640, true},
		{"back to back", 600, 660, 660, 720, false},
		{"before", 480, 540, 600, 660, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClockRangesOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			assert.Equal(t, tt.want, ClockRangesOverlap(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestParseDuration(t *testing.T) {
	assert.Equal(t, 90*time.Minute, ParseDuration("1h30m", time.Hour))
	assert.Equal(t, time.Hour, ParseDuration("soon", time.Hour))
}
