package helpers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

var (
	ErrInvalidDate  = errors.New("invalid date")
	ErrInvalidClock = errors.New("invalid time of day")
)

// ParseDuration parses a duration string, returns default duration on error.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("durationStr", durationStr).Dur("defaultDuration", defaultDuration).Msg("Failed to parse duration string, using default")
		return defaultDuration
	}
	return duration
}

// ParseCalendarDate accepts "2006-01-02" or an RFC 3339 timestamp and returns the
// calendar date it names at midnight UTC. The time of day is discarded.
func ParseCalendarDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return CalendarDay(t), nil
}

// CalendarDay truncates t to midnight UTC of the date it carries in its own location.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayWindow returns the inclusive bounds [00:00:00.000, 23:59:59.999] of t's calendar day.
func DayWindow(t time.Time) (start, end time.Time) {
	start = CalendarDay(t)
	end = start.Add(24*time.Hour - time.Millisecond)
	return start, end
}

// SameCalendarDay reports whether a and b fall on the same calendar date.
func SameCalendarDay(a, b time.Time) bool {
	return CalendarDay(a).Equal(CalendarDay(b))
}

// ParseClock parses a wall-clock "H:MM" or "HH:MM" value into minutes since midnight.
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 || !isDigits(hh) || !isDigits(mm) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NormalizeClock returns s in zero-padded "HH:MM" form.
func NormalizeClock(s string) (string, error) {
	minutes, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

// ClockRangesOverlap reports whether [aStart, aEnd) and [bStart, bEnd) intersect,
// all values being minutes since midnight.
func ClockRangesOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && aEnd > bStart
}
