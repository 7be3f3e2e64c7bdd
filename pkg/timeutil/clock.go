package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the calendar-day format tasks are anchored to.
	DateLayout = "2006-01-02"
	// ClockLayout is the time-of-day format used for start times and slots.
	ClockLayout = "15:04"

	// MinutesPerDay bounds minute-of-day values.
	MinutesPerDay = 24 * 60
)

// ParseClock converts "HH:MM" into minutes since midnight.
func ParseClock(v string) (int, error) {
	v = strings.TrimSpace(v)
	h, m, ok := strings.Cut(v, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time of day %q", v)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", v)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 || len(m) != 2 {
		return 0, fmt.Errorf("invalid minute in %q", v)
	}
	return hour*60 + minute, nil
}

// MustClock is ParseClock that panics, for constants and tests.
func MustClock(v string) int {
	m, err := ParseClock(v)
	if err != nil {
		panic(err)
	}
	return m
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minutes int) string {
	minutes = ((minutes % MinutesPerDay) + MinutesPerDay) % MinutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeClock accepts "9:05" style input and returns the canonical "09:05".
func NormalizeClock(v string) (string, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(v), ":")
	if ok && len(h) == 1 {
		v = "0" + h + ":" + m
	}
	minutes, err := ParseClock(v)
	if err != nil {
		return "", err
	}
	return FormatClock(minutes), nil
}

// MinuteOf returns the minute of day of t in its own location.
func MinuteOf(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// DateOf returns the calendar day of t in its own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a "YYYY-MM-DD" string in the given location.
func ParseDate(v string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, strings.TrimSpace(v), loc)
}

// ValidDate reports whether v is a well formed calendar day.
func ValidDate(v string) bool {
	_, err := time.Parse(DateLayout, v)
	return err == nil
}

// AddDays shifts a "YYYY-MM-DD" date by n days.
func AddDays(date string, n int) (string, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}
