// Package schedule holds the pure slot and interval computations used by the
// booking workflow: minute conversion, overlap tests, day-view assembly and
// week-range arithmetic. No I/O happens here; callers pass the clock in.
package schedule

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO calendar-date layout used across the service.
const DateLayout = "2006-01-02"

// ParseClock splits an HH:MM string into its components.
func ParseClock(t string) (hour, minute int, err error) {
	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", t)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour in %q", t)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minute in %q", t)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time %q out of range", t)
	}
	return hour, minute, nil
}

// ToMinutes converts an HH:MM string to minutes since midnight. The input is
// expected to be well-formed; malformed components count as zero.
func ToMinutes(t string) int {
	parts := strings.Split(t, ":")
	if len(parts) < 2 {
		return 0
	}
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	return h*60 + m
}

// MinutesToTime formats minutes since midnight as a zero-padded HH:MM string.
// It is the inverse of ToMinutes for valid inputs.
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Back-to-back and zero-length intervals never
// overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	aS, aE := ToMinutes(aStart), ToMinutes(aEnd)
	bS, bE := ToMinutes(bStart), ToMinutes(bEnd)
	return !(aE <= bS || bE <= aS)
}

// EndsAt resolves a booking's calendar date and end time to an instant in loc.
func EndsAt(date, endTime string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, err
	}
	h, m, err := ParseClock(endTime)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute), nil
}
