package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	testCases := []struct {
		in   string
		want int
	}{
		{"00:00", 0},
		{"00:30", 30},
		{"09:15", 555},
		{"14:00", 840},
		{"23:59", 1439},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ToMinutes(tc.in))
		})
	}
}

func TestMinutesToTimeRoundTrip(t *testing.T) {
	// Every quarter-hour of the day must survive a round trip.
	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 15, 30, 45} {
			in := fmt.Sprintf("%02d:%02d", hour, minute)
			assert.Equal(t, in, MinutesToTime(ToMinutes(in)))
		}
	}
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("08:45")
	require.NoError(t, err)
	assert.Equal(t, 8, h)
	assert.Equal(t, 45, m)

	for _, bad := range []string{"", "8", "25:00", "12:60", "ab:cd"} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestOverlaps(t *testing.T) {
	testCases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{"identical intervals", "14:00", "15:00", "14:00", "15:00", true},
		{"partial overlap", "14:00", "15:00", "14:30", "15:30", true},
		{"containment", "14:00", "16:00", "14:30", "15:00", true},
		{"back to back", "14:00", "15:00", "15:00", "16:00", false},
		{"back to back reversed", "15:00", "16:00", "14:00", "15:00", false},
		{"disjoint", "08:00", "09:00", "12:00", "13:00", false},
		{"zero length never overlaps", "14:00", "14:00", "13:00", "15:00", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
		})
	}
}

func TestEndsAt(t *testing.T) {
	loc := time.UTC
	end, err := EndsAt("2025-03-10", "18:30", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 18, 30, 0, 0, loc), end)

	_, err = EndsAt("not-a-date", "18:30", loc)
	assert.Error(t, err)
}
