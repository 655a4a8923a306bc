package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"equipment-booking-backend/internal/model"
)

func testEquipment() model.Equipment {
	return model.Equipment{
		ID:                 1,
		Name:               "Pool table",
		DailyStartHour:     8,
		DailyEndHour:       22,
		MinDurationMinutes: 30,
		MaxDurationMinutes: 120,
	}
}

func TestIsCompleted(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)

	testCases := []struct {
		name    string
		booking model.Booking
		want    bool
	}{
		{
			name:    "ended earlier today",
			booking: model.Booking{Status: model.BookingActive, BookingDate: "2025-03-10", EndTime: "11:00"},
			want:    true,
		},
		{
			name:    "ends exactly now",
			booking: model.Booking{Status: model.BookingActive, BookingDate: "2025-03-10", EndTime: "12:00"},
			want:    true,
		},
		{
			name:    "still in the future",
			booking: model.Booking{Status: model.BookingActive, BookingDate: "2025-03-10", EndTime: "13:00"},
			want:    false,
		},
		{
			name:    "cancelled bookings never complete",
			booking: model.Booking{Status: model.BookingCancelled, BookingDate: "2025-03-09", EndTime: "10:00"},
			want:    false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsCompleted(tc.booking, now, loc))
		})
	}
}

func TestBuildDayEvents(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)
	eq := testEquipment()

	bookings := []model.Booking{
		{ID: 11, UserID: 7, Status: model.BookingActive, BookingDate: "2025-03-10", StartTime: "14:00", EndTime: "15:00"},
		{ID: 12, UserID: 8, Status: model.BookingActive, BookingDate: "2025-03-10", StartTime: "09:00", EndTime: "10:00"},
		{ID: 13, UserID: 7, Status: model.BookingCancelled, BookingDate: "2025-03-10", StartTime: "10:00", EndTime: "11:00"},
	}
	blocks := []model.BlockedSlot{
		{ID: 21, StartTime: "12:00", EndTime: "13:00", Reason: "maintenance"},
	}

	events := BuildDayEvents(eq, bookings, blocks, 7, now, loc)
	require.Len(t, events, 3)

	// Sorted ascending by start time; the cancelled booking is absent.
	assert.Equal(t, int64(12), events[0].ID)
	assert.True(t, events[0].IsCompleted)
	assert.False(t, events[0].IsOwn)

	assert.Equal(t, int64(21), events[1].ID)
	assert.Equal(t, EventBlocked, events[1].Type)
	assert.Equal(t, "maintenance", events[1].Reason)

	assert.Equal(t, int64(11), events[2].ID)
	assert.True(t, events[2].IsOwn)
	assert.False(t, events[2].IsCompleted)
}

func TestBuildDayEventsClampsBlocks(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)
	eq := testEquipment() // open 08:00-22:00

	blocks := []model.BlockedSlot{
		{ID: 1, StartTime: "22:00", EndTime: "23:00"}, // fully after close
		{ID: 2, StartTime: "06:00", EndTime: "08:00"}, // fully before open
		{ID: 3, StartTime: "21:30", EndTime: "22:30"}, // clipped at close
		{ID: 4, StartTime: "07:30", EndTime: "09:00"}, // clipped at open
	}

	events := BuildDayEvents(eq, nil, blocks, 0, now, loc)
	require.Len(t, events, 2)

	assert.Equal(t, int64(4), events[0].ID)
	assert.Equal(t, "08:00", events[0].StartTime)
	assert.Equal(t, "09:00", events[0].EndTime)

	assert.Equal(t, int64(3), events[1].ID)
	assert.Equal(t, "21:30", events[1].StartTime)
	assert.Equal(t, "22:00", events[1].EndTime)
}

func TestBuildDayEventsStableTieOrder(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, loc)
	eq := testEquipment()

	bookings := []model.Booking{
		{ID: 1, Status: model.BookingActive, BookingDate: "2025-03-10", StartTime: "14:00", EndTime: "14:30"},
	}
	blocks := []model.BlockedSlot{
		{ID: 2, StartTime: "14:00", EndTime: "15:00"},
	}

	events := BuildDayEvents(eq, bookings, blocks, 0, now, loc)
	require.Len(t, events, 2)
	// Same start minute: bookings were inserted first and must stay first.
	assert.Equal(t, EventBooking, events[0].Type)
	assert.Equal(t, EventBlocked, events[1].Type)
}

func TestWeekRange(t *testing.T) {
	loc := time.UTC

	testCases := []struct {
		name      string
		in        time.Time
		wantStart string
		wantEnd   string
	}{
		{"wednesday", time.Date(2025, 3, 12, 15, 4, 5, 0, loc), "2025-03-10", "2025-03-16"},
		{"monday maps to itself", time.Date(2025, 3, 10, 0, 0, 0, 0, loc), "2025-03-10", "2025-03-16"},
		{"sunday belongs to the preceding monday", time.Date(2025, 3, 16, 23, 59, 0, 0, loc), "2025-03-10", "2025-03-16"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := WeekRange(tc.in)
			assert.Equal(t, tc.wantStart, start.Format(DateLayout))
			assert.Equal(t, tc.wantEnd, end.Format(DateLayout))
		})
	}
}

func TestWeekDays(t *testing.T) {
	start, _ := WeekRange(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC))
	days := WeekDays(start)
	require.Len(t, days, 7)
	assert.Equal(t, time.Monday, days[0].Weekday())
	assert.Equal(t, time.Sunday, days[6].Weekday())
	assert.Equal(t, "2025-03-16", days[6].Format(DateLayout))
}
