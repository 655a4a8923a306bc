package schedule

import (
	"sort"
	"time"

	"equipment-booking-backend/internal/model"
)

// Event types in a day view.
const (
	EventBooking = "booking"
	EventBlocked = "blocked"
)

// Event is one occupied interval in a day view: an active booking or an
// admin block clamped to working hours.
type Event struct {
	ID          int64  `json:"id"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Type        string `json:"type"`
	IsOwn       bool   `json:"isOwn"`
	IsCompleted bool   `json:"isCompleted"`
	Reason      string `json:"reason,omitempty"`
}

// DaySlots is the computed view of a single calendar day.
type DaySlots struct {
	Date    string  `json:"date"`
	DayName string  `json:"dayName"`
	Events  []Event `json:"events"`
}

// WeekView is the computed Monday-to-Sunday view of one equipment item.
type WeekView struct {
	WeekStart string     `json:"weekStart"`
	WeekEnd   string     `json:"weekEnd"`
	Days      []DaySlots `json:"days"`
}

// IsCompleted reports whether an active booking lies entirely in the past:
// bookingDate+endTime has been reached. Cancelled bookings are never
// completed.
func IsCompleted(b model.Booking, now time.Time, loc *time.Location) bool {
	if b.Status != model.BookingActive {
		return false
	}
	end, err := EndsAt(b.BookingDate, b.EndTime, loc)
	if err != nil {
		return false
	}
	return !end.After(now)
}

// BuildDayEvents assembles the ordered event list for one equipment item and
// day. Only active bookings contribute events; blocks are clipped to the
// equipment's working hours and dropped when they fall entirely outside them.
// The sort is stable so that ties keep insertion order.
func BuildDayEvents(eq model.Equipment, bookings []model.Booking, blocks []model.BlockedSlot, currentUserID int64, now time.Time, loc *time.Location) []Event {
	events := make([]Event, 0, len(bookings)+len(blocks))

	for _, b := range bookings {
		if b.Status != model.BookingActive {
			continue
		}
		events = append(events, Event{
			ID:          b.ID,
			StartTime:   b.StartTime,
			EndTime:     b.EndTime,
			Type:        EventBooking,
			IsOwn:       b.UserID == currentUserID,
			IsCompleted: IsCompleted(b, now, loc),
		})
	}

	dayStart := eq.DailyStartHour * 60
	dayEnd := eq.DailyEndHour * 60

	for _, blk := range blocks {
		start := ToMinutes(blk.StartTime)
		end := ToMinutes(blk.EndTime)

		// Entirely outside working hours: no event.
		if end <= dayStart || start >= dayEnd {
			continue
		}
		if start < dayStart {
			start = dayStart
		}
		if end > dayEnd {
			end = dayEnd
		}

		events = append(events, Event{
			ID:        blk.ID,
			StartTime: MinutesToTime(start),
			EndTime:   MinutesToTime(end),
			Type:      EventBlocked,
			Reason:    blk.Reason,
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		return ToMinutes(events[i].StartTime) < ToMinutes(events[j].StartTime)
	})
	return events
}

// WeekRange returns the Monday and Sunday of the ISO week containing t,
// normalized to midnight in t's location.
func WeekRange(t time.Time) (start, end time.Time) {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7
	start = day.AddDate(0, 0, -offset)
	end = start.AddDate(0, 0, 6)
	return start, end
}

// WeekDays enumerates the seven calendar days starting at start.
func WeekDays(start time.Time) []time.Time {
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}
