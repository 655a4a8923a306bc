// Package booking implements the reservation workflow: validation against
// equipment working hours and duration bounds, conflict detection, the
// active -> cancelled lifecycle and the computed day/week views.
package booking

import (
	"context"
	"errors"
	"time"

	"equipment-booking-backend/internal/apperr"
	"equipment-booking-backend/internal/model"
	"equipment-booking-backend/internal/schedule"
	"equipment-booking-backend/internal/store"
)

// Actor identifies the user performing an operation. Workflow calls always
// receive it explicitly; nothing is read from ambient request state.
type Actor struct {
	ID   int64
	Role string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// Service orchestrates booking creation, cancellation and view assembly.
type Service struct {
	store store.Store
	loc   *time.Location

	nowFunc func() time.Time
}

// NewService creates a booking service operating in the given timezone.
func NewService(st store.Store, loc *time.Location) *Service {
	return &Service{store: st, loc: loc, nowFunc: time.Now}
}

// CreateParams are the inputs of a booking creation request.
type CreateParams struct {
	EquipmentID int64
	BookingDate string // YYYY-MM-DD
	StartTime   string // HH:MM
	EndTime     string // HH:MM
}

// Create validates and persists a new active booking, returning its id.
// Validation order: equipment existence and activity, working hours, duration
// bounds, the one-active-booking-per-user-per-equipment rule, then conflicts
// with same-day bookings and admin blocks. The final persist re-checks
// conflicts transactionally, so a racing create fails the same way a
// pre-check conflict does.
func (s *Service) Create(ctx context.Context, actor Actor, p CreateParams) (int64, error) {
	if actor.ID == 0 {
		return 0, apperr.Unauthenticated("you must be logged in")
	}
	if _, err := time.ParseInLocation(schedule.DateLayout, p.BookingDate, s.loc); err != nil {
		return 0, apperr.Validation("invalid booking date %q", p.BookingDate)
	}
	startHour, startMin, err := schedule.ParseClock(p.StartTime)
	if err != nil {
		return 0, apperr.Validation("invalid start time %q", p.StartTime)
	}
	endHour, endMin, err := schedule.ParseClock(p.EndTime)
	if err != nil {
		return 0, apperr.Validation("invalid end time %q", p.EndTime)
	}

	// Canonical zero-padded form. Conflict and reminder queries compare
	// these columns lexicographically, so "8:00" must never be stored.
	p.StartTime = schedule.MinutesToTime(startHour*60 + startMin)
	p.EndTime = schedule.MinutesToTime(endHour*60 + endMin)

	eq, err := s.store.FindEquipment(ctx, p.EquipmentID)
	if err != nil {
		return 0, err
	}
	if eq == nil {
		return 0, apperr.NotFound("equipment not found")
	}
	if !eq.IsActive {
		return 0, apperr.Validation("this equipment is unavailable")
	}

	if startHour < eq.DailyStartHour || startHour >= eq.DailyEndHour {
		return 0, apperr.Validation("equipment is available from %d:00 to %d:00", eq.DailyStartHour, eq.DailyEndHour)
	}
	if endHour < eq.DailyStartHour || endHour > eq.DailyEndHour {
		return 0, apperr.Validation("booking must end by %d:00", eq.DailyEndHour)
	}

	duration := schedule.ToMinutes(p.EndTime) - schedule.ToMinutes(p.StartTime)
	if duration < eq.MinDurationMinutes {
		return 0, apperr.Validation("minimum booking length is %d minutes", eq.MinDurationMinutes)
	}
	if duration > eq.MaxDurationMinutes {
		return 0, apperr.Validation("maximum booking length is %d minutes", eq.MaxDurationMinutes)
	}

	existing, err := s.store.FindActiveByUserAndEquipment(ctx, actor.ID, p.EquipmentID)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, apperr.Validation("you already have an active booking for this equipment")
	}

	sameDay, err := s.store.FindByEquipmentAndDate(ctx, p.EquipmentID, p.BookingDate)
	if err != nil {
		return 0, err
	}
	for _, b := range sameDay {
		if schedule.Overlaps(p.StartTime, p.EndTime, b.StartTime, b.EndTime) {
			return 0, apperr.Validation("this slot is already taken")
		}
	}

	blocks, err := s.store.BlockedSlots(ctx, p.EquipmentID, p.BookingDate)
	if err != nil {
		return 0, err
	}
	for _, blk := range blocks {
		if schedule.Overlaps(p.StartTime, p.EndTime, blk.StartTime, blk.EndTime) {
			return 0, apperr.Validation("this slot is blocked by the administrator")
		}
	}

	b := &model.Booking{
		UserID:      actor.ID,
		EquipmentID: p.EquipmentID,
		BookingDate: p.BookingDate,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		Status:      model.BookingActive,
	}
	if err := s.store.CreateBookingChecked(ctx, b); err != nil {
		if errors.Is(err, store.ErrSlotTaken) {
			return 0, apperr.Validation("this slot is already taken")
		}
		return 0, err
	}
	return b.ID, nil
}

// Cancel moves an active booking to cancelled. Only the owner or an admin may
// cancel; cancelling twice is rejected.
func (s *Service) Cancel(ctx context.Context, id int64, actor Actor) error {
	if actor.ID == 0 {
		return apperr.Unauthenticated("you must be logged in")
	}
	b, err := s.store.FindBooking(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return apperr.NotFound("booking not found")
	}
	if b.UserID != actor.ID && !actor.IsAdmin() {
		return apperr.Forbidden("you are not allowed to cancel this booking")
	}
	if b.Status == model.BookingCancelled {
		return apperr.Validation("booking is already cancelled")
	}
	return s.store.CancelBooking(ctx, id, s.nowFunc())
}

// DayEvents assembles the ordered event view of one equipment item and day.
func (s *Service) DayEvents(ctx context.Context, equipmentID int64, date string, currentUserID int64) (schedule.DaySlots, error) {
	eq, err := s.store.FindEquipment(ctx, equipmentID)
	if err != nil {
		return schedule.DaySlots{}, err
	}
	if eq == nil {
		return schedule.DaySlots{}, apperr.NotFound("equipment not found")
	}

	day, err := time.ParseInLocation(schedule.DateLayout, date, s.loc)
	if err != nil {
		return schedule.DaySlots{}, apperr.Validation("invalid date %q", date)
	}

	bookings, err := s.store.FindByEquipmentAndDate(ctx, equipmentID, date)
	if err != nil {
		return schedule.DaySlots{}, err
	}
	blocks, err := s.store.BlockedSlots(ctx, equipmentID, date)
	if err != nil {
		return schedule.DaySlots{}, err
	}

	return schedule.DaySlots{
		Date:    date,
		DayName: day.Weekday().String(),
		Events:  schedule.BuildDayEvents(*eq, bookings, blocks, currentUserID, s.nowFunc(), s.loc),
	}, nil
}

// Week assembles the Monday-to-Sunday view containing refDate by invoking the
// per-day generator for each of the seven days. Read-only composition.
func (s *Service) Week(ctx context.Context, equipmentID int64, refDate time.Time, currentUserID int64) (schedule.WeekView, error) {
	start, end := schedule.WeekRange(refDate.In(s.loc))

	view := schedule.WeekView{
		WeekStart: start.Format(schedule.DateLayout),
		WeekEnd:   end.Format(schedule.DateLayout),
		Days:      make([]schedule.DaySlots, 0, 7),
	}
	for _, day := range schedule.WeekDays(start) {
		slots, err := s.DayEvents(ctx, equipmentID, day.Format(schedule.DateLayout), currentUserID)
		if err != nil {
			return schedule.WeekView{}, err
		}
		view.Days = append(view.Days, slots)
	}
	return view, nil
}

// UserBooking is a listing row for the "my bookings" view.
type UserBooking struct {
	model.BookingWithNames
	IsCompleted bool `json:"isCompleted"`
}

// ListUserBookings returns the user's bookings, newest first, with the
// derived completed flag.
func (s *Service) ListUserBookings(ctx context.Context, userID int64) ([]UserBooking, error) {
	rows, err := s.store.FindUserBookings(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.nowFunc()
	out := make([]UserBooking, 0, len(rows))
	for _, r := range rows {
		out = append(out, UserBooking{
			BookingWithNames: r,
			IsCompleted:      schedule.IsCompleted(r.Booking, now, s.loc),
		})
	}
	return out, nil
}
