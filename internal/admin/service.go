// Package admin implements the administrator workflow: equipment management,
// blocked slots, the filtered booking listing, exports and dashboard stats.
package admin

import (
	"context"
	"io"
	"strings"
	"time"

	"equipment-booking-backend/internal/apperr"
	"equipment-booking-backend/internal/export"
	"equipment-booking-backend/internal/model"
	"equipment-booking-backend/internal/schedule"
	"equipment-booking-backend/internal/store"
)

// Service wraps the admin-only operations.
type Service struct {
	store store.Store
}

// NewService creates an admin service.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// EquipmentParams are the inputs for creating an equipment item.
type EquipmentParams struct {
	Name               string
	Location           string
	IconName           string
	AccentColor        string
	DailyStartHour     int
	DailyEndHour       int
	MinDurationMinutes int
	MaxDurationMinutes int
}

func validateEquipmentRules(name string, startHour, endHour, minDur, maxDur int) error {
	if strings.TrimSpace(name) == "" {
		return apperr.Validation("equipment name must not be empty")
	}
	if len(name) > 100 {
		return apperr.Validation("equipment name must be at most 100 characters")
	}
	if startHour < 0 || endHour > 23 || startHour >= endHour {
		return apperr.Validation("working hours must satisfy 0 <= start < end <= 23")
	}
	if minDur <= 0 || maxDur <= 0 || minDur > maxDur {
		return apperr.Validation("duration bounds must be positive and min must not exceed max")
	}
	return nil
}

// AddEquipment validates and persists a new active equipment item.
func (s *Service) AddEquipment(ctx context.Context, p EquipmentParams) (int64, error) {
	if err := validateEquipmentRules(p.Name, p.DailyStartHour, p.DailyEndHour, p.MinDurationMinutes, p.MaxDurationMinutes); err != nil {
		return 0, err
	}
	eq := &model.Equipment{
		Name:               p.Name,
		Location:           p.Location,
		IconName:           p.IconName,
		AccentColor:        p.AccentColor,
		IsActive:           true,
		DailyStartHour:     p.DailyStartHour,
		DailyEndHour:       p.DailyEndHour,
		MinDurationMinutes: p.MinDurationMinutes,
		MaxDurationMinutes: p.MaxDurationMinutes,
	}
	if err := s.store.CreateEquipment(ctx, eq); err != nil {
		return 0, err
	}
	return eq.ID, nil
}

// EquipmentUpdate carries a partial equipment update; nil fields are left
// untouched.
type EquipmentUpdate struct {
	Name               *string
	Location           *string
	IconName           *string
	AccentColor        *string
	DailyStartHour     *int
	DailyEndHour       *int
	MinDurationMinutes *int
	MaxDurationMinutes *int
	IsActive           *bool
}

// UpdateEquipment applies the defined fields and returns the updated item.
// The combined result of stored and updated values must still satisfy the
// working-hour and duration invariants.
func (s *Service) UpdateEquipment(ctx context.Context, id int64, u EquipmentUpdate) (*model.Equipment, error) {
	eq, err := s.store.FindEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	if eq == nil {
		return nil, apperr.NotFound("equipment not found")
	}

	fields := map[string]any{}
	merged := *eq
	if u.Name != nil {
		fields["name"] = *u.Name
		merged.Name = *u.Name
	}
	if u.Location != nil {
		fields["location"] = *u.Location
	}
	if u.IconName != nil {
		fields["icon_name"] = *u.IconName
	}
	if u.AccentColor != nil {
		fields["accent_color"] = *u.AccentColor
	}
	if u.DailyStartHour != nil {
		fields["daily_start_hour"] = *u.DailyStartHour
		merged.DailyStartHour = *u.DailyStartHour
	}
	if u.DailyEndHour != nil {
		fields["daily_end_hour"] = *u.DailyEndHour
		merged.DailyEndHour = *u.DailyEndHour
	}
	if u.MinDurationMinutes != nil {
		fields["min_duration_minutes"] = *u.MinDurationMinutes
		merged.MinDurationMinutes = *u.MinDurationMinutes
	}
	if u.MaxDurationMinutes != nil {
		fields["max_duration_minutes"] = *u.MaxDurationMinutes
		merged.MaxDurationMinutes = *u.MaxDurationMinutes
	}
	if u.IsActive != nil {
		fields["is_active"] = *u.IsActive
	}

	if err := validateEquipmentRules(merged.Name, merged.DailyStartHour, merged.DailyEndHour, merged.MinDurationMinutes, merged.MaxDurationMinutes); err != nil {
		return nil, err
	}
	if err := s.store.UpdateEquipment(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.store.FindEquipment(ctx, id)
}

// ToggleEquipment flips the active flag. Equipment is never deleted.
func (s *Service) ToggleEquipment(ctx context.Context, id int64, active bool) error {
	eq, err := s.store.FindEquipment(ctx, id)
	if err != nil {
		return err
	}
	if eq == nil {
		return apperr.NotFound("equipment not found")
	}
	return s.store.SetEquipmentActive(ctx, id, active)
}

// BlockParams are the inputs for creating a blocked slot.
type BlockParams struct {
	EquipmentID int64
	BlockDate   string
	StartTime   string
	EndTime     string
	Reason      string
	CreatedBy   int64
}

// CreateBlock persists an admin block after checking that it lies fully
// within the equipment's working hours and is non-empty. Collisions with
// already-active bookings are intentionally not checked; the day view shows
// both events.
func (s *Service) CreateBlock(ctx context.Context, p BlockParams) (int64, error) {
	eq, err := s.store.FindEquipment(ctx, p.EquipmentID)
	if err != nil {
		return 0, err
	}
	if eq == nil {
		return 0, apperr.NotFound("equipment not found")
	}

	if _, err := time.Parse(schedule.DateLayout, p.BlockDate); err != nil {
		return 0, apperr.Validation("invalid block date %q", p.BlockDate)
	}
	startH, startM, err := schedule.ParseClock(p.StartTime)
	if err != nil {
		return 0, apperr.Validation("invalid start time %q", p.StartTime)
	}
	endH, endM, err := schedule.ParseClock(p.EndTime)
	if err != nil {
		return 0, apperr.Validation("invalid end time %q", p.EndTime)
	}

	startMin := startH*60 + startM
	endMin := endH*60 + endM

	// Stored zero-padded so overlap checks against bookings stay exact.
	p.StartTime = schedule.MinutesToTime(startMin)
	p.EndTime = schedule.MinutesToTime(endMin)
	if startMin < eq.DailyStartHour*60 || endMin > eq.DailyEndHour*60 {
		return 0, apperr.Validation("block must be within equipment working hours (%d:00 - %d:00)", eq.DailyStartHour, eq.DailyEndHour)
	}
	if startMin >= endMin {
		return 0, apperr.Validation("start time must be before end time")
	}

	blk := &model.BlockedSlot{
		EquipmentID: p.EquipmentID,
		BlockDate:   p.BlockDate,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		Reason:      p.Reason,
		CreatedBy:   p.CreatedBy,
	}
	if err := s.store.CreateBlockedSlot(ctx, blk); err != nil {
		return 0, err
	}
	return blk.ID, nil
}

// RemoveBlock deletes a blocked slot.
func (s *Service) RemoveBlock(ctx context.Context, id int64) error {
	return s.store.DeleteBlockedSlot(ctx, id)
}

// ListResult is one page of the filtered booking listing.
type ListResult struct {
	Data     []model.BookingWithNames `json:"data"`
	Total    int64                    `json:"total"`
	Page     int                      `json:"page"`
	PageSize int                      `json:"pageSize"`
}

// ListBookings returns one page of bookings matching the filter; Total always
// reflects the whole filtered set.
func (s *Service) ListBookings(ctx context.Context, f store.BookingFilter) (ListResult, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	rows, total, err := s.store.ListBookingsFiltered(ctx, f)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Data: rows, Total: total, Page: f.Page, PageSize: f.PageSize}, nil
}

// RecentActivity returns the latest active bookings for the dashboard.
func (s *Service) RecentActivity(ctx context.Context, limit int) ([]model.BookingWithNames, error) {
	return s.store.RecentActivity(ctx, limit)
}

// ExportBookings writes a spreadsheet of every booking matching the filter
// to w, fetching the listing in batches.
func (s *Service) ExportBookings(ctx context.Context, f store.BookingFilter, w io.Writer) error {
	batch := f.PageSize
	if batch <= 0 {
		batch = 1000
	}
	f.Page = 1
	f.PageSize = batch

	var all []model.BookingWithNames
	for {
		rows, total, err := s.store.ListBookingsFiltered(ctx, f)
		if err != nil {
			return err
		}
		all = append(all, rows...)
		if len(rows) < batch || int64(len(all)) >= total {
			break
		}
		f.Page++
	}
	return export.WriteBookings(w, all)
}

// Stats summarizes the system for the admin dashboard.
type Stats struct {
	TotalBookings   int64 `json:"totalBookings"`
	ActiveEquipment int   `json:"activeEquipment"`
}

// Stats counts all bookings and the currently active equipment.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	_, total, err := s.store.ListBookingsFiltered(ctx, store.BookingFilter{Page: 1, PageSize: 1})
	if err != nil {
		return Stats{}, err
	}
	active, err := s.store.ListActiveEquipment(ctx)
	if err != nil {
		return Stats{}, err
	}
	return Stats{TotalBookings: total, ActiveEquipment: len(active)}, nil
}
