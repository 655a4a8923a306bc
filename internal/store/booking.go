package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"equipment-booking-backend/internal/model"
)

// BookingFilter narrows and orders the admin booking listing.
type BookingFilter struct {
	EquipmentID int64  // 0 = all equipment
	DateFrom    string // inclusive, ISO date
	DateTo      string // inclusive, ISO date
	Student     string // case-insensitive substring of first name or e-mail
	Sort        string // date | student | equipment
	Order       string // asc | desc
	Page        int
	PageSize    int
}

// CreateBookingChecked persists a booking after re-checking conflicts inside
// a transaction. The equipment row is locked first (FOR UPDATE on engines
// that support it; SQLite serializes writers on its own), so two racing
// creates for overlapping intervals cannot both pass the check.
func (s *gormStore) CreateBookingChecked(ctx context.Context, b *model.Booking) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		eqTx := tx
		if tx.Dialector.Name() != "sqlite" {
			eqTx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var eq model.Equipment
		if err := eqTx.First(&eq, b.EquipmentID).Error; err != nil {
			return err
		}

		var conflicts int64
		err := tx.Model(&model.Booking{}).
			Where("equipment_id = ? AND booking_date = ? AND status = ?", b.EquipmentID, b.BookingDate, model.BookingActive).
			Where("start_time < ? AND end_time > ?", b.EndTime, b.StartTime).
			Count(&conflicts).Error
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrSlotTaken
		}
		return tx.Create(b).Error
	})
}

func (s *gormStore) CancelBooking(ctx context.Context, id int64, at time.Time) error {
	return s.db.WithContext(ctx).Model(&model.Booking{}).Where("id = ?", id).
		Updates(map[string]any{"status": model.BookingCancelled, "cancelled_at": at}).Error
}

func (s *gormStore) FindBooking(ctx context.Context, id int64) (*model.Booking, error) {
	var b model.Booking
	err := s.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *gormStore) FindActiveByUserAndEquipment(ctx context.Context, userID, equipmentID int64) (*model.Booking, error) {
	var b model.Booking
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND equipment_id = ? AND status = ?", userID, equipmentID, model.BookingActive).
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByEquipmentAndDate returns the active bookings of one equipment item on
// one calendar day.
func (s *gormStore) FindByEquipmentAndDate(ctx context.Context, equipmentID int64, date string) ([]model.Booking, error) {
	var list []model.Booking
	err := s.db.WithContext(ctx).
		Where("equipment_id = ? AND booking_date = ? AND status = ?", equipmentID, date, model.BookingActive).
		Find(&list).Error
	return list, err
}

var bookingSortColumns = map[string]string{
	"date":      "bookings.booking_date",
	"student":   "users.first_name",
	"equipment": "equipment.name",
}

// ListBookingsFiltered returns one page of the filtered listing plus the
// total size of the filtered set, computed with the same conditions so the
// two never drift apart.
func (s *gormStore) ListBookingsFiltered(ctx context.Context, f BookingFilter) ([]model.BookingWithNames, int64, error) {
	base := s.db.WithContext(ctx).Model(&model.Booking{}).
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("JOIN equipment ON equipment.id = bookings.equipment_id")

	if f.EquipmentID > 0 {
		base = base.Where("bookings.equipment_id = ?", f.EquipmentID)
	}
	if f.DateFrom != "" {
		base = base.Where("bookings.booking_date >= ?", f.DateFrom)
	}
	if f.DateTo != "" {
		base = base.Where("bookings.booking_date <= ?", f.DateTo)
	}
	if f.Student != "" {
		like := "%" + strings.ToLower(f.Student) + "%"
		base = base.Where("LOWER(users.first_name) LIKE ? OR LOWER(users.email) LIKE ?", like, like)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	column, ok := bookingSortColumns[f.Sort]
	if !ok {
		column = bookingSortColumns["date"]
	}
	direction := "DESC"
	if f.Order == "asc" {
		direction = "ASC"
	}

	pageSize := f.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}

	var rows []model.BookingWithNames
	err := base.Session(&gorm.Session{}).
		Select("bookings.*, users.first_name || ' ' || users.last_name AS user_name, equipment.name AS equipment_name").
		Order(column + " " + direction).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (s *gormStore) FindUserBookings(ctx context.Context, userID int64) ([]model.BookingWithNames, error) {
	var rows []model.BookingWithNames
	err := s.db.WithContext(ctx).Model(&model.Booking{}).
		Joins("JOIN equipment ON equipment.id = bookings.equipment_id").
		Select("bookings.*, equipment.name AS equipment_name").
		Where("bookings.user_id = ?", userID).
		Order("bookings.booking_date DESC, bookings.start_time DESC").
		Scan(&rows).Error
	return rows, err
}

func (s *gormStore) RecentActivity(ctx context.Context, limit int) ([]model.BookingWithNames, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []model.BookingWithNames
	err := s.db.WithContext(ctx).Model(&model.Booking{}).
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("JOIN equipment ON equipment.id = bookings.equipment_id").
		Select("bookings.*, users.first_name || ' ' || users.last_name AS user_name, equipment.name AS equipment_name").
		Where("bookings.status = ?", model.BookingActive).
		Order("bookings.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// FindDueReminders returns active bookings on the given day starting inside
// (fromTime, toTime] that have not been reminded yet.
func (s *gormStore) FindDueReminders(ctx context.Context, date, fromTime, toTime string) ([]model.Booking, error) {
	var list []model.Booking
	err := s.db.WithContext(ctx).
		Where("booking_date = ? AND status = ? AND reminder_sent = ?", date, model.BookingActive, false).
		Where("start_time > ? AND start_time <= ?", fromTime, toTime).
		Find(&list).Error
	return list, err
}

func (s *gormStore) MarkReminderSent(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Model(&model.Booking{}).Where("id = ?", id).
		Update("reminder_sent", true).Error
}
