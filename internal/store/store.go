package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"equipment-booking-backend/internal/model"
)

// ErrSlotTaken is returned by CreateBookingChecked when the transactional
// re-check finds a conflicting active booking. The workflow surfaces it as the
// same validation failure a pre-check conflict produces.
var ErrSlotTaken = errors.New("slot already taken")

// Store defines the interface for all database operations.
type Store interface {
	// Equipment
	FindEquipment(ctx context.Context, id int64) (*model.Equipment, error)
	ListActiveEquipment(ctx context.Context) ([]model.Equipment, error)
	ListAllEquipment(ctx context.Context) ([]model.Equipment, error)
	CreateEquipment(ctx context.Context, eq *model.Equipment) error
	UpdateEquipment(ctx context.Context, id int64, fields map[string]any) error
	SetEquipmentActive(ctx context.Context, id int64, active bool) error

	// Bookings
	CreateBookingChecked(ctx context.Context, b *model.Booking) error
	CancelBooking(ctx context.Context, id int64, at time.Time) error
	FindBooking(ctx context.Context, id int64) (*model.Booking, error)
	FindActiveByUserAndEquipment(ctx context.Context, userID, equipmentID int64) (*model.Booking, error)
	FindByEquipmentAndDate(ctx context.Context, equipmentID int64, date string) ([]model.Booking, error)
	ListBookingsFiltered(ctx context.Context, f BookingFilter) ([]model.BookingWithNames, int64, error)
	FindUserBookings(ctx context.Context, userID int64) ([]model.BookingWithNames, error)
	RecentActivity(ctx context.Context, limit int) ([]model.BookingWithNames, error)
	FindDueReminders(ctx context.Context, date, fromTime, toTime string) ([]model.Booking, error)
	MarkReminderSent(ctx context.Context, id int64) error

	// Blocked slots
	BlockedSlots(ctx context.Context, equipmentID int64, date string) ([]model.BlockedSlot, error)
	CreateBlockedSlot(ctx context.Context, blk *model.BlockedSlot) error
	DeleteBlockedSlot(ctx context.Context, id int64) error

	// Users
	CreateUser(ctx context.Context, u *model.User) error
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	FindUserByID(ctx context.Context, id int64) (*model.User, error)

	// Push subscriptions
	UpsertSubscription(ctx context.Context, sub *model.PushSubscription) error
	DeleteSubscription(ctx context.Context, endpoint string) error
	SubscriptionsByUser(ctx context.Context, userID int64) ([]model.PushSubscription, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}
