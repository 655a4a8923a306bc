package model

import "time"

// Booking statuses. A booking only ever moves active -> cancelled.
const (
	BookingActive    = "active"
	BookingCancelled = "cancelled"
)

// Booking represents a reservation of one equipment item on one calendar day.
// BookingDate is an ISO date (YYYY-MM-DD); StartTime/EndTime are equipment-local
// HH:MM strings. "Completed" is never stored: it is derived from the wall clock
// by the schedule package.
type Booking struct {
	ID           int64      `gorm:"primaryKey" json:"id"`
	UserID       int64      `gorm:"index;not null" json:"userId"`
	EquipmentID  int64      `gorm:"index;not null" json:"equipmentId"`
	BookingDate  string     `gorm:"size:10;index;not null" json:"bookingDate"`
	StartTime    string     `gorm:"size:5;not null" json:"startTime"`
	EndTime      string     `gorm:"size:5;not null" json:"endTime"`
	Status       string     `gorm:"size:16;index;not null;default:active" json:"status"`
	ReminderSent bool       `gorm:"not null;default:false" json:"-"`
	CreatedAt    time.Time  `gorm:"not null" json:"createdAt"`
	CancelledAt  *time.Time `json:"cancelledAt,omitempty"`

	// Associations
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Equipment Equipment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// BookingWithNames is a listing row joined with user and equipment names.
type BookingWithNames struct {
	Booking
	UserName      string `json:"userName"`
	EquipmentName string `json:"equipmentName"`
}
