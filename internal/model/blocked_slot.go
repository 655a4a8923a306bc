package model

import "time"

// BlockedSlot is an admin-imposed unavailability window on one equipment item.
// It is a hard conflict source for bookings, independent of the bookings table.
type BlockedSlot struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	EquipmentID int64     `gorm:"index;not null" json:"equipmentId"`
	BlockDate   string    `gorm:"size:10;index;not null" json:"blockDate"`
	StartTime   string    `gorm:"size:5;not null" json:"startTime"`
	EndTime     string    `gorm:"size:5;not null" json:"endTime"`
	Reason      string    `gorm:"size:256" json:"reason,omitempty"`
	CreatedBy   int64     `gorm:"not null" json:"createdBy"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`

	// Associations
	Equipment Equipment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
