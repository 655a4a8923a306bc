package model

import "time"

// Equipment represents a bookable facility item (pool table, console, ...).
// Working hours and duration bounds are enforced on every booking and block.
type Equipment struct {
	ID                 int64     `gorm:"primaryKey" json:"id"`
	Name               string    `gorm:"size:100;not null" json:"name"`
	Location           string    `gorm:"size:256" json:"location"`
	IconName           string    `gorm:"size:64" json:"iconName"`
	AccentColor        string    `gorm:"size:32" json:"accentColor"`
	IsActive           bool      `gorm:"not null;default:true" json:"isActive"`
	DailyStartHour     int       `gorm:"not null" json:"dailyStartHour"`
	DailyEndHour       int       `gorm:"not null" json:"dailyEndHour"`
	MinDurationMinutes int       `gorm:"not null" json:"minDurationMinutes"`
	MaxDurationMinutes int       `gorm:"not null" json:"maxDurationMinutes"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// TableName pins the singular table name used by the listing joins.
func (Equipment) TableName() string {
	return "equipment"
}
