package model

import "time"

// User roles.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// User represents a registered account.
type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:256;not null" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	FirstName    string    `gorm:"size:100;not null" json:"firstName"`
	LastName     string    `gorm:"size:100;not null" json:"lastName"`
	Role         string    `gorm:"size:16;not null;default:student" json:"role"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
}
