package models

import "time"

// WaitlistEntry is one normalized email address asking for early access.
// Rows are created once and never updated or deleted by the service.
type WaitlistEntry struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"type:text;not null;uniqueIndex"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist"
}
