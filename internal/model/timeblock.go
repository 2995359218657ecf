package model

import "time"

// TimeBlock reserves a 15-minute-aligned interval on one calendar day for
// work on its owning task. Validity (ordering, same day, grid alignment,
// no overlap within the user scope) is enforced by the scheduling service;
// rows never enter the table another way.
type TimeBlock struct {
	ID        uint      `gorm:"primaryKey"`
	TaskID    uint      `gorm:"index"`
	StartTime time.Time `gorm:"index"`
	EndTime   time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
