package model

import "time"

// TaskOrder stores a user's custom display order for one view. A view is
// either the staging area (Dated == false, TargetDate nil) or a single
// calendar day. At most one row exists per view; saving replaces it.
type TaskOrder struct {
	ID         uint       `gorm:"primaryKey"`
	UserID     uint       `gorm:"index:idx_order_view,unique"`
	Dated      bool       `gorm:"index:idx_order_view,unique"`
	TargetDate *time.Time `gorm:"index:idx_order_view,unique"`
	TaskIDs    []uint     `gorm:"serializer:json"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
