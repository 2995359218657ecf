package model

import "time"

// Task represents a single item in the planner. (Status, AssignedDate,
// EndDate) form one compound scheduling state: a task lives in the staging
// area while AssignedDate is nil, on a calendar day once assigned, and is
// completed once EndDate is set. Only ApplyStatus and MoveToStaging may
// change that triple.
type Task struct {
	ID           uint `gorm:"primaryKey"`
	UserID       uint `gorm:"index"`
	Name         string
	Description  string
	Status       Status `gorm:"default:TODO"`
	DeadlineDate *time.Time
	DeadlineTime *string // HH:MM, only meaningful with DeadlineDate
	AssignedDate *time.Time
	EndDate      *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	TimeBlocks   []TimeBlock `gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
}

// MoveToStaging pulls the task back off the calendar: both dates cleared,
// status forced to TODO regardless of prior state.
func (t *Task) MoveToStaging() {
	t.AssignedDate = nil
	t.EndDate = nil
	t.Status = StatusTodo
}

// ApplyStatus performs one status transition against a target date.
//
// A nil targetDate means the task is being dragged back to the staging area.
// The completed label stamps EndDate with the target date and leaves
// AssignedDate untouched. Any other label first un-completes the task if it
// had an EndDate, otherwise assigns it to the target date if it was still
// unscheduled, then applies the resolved status.
func (t *Task) ApplyStatus(label string, targetDate *time.Time) error {
	if targetDate == nil {
		t.MoveToStaging()
		return nil
	}
	if label == StatusDone.Label() {
		t.EndDate = targetDate
	} else {
		if t.EndDate != nil {
			t.EndDate = nil
		} else if t.AssignedDate == nil {
			t.AssignedDate = targetDate
		}
	}
	status, err := StatusFromLabel(label)
	if err != nil {
		return err
	}
	t.Status = status
	return nil
}
