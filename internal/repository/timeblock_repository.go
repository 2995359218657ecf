package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/planwheel/planwheel-server/internal/apperr"
	"github.com/planwheel/planwheel-server/internal/model"
)

// RangeScope parametrizes the overlap existence query: the user whose plan
// is checked, the candidate window, and optionally a block id to leave out
// (the block being updated).
type RangeScope struct {
	UserID    uint
	Start     time.Time
	End       time.Time
	ExcludeID *uint
}

// TimeBlockRepository handles CRUD for time blocks.
type TimeBlockRepository struct {
	db *gorm.DB
}

func NewTimeBlockRepository(db *gorm.DB) *TimeBlockRepository {
	return &TimeBlockRepository{db: db}
}

func (r *TimeBlockRepository) Create(ctx context.Context, block *model.TimeBlock) error {
	if err := r.db.WithContext(ctx).Create(block).Error; err != nil {
		return fmt.Errorf("create time block: %w", err)
	}
	return nil
}

// FindByTaskAndID resolves a block belonging to the task or reports
// NOT_FOUND_TIME_BLOCK.
func (r *TimeBlockRepository) FindByTaskAndID(ctx context.Context, taskID, blockID uint) (*model.TimeBlock, error) {
	var block model.TimeBlock
	if err := r.db.WithContext(ctx).Where("task_id = ? AND id = ?", taskID, blockID).First(&block).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFoundTimeBlock
		}
		return nil, fmt.Errorf("find time block: %w", err)
	}
	return &block, nil
}

// ExistsWithinRange reports whether any block in scope has both its start
// and its end inside [scope.Start, scope.End], bounds inclusive. This is a
// containment test on the stored endpoints, not a general intersection
// test: a block straddling either edge of the window does not count.
func (r *TimeBlockRepository) ExistsWithinRange(ctx context.Context, scope RangeScope) (bool, error) {
	db := r.db.WithContext(ctx).Model(&model.TimeBlock{}).
		Joins("JOIN tasks ON tasks.id = time_blocks.task_id").
		Where("tasks.user_id = ?", scope.UserID).
		Where("time_blocks.start_time BETWEEN ? AND ?", scope.Start, scope.End).
		Where("time_blocks.end_time BETWEEN ? AND ?", scope.Start, scope.End)
	if scope.ExcludeID != nil {
		db = db.Where("time_blocks.id <> ?", *scope.ExcludeID)
	}

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check overlap: %w", err)
	}
	return count > 0, nil
}

// ListByTaskInWindow returns a task's blocks contained in [start, end],
// earliest first.
func (r *TimeBlockRepository) ListByTaskInWindow(ctx context.Context, taskID uint, start, end time.Time) ([]model.TimeBlock, error) {
	var blocks []model.TimeBlock
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND start_time BETWEEN ? AND ? AND end_time BETWEEN ? AND ?", taskID, start, end, start, end).
		Order("start_time ASC").
		Find(&blocks).Error
	if err != nil {
		return nil, fmt.Errorf("list time blocks: %w", err)
	}
	return blocks, nil
}

// FindByTaskAndDay returns the task's block on the given calendar day, or
// nil when the task has none that day.
func (r *TimeBlockRepository) FindByTaskAndDay(ctx context.Context, taskID uint, day time.Time) (*model.TimeBlock, error) {
	startOfDay := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	endOfDay := time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, day.Location())

	var block model.TimeBlock
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND start_time BETWEEN ? AND ?", taskID, startOfDay, endOfDay).
		First(&block).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find time block by day: %w", err)
	}
	return &block, nil
}

func (r *TimeBlockRepository) Save(ctx context.Context, block *model.TimeBlock) error {
	if err := r.db.WithContext(ctx).Save(block).Error; err != nil {
		return fmt.Errorf("save time block: %w", err)
	}
	return nil
}

func (r *TimeBlockRepository) Delete(ctx context.Context, block *model.TimeBlock) error {
	if err := r.db.WithContext(ctx).Delete(block).Error; err != nil {
		return fmt.Errorf("delete time block: %w", err)
	}
	return nil
}
