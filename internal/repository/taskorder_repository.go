package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/planwheel/planwheel-server/internal/model"
)

// TaskOrderRepository stores per-view custom task orders.
type TaskOrderRepository struct {
	db *gorm.DB
}

func NewTaskOrderRepository(db *gorm.DB) *TaskOrderRepository {
	return &TaskOrderRepository{db: db}
}

// FindByView returns the stored order for (user, dated?, date), or nil when
// the user never saved one for that view.
func (r *TaskOrderRepository) FindByView(ctx context.Context, userID uint, dated bool, targetDate *time.Time) (*model.TaskOrder, error) {
	db := r.db.WithContext(ctx).Where("user_id = ? AND dated = ?", userID, dated)
	if targetDate == nil {
		db = db.Where("target_date IS NULL")
	} else {
		db = db.Where("target_date = ?", *targetDate)
	}

	var order model.TaskOrder
	err := db.First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find task order: %w", err)
	}
	return &order, nil
}

// Replace upserts the order for its view: the previous row for the same
// (user, dated?, date) key is overwritten wholesale.
func (r *TaskOrderRepository) Replace(ctx context.Context, order *model.TaskOrder) error {
	existing, err := r.FindByView(ctx, order.UserID, order.Dated, order.TargetDate)
	if err != nil {
		return err
	}
	db := r.db.WithContext(ctx)
	if existing != nil {
		existing.TaskIDs = order.TaskIDs
		if err := db.Save(existing).Error; err != nil {
			return fmt.Errorf("update task order: %w", err)
		}
		*order = *existing
		return nil
	}
	if err := db.Create(order).Error; err != nil {
		return fmt.Errorf("create task order: %w", err)
	}
	return nil
}
