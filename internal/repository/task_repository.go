package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/planwheel/planwheel-server/internal/apperr"
	"github.com/planwheel/planwheel-server/internal/model"
)

// TaskSort selects the retrieval order for task lists.
type TaskSort int

const (
	SortRecent TaskSort = iota // newest created first
	SortOld                    // oldest created first
	SortNear                   // deadline closest to the reference time first
	SortFar                    // deadline farthest from the reference time first
)

// TaskQuery bundles the scope and ordering of a task list query. A nil
// TargetDate selects the staging partition (assigned_date IS NULL), a
// non-nil one the tasks assigned to that day.
type TaskQuery struct {
	UserID     uint
	TargetDate *time.Time
	Sort       TaskSort
	Reference  time.Time // distance anchor for SortNear / SortFar
}

// TaskRepository handles CRUD for tasks.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// FindByUserAndID resolves a task owned by the user or reports
// NOT_FOUND_TASK. Ownership is part of the key, so another user's task id
// is indistinguishable from an absent one.
func (r *TaskRepository) FindByUserAndID(ctx context.Context, userID, taskID uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, taskID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFoundTask
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return &task, nil
}

// List returns the tasks in one partition of the user's plan, ordered per
// the query.
func (r *TaskRepository) List(ctx context.Context, q TaskQuery) ([]model.Task, error) {
	db := r.db.WithContext(ctx).Where("user_id = ?", q.UserID)
	if q.TargetDate == nil {
		db = db.Where("assigned_date IS NULL")
	} else {
		db = db.Where("assigned_date = ?", *q.TargetDate)
	}

	switch q.Sort {
	case SortOld:
		db = db.Order("created_at ASC")
	case SortNear:
		db = db.Clauses(deadlineDistanceOrder(q.Reference, "ASC"))
	case SortFar:
		db = db.Clauses(deadlineDistanceOrder(q.Reference, "DESC"))
	default:
		db = db.Order("created_at DESC")
	}

	var tasks []model.Task
	if err := db.Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// deadlineDistanceOrder sorts by absolute distance between the deadline and
// the reference time; tasks without a deadline always sort last.
func deadlineDistanceOrder(reference time.Time, direction string) clause.OrderBy {
	return clause.OrderBy{
		Expression: clause.Expr{
			SQL:                "deadline_date IS NULL ASC, ABS(julianday(deadline_date) - julianday(?)) " + direction,
			Vars:               []interface{}{reference.Format("2006-01-02 15:04:05")},
			WithoutParentheses: true,
		},
	}
}

// ListWithBlocksInWindow returns the user's tasks having at least one time
// block whose start and end both fall inside [start, end].
func (r *TaskRepository) ListWithBlocksInWindow(ctx context.Context, userID uint, start, end time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("EXISTS (SELECT 1 FROM time_blocks tb WHERE tb.task_id = tasks.id AND tb.start_time BETWEEN ? AND ? AND tb.end_time BETWEEN ? AND ?)",
			start, end, start, end).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list tasks with blocks: %w", err)
	}
	return tasks, nil
}

// ListOverdueTodo returns TODO tasks across all users whose assigned day
// lies strictly before the cutoff date.
func (r *TaskRepository) ListOverdueTodo(ctx context.Context, cutoff time.Time) ([]model.Task, error) {
	var tasks []model.Task
	err := r.db.WithContext(ctx).
		Where("status = ? AND assigned_date IS NOT NULL AND assigned_date < ?", model.StatusTodo, cutoff).
		Find(&tasks).Error
	if err != nil {
		return nil, fmt.Errorf("list overdue tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Save(ctx context.Context, task *model.Task) error {
	if err := r.db.WithContext(ctx).Save(task).Error; err != nil {
		return fmt.Errorf("save task: %w", err)
	}
	return nil
}

// Delete removes a task for the given user together with its time blocks.
func (r *TaskRepository) Delete(ctx context.Context, userID, taskID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", taskID).Delete(&model.TimeBlock{}).Error; err != nil {
			return fmt.Errorf("delete task blocks: %w", err)
		}
		if err := tx.Where("user_id = ? AND id = ?", userID, taskID).Delete(&model.Task{}).Error; err != nil {
			return fmt.Errorf("delete task: %w", err)
		}
		return nil
	})
}
