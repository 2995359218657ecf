package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/planwheel/planwheel-server/internal/apperr"
	"github.com/planwheel/planwheel-server/internal/model"
	"github.com/planwheel/planwheel-server/internal/repository"
)

// Deadline pairs the optional date and HH:MM time of a task deadline.
type Deadline struct {
	Date time.Time
	Time *string
}

// TaskInput represents data required to create a task.
type TaskInput struct {
	Name        string
	Description string
	Deadline    *Deadline
}

// TaskUpdate carries the fields of a detail edit; nil fields stay as-is.
type TaskUpdate struct {
	Name        *string
	Description *string
	Deadline    *Deadline
}

// TaskDetail is the single-task view, including the block on the requested
// day when one exists.
type TaskDetail struct {
	Name         string
	Description  string
	Status       string
	DeadlineDate *time.Time
	DeadlineTime *string
	Block        *model.TimeBlock
}

// TaskService wraps task lifecycle and listing logic.
type TaskService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewTaskService(db *gorm.DB, log *zap.SugaredLogger) *TaskService {
	return &TaskService{db: db, log: log}
}

// CreateTask adds a task to the user's staging area.
func (s *TaskService) CreateTask(ctx context.Context, userID uint, input TaskInput) (*model.Task, error) {
	if input.Name == "" {
		return nil, apperr.ErrInvalidArguments
	}
	user, err := repository.NewUserRepository(s.db).FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	task := model.Task{
		UserID: user.ID,
		Name:   input.Name,
		Status: model.StatusTodo,
	}
	task.Description = input.Description
	if input.Deadline != nil {
		d := input.Deadline.Date
		task.DeadlineDate = &d
		task.DeadlineTime = input.Deadline.Time
	}

	if err := repository.NewTaskRepository(s.db).Create(ctx, &task); err != nil {
		return nil, err
	}
	s.log.Infow("task created", "user", userID, "task", task.ID)
	return &task, nil
}

// UpdateStatus applies one status transition to the task's compound
// (status, assignedDate, endDate) state.
func (s *TaskService) UpdateStatus(ctx context.Context, userID, taskID uint, label string, targetDate *time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := repository.NewUserRepository(tx).FindByID(ctx, userID)
		if err != nil {
			return err
		}
		tasks := repository.NewTaskRepository(tx)
		task, err := tasks.FindByUserAndID(ctx, user.ID, taskID)
		if err != nil {
			return err
		}
		if err := task.ApplyStatus(label, targetDate); err != nil {
			return err
		}
		return tasks.Save(ctx, task)
	})
}

// RemoveTask deletes the task and its blocks.
func (s *TaskService) RemoveTask(ctx context.Context, userID, taskID uint) error {
	user, err := repository.NewUserRepository(s.db).FindByID(ctx, userID)
	if err != nil {
		return err
	}
	tasks := repository.NewTaskRepository(s.db)
	if _, err := tasks.FindByUserAndID(ctx, user.ID, taskID); err != nil {
		return err
	}
	return tasks.Delete(ctx, user.ID, taskID)
}

// UpdateTask edits name, description or deadline.
func (s *TaskService) UpdateTask(ctx context.Context, userID, taskID uint, update TaskUpdate) error {
	user, err := repository.NewUserRepository(s.db).FindByID(ctx, userID)
	if err != nil {
		return err
	}
	tasks := repository.NewTaskRepository(s.db)
	task, err := tasks.FindByUserAndID(ctx, user.ID, taskID)
	if err != nil {
		return err
	}
	if update.Name != nil {
		task.Name = *update.Name
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Deadline != nil {
		d := update.Deadline.Date
		task.DeadlineDate = &d
		task.DeadlineTime = update.Deadline.Time
	}
	return tasks.Save(ctx, task)
}

// GetTaskDetail returns the task detail, with its block on targetDate when
// one is placed there.
func (s *TaskService) GetTaskDetail(ctx context.Context, userID, taskID uint, targetDate *time.Time) (*TaskDetail, error) {
	user, err := repository.NewUserRepository(s.db).FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	task, err := repository.NewTaskRepository(s.db).FindByUserAndID(ctx, user.ID, taskID)
	if err != nil {
		return nil, err
	}

	var block *model.TimeBlock
	if targetDate != nil {
		block, err = repository.NewTimeBlockRepository(s.db).FindByTaskAndDay(ctx, task.ID, *targetDate)
		if err != nil {
			return nil, err
		}
	}

	return &TaskDetail{
		Name:         task.Name,
		Description:  task.Description,
		Status:       task.Status.Label(),
		DeadlineDate: task.DeadlineDate,
		DeadlineTime: task.DeadlineTime,
		Block:        block,
	}, nil
}

// ListTasks returns one partition of the user's plan (staging when
// targetDate is nil, the given day otherwise) in the requested order.
// Order keys: recent, old, near, far, user. The "user" key reads the saved
// custom order for the view and falls back to recent when none is stored.
func (s *TaskService) ListTasks(ctx context.Context, userID uint, orderKey string, targetDate *time.Time, reference time.Time) ([]model.Task, error) {
	user, err := repository.NewUserRepository(s.db).FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	tasks := repository.NewTaskRepository(s.db)
	query := repository.TaskQuery{UserID: user.ID, TargetDate: targetDate, Reference: reference}

	switch orderKey {
	case "recent":
		query.Sort = repository.SortRecent
	case "old":
		query.Sort = repository.SortOld
	case "near":
		query.Sort = repository.SortNear
	case "far":
		query.Sort = repository.SortFar
	case "user":
		order, err := repository.NewTaskOrderRepository(s.db).FindByView(ctx, user.ID, targetDate != nil, targetDate)
		if err != nil {
			return nil, err
		}
		if order == nil {
			query.Sort = repository.SortRecent
			return tasks.List(ctx, query)
		}
		query.Sort = repository.SortRecent
		scoped, err := tasks.List(ctx, query)
		if err != nil {
			return nil, err
		}
		return reorderByIDs(scoped, order.TaskIDs), nil
	default:
		return nil, apperr.ErrInvalidArguments
	}

	return tasks.List(ctx, query)
}

// reorderByIDs rearranges tasks to match the stored id sequence. Ids not in
// scope are skipped; tasks missing from the sequence are dropped, matching
// the stored order being a full snapshot of the view.
func reorderByIDs(tasks []model.Task, ids []uint) []model.Task {
	byID := make(map[uint]model.Task, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}
	ordered := make([]model.Task, 0, len(ids))
	for _, id := range ids {
		if task, ok := byID[id]; ok {
			ordered = append(ordered, task)
		}
	}
	return ordered
}

// SaveOrder replaces the stored custom order for a view.
func (s *TaskService) SaveOrder(ctx context.Context, userID uint, dated bool, targetDate *time.Time, taskIDs []uint) (*model.TaskOrder, error) {
	user, err := repository.NewUserRepository(s.db).FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	order := &model.TaskOrder{
		UserID:     user.ID,
		Dated:      dated,
		TargetDate: targetDate,
		TaskIDs:    taskIDs,
	}
	if err := repository.NewTaskOrderRepository(s.db).Replace(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}
