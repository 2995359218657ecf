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

// ValidateRange checks a candidate block range. Check order is fixed so a
// range violating several rules always reports the same error: ordering
// first, then day boundary, then grid alignment.
func ValidateRange(start, end time.Time) error {
	if start.After(end) {
		return apperr.ErrTimeConflict
	}
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if sy != ey || sm != em || sd != ed {
		return apperr.ErrNotSameDate
	}
	if start.Minute()%15 != 0 || end.Minute()%15 != 0 {
		return apperr.ErrTimeInvalid
	}
	return nil
}

// TimeBlockService wraps time-block scheduling: validation, overlap
// detection and persistence, each operation in one transaction.
type TimeBlockService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewTimeBlockService(db *gorm.DB, log *zap.SugaredLogger) *TimeBlockService {
	return &TimeBlockService{db: db, log: log}
}

// Create places a new block for the user's task, rejecting ranges that fail
// validation or that contain another block of the same user.
func (s *TimeBlockService) Create(ctx context.Context, userID, taskID uint, start, end time.Time) (*model.TimeBlock, error) {
	var block *model.TimeBlock
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := repository.NewUserRepository(tx).FindByID(ctx, userID)
		if err != nil {
			return err
		}
		task, err := repository.NewTaskRepository(tx).FindByUserAndID(ctx, user.ID, taskID)
		if err != nil {
			return err
		}
		if err := ValidateRange(start, end); err != nil {
			return err
		}
		blocks := repository.NewTimeBlockRepository(tx)
		conflict, err := blocks.ExistsWithinRange(ctx, repository.RangeScope{UserID: user.ID, Start: start, End: end})
		if err != nil {
			return err
		}
		if conflict {
			return apperr.ErrTimeConflict
		}
		block = &model.TimeBlock{TaskID: task.ID, StartTime: start, EndTime: end}
		return blocks.Create(ctx, block)
	})
	if err != nil {
		return nil, err
	}
	s.log.Infow("time block created", "user", userID, "task", taskID, "block", block.ID)
	return block, nil
}

// Update moves an existing block to a new range. The block itself is
// excluded from the overlap check so it never conflicts with its own
// previous position.
func (s *TimeBlockService) Update(ctx context.Context, userID, taskID, blockID uint, start, end time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := repository.NewUserRepository(tx).FindByID(ctx, userID)
		if err != nil {
			return err
		}
		task, err := repository.NewTaskRepository(tx).FindByUserAndID(ctx, user.ID, taskID)
		if err != nil {
			return err
		}
		if err := ValidateRange(start, end); err != nil {
			return err
		}
		blocks := repository.NewTimeBlockRepository(tx)
		conflict, err := blocks.ExistsWithinRange(ctx, repository.RangeScope{
			UserID:    user.ID,
			Start:     start,
			End:       end,
			ExcludeID: &blockID,
		})
		if err != nil {
			return err
		}
		if conflict {
			return apperr.ErrTimeConflict
		}
		block, err := blocks.FindByTaskAndID(ctx, task.ID, blockID)
		if err != nil {
			return err
		}
		block.StartTime = start
		block.EndTime = end
		return blocks.Save(ctx, block)
	})
}

// Delete removes a block. No range validation applies.
func (s *TimeBlockService) Delete(ctx context.Context, userID, taskID, blockID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := repository.NewUserRepository(tx).FindByID(ctx, userID)
		if err != nil {
			return err
		}
		task, err := repository.NewTaskRepository(tx).FindByUserAndID(ctx, user.ID, taskID)
		if err != nil {
			return err
		}
		blocks := repository.NewTimeBlockRepository(tx)
		block, err := blocks.FindByTaskAndID(ctx, task.ID, blockID)
		if err != nil {
			return err
		}
		return blocks.Delete(ctx, block)
	})
}

// TaskBlocks is one task with its blocks inside a requested window.
type TaskBlocks struct {
	TaskID uint
	Name   string
	Status string
	Blocks []model.TimeBlock
}

// PeriodView returns, for the window starting at startDate and spanning
// rangeDays calendar days, every task holding a block inside the window
// together with those blocks.
func (s *TimeBlockService) PeriodView(ctx context.Context, userID uint, startDate time.Time, rangeDays int) ([]TaskBlocks, error) {
	if rangeDays < 1 {
		return nil, apperr.ErrInvalidArguments
	}
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, startDate.Location())
	end := start.AddDate(0, 0, rangeDays-1)
	end = time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, end.Location())

	user, err := repository.NewUserRepository(s.db).FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	tasks, err := repository.NewTaskRepository(s.db).ListWithBlocksInWindow(ctx, user.ID, start, end)
	if err != nil {
		return nil, err
	}

	blocks := repository.NewTimeBlockRepository(s.db)
	view := make([]TaskBlocks, 0, len(tasks))
	for _, task := range tasks {
		taskBlocks, err := blocks.ListByTaskInWindow(ctx, task.ID, start, end)
		if err != nil {
			return nil, err
		}
		view = append(view, TaskBlocks{
			TaskID: task.ID,
			Name:   task.Name,
			Status: task.Status.Label(),
			Blocks: taskBlocks,
		})
	}
	return view, nil
}
