package service

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/planwheel/planwheel-server/internal/repository"
)

// RolloverService returns stale plans to the staging area: a TODO task
// still assigned to a day that has passed was never started and should not
// silently linger on an old calendar page.
type RolloverService struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewRolloverService(db *gorm.DB, log *zap.SugaredLogger) *RolloverService {
	return &RolloverService{db: db, log: log}
}

// RolloverToStaging unassigns every TODO task whose assigned day lies
// before now's calendar date. Returns the number of tasks moved.
func (s *RolloverService) RolloverToStaging(ctx context.Context, now time.Time) (int, error) {
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	moved := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tasks := repository.NewTaskRepository(tx)
		overdue, err := tasks.ListOverdueTodo(ctx, cutoff)
		if err != nil {
			return err
		}
		for i := range overdue {
			overdue[i].MoveToStaging()
			if err := tasks.Save(ctx, &overdue[i]); err != nil {
				return err
			}
		}
		moved = len(overdue)
		return nil
	})
	if err != nil {
		return 0, err
	}
	if moved > 0 {
		s.log.Infow("rolled over stale tasks", "count", moved)
	}
	return moved, nil
}
