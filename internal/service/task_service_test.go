package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/planwheel/planwheel-server/internal/apperr"
	"github.com/planwheel/planwheel-server/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCreateTask(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	svc := NewTaskService(db, testLogger())

	clock := "18:00"
	task, err := svc.CreateTask(context.Background(), user.ID, TaskInput{
		Name:     "write report",
		Deadline: &Deadline{Date: day(2024, 6, 7), Time: &clock},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if task.Status != model.StatusTodo {
		t.Fatalf("expected TODO, got %s", task.Status)
	}
	if task.AssignedDate != nil {
		t.Fatal("new tasks must start in the staging area")
	}
	if task.DeadlineDate == nil || task.DeadlineTime == nil || *task.DeadlineTime != "18:00" {
		t.Fatalf("expected deadline stored, got %v %v", task.DeadlineDate, task.DeadlineTime)
	}

	if _, err := svc.CreateTask(context.Background(), user.ID, TaskInput{}); !errors.Is(err, apperr.ErrInvalidArguments) {
		t.Fatalf("expected INVALID_ARGUMENTS for empty name, got %v", err)
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	svc := NewTaskService(db, testLogger())
	target := day(2024, 6, 1)

	task := seedTask(t, db, &model.Task{UserID: user.ID, Name: "write report", Status: model.StatusTodo})

	// First-time scheduling: non-completed label with a date assigns the day.
	if err := svc.UpdateStatus(context.Background(), user.ID, task.ID, model.StatusInProgress.Label(), &target); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	reload := func() model.Task {
		var got model.Task
		if err := db.First(&got, task.ID).Error; err != nil {
			t.Fatalf("reload: %v", err)
		}
		return got
	}
	got := reload()
	if got.AssignedDate == nil || got.Status != model.StatusInProgress {
		t.Fatalf("expected assigned in-progress task, got %+v", got)
	}

	// Completing stamps the end date, assigned date untouched.
	if err := svc.UpdateStatus(context.Background(), user.ID, task.ID, model.StatusDone.Label(), &target); err != nil {
		t.Fatalf("complete: %v", err)
	}
	got = reload()
	if got.EndDate == nil || got.Status != model.StatusDone {
		t.Fatalf("expected completed task, got %+v", got)
	}
	if got.AssignedDate == nil {
		t.Fatal("completing must not clear the assigned date")
	}

	// Nil target drags the task back to staging whatever its state.
	if err := svc.UpdateStatus(context.Background(), user.ID, task.ID, model.StatusDone.Label(), nil); err != nil {
		t.Fatalf("unstage: %v", err)
	}
	got = reload()
	if got.AssignedDate != nil || got.EndDate != nil || got.Status != model.StatusTodo {
		t.Fatalf("expected staged TODO task, got %+v", got)
	}

	if err := svc.UpdateStatus(context.Background(), user.ID, task.ID, "???", &target); !errors.Is(err, apperr.ErrInvalidArguments) {
		t.Fatalf("expected INVALID_ARGUMENTS, got %v", err)
	}
}

func TestListTasksOrders(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	svc := NewTaskService(db, testLogger())
	reference := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	first := seedTask(t, db, &model.Task{UserID: user.ID, Name: "first", Status: model.StatusTodo,
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)})
	second := seedTask(t, db, &model.Task{UserID: user.ID, Name: "second", Status: model.StatusTodo,
		CreatedAt: time.Date(2024, 5, 2, 10, 0, 0, 0, time.UTC)})
	third := seedTask(t, db, &model.Task{UserID: user.ID, Name: "third", Status: model.StatusTodo,
		CreatedAt: time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)})

	ids := func(tasks []model.Task) []uint {
		out := make([]uint, len(tasks))
		for i, task := range tasks {
			out[i] = task.ID
		}
		return out
	}

	t.Run("recent", func(t *testing.T) {
		got, err := svc.ListTasks(context.Background(), user.ID, "recent", nil, reference)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		want := []uint{third.ID, second.ID, first.ID}
		for i, id := range want {
			if ids(got)[i] != id {
				t.Fatalf("recent order mismatch: got %v, want %v", ids(got), want)
			}
		}
	})

	t.Run("user key without a stored order falls back to recent", func(t *testing.T) {
		fallback, err := svc.ListTasks(context.Background(), user.ID, "user", nil, reference)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		recent, err := svc.ListTasks(context.Background(), user.ID, "recent", nil, reference)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		for i := range recent {
			if fallback[i].ID != recent[i].ID {
				t.Fatalf("fallback diverged from recent: %v vs %v", ids(fallback), ids(recent))
			}
		}
	})

	t.Run("user key follows the stored order and skips foreign ids", func(t *testing.T) {
		_, err := svc.SaveOrder(context.Background(), user.ID, false, nil, []uint{second.ID, 9999, first.ID})
		if err != nil {
			t.Fatalf("save order: %v", err)
		}
		got, err := svc.ListTasks(context.Background(), user.ID, "user", nil, reference)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		want := []uint{second.ID, first.ID}
		if len(got) != len(want) {
			t.Fatalf("expected %d tasks, got %v", len(want), ids(got))
		}
		for i, id := range want {
			if got[i].ID != id {
				t.Fatalf("custom order mismatch: got %v, want %v", ids(got), want)
			}
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := svc.ListTasks(context.Background(), user.ID, "sideways", nil, reference)
		if !errors.Is(err, apperr.ErrInvalidArguments) {
			t.Fatalf("expected INVALID_ARGUMENTS, got %v", err)
		}
	})

	t.Run("dated partition is separate", func(t *testing.T) {
		target := day(2024, 6, 1)
		got, err := svc.ListTasks(context.Background(), user.ID, "recent", &target, reference)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected empty day, got %v", ids(got))
		}
	})
}

func TestGetTaskDetailWithBlock(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	taskSvc := NewTaskService(db, testLogger())
	blockSvc := NewTimeBlockService(db, testLogger())

	task := seedTask(t, db, &model.Task{UserID: user.ID, Name: "write report", Status: model.StatusTodo})
	if _, err := blockSvc.Create(context.Background(), user.ID, task.ID, at(9, 0), at(9, 30)); err != nil {
		t.Fatalf("create block: %v", err)
	}

	target := day(2024, 6, 1)
	detail, err := taskSvc.GetTaskDetail(context.Background(), user.ID, task.ID, &target)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Block == nil {
		t.Fatal("expected the day's block in the detail view")
	}

	detail, err = taskSvc.GetTaskDetail(context.Background(), user.ID, task.ID, nil)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if detail.Block != nil {
		t.Fatal("expected no block without a target date")
	}
}

func TestRemoveTask(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "a@example.com")
	svc := NewTaskService(db, testLogger())

	task := seedTask(t, db, &model.Task{UserID: user.ID, Name: "write report", Status: model.StatusTodo})
	if err := svc.RemoveTask(context.Background(), user.ID, task.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := svc.RemoveTask(context.Background(), user.ID, task.ID); !errors.Is(err, apperr.ErrNotFoundTask) {
		t.Fatalf("expected NOT_FOUND_TASK, got %v", err)
	}
}
