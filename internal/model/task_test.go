package model

import (
	"errors"
	"testing"
	"time"

	"github.com/planwheel/planwheel-server/internal/apperr"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestApplyStatusNilTargetResetsToStaging(t *testing.T) {
	tests := []struct {
		name string
		task Task
	}{
		{name: "assigned in-progress", task: Task{Status: StatusInProgress, AssignedDate: date(2024, 6, 1)}},
		{name: "completed", task: Task{Status: StatusDone, AssignedDate: date(2024, 6, 1), EndDate: date(2024, 6, 2)}},
		{name: "already staged", task: Task{Status: StatusTodo}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.task.ApplyStatus("진행중", nil); err != nil {
				t.Fatalf("apply status: %v", err)
			}
			if tt.task.AssignedDate != nil || tt.task.EndDate != nil {
				t.Fatalf("expected both dates cleared, got assigned=%v end=%v", tt.task.AssignedDate, tt.task.EndDate)
			}
			if tt.task.Status != StatusTodo {
				t.Fatalf("expected TODO, got %s", tt.task.Status)
			}
		})
	}
}

func TestApplyStatusCompletedSetsEndDate(t *testing.T) {
	task := Task{Status: StatusTodo}
	target := date(2024, 6, 1)

	if err := task.ApplyStatus("완료", target); err != nil {
		t.Fatalf("apply status: %v", err)
	}
	if task.EndDate == nil || !task.EndDate.Equal(*target) {
		t.Fatalf("expected end date %v, got %v", target, task.EndDate)
	}
	if task.AssignedDate != nil {
		t.Fatalf("expected assigned date untouched (nil), got %v", task.AssignedDate)
	}
	if task.Status != StatusDone {
		t.Fatalf("expected DONE, got %s", task.Status)
	}
}

func TestApplyStatusNonCompletedTransitions(t *testing.T) {
	target := date(2024, 6, 10)

	t.Run("un-completes a finished task", func(t *testing.T) {
		task := Task{Status: StatusDone, AssignedDate: date(2024, 6, 1), EndDate: date(2024, 6, 2)}
		if err := task.ApplyStatus("진행중", target); err != nil {
			t.Fatalf("apply status: %v", err)
		}
		if task.EndDate != nil {
			t.Fatalf("expected end date cleared, got %v", task.EndDate)
		}
		if task.AssignedDate == nil || !task.AssignedDate.Equal(*date(2024, 6, 1)) {
			t.Fatalf("expected assigned date unchanged, got %v", task.AssignedDate)
		}
		if task.Status != StatusInProgress {
			t.Fatalf("expected IN_PROGRESS, got %s", task.Status)
		}
	})

	t.Run("first-time scheduling assigns the target date", func(t *testing.T) {
		task := Task{Status: StatusTodo}
		if err := task.ApplyStatus("진행중", target); err != nil {
			t.Fatalf("apply status: %v", err)
		}
		if task.AssignedDate == nil || !task.AssignedDate.Equal(*target) {
			t.Fatalf("expected assigned date %v, got %v", target, task.AssignedDate)
		}
	})

	t.Run("already assigned keeps its day", func(t *testing.T) {
		task := Task{Status: StatusTodo, AssignedDate: date(2024, 6, 1)}
		if err := task.ApplyStatus("진행중", target); err != nil {
			t.Fatalf("apply status: %v", err)
		}
		if !task.AssignedDate.Equal(*date(2024, 6, 1)) {
			t.Fatalf("expected assigned date unchanged, got %v", task.AssignedDate)
		}
	})
}

func TestApplyStatusUnknownLabel(t *testing.T) {
	task := Task{Status: StatusTodo}
	err := task.ApplyStatus("nonsense", date(2024, 6, 1))
	if !errors.Is(err, apperr.ErrInvalidArguments) {
		t.Fatalf("expected INVALID_ARGUMENTS, got %v", err)
	}
}

func TestStatusLabelRoundTrip(t *testing.T) {
	for _, s := range []Status{StatusTodo, StatusInProgress, StatusDone} {
		got, err := StatusFromLabel(s.Label())
		if err != nil {
			t.Fatalf("label %q: %v", s.Label(), err)
		}
		if got != s {
			t.Fatalf("label %q resolved to %s, want %s", s.Label(), got, s)
		}
	}
}
