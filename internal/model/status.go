package model

import "github.com/planwheel/planwheel-server/internal/apperr"

// Status is the task lifecycle state. Clients exchange the localized label,
// not the enum name.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

var statusLabels = map[Status]string{
	StatusTodo:       "할일",
	StatusInProgress: "진행중",
	StatusDone:       "완료",
}

// Label returns the display label clients see.
func (s Status) Label() string {
	return statusLabels[s]
}

// StatusFromLabel resolves a client-supplied label back to a Status.
func StatusFromLabel(label string) (Status, error) {
	for s, l := range statusLabels {
		if l == label {
			return s, nil
		}
	}
	return "", apperr.ErrInvalidArguments
}
