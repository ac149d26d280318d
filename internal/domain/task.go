package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUnknownStatus   = errors.New("unknown task status")
	ErrUnknownPriority = errors.New("unknown task priority")
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// ParseStatus maps external input onto one of the known statuses.
func ParseStatus(s string) (TaskStatus, error) {
	switch st := TaskStatus(s); st {
	case StatusPending, StatusInProgress, StatusCompleted:
		return st, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority maps external input onto one of the known priority tiers.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPriority, s)
	}
}

type Task struct {
	ID          int64
	Title       string
	Description string

	Priority Priority
	Status   TaskStatus
	DueDate  Date // zero when the task has no due date

	CategoryID int64
	UserID     int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasDueDate reports whether a due date was set.
func (t Task) HasDueDate() bool {
	return !t.DueDate.IsZero()
}
