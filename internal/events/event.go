// Package events carries task lifecycle notifications from the service to
// observers, either in process or through a Redis-backed queue.
package events

import (
	"context"
	"taskmanager/internal/domain"
	"time"
)

type Kind string

const (
	KindCreated         Kind = "task.created"
	KindCompleted       Kind = "task.completed"
	KindPriorityChanged Kind = "task.priority_changed"
	KindDeleted         Kind = "task.deleted"
)

type Event struct {
	Kind             Kind            `json:"kind"`
	TaskID           int64           `json:"task_id"`
	Title            string          `json:"title"`
	UserID           int64           `json:"user_id"`
	Priority         domain.Priority `json:"priority"`
	PreviousPriority domain.Priority `json:"previous_priority,omitempty"`
	At               time.Time       `json:"at"`
}

// New builds an event describing t.
func New(kind Kind, t domain.Task, at time.Time) Event {
	return Event{
		Kind:     kind,
		TaskID:   t.ID,
		Title:    t.Title,
		UserID:   t.UserID,
		Priority: t.Priority,
		At:       at,
	}
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

type Handler interface {
	Handle(ctx context.Context, e Event) error
}

type HandlerFunc func(ctx context.Context, e Event) error

func (f HandlerFunc) Handle(ctx context.Context, e Event) error {
	return f(ctx, e)
}
