package store

import (
	"context"
	"errors"
	"taskmanager/internal/domain"
)

var ErrNotFound = errors.New("not found")

type TaskStore interface {
	Create(ctx context.Context, t domain.Task) (domain.Task, error)
	Get(ctx context.Context, id int64) (domain.Task, error)
	List(ctx context.Context) ([]domain.Task, error)
	Update(ctx context.Context, t domain.Task) (domain.Task, error)
	Delete(ctx context.Context, id int64) error

	// ListByUser returns the newest tasks first.
	ListByUser(ctx context.Context, userID int64) ([]domain.Task, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]domain.Task, error)

	// ListOverdue returns tasks due before today that are not completed.
	ListOverdue(ctx context.Context, today domain.Date) ([]domain.Task, error)
	ListHighPriority(ctx context.Context) ([]domain.Task, error)
}

type CategoryStore interface {
	CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error)
	GetCategory(ctx context.Context, id int64) (domain.Category, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type Store interface {
	TaskStore
	CategoryStore
}
