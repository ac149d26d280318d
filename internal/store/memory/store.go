package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"taskmanager/internal/domain"
	"taskmanager/internal/stats"
	"taskmanager/internal/store"
)

var (
	ErrNotInitialized = errors.New("store not initialized")
	ErrNotFound       = store.ErrNotFound
)

type Store struct {
	mu             sync.RWMutex
	nextID         int64
	nextCategoryID int64
	tasks          map[int64]domain.Task
	categories     map[int64]domain.Category
}

func New() *Store {
	return &Store{
		tasks:      make(map[int64]domain.Task),
		categories: make(map[int64]domain.Category),
	}
}

func (s *Store) Create(_ context.Context, task domain.Task) (domain.Task, error) {
	id := atomic.AddInt64(&s.nextID, 1)

	task.ID = id

	s.mu.Lock()
	s.tasks[id] = task
	s.mu.Unlock()

	return task, nil
}

func (s *Store) Get(_ context.Context, id int64) (domain.Task, error) {
	s.mu.RLock()
	task, ok := s.tasks[id]
	s.mu.RUnlock()

	if !ok {
		return domain.Task{}, ErrNotFound
	}
	// task is non-pointer value
	return task, nil
}

func (s *Store) List(_ context.Context) ([]domain.Task, error) {
	return s.filter(func(domain.Task) bool { return true })
}

func (s *Store) Update(_ context.Context, task domain.Task) (domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return domain.Task{}, ErrNotFound
	}
	s.tasks[task.ID] = task

	return task, nil
}

func (s *Store) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(s.tasks, id)

	return nil
}

func (s *Store) ListByUser(_ context.Context, userID int64) ([]domain.Task, error) {
	tasks, err := s.filter(func(t domain.Task) bool { return t.UserID == userID })
	if err != nil {
		return nil, err
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		if !tasks[i].CreatedAt.Equal(tasks[j].CreatedAt) {
			return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
		}
		return tasks[i].ID > tasks[j].ID
	})

	return tasks, nil
}

func (s *Store) ListByCategory(_ context.Context, categoryID int64) ([]domain.Task, error) {
	return s.filter(func(t domain.Task) bool { return t.CategoryID == categoryID })
}

func (s *Store) ListOverdue(_ context.Context, today domain.Date) ([]domain.Task, error) {
	return s.filter(func(t domain.Task) bool { return stats.IsOverdue(t, today) })
}

func (s *Store) ListHighPriority(_ context.Context) ([]domain.Task, error) {
	return s.filter(stats.IsHighPriority)
}

// filter returns matching tasks ordered by id.
func (s *Store) filter(match func(domain.Task) bool) ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.tasks == nil {
		return nil, ErrNotInitialized
	}

	tasks := make([]domain.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if match(t) {
			tasks = append(tasks, t)
		}
	}

	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

	return tasks, nil
}

func (s *Store) CreateCategory(_ context.Context, c domain.Category) (domain.Category, error) {
	id := atomic.AddInt64(&s.nextCategoryID, 1)

	c.ID = id

	s.mu.Lock()
	s.categories[id] = c
	s.mu.Unlock()

	return c, nil
}

func (s *Store) GetCategory(_ context.Context, id int64) (domain.Category, error) {
	s.mu.RLock()
	c, ok := s.categories[id]
	s.mu.RUnlock()

	if !ok {
		return domain.Category{}, ErrNotFound
	}
	return c, nil
}

func (s *Store) ListCategories(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.categories == nil {
		return nil, ErrNotInitialized
	}

	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

var _ store.Store = (*Store)(nil)
