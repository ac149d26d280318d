package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"taskmanager/internal/clock"
	"taskmanager/internal/domain"
	"taskmanager/internal/events"
	"taskmanager/internal/priority"
	"taskmanager/internal/stats"
	"taskmanager/internal/store"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

const (
	maxTitleLen       = 255
	maxDescriptionLen = 1000
	recentTasksLimit  = 5
)

type TaskService struct {
	tasks      store.TaskStore
	categories store.CategoryStore
	events     events.Publisher

	clock         clock.Clock
	now           func() time.Time
	logger        *log.Logger
	defaultUserID int64
}

type Option func(*TaskService)

func WithClock(c clock.Clock) Option {
	return func(s *TaskService) { s.clock = c }
}

// WithNow sets the source of created/updated timestamps.
func WithNow(now func() time.Time) Option {
	return func(s *TaskService) { s.now = now }
}

func WithLogger(l *log.Logger) Option {
	return func(s *TaskService) { s.logger = l }
}

func WithDefaultUserID(id int64) Option {
	return func(s *TaskService) { s.defaultUserID = id }
}

func New(tasks store.TaskStore, categories store.CategoryStore, publisher events.Publisher, opts ...Option) (*TaskService, error) {
	if tasks == nil || categories == nil {
		return nil, ErrStoreNil
	}
	if publisher == nil {
		return nil, ErrPublisherNil
	}

	s := &TaskService{
		tasks:         tasks,
		categories:    categories,
		events:        publisher,
		clock:         clock.NewSystem(time.UTC),
		now:           time.Now,
		logger:        log.Default(),
		defaultUserID: 1,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// TaskInput is the data accepted when creating a task. Zero values mean
// "not supplied".
type TaskInput struct {
	Title       string
	Description string
	Priority    domain.Priority
	Status      domain.TaskStatus
	DueDate     domain.Date
	CategoryID  int64
	UserID      int64
}

// TaskUpdate changes only the non-nil fields. A non-nil zero DueDate clears it.
type TaskUpdate struct {
	Title       *string
	Description *string
	Priority    *domain.Priority
	Status      *domain.TaskStatus
	DueDate     *domain.Date
	CategoryID  *int64
}

// CreateTask stores a new task. An explicit priority always wins; without one
// the priority is derived from the due date, or defaults to medium when there
// is no due date either.
func (s *TaskService) CreateTask(ctx context.Context, in TaskInput) (domain.Task, error) {
	title, description, err := cleanText(in.Title, in.Description)
	if err != nil {
		return domain.Task{}, err
	}

	status := domain.StatusPending
	if in.Status != "" {
		if status, err = domain.ParseStatus(string(in.Status)); err != nil {
			return domain.Task{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	userID := in.UserID
	if userID == 0 {
		userID = s.defaultUserID
	}
	if userID < 0 {
		return domain.Task{}, fmt.Errorf("%w: user_id must be positive", ErrInvalidInput)
	}

	today := s.clock.Today()
	if in.DueDate.Before(today) && !in.DueDate.IsZero() {
		return domain.Task{}, ErrDueDateInPast
	}

	var p domain.Priority
	switch {
	case in.Priority != "":
		if p, err = domain.ParsePriority(string(in.Priority)); err != nil {
			return domain.Task{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	case !in.DueDate.IsZero():
		p = priority.Classify(in.DueDate, today)
	default:
		p = domain.PriorityMedium
	}

	if err := s.checkCategory(ctx, in.CategoryID); err != nil {
		return domain.Task{}, err
	}

	now := s.now()
	created, err := s.tasks.Create(ctx, domain.Task{
		Title:       title,
		Description: description,
		Priority:    p,
		Status:      status,
		DueDate:     in.DueDate,
		CategoryID:  in.CategoryID,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return domain.Task{}, fmt.Errorf("create task: %w", err)
	}

	s.publish(ctx, events.New(events.KindCreated, created, now))

	return created, nil
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (domain.Task, error) {
	if id <= 0 {
		return domain.Task{}, ErrInvalidID
	}

	task, err := s.tasks.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Task{}, ErrNotFound
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return s.tasks.List(ctx)
}

func (s *TaskService) ListUserTasks(ctx context.Context, userID int64) ([]domain.Task, error) {
	if userID <= 0 {
		return nil, ErrInvalidID
	}
	return s.tasks.ListByUser(ctx, userID)
}

func (s *TaskService) ListCategoryTasks(ctx context.Context, categoryID int64) ([]domain.Task, error) {
	if categoryID <= 0 {
		return nil, ErrInvalidID
	}
	return s.tasks.ListByCategory(ctx, categoryID)
}

// UpdateTask applies upd to the stored task. Priority is never re-derived.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, upd TaskUpdate) (domain.Task, error) {
	current, err := s.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	next := current

	title, description := current.Title, current.Description
	if upd.Title != nil {
		title = *upd.Title
	}
	if upd.Description != nil {
		description = *upd.Description
	}
	if next.Title, next.Description, err = cleanText(title, description); err != nil {
		return domain.Task{}, err
	}

	if upd.Priority != nil {
		if next.Priority, err = domain.ParsePriority(string(*upd.Priority)); err != nil {
			return domain.Task{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if upd.Status != nil {
		if next.Status, err = domain.ParseStatus(string(*upd.Status)); err != nil {
			return domain.Task{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}
	if upd.DueDate != nil {
		due := *upd.DueDate
		if !due.Equal(current.DueDate) && !due.IsZero() && due.Before(s.clock.Today()) {
			return domain.Task{}, ErrDueDateInPast
		}
		next.DueDate = due
	}
	if upd.CategoryID != nil && *upd.CategoryID != current.CategoryID {
		if err := s.checkCategory(ctx, *upd.CategoryID); err != nil {
			return domain.Task{}, err
		}
		next.CategoryID = *upd.CategoryID
	}

	now := s.now()
	next.UpdatedAt = now

	updated, err := s.save(ctx, next)
	if err != nil {
		return domain.Task{}, err
	}

	if current.Status != domain.StatusCompleted && updated.Status == domain.StatusCompleted {
		s.publish(ctx, events.New(events.KindCompleted, updated, now))
	}
	if current.Priority != updated.Priority {
		e := events.New(events.KindPriorityChanged, updated, now)
		e.PreviousPriority = current.Priority
		s.publish(ctx, e)
	}

	return updated, nil
}

// CompleteTask marks the task completed. Completing a completed task is a no-op.
func (s *TaskService) CompleteTask(ctx context.Context, id int64) (domain.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if task.Status == domain.StatusCompleted {
		return task, nil
	}

	now := s.now()
	task.Status = domain.StatusCompleted
	task.UpdatedAt = now

	updated, err := s.save(ctx, task)
	if err != nil {
		return domain.Task{}, err
	}

	s.publish(ctx, events.New(events.KindCompleted, updated, now))

	return updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	s.publish(ctx, events.New(events.KindDeleted, task, s.now()))

	return nil
}

// Statistics counts every task plus the overdue and high-priority subsets,
// all evaluated against a single "today".
func (s *TaskService) Statistics(ctx context.Context) (stats.Report, error) {
	return s.statistics(ctx, s.clock.Today())
}

func (s *TaskService) statistics(ctx context.Context, today domain.Date) (stats.Report, error) {
	all, err := s.tasks.List(ctx)
	if err != nil {
		return stats.Report{}, fmt.Errorf("list tasks: %w", err)
	}
	overdue, err := s.tasks.ListOverdue(ctx, today)
	if err != nil {
		return stats.Report{}, fmt.Errorf("list overdue tasks: %w", err)
	}
	high, err := s.tasks.ListHighPriority(ctx)
	if err != nil {
		return stats.Report{}, fmt.Errorf("list high priority tasks: %w", err)
	}

	return stats.Compute(all, overdue, high), nil
}

// OverdueTasks returns overdue tasks, most urgent first.
func (s *TaskService) OverdueTasks(ctx context.Context) ([]domain.Task, error) {
	return s.overdue(ctx, s.clock.Today())
}

func (s *TaskService) overdue(ctx context.Context, today domain.Date) ([]domain.Task, error) {
	tasks, err := s.tasks.ListOverdue(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("list overdue tasks: %w", err)
	}
	priority.Rank(tasks)
	return tasks, nil
}

type Dashboard struct {
	Statistics stats.Report
	Overdue    []domain.Task
	Recent     []domain.Task
}

func (s *TaskService) Dashboard(ctx context.Context) (Dashboard, error) {
	today := s.clock.Today()

	report, err := s.statistics(ctx, today)
	if err != nil {
		return Dashboard{}, err
	}
	overdue, err := s.overdue(ctx, today)
	if err != nil {
		return Dashboard{}, err
	}

	recent, err := s.tasks.List(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("list tasks: %w", err)
	}
	sort.SliceStable(recent, func(i, j int) bool {
		if !recent[i].CreatedAt.Equal(recent[j].CreatedAt) {
			return recent[i].CreatedAt.After(recent[j].CreatedAt)
		}
		return recent[i].ID > recent[j].ID
	})
	if len(recent) > recentTasksLimit {
		recent = recent[:recentTasksLimit]
	}

	return Dashboard{Statistics: report, Overdue: overdue, Recent: recent}, nil
}

func (s *TaskService) save(ctx context.Context, t domain.Task) (domain.Task, error) {
	updated, err := s.tasks.Update(ctx, t)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Task{}, ErrNotFound
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("update task %d: %w", t.ID, err)
	}
	return updated, nil
}

func (s *TaskService) checkCategory(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: category_id is required", ErrInvalidInput)
	}
	if _, err := s.categories.GetCategory(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return fmt.Errorf("get category %d: %w", id, err)
	}
	return nil
}

// publish never fails the caller; a lost notification is only logged.
func (s *TaskService) publish(ctx context.Context, e events.Event) {
	if err := s.events.Publish(ctx, e); err != nil {
		s.logger.Warn("task event not published", "kind", e.Kind, "task_id", e.TaskID, "err", err)
	}
}

func cleanText(title, description string) (string, string, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)

	if title == "" {
		return "", "", fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", "", fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, maxTitleLen)
	}
	// description is optional
	if utf8.RuneCountInString(description) > maxDescriptionLen {
		return "", "", fmt.Errorf("%w: description exceeds %d characters", ErrInvalidInput, maxDescriptionLen)
	}
	return title, description, nil
}
