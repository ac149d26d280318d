// Package sqlite persists tasks and categories in SQLite through database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"taskmanager/internal/domain"
	"taskmanager/internal/store"
	"time"

	_ "modernc.org/sqlite"
)

const DriverName = "sqlite"

var schema = []string{
	`PRAGMA foreign_keys = ON`,
	`CREATE TABLE IF NOT EXISTS categories (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    name        VARCHAR(255) NOT NULL,
    color       VARCHAR(16)  NOT NULL DEFAULT '',
    description TEXT         NOT NULL DEFAULT ''
)`,
	`CREATE TABLE IF NOT EXISTS tasks (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    title       VARCHAR(255) NOT NULL,
    description TEXT         NOT NULL DEFAULT '',
    priority    VARCHAR(16)  NOT NULL CHECK (priority IN ('low', 'medium', 'high')),
    status      VARCHAR(16)  NOT NULL CHECK (status IN ('pending', 'in_progress', 'completed')),
    due_date    CHAR(10)     NULL,
    category_id INTEGER      NOT NULL REFERENCES categories(id),
    user_id     INTEGER      NOT NULL,
    created_at  TEXT         NOT NULL,
    updated_at  TEXT         NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS tasks_user_id ON tasks (user_id, created_at)`,
	`CREATE INDEX IF NOT EXISTS tasks_category_id ON tasks (category_id)`,
	`CREATE INDEX IF NOT EXISTS tasks_due_date ON tasks (due_date)`,
}

const taskColumns = `id, title, description, priority, status, due_date, category_id, user_id, created_at, updated_at`

// Store is safe for concurrent use.
type Store struct {
	db *sql.DB
}

// Open connects to dsn and applies the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// SQLite serializes writers; a single connection avoids SQLITE_BUSY and
	// keeps per-connection pragmas in effect.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	s := New(db)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context) error {
	if s.db == nil {
		return errors.New("nil db")
	}
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Create(ctx context.Context, t domain.Task) (domain.Task, error) {
	q := `INSERT INTO tasks (title, description, priority, status, due_date, category_id, user_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := s.db.ExecContext(ctx, q,
		t.Title, t.Description, string(t.Priority), string(t.Status), nullDate(t.DueDate),
		t.CategoryID, t.UserID, formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	if err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}
	t.ID = id

	return t, nil
}

func (s *Store) Get(ctx context.Context, id int64) (domain.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

func (s *Store) List(ctx context.Context) ([]domain.Task, error) {
	return s.query(ctx, `ORDER BY id`)
}

func (s *Store) Update(ctx context.Context, t domain.Task) (domain.Task, error) {
	q := `UPDATE tasks SET title = ?, description = ?, priority = ?, status = ?, due_date = ?,
		category_id = ?, user_id = ?, updated_at = ? WHERE id = ?`
	res, err := s.db.ExecContext(ctx, q,
		t.Title, t.Description, string(t.Priority), string(t.Status), nullDate(t.DueDate),
		t.CategoryID, t.UserID, formatTime(t.UpdatedAt), t.ID)
	if err != nil {
		return domain.Task{}, fmt.Errorf("update task %d: %w", t.ID, err)
	}
	if err := expectOneRow(res); err != nil {
		return domain.Task{}, err
	}
	return s.Get(ctx, t.ID)
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	return expectOneRow(res)
}

func (s *Store) ListByUser(ctx context.Context, userID int64) ([]domain.Task, error) {
	return s.query(ctx, `WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
}

func (s *Store) ListByCategory(ctx context.Context, categoryID int64) ([]domain.Task, error) {
	return s.query(ctx, `WHERE category_id = ? ORDER BY id`, categoryID)
}

// ListOverdue relies on YYYY-MM-DD sorting lexically in date order.
func (s *Store) ListOverdue(ctx context.Context, today domain.Date) ([]domain.Task, error) {
	return s.query(ctx, `WHERE due_date IS NOT NULL AND due_date < ? AND status != ? ORDER BY id`,
		today.String(), string(domain.StatusCompleted))
}

func (s *Store) ListHighPriority(ctx context.Context) ([]domain.Task, error) {
	return s.query(ctx, `WHERE priority = ? ORDER BY id`, string(domain.PriorityHigh))
}

func (s *Store) query(ctx context.Context, clause string, args ...any) ([]domain.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	return tasks, nil
}

func (s *Store) CreateCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO categories (name, color, description) VALUES (?, ?, ?)`,
		c.Name, c.Color, c.Description)
	if err != nil {
		return domain.Category{}, fmt.Errorf("insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return domain.Category{}, fmt.Errorf("insert category: %w", err)
	}
	c.ID = id
	return c, nil
}

func (s *Store) GetCategory(ctx context.Context, id int64) (domain.Category, error) {
	var c domain.Category
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, color, description FROM categories WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.Color, &c.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Category{}, store.ErrNotFound
	}
	if err != nil {
		return domain.Category{}, fmt.Errorf("get category %d: %w", id, err)
	}
	return c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color, description FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (domain.Task, error) {
	var (
		t                    domain.Task
		priority, status     string
		due                  sql.NullString
		createdAt, updatedAt string
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &priority, &status, &due,
		&t.CategoryID, &t.UserID, &createdAt, &updatedAt); err != nil {
		return domain.Task{}, err
	}

	t.Priority = domain.Priority(priority)
	t.Status = domain.TaskStatus(status)

	if due.Valid && due.String != "" {
		d, err := domain.ParseDate(due.String)
		if err != nil {
			return domain.Task{}, fmt.Errorf("task %d due_date: %w", t.ID, err)
		}
		t.DueDate = d
	}

	var err error
	if t.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Task{}, fmt.Errorf("task %d created_at: %w", t.ID, err)
	}
	if t.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Task{}, fmt.Errorf("task %d updated_at: %w", t.ID, err)
	}

	return t, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func nullDate(d domain.Date) sql.NullString {
	if d.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

// timeLayout is fixed width so that text order matches time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
}
