package dto

import (
	"taskmanager/internal/domain"
	"taskmanager/internal/stats"
	"time"
)

type CreateTaskRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Priority    string      `json:"priority"`
	Status      string      `json:"status"`
	DueDate     domain.Date `json:"due_date"`
	CategoryID  int64       `json:"category_id"`
	UserID      int64       `json:"user_id"`
}

type UpdateTaskRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Priority    *string      `json:"priority"`
	Status      *string      `json:"status"`
	DueDate     OptionalDate `json:"due_date"`
	CategoryID  *int64       `json:"category_id"`
}

// OptionalDate tells an absent due_date apart from an explicit null.
type OptionalDate struct {
	Set  bool
	Date domain.Date
}

func (o *OptionalDate) UnmarshalJSON(data []byte) error {
	o.Set = true
	return o.Date.UnmarshalJSON(data)
}

type TaskResponse struct {
	ID             int64       `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Priority       string      `json:"priority"`
	PriorityColor  string      `json:"priority_color"`
	PriorityWeight int         `json:"priority_weight"`
	Status         string      `json:"status"`
	DueDate        domain.Date `json:"due_date"`
	IsOverdue      bool        `json:"is_overdue"`
	CategoryID     int64       `json:"category_id"`
	UserID         int64       `json:"user_id"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type DashboardResponse struct {
	Statistics   stats.Report   `json:"statistics"`
	OverdueTasks []TaskResponse `json:"overdue_tasks"`
	RecentTasks  []TaskResponse `json:"recent_tasks"`
}

type PriorityResponse struct {
	DueDate  domain.Date `json:"due_date"`
	Priority string      `json:"priority"`
	Color    string      `json:"color"`
	Weight   int         `json:"weight"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

type CategoryResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

type ErrorResponse struct {
	Error     string       `json:"error"`
	Details   []FieldError `json:"details,omitempty"`
	RequestID string       `json:"request_id,omitempty"`
}
