// Package stats counts tasks for the dashboard.
package stats

import "taskmanager/internal/domain"

type Report struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Pending      int `json:"pending"`
	InProgress   int `json:"in_progress"`
	Overdue      int `json:"overdue"`
	HighPriority int `json:"high_priority"`
}

// Compute counts all by status. The overdue and high-priority subsets are
// supplied by the caller and only counted. Tasks with a status outside the
// known set still count toward Total.
func Compute(all, overdue, highPriority []domain.Task) Report {
	r := Report{
		Total:        len(all),
		Overdue:      len(overdue),
		HighPriority: len(highPriority),
	}

	for _, t := range all {
		switch t.Status {
		case domain.StatusCompleted:
			r.Completed++
		case domain.StatusPending:
			r.Pending++
		case domain.StatusInProgress:
			r.InProgress++
		}
	}

	return r
}

// IsOverdue is the predicate behind the overdue subset.
func IsOverdue(t domain.Task, today domain.Date) bool {
	return t.HasDueDate() && t.DueDate.Before(today) && t.Status != domain.StatusCompleted
}

// IsHighPriority is the predicate behind the high-priority subset.
func IsHighPriority(t domain.Task) bool {
	return t.Priority == domain.PriorityHigh
}
