// Package priority derives a priority tier from a due date and maps tiers to
// display colors and ranking weights.
package priority

import (
	"errors"
	"fmt"
	"sort"
	"taskmanager/internal/clock"
	"taskmanager/internal/domain"
)

var ErrInvalidInput = errors.New("invalid due date")

const (
	ColorHigh    = "#EF4444"
	ColorMedium  = "#F59E0B"
	ColorLow     = "#10B981"
	ColorDefault = "#6B7280"
)

type Classifier struct {
	clock clock.Clock
}

func NewClassifier(c clock.Clock) *Classifier {
	return &Classifier{clock: c}
}

// CalculatePriority parses dueDate and classifies it against today.
func (c *Classifier) CalculatePriority(dueDate string) (domain.Priority, error) {
	_, p, err := c.Evaluate(dueDate)
	return p, err
}

// Evaluate is CalculatePriority that also returns the parsed due date.
func (c *Classifier) Evaluate(dueDate string) (domain.Date, domain.Priority, error) {
	due, err := domain.ParseDate(dueDate)
	if err != nil {
		return domain.Date{}, "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return due, c.ClassifyDate(due), nil
}

// ClassifyDate reads the clock once and classifies due against that day.
func (c *Classifier) ClassifyDate(due domain.Date) domain.Priority {
	return Classify(due, c.clock.Today())
}

// Classify is the decision table. First match wins.
func Classify(due, today domain.Date) domain.Priority {
	days := due.DaysSince(today)

	switch {
	case days < 0: // overdue
		return domain.PriorityHigh
	case days <= 1: // today or tomorrow
		return domain.PriorityHigh
	case days <= 7:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// Color never fails; unrecognized tiers get the default gray.
func Color(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return ColorHigh
	case domain.PriorityMedium:
		return ColorMedium
	case domain.PriorityLow:
		return ColorLow
	default:
		return ColorDefault
	}
}

// Weight never fails; unrecognized tiers weigh 0.
func Weight(p domain.Priority) int {
	switch p {
	case domain.PriorityHigh:
		return 3
	case domain.PriorityMedium:
		return 2
	case domain.PriorityLow:
		return 1
	default:
		return 0
	}
}

// Rank orders tasks by weight, heaviest first, then by earliest due date.
// Tasks without a due date sort after dated ones of the same weight.
func Rank(tasks []domain.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		wi, wj := Weight(tasks[i].Priority), Weight(tasks[j].Priority)
		if wi != wj {
			return wi > wj
		}

		di, dj := tasks[i].DueDate, tasks[j].DueDate
		switch {
		case di.IsZero():
			return false
		case dj.IsZero():
			return true
		default:
			return di.Before(dj)
		}
	})
}
