// Package clock supplies "today" to date-sensitive code.
package clock

import (
	"taskmanager/internal/domain"
	"time"
)

type Clock interface {
	Today() domain.Date
}

// System reads the wall clock and resolves the calendar date in a fixed location.
type System struct {
	loc *time.Location
	now func() time.Time
}

func NewSystem(loc *time.Location) System {
	if loc == nil {
		loc = time.UTC
	}
	return System{loc: loc, now: time.Now}
}

func (s System) Today() domain.Date {
	now := s.now
	if now == nil {
		now = time.Now
	}
	loc := s.loc
	if loc == nil {
		loc = time.UTC
	}
	return domain.DateOf(now().In(loc))
}

func (s System) Location() *time.Location {
	if s.loc == nil {
		return time.UTC
	}
	return s.loc
}

// Fixed always reports the same day.
type Fixed domain.Date

func (f Fixed) Today() domain.Date {
	return domain.Date(f)
}
