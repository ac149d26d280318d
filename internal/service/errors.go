package service

import "errors"

var (
	ErrNotFound         = errors.New("task not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrStoreNil         = errors.New("task store is nil")
	ErrPublisherNil     = errors.New("event publisher is nil")
	ErrInvalidID        = errors.New("invalid id")
	ErrCategoryNotFound = errors.New("category not found")
	ErrDueDateInPast    = errors.New("due date cannot be in the past")
)
