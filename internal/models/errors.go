package models

import "errors"

var (
	ErrEmptyText    = errors.New("task text cannot be empty")
	ErrInvalidDraft = errors.New("invalid task draft")
	ErrTaskNotFound = errors.New("task not found")
)
