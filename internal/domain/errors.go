package domain

import (
	"errors"
	"strings"
)

var (
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrImageNotFound    = errors.New("image not found")
	ErrReminderNotFound = errors.New("reminder not found")
)

// ValidationError reports a malformed or incomplete request. Fields holds one
// human-readable entry per problem.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// NewValidationError returns nil when no problems were collected.
func NewValidationError(fields ...string) error {
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
