package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Entity errors
var (
	ErrMemberNotFound       = errors.New("member not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrContactNotFound      = errors.New("contact message not found")
	ErrUserNotFound         = errors.New("user not found")
)

// ValidationError reports the required fields missing or invalid in a payload.
// It always names at least one field.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError for the given field names
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// StorageError wraps a persistence-layer failure so handlers can report a
// generic message without leaking internals.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
