package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by services and repositories. The HTTP layer maps
// each of them to a deterministic status code in one place.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrPropertyNotFound = errors.New("property not found")
	ErrInvalidID        = errors.New("invalid id format")
	ErrWrongPassword    = errors.New("wrong password for this user")
	ErrInvalidToken     = errors.New("invalid identity token")
	ErrUnauthorized     = errors.New("login required")
	ErrForbidden        = errors.New("access forbidden")
	ErrMissingSecret    = errors.New("signing secret is not configured")
)

// DuplicateKeyError reports a write that violated a unique index.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate value for unique field %q", e.Field)
}

// ValidationError carries one human-readable message per failed field check.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// NewValidationError builds a ValidationError from the given messages.
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}
