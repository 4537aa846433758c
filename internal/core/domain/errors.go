package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors
var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
)

// AccessRequestErrors
var (
	ErrRequestNotFound      = errors.New("access request not found")
	ErrAccessAlreadyGranted = errors.New("access already granted")
	ErrAlreadyFinalized     = errors.New("access request already finalized")
)

// CollaboratorErrors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProjectNotFound = errors.New("project not found")
)

// ValidationError reports the submission fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError creates a validation error for the given fields
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
