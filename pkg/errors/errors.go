package errors

import (
	"errors"
	"fmt"
)

// Application errors. Services wrap these with context; handlers match them
// with Is to pick the HTTP status.

var (
	// ErrUnauthenticated indicates there is no identified caller
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the caller is not the record's permitted actor
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyExists indicates a duplicate record, e.g. a second request for the same pair
	ErrAlreadyExists = errors.New("already exists")

	// ErrConflict indicates the record is in a state that does not allow the operation
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// NotFoundError creates a not found error with context
func NotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// UnauthorizedError creates an unauthorized error with context
func UnauthorizedError(reason string) error {
	if reason != "" {
		return fmt.Errorf("%s: %w", reason, ErrUnauthorized)
	}
	return ErrUnauthorized
}

// AlreadyExistsError creates an already-exists error with context
func AlreadyExistsError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrAlreadyExists)
}

// ConflictError creates a conflict error with context
func ConflictError(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrConflict)
}

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
