package apperrors

import (
	"errors"
	"fmt"
)

// QueryError is a failure reported by the remote store for a read. It is
// terminal for the fetch cycle that issued it and is never retried.
type QueryError struct {
	Op  string
	Err error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

// Unwrap returns the wrapped error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError wraps err as a QueryError for the named operation.
func NewQueryError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &QueryError{Op: op, Err: err}
}

// RowResolutionError records a per-row secondary lookup that failed. It is
// logged and counted, never returned to the page.
type RowResolutionError struct {
	Index     int
	ContactID string
	Err       error
}

// Error implements the error interface.
func (e *RowResolutionError) Error() string {
	return fmt.Sprintf("row %d: contact %s: %v", e.Index, e.ContactID, e.Err)
}

// Unwrap returns the wrapped error.
func (e *RowResolutionError) Unwrap() error {
	return e.Err
}

// --- Standard Error Definitions ---

var (
	// ErrNotFound indicates a requested resource was not found.
	ErrNotFound = errors.New("resource not found")
	// ErrValidation indicates failure during data validation.
	ErrValidation = errors.New("validation failed")
	// ErrDatabase indicates a general database interaction error.
	ErrDatabase = errors.New("database error")
	// ErrBadRequest indicates a malformed or invalid request from the client/caller.
	ErrBadRequest = errors.New("bad request")
	// ErrPublish indicates the audit event could not be delivered.
	ErrPublish = errors.New("publish error")

	// ErrEmptyMessage is returned when a dispatch is attempted with a blank message.
	ErrEmptyMessage = fmt.Errorf("%w: please type a message", ErrValidation)
	// ErrEmptyTargets is returned when a dispatch resolves to zero contacts.
	ErrEmptyTargets = fmt.Errorf("%w: no contacts selected for dispatch", ErrValidation)
)

// --- Helper functions for checking ---

// IsQueryError checks if the error is a QueryError or wraps one.
func IsQueryError(err error) bool {
	var target *QueryError
	return errors.As(err, &target)
}

// IsNotFoundError checks if the error is or wraps ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if the error is or wraps ErrValidation.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsDatabaseError checks if the error is or wraps ErrDatabase.
func IsDatabaseError(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// IsBadRequestError checks if the error is or wraps ErrBadRequest.
func IsBadRequestError(err error) bool {
	return errors.Is(err, ErrBadRequest)
}

// UserMessage returns the text shown to the user for a validation failure.
// Other errors are returned verbatim.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyMessage):
		return "Please type a message."
	case errors.Is(err, ErrEmptyTargets):
		return "No contacts selected for dispatch."
	default:
		return err.Error()
	}
}
