// Package errors provides standardized error handling for the matching engine.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeUnresolvedLocation ErrorCode = "UNRESOLVED_LOCATION"

	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	ErrCodeSearchNotFound  ErrorCode = "SEARCH_NOT_FOUND"
	ErrCodeSearchForbidden ErrorCode = "SEARCH_FORBIDDEN"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// AsStandard extracts a StandardError from err, wrapping unknown errors as
// internal so callers always have a code to act on.
func AsStandard(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	var stdErr *StandardError
	return errors.As(err, &stdErr) && stdErr.Code == code
}

// NewUnresolvedLocationError creates a non-retryable geocoding error. Raised
// only when a request cannot proceed at all without coordinates; entities
// that fail to geocode mid-list are skipped, not failed.
func NewUnresolvedLocationError(location string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnresolvedLocation,
		Message:   "Location could not be resolved to coordinates",
		Details:   fmt.Sprintf("location: %q", location),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationFailedError creates a non-retryable validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchNotFoundError creates a non-retryable missing saved search error.
func NewSearchNotFoundError(searchID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchNotFound,
		Message:   "Saved search not found",
		Details:   fmt.Sprintf("searchId: %s", searchID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchForbiddenError creates a non-retryable ownership error.
func NewSearchForbiddenError(searchID, userID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchForbidden,
		Message:   "Saved search belongs to another user",
		Details:   fmt.Sprintf("searchId: %s, userId: %s", searchID, userID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable delivery error. The
// tracker logs and swallows it; the watermark update proceeds regardless.
func NewNotificationSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Failed to deliver saved-search notification",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query error.
func NewQueryExecutionFailedError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("operation: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}
