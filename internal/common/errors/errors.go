// Package errors provides standardized error handling for the assessment API.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeComputationFailed ErrorCode = "COMPUTATION_FAILED"

	ErrCodeStorageFailed     ErrorCode = "STORAGE_FAILED"
	ErrCodeRecordQueryFailed ErrorCode = "RECORD_QUERY_FAILED"

	ErrCodeCacheFailed ErrorCode = "CACHE_FAILED"
	ErrCodeIndexFailed ErrorCode = "INDEX_FAILED"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

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

// WithMetadata attaches extra context to the error and returns it.
func (e *StandardError) WithMetadata(key string, value interface{}) *StandardError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]interface{})
	}
	e.Metadata[key] = value
	return e
}

// HTTPStatus maps an error code to the status the API layer should return.
// Validation and computation failures are client errors; everything else
// surfaces as a server-side failure.
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeValidationFailed, ErrCodeComputationFailed:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ==========================
// 2. Error Constructors
// ==========================

// NewValidationFailedError creates a non-retryable input validation error.
func NewValidationFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Financial data validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewComputationFailedError creates a non-retryable model computation error.
// Raised by the in-formula denominator guards, which back up the validator.
func NewComputationFailedError(model string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeComputationFailed,
		Message:   "Risk model computation failed",
		Details:   fmt.Sprintf("model: %s, error: %s", model, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStorageFailedError creates a retryable persistence error. The caller is
// expected to attach the computed result via WithMetadata so a storage
// failure never silently discards a successful computation.
func NewStorageFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageFailed,
		Message:   "Assessment could not be saved",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewRecordQueryFailedError creates a retryable history query error.
func NewRecordQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRecordQueryFailed,
		Message:   "Assessment history query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheFailedError creates a retryable cache error.
func NewCacheFailedError(op string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheFailed,
		Message:   "Assessment cache operation failed",
		Details:   fmt.Sprintf("op: %s, error: %s", op, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewIndexFailedError creates a retryable search index error.
func NewIndexFailedError(index string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexFailed,
		Message:   "Assessment index operation failed",
		Details:   fmt.Sprintf("index: %s, error: %s", index, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError creates a retryable notification error.
func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Risk notification delivery failed",
		Details:   fmt.Sprintf("channel: %s, error: %s", channel, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected error.
func NewInternalError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
