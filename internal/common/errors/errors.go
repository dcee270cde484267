// Package errors provides the standardized error taxonomy of the marketplace.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Caller-correctable input problems.
	ErrCodeMissingField ErrorCode = "VALIDATION_MISSING_FIELD"
	ErrCodeInvalidValue ErrorCode = "VALIDATION_INVALID_VALUE"

	// Per-farmer delivery failures; recorded on the outcome, never returned to callers.
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeStorageFailed ErrorCode = "STORAGE_FAILED"
	ErrCodeInternal      ErrorCode = "INTERNAL_ERROR"
)

// InternalErrorMessage is the only detail an unexpected failure exposes.
const InternalErrorMessage = "Internal server error. Please try again later."

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	cause     error
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// NewMissingFieldError reports absent required fields.
func NewMissingFieldError(message string, fields ...string) *StandardError {
	return &StandardError{
		Code:      ErrCodeMissingField,
		Message:   message,
		Details:   fmt.Sprintf("missing: %v", fields),
		Retryable: false,
		Metadata:  map[string]interface{}{"fields": fields},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidValueError reports a present field whose value is unacceptable.
func NewInvalidValueError(field, message string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidValue,
		Message:   message,
		Details:   fmt.Sprintf("field: %s", field),
		Retryable: false,
		Metadata:  map[string]interface{}{"field": field},
		Timestamp: time.Now().UTC(),
	}
}

// NewNotificationSendFailedError wraps a transport failure for one recipient.
func NewNotificationSendFailedError(transport string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Notification delivery failed",
		Details:   fmt.Sprintf("transport: %s, error: %s", transport, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// NewStorageFailedError wraps a requirement store backend failure.
func NewStorageFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStorageFailed,
		Message:   "Requirement storage failed",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
		cause:     err,
	}
}

// AsStandardError extracts a *StandardError from err's chain.
func AsStandardError(err error) (*StandardError, bool) {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr, true
	}
	return nil, false
}

// IsValidation reports whether err is a caller-correctable validation error.
func IsValidation(err error) bool {
	stdErr, ok := AsStandardError(err)
	if !ok {
		return false
	}
	return stdErr.Code == ErrCodeMissingField || stdErr.Code == ErrCodeInvalidValue
}

// HTTPStatus maps an error to the response status of the public API.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if IsValidation(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// PublicMessage returns the message safe to show to API callers.
func PublicMessage(err error) string {
	if IsValidation(err) {
		stdErr, _ := AsStandardError(err)
		return stdErr.Message
	}
	return InternalErrorMessage
}

// GetErrorCategory groups error codes for logs and metrics.
func GetErrorCategory(code ErrorCode) string {
	switch code {
	case ErrCodeMissingField, ErrCodeInvalidValue:
		return "VALIDATION"
	case ErrCodeNotificationSendFailed:
		return "NOTIFICATION"
	case ErrCodeStorageFailed:
		return "STORAGE"
	default:
		return "OTHER"
	}
}
