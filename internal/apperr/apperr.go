// Package apperr defines the typed errors surfaced by the API.
// Every error carries a machine code, a safe human-readable message and the HTTP status to use.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches on Code so callers can compare against the predefined values with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors. Duplicate main documents are reported as 400, not 409.
var (
	ErrValidation            = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInvalidID             = New("INVALID_ID", http.StatusBadRequest, "invalid id format")
	ErrInvalidStatus         = New("INVALID_STATUS", http.StatusBadRequest, "invalid status")
	ErrInvalidDocType        = New("INVALID_DOC_TYPE", http.StatusBadRequest, `Invalid doc_type. Must be "main" or "attachment"`)
	ErrFileRequired          = New("FILE_REQUIRED", http.StatusBadRequest, "No file provided")
	ErrNotFound              = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrDuplicateMainDocument = New("DUPLICATE_MAIN_DOCUMENT", http.StatusBadRequest, "Main document already exists. Please delete it first or upload as attachment.")
	ErrStorage               = New("STORAGE_ERROR", http.StatusInternalServerError, "storage unavailable")
	ErrTooLarge              = New("FILE_TOO_LARGE", http.StatusRequestEntityTooLarge, "file exceeds the maximum upload size")
	ErrInternal              = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}

// WithCause returns a copy of err wrapping cause, keeping code, status and message.
func WithCause(err *Error, cause error) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	clone.Err = cause
	return &clone
}
