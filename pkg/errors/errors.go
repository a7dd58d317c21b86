// Package errors provides structured error types shared by the Slatedeck
// CLI and API hosts.
//
// Error codes are machine-readable and hierarchical:
//   - INVALID_*: input validation failures
//   - *_NOT_FOUND: resource not found
//   - CONFLICT_*: mutations refused by the layout engine
//   - INTERNAL_*: unexpected internal errors
//
// Most layout "failures" never reach this package: the engine reports
// rejected mutations as boolean outcomes. Codes exist for the boundary
// where a host must turn an outcome or contract violation into an HTTP
// status or exit message.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSlideNotFound, "slide %s not in deck", id)
//	if errors.Is(err, errors.ErrCodeSlideNotFound) {
//	    // 404
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidGrid  Code = "INVALID_GRID"
	ErrCodeInvalidSpan  Code = "INVALID_SPAN"
	ErrCodeInvalidBlock Code = "INVALID_BLOCK"
	ErrCodeInvalidDeck  Code = "INVALID_DECK"

	// Resource not found errors
	ErrCodeNotFound      Code = "NOT_FOUND"
	ErrCodeDeckNotFound  Code = "DECK_NOT_FOUND"
	ErrCodeSlideNotFound Code = "SLIDE_NOT_FOUND"
	ErrCodeBlockNotFound Code = "BLOCK_NOT_FOUND"

	// Mutations refused by the layout engine
	ErrCodeCellOccupied Code = "CONFLICT_CELL_OCCUPIED"
	ErrCodeSpanRejected Code = "CONFLICT_SPAN_REJECTED"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
