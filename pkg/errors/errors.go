// Package errors provides structured error types for texsvg.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, server and client
//   - Machine-readable error codes for programmatic handling
//   - Bare user-facing messages for {"error": ...} response bodies
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes follow the failure taxonomy of the conversion pipeline:
//   - NO_PATTERN_MATCHED: the input is not one of the whitelisted math shapes
//   - CONVERTER_FAILURE: the external renderer rejected the math content
//   - MALFORMED_RENDER_OUTPUT: the renderer's output violates its contract
//   - TRANSPORT_ERROR: connection-level failures
//   - PROTOCOL_ERROR: wrong method or unparsable request/response body
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoPatternMatched, "No math pattern found in %q.", tex)
//	if errors.Is(err, errors.ErrCodeNoPatternMatched) {
//	    // Handle user input error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeTransport, origErr, "post %s", url)
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Conversion errors
	ErrCodeNoPatternMatched      Code = "NO_PATTERN_MATCHED"
	ErrCodeConverterFailure      Code = "CONVERTER_FAILURE"
	ErrCodeMalformedRenderOutput Code = "MALFORMED_RENDER_OUTPUT"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidScale Code = "INVALID_SCALE"
	ErrCodeInvalidPort  Code = "INVALID_PORT"

	// Transport and protocol errors
	ErrCodeTransport        Code = "TRANSPORT_ERROR"
	ErrCodeProtocol         Code = "PROTOCOL_ERROR"
	ErrCodeMethodNotAllowed Code = "METHOD_NOT_ALLOWED"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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

// HTTPStatus maps an error to the status code the server responds with.
// Only a rejected method has its own status; every other failure is a 500.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// IsCollaboratorBug reports whether err signals a contract violation by the
// external converter rather than a problem with the caller's input.
func IsCollaboratorBug(err error) bool {
	return Is(err, ErrCodeMalformedRenderOutput)
}
