// Package errors provides the error taxonomy surfaced by every game action.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error kind.
type Code string

const (
	// CodeInvalidInput marks a malformed token or out-of-range argument.
	CodeInvalidInput Code = "INVALID_INPUT"
	// CodeNotFound marks an unknown save identifier.
	CodeNotFound Code = "NOT_FOUND"
	// CodeDomain marks an action that is illegal in the player's current state.
	CodeDomain Code = "DOMAIN_ERROR"
	// CodeInternal marks an unexpected failure such as unavailable storage.
	CodeInternal Code = "INTERNAL"
)

// HTTPStatus maps error codes to HTTP status codes.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeDomain:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is the domain error type.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Caller-facing message
	Cause   error  // Wrapped underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// InvalidInput creates an INVALID_INPUT error.
func InvalidInput(format string, args ...any) *Error {
	return Newf(CodeInvalidInput, format, args...)
}

// Domain creates a DOMAIN_ERROR error.
func Domain(format string, args ...any) *Error {
	return Newf(CodeDomain, format, args...)
}

// NotFound creates a NOT_FOUND error.
func NotFound(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// CodeOf returns the code of the first *Error in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Message returns the caller-facing message for err. Internal failures are
// reported generically so storage details do not leak to callers.
func Message(err error) string {
	var e *Error
	if stderrors.As(err, &e) && e.Code != CodeInternal {
		return e.Message
	}
	return "internal error"
}
