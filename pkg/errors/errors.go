// Package errors provides structured error types for suechart.
//
// Every failure that can reach the user during a chart conversion carries a
// [Code] so callers can tell a wrong selection from a broken link or a render
// failure, and a Message that is safe to show in a transient notice.
//
// # Error Codes
//
//   - SELECTION: wrong number or kind of selected layers (user-correctable)
//   - LINK_BROKEN: the artwork a placeholder points at no longer resolves
//   - PARSE_ERROR: malformed stored configuration, markup or pasted table
//   - NETWORK_ERROR: transport failure talking to the render endpoint
//   - RENDER_ERROR: the render endpoint reported a domain failure
//   - CANCELLED: the user dismissed a prompt
//
// # Usage
//
//	err := errors.New(errors.ErrCodeSelection, "Select a Rectangle to convert it to a Sue Chart.")
//	if errors.Is(err, errors.ErrCodeSelection) {
//	    // show the message, do nothing else
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "%s", resp.Status)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Conversion flow errors
	ErrCodeSelection  Code = "SELECTION"
	ErrCodeLinkBroken Code = "LINK_BROKEN"
	ErrCodeParse      Code = "PARSE_ERROR"
	ErrCodeNetwork    Code = "NETWORK_ERROR"
	ErrCodeRender     Code = "RENDER_ERROR"
	ErrCodeCancelled  Code = "CANCELLED"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidStyle Code = "INVALID_STYLE"
	ErrCodeInvalidType  Code = "INVALID_CHART_TYPE"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"

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

// As finds the first error in err's chain that matches target.
// It is errors.As from the standard library, re-exported so callers do not
// need both packages.
func As(err error, target any) bool {
	return errors.As(err, target)
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

// UserMessage returns the text shown to the user for err.
// For *Error types this is the message without code prefix or cause.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
