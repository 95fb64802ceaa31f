// Package errors provides structured error types for the announcement service.
//
// Every failure produced by the renderer, the field extractor or the request
// validator carries a machine-readable Code. The HTTP layer maps codes to
// status codes; the CLI prints the user message.
//
// # Error Codes
//
//   - INVALID_*: caller data defects (rejected, never retried)
//   - TEXT_OVERFLOW: a field cannot fit the canvas even at minimum size
//   - RESOURCE_MISSING: a required asset (font) is absent at startup
//   - INTERNAL_ERROR: anything else
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormat, "subject label %q does not match pattern", label)
//	if errors.Is(err, errors.ErrCodeInvalidFormat) {
//	    // reject the request
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Input errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidFont   Code = "INVALID_FONT"

	// Rendering errors
	ErrCodeTextOverflow Code = "TEXT_OVERFLOW"

	// Resource errors
	ErrCodeResourceMissing Code = "RESOURCE_MISSING"
	ErrCodeNotFound        Code = "NOT_FOUND"

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

// Is reports whether err carries the given error code anywhere in its chain.
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no coded error is found in the chain.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var o *TextOverflowError
	if errors.As(err, &o) {
		return ErrCodeTextOverflow
	}
	var f *FieldError
	if errors.As(err, &f) {
		return ErrCodeInvalidInput
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

// TextOverflowError reports text that does not fit the usable canvas width
// even at the minimum font size.
type TextOverflowError struct {
	Field    string
	Text     string
	MinSize  int
	MaxWidth int
}

// Error implements the error interface.
func (e *TextOverflowError) Error() string {
	return fmt.Sprintf("%s: text too long to fit: %q (field %s): wider than %dpx even at %dpx",
		ErrCodeTextOverflow, e.Text, e.Field, e.MaxWidth, e.MinSize)
}

// Code returns the error code for this error type.
func (e *TextOverflowError) Code() Code {
	return ErrCodeTextOverflow
}

// FieldError is a validation failure attached to a single request field.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrCodeInvalidInput, e.Field, e.Message)
}

// FieldErrors collects every FieldError found in err, in order.
func FieldErrors(err error) []*FieldError {
	if err == nil {
		return nil
	}
	var out []*FieldError
	var walk func(error)
	walk = func(e error) {
		if fe, ok := e.(*FieldError); ok {
			out = append(out, fe)
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			if inner := u.Unwrap(); inner != nil {
				walk(inner)
			}
		}
	}
	walk(err)
	return out
}

// JoinMessages renders the messages of every FieldError in err as one line.
func JoinMessages(err error) string {
	fields := FieldErrors(err)
	if len(fields) == 0 {
		return UserMessage(err)
	}
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return strings.Join(parts, "; ")
}
