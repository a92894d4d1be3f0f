// Package domainerrors carries coded errors across layer boundaries.
//
// Services return *Error values so transports can map them to status codes
// without string matching. Stores return pkg/platform/sentinel errors instead;
// services translate those into codes here.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for callers and transports.
type Code string

const (
	// CodeFormat: a designation or declared-class string does not match its grammar.
	CodeFormat Code = "format_error"
	// CodeRange: a class value is well-formed but outside its enumerated set.
	CodeRange Code = "range_warning"
	// CodeInsufficientSample: fewer measurements than a statistical check needs.
	CodeInsufficientSample Code = "insufficient_sample"
	// CodeValidation: a declaration violates one or more completeness rules.
	CodeValidation Code = "validation_error"
	// CodeConflict: the persisted state differs from the caller's expectation.
	CodeConflict Code = "conflict"
	// CodeRegistryLookup: notified-body registry lookup failed or was rejected.
	CodeRegistryLookup Code = "registry_lookup"
	// CodeInvalidTransition: the workflow does not allow the requested move.
	CodeInvalidTransition Code = "invalid_transition"

	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeNotFound           Code = "not_found"
	CodeInvariantViolation Code = "invariant_violation"
	CodeTimeout            Code = "timeout"
	CodeInternal           Code = "internal_error"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether any error in err's chain carries code.
func HasCode(err error, code Code) bool {
	var target *Error
	if !errors.As(err, &target) {
		return false
	}
	if target.Code == code {
		return true
	}
	return target.Err != nil && HasCode(target.Err, code)
}

// Is is shorthand for HasCode.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost code in err's chain, or CodeInternal.
func CodeOf(err error) Code {
	var target *Error
	if errors.As(err, &target) {
		return target.Code
	}
	return CodeInternal
}
