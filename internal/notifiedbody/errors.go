package notifiedbody

import (
	"context"
	"errors"
	"fmt"

	dErrors "en13813/pkg/domain-errors"
)

// Category is the normalized failure taxonomy for registry lookups.
type Category string

const (
	// CategoryNotFound: the registry has no body with that number.
	CategoryNotFound Category = "not_found"
	// CategoryExpired: the body exists but its notification lapsed or was withdrawn.
	CategoryExpired Category = "expired"
	// CategoryUnauthorized: the body is not notified for a required scope, or
	// the registry rejected our credentials.
	CategoryUnauthorized Category = "unauthorized"
	// CategoryTimeout: the registry took too long to respond.
	CategoryTimeout Category = "timeout"
	// CategoryUnavailable: the registry could not be reached or returned 5xx.
	CategoryUnavailable Category = "unavailable"
	// CategoryBadData: the registry response could not be decoded.
	CategoryBadData Category = "bad_data"
)

// LookupError wraps every registry failure with a category. It unwraps to
// CodeRegistryLookup so transports can map it without knowing this package.
type LookupError struct {
	Category   Category
	Number     string
	Message    string
	Underlying error
	Retryable  bool
}

func (e *LookupError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("notified body %s [%s]: %s: %v", e.Number, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("notified body %s [%s]: %s", e.Number, e.Category, e.Message)
}

func (e *LookupError) Unwrap() []error {
	coded := dErrors.New(dErrors.CodeRegistryLookup, e.Message)
	if e.Underlying == nil {
		return []error{coded}
	}
	return []error{coded, e.Underlying}
}

// NewLookupError builds a categorized lookup error.
func NewLookupError(category Category, number, message string, underlying error) *LookupError {
	return &LookupError{
		Category:   category,
		Number:     number,
		Message:    message,
		Underlying: underlying,
		Retryable:  category == CategoryTimeout || category == CategoryUnavailable,
	}
}

// CategoryOf extracts the category of a lookup error, or "" for other errors.
func CategoryOf(err error) Category {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Category
	}
	return ""
}

// IsRetryable reports whether a lookup is worth retrying.
func IsRetryable(err error) bool {
	var le *LookupError
	if errors.As(err, &le) {
		return le.Retryable
	}
	return false
}

// transportError categorizes errors raised before a response was received.
func transportError(number string, err error) *LookupError {
	if errors.Is(err, context.DeadlineExceeded) {
		return NewLookupError(CategoryTimeout, number, "registry lookup timed out", err)
	}
	return NewLookupError(CategoryUnavailable, number, "registry unreachable", err)
}
