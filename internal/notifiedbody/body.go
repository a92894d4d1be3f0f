// Package notifiedbody looks up notified bodies in an external registry.
//
// Lookup failures of every kind are reported as *LookupError so the
// declaration validator can treat them uniformly as "notified body missing".
package notifiedbody

import (
	"slices"
	"strings"
	"time"
)

// Status is the registry status of a notified body.
type Status string

const (
	StatusActive    Status = "active"
	StatusSuspended Status = "suspended"
	StatusWithdrawn Status = "withdrawn"
)

// Body is the registry record of a notified body.
type Body struct {
	Number     string     `json:"number"`
	Name       string     `json:"name"`
	Status     Status     `json:"status"`
	Scopes     []string   `json:"scopes"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
}

// HasScopes reports whether the body is notified for every required scope.
// Scope comparison ignores case.
func (b *Body) HasScopes(required []string) bool {
	for _, r := range required {
		if !slices.ContainsFunc(b.Scopes, func(s string) bool { return strings.EqualFold(s, r) }) {
			return false
		}
	}
	return true
}

// Expired reports whether the notification lapsed at or before now.
func (b *Body) Expired(now time.Time) bool {
	return b.ValidUntil != nil && !b.ValidUntil.After(now)
}

// Verify checks a found body against the requested scopes at time now.
func Verify(b *Body, scopes []string, now time.Time) error {
	switch {
	case b.Status != "" && b.Status != StatusActive:
		return NewLookupError(CategoryExpired, b.Number, "notified body is "+string(b.Status), nil)
	case b.Expired(now):
		return NewLookupError(CategoryExpired, b.Number, "notification expired", nil)
	case !b.HasScopes(scopes):
		return NewLookupError(CategoryUnauthorized, b.Number, "notified body is not notified for the required scope", nil)
	}
	return nil
}

// NormalizeNumber strips the "NB" prefix and surrounding whitespace used in
// printed declarations (e.g. "NB 0672" becomes "0672").
func NormalizeNumber(number string) string {
	n := strings.TrimSpace(number)
	if len(n) > 2 && strings.EqualFold(n[:2], "NB") {
		n = strings.TrimSpace(n[2:])
	}
	return n
}
