// Package ratelimit throttles API clients by IP with a sliding window. Reads
// and writes draw from separate budgets.
package ratelimit

import (
	"context"
	"net/http"
	"time"
)

// Class selects the budget a request draws from.
type Class string

const (
	ClassRead  Class = "read"
	ClassWrite Class = "write"
)

// ClassOf maps safe methods to ClassRead and everything else to ClassWrite.
func ClassOf(method string) Class {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return ClassRead
	}
	return ClassWrite
}

// Limit is a request budget per window.
type Limit struct {
	Requests int
	Window   time.Duration
}

// Limits holds one budget per class.
type Limits struct {
	Read  Limit
	Write Limit
}

// DefaultLimits allows 120 reads and 30 writes per minute per client.
func DefaultLimits() Limits {
	return Limits{
		Read:  Limit{Requests: 120, Window: time.Minute},
		Write: Limit{Requests: 30, Window: time.Minute},
	}
}

func (l Limits) For(class Class) Limit {
	if class == ClassRead {
		return l.Read
	}
	return l.Write
}

// Result is the outcome of one check.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

// Store counts requests per key within a window.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

func key(class Class, client string) string {
	return "rl:" + string(class) + ":" + client
}
