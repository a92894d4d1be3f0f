package notifiedbody

import (
	"context"
	"log/slog"

	"en13813/pkg/platform/circuit"
)

// BreakerRegistry fails fast while the wrapped registry keeps timing out or
// being unreachable. Answers from the registry, including "not found" or
// "expired", count as successes.
type BreakerRegistry struct {
	next    Registry
	breaker *circuit.Breaker
	logger  *slog.Logger
}

func NewBreakerRegistry(next Registry, breaker *circuit.Breaker, logger *slog.Logger) *BreakerRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &BreakerRegistry{next: next, breaker: breaker, logger: logger}
}

func (r *BreakerRegistry) Lookup(ctx context.Context, number string, scopes []string) (*Body, error) {
	if !r.breaker.Allow() {
		return nil, NewLookupError(CategoryUnavailable, NormalizeNumber(number), "registry circuit open", nil)
	}

	body, err := r.next.Lookup(ctx, number, scopes)
	if err != nil && IsRetryable(err) {
		if _, change := r.breaker.RecordFailure(); change.Opened {
			r.logger.WarnContext(ctx, "notified body registry circuit opened",
				"breaker", r.breaker.Name(),
				"error", err,
			)
		}
		return nil, err
	}
	if _, change := r.breaker.RecordSuccess(); change.Closed {
		r.logger.InfoContext(ctx, "notified body registry circuit closed", "breaker", r.breaker.Name())
	}
	return body, err
}
