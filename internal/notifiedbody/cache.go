package notifiedbody

import (
	"context"
	"errors"
	"log/slog"

	"en13813/internal/notifiedbody/metrics"
	"en13813/pkg/platform/sentinel"
	"en13813/pkg/requestcontext"
)

// Cache stores registry records by normalized number. Find returns
// sentinel.ErrNotFound on a miss or after expiry.
type Cache interface {
	Find(ctx context.Context, number string) (*Body, error)
	Save(ctx context.Context, body *Body) error
}

// CachedRegistry serves lookups from a cache and falls back to the wrapped
// registry. Only successful lookups are cached; cached bodies are verified
// again against the caller's scopes and clock.
type CachedRegistry struct {
	next    Registry
	cache   Cache
	backend string
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewCachedRegistry(next Registry, cache Cache, backend string, logger *slog.Logger, m *metrics.Metrics) *CachedRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &CachedRegistry{next: next, cache: cache, backend: backend, logger: logger, metrics: m}
}

func (r *CachedRegistry) Lookup(ctx context.Context, number string, scopes []string) (*Body, error) {
	number = NormalizeNumber(number)
	cached, err := r.cache.Find(ctx, number)
	switch {
	case err == nil:
		r.metrics.IncrementCacheHit(r.backend)
		if err := Verify(cached, scopes, requestcontext.Now(ctx)); err != nil {
			return nil, err
		}
		return cached, nil
	case errors.Is(err, sentinel.ErrNotFound):
		r.metrics.IncrementCacheMiss(r.backend)
	default:
		// A broken cache must not fail the lookup.
		r.metrics.IncrementCacheMiss(r.backend)
		r.logger.WarnContext(ctx, "notified body cache read failed", "backend", r.backend, "error", err)
	}

	body, err := r.next.Lookup(ctx, number, scopes)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Save(ctx, body); err != nil {
		r.logger.WarnContext(ctx, "notified body cache write failed", "backend", r.backend, "error", err)
	}
	return body, nil
}
