package ratelimit

import (
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"en13813/pkg/platform/httputil"
	"en13813/pkg/platform/middleware/metadata"
)

// Middleware rejects clients that exceed their budget with 429. A failing
// store lets the request through.
type Middleware struct {
	store    Store
	limits   Limits
	logger   *slog.Logger
	rejected *prometheus.CounterVec
}

type Option func(*Middleware)

func WithLimits(l Limits) Option {
	return func(m *Middleware) {
		m.limits = l
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(m *Middleware) {
		m.logger = logger
	}
}

// WithRegisterer registers the rejection counter with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(m *Middleware) {
		m.rejected = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "en13813_ratelimit_rejected_total",
			Help: "Requests rejected by the rate limiter by class",
		}, []string{"class"})
	}
}

func New(store Store, opts ...Option) (*Middleware, error) {
	if store == nil {
		return nil, errors.New("rate limit store is required")
	}
	m := &Middleware{store: store, limits: DefaultLimits(), logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

type exceededResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	RetryAfter int    `json:"retry_after"`
}

func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		class := ClassOf(r.Method)
		limit := m.limits.For(class)
		if limit.Requests <= 0 {
			next.ServeHTTP(w, r)
			return
		}

		ip := metadata.ClientIPFromRequest(r)
		result, err := m.store.Allow(ctx, key(class, ip), limit.Requests, limit.Window)
		if err != nil {
			m.logger.ErrorContext(ctx, "rate limit check failed", "error", err, "class", string(class))
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
		if result.Allowed {
			next.ServeHTTP(w, r)
			return
		}

		if m.rejected != nil {
			m.rejected.WithLabelValues(string(class)).Inc()
		}
		retry := int(math.Ceil(result.RetryAfter.Seconds()))
		if retry < 1 {
			retry = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(retry))
		httputil.WriteJSON(w, http.StatusTooManyRequests, exceededResponse{
			Error:      "rate_limit_exceeded",
			Message:    "too many requests, try again later",
			RetryAfter: retry,
		})
	})
}
