// Package httptransport assembles the HTTP surface of the engine.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"en13813/internal/platform/metrics"
	"en13813/internal/platform/middleware"
	"en13813/pkg/platform/httputil"
	"en13813/pkg/platform/middleware/metadata"
	"en13813/pkg/platform/middleware/requesttime"
)

const readinessTimeout = 2 * time.Second

// Registrar mounts a bounded context's endpoints.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a backing resource is reachable.
type HealthCheck func(ctx context.Context) error

// Deps are the collaborators of the router. Nil Gatherer serves the default
// prometheus registry.
type Deps struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Handlers []Registrar
	Checks   map[string]HealthCheck

	// APIMiddleware wraps the registrar routes only; operational endpoints
	// stay unthrottled.
	APIMiddleware []func(http.Handler) http.Handler
}

// NewRouter wires middleware, operational endpoints and every registrar.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(metadata.RequestMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.RequestLogger(logger, deps.Metrics))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", readiness(deps.Checks, logger))
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(deps.APIMiddleware...)
		for _, h := range deps.Handlers {
			h.Register(r)
		}
	})
	return r
}

// readiness runs every check; any failure is a 503 naming the failing checks.
func readiness(checks map[string]HealthCheck, logger *slog.Logger) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(names))
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				logger.WarnContext(ctx, "readiness check failed", "check", name, "error", err)
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}
		httputil.WriteJSON(w, status, results)
	}
}
