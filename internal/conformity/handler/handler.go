// Package handler exposes conformity assessment over HTTP.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"en13813/internal/classes"
	"en13813/internal/conformity"
	"en13813/internal/conformity/metrics"
	"en13813/pkg/platform/httputil"
	"en13813/pkg/requestcontext"
)

// Handler wires conformity endpoints to the assessor.
type Handler struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func New(logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{logger: logger, metrics: m}
}

// Register mounts conformity endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/conformity/assess", h.HandleAssess)
	r.Post("/conformity/assess/batch", h.HandleAssessBatch)
}

// HandleAssess handles POST /conformity/assess. A failing material is a 200
// with passed=false; only uninterpretable input is an error.
func (h *Handler) HandleAssess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req AssessRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := conformity.Assess(req.SampleSet())
	if err != nil {
		h.metrics.IncrementAssessment(propertyLabel(req.SampleSet().Property), metrics.OutcomeInvalid)
		h.logger.WarnContext(ctx, "conformity assessment rejected",
			"request_id", requestcontext.RequestID(ctx),
			"property", req.Property,
			"declared_class", req.DeclaredClass,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	h.metrics.IncrementAssessment(propertyLabel(res.Property), outcome(res))
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleAssessBatch handles POST /conformity/assess/batch.
func (h *Handler) HandleAssessBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req BatchRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	sets := make([]conformity.SampleSet, 0, len(req.Sets))
	for i := range req.Sets {
		sets = append(sets, req.Sets[i].SampleSet())
	}
	items, err := conformity.AssessBatch(ctx, sets)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.metrics.ObserveBatchSize(len(items))
	for _, it := range items {
		switch {
		case it.Err != nil:
			h.metrics.IncrementAssessment(propertyLabel(it.Set.Property), metrics.OutcomeInvalid)
		default:
			h.metrics.IncrementAssessment(propertyLabel(it.Set.Property), outcome(*it.Result))
		}
	}
	h.logger.InfoContext(ctx, "conformity batch assessed",
		"request_id", requestcontext.RequestID(ctx),
		"sets", len(items),
		"all_passed", conformity.AllPassed(items),
	)
	httputil.WriteJSON(w, http.StatusOK, FromBatch(items))
}

// propertyLabel keeps client-supplied property names out of metric labels.
func propertyLabel(p classes.Property) string {
	if _, ok := conformity.CriteriaFor(p); !ok {
		return "unknown"
	}
	return string(p)
}

func outcome(res conformity.Result) string {
	if res.Passed {
		return metrics.OutcomePassed
	}
	return metrics.OutcomeFailed
}
