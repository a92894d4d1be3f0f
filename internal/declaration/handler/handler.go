// Package handler exposes the declaration workflow over HTTP.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"en13813/internal/declaration"
	"en13813/internal/declaration/models"
	"en13813/internal/declaration/service"
	id "en13813/pkg/domain"
	dErrors "en13813/pkg/domain-errors"
	"en13813/pkg/platform/httputil"
	"en13813/pkg/requestcontext"
)

// Service defines the workflow operations the handler needs.
type Service interface {
	Create(ctx context.Context, cmd service.CreateCommand) (*models.Declaration, error)
	Get(ctx context.Context, declID id.DeclarationID) (*models.Declaration, error)
	ValidateDeclaration(ctx context.Context, declID id.DeclarationID, target models.Status) (*declaration.Result, error)
	Transition(ctx context.Context, declID id.DeclarationID, expected, target models.Status, actor string) (*service.TransitionResult, error)
	Revise(ctx context.Context, cmd service.ReviseCommand) (*models.Declaration, error)
	ListRevisions(ctx context.Context, declID id.DeclarationID) ([]*models.Declaration, error)
}

// Handler wires declaration endpoints to the workflow service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts declaration endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/declarations", h.HandleCreate)
	r.Route("/declarations/{id}", func(r chi.Router) {
		r.Get("/", h.HandleGet)
		r.Post("/validate", h.HandleValidate)
		r.Post("/transition", h.HandleTransition)
		r.Post("/revise", h.HandleRevise)
		r.Get("/revisions", h.HandleListRevisions)
	})
}

// HandleCreate handles POST /declarations.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CreateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	d, err := h.service.Create(ctx, req.Command())
	if err != nil {
		h.logger.WarnContext(ctx, "declaration creation failed",
			"request_id", requestcontext.RequestID(ctx),
			"declaration_number", req.Number,
			"recipe_id", req.RecipeID.String(),
			"error", err,
		)
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, d)
}

// HandleGet handles GET /declarations/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	declID, ok := declarationID(w, r)
	if !ok {
		return
	}
	d, err := h.service.Get(r.Context(), declID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, d)
}

// HandleValidate handles POST /declarations/{id}/validate. Findings are a 200
// whatever their severity.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	declID, ok := declarationID(w, r)
	if !ok {
		return
	}
	var req ValidateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	target, err := req.Validate()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.service.ValidateDeclaration(r.Context(), declID, target)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ValidateResponse{Target: target, Result: res})
}

// HandleTransition handles POST /declarations/{id}/transition.
func (h *Handler) HandleTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	declID, ok := declarationID(w, r)
	if !ok {
		return
	}
	var req TransitionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	expected, target, err := req.Validate()
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	res, err := h.service.Transition(ctx, declID, expected, target, req.Actor)
	if err != nil {
		h.logger.InfoContext(ctx, "declaration transition refused",
			"request_id", requestcontext.RequestID(ctx),
			"declaration_id", declID.String(),
			"expected", expected,
			"target", target,
			"code", dErrors.CodeOf(err),
			"error", err,
		)
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

// HandleRevise handles POST /declarations/{id}/revise. An empty body is
// accepted.
func (h *Handler) HandleRevise(w http.ResponseWriter, r *http.Request) {
	declID, ok := declarationID(w, r)
	if !ok {
		return
	}
	var req ReviseRequest
	if r.ContentLength != 0 {
		if err := httputil.DecodeJSON(r, &req); err != nil {
			httputil.WriteError(w, err)
			return
		}
	}

	rev, err := h.service.Revise(r.Context(), service.ReviseCommand{
		SourceID:         declID,
		Actor:            req.Actor,
		DeactivateSource: req.DeactivateSource,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, rev)
}

// HandleListRevisions handles GET /declarations/{id}/revisions.
func (h *Handler) HandleListRevisions(w http.ResponseWriter, r *http.Request) {
	declID, ok := declarationID(w, r)
	if !ok {
		return
	}
	revs, err := h.service.ListRevisions(r.Context(), declID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RevisionsResponse{Revisions: revs})
}

// writeError attaches the violations of a blocked transition and the actual
// status of a stale one.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var verr *declaration.ValidationError
	if errors.As(err, &verr) {
		details := ViolationDetails{Target: verr.Target, Violations: verr.Violations}
		if verr.Result != nil {
			details.Warnings = verr.Result.Warnings
		}
		httputil.WriteErrorDetails(w, err, details)
		return
	}
	var cerr *declaration.StateConflictError
	if errors.As(err, &cerr) {
		httputil.WriteErrorDetails(w, err, ConflictDetails{Expected: cerr.Expected, Actual: cerr.Actual})
		return
	}
	httputil.WriteError(w, err)
}

func declarationID(w http.ResponseWriter, r *http.Request) (id.DeclarationID, bool) {
	declID, err := id.ParseDeclarationID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid declaration id"))
		return id.DeclarationID{}, false
	}
	return declID, true
}
