// Package handler exposes recipe registration over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"en13813/internal/designation"
	"en13813/internal/recipe"
	id "en13813/pkg/domain"
	dErrors "en13813/pkg/domain-errors"
	"en13813/pkg/platform/httputil"
	"en13813/pkg/requestcontext"
)

// Service defines the recipe operations the handler needs.
type Service interface {
	Create(ctx context.Context, name string, props designation.Properties) (*recipe.Recipe, error)
	Get(ctx context.Context, recipeID id.RecipeID) (*recipe.Recipe, error)
	List(ctx context.Context) ([]*recipe.Recipe, error)
}

// Handler wires recipe endpoints to the recipe service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts recipe endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/recipes", h.HandleCreate)
	r.Get("/recipes", h.HandleList)
	r.Get("/recipes/{id}", h.HandleGet)
}

// CreateRequest registers a recipe under a name.
type CreateRequest struct {
	Name       string                 `json:"name"`
	Properties designation.Properties `json:"properties"`
}

// ListResponse wraps the recipe list.
type ListResponse struct {
	Recipes []*recipe.Recipe `json:"recipes"`
}

// HandleCreate handles POST /recipes.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req CreateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "name is required"))
		return
	}

	rec, err := h.service.Create(ctx, req.Name, req.Properties)
	if err != nil {
		h.logger.WarnContext(ctx, "recipe creation failed",
			"request_id", requestcontext.RequestID(ctx),
			"name", req.Name,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, rec)
}

// HandleGet handles GET /recipes/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	recipeID, err := id.ParseRecipeID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid recipe id"))
		return
	}
	rec, err := h.service.Get(r.Context(), recipeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

// HandleList handles GET /recipes.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ListResponse{Recipes: recipes})
}
