// Package handler exposes the designation codec over HTTP.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"en13813/internal/designation"
	dErrors "en13813/pkg/domain-errors"
	"en13813/pkg/platform/httputil"
	"en13813/pkg/requestcontext"
)

// Handler wires designation endpoints to a codec.
type Handler struct {
	codec  *designation.Codec
	logger *slog.Logger
}

func New(codec *designation.Codec, logger *slog.Logger) *Handler {
	if codec == nil {
		codec = designation.New()
	}
	return &Handler{codec: codec, logger: logger}
}

// Register mounts designation endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/designations/generate", h.HandleGenerate)
	r.Post("/designations/parse", h.HandleParse)
	r.Post("/designations/validate", h.HandleValidate)
}

// DesignationRequest carries a designation string.
type DesignationRequest struct {
	Designation string `json:"designation"`
}

func (r *DesignationRequest) decode(req *http.Request) error {
	if err := httputil.DecodeJSON(req, r); err != nil {
		return err
	}
	r.Designation = strings.TrimSpace(r.Designation)
	if r.Designation == "" {
		return dErrors.New(dErrors.CodeBadRequest, "designation is required")
	}
	return nil
}

// GenerateResponse returns the designation for the posted properties.
type GenerateResponse struct {
	Designation string `json:"designation"`
}

// HandleGenerate handles POST /designations/generate. The body is a
// designation.Properties document.
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var props designation.Properties
	if err := httputil.DecodeJSON(r, &props); err != nil {
		httputil.WriteError(w, err)
		return
	}
	s, err := h.codec.Generate(props)
	if err != nil {
		h.logger.InfoContext(ctx, "designation generation rejected",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, GenerateResponse{Designation: s})
}

// HandleParse handles POST /designations/parse.
func (h *Handler) HandleParse(w http.ResponseWriter, r *http.Request) {
	var req DesignationRequest
	if err := req.decode(r); err != nil {
		httputil.WriteError(w, err)
		return
	}
	parsed, err := h.codec.ParseDetailed(req.Designation)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, parsed)
}

// HandleValidate handles POST /designations/validate. The verdict is always a
// 200; invalid designations are reported in the body.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	var req DesignationRequest
	if err := req.decode(r); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, h.codec.Validate(req.Designation))
}
