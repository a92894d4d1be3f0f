package handler

import (
	"strings"
	"time"

	"en13813/internal/declaration/models"
	"en13813/internal/declaration/service"
	id "en13813/pkg/domain"
	dErrors "en13813/pkg/domain-errors"
)

// CreateRequest is the body of POST /declarations. Omitted classes are copied
// from the recipe.
type CreateRequest struct {
	Number         string               `json:"declaration_number"`
	RecipeID       id.RecipeID          `json:"recipe_id"`
	BatchID        *id.BatchID          `json:"batch_id,omitempty"`
	TestReportIDs  []id.TestReportID    `json:"test_report_ids,omitempty"`
	Manufacturer   models.Manufacturer  `json:"manufacturer"`
	HarmonizedSpec string               `json:"harmonized_spec"`
	AVCPSystem     models.AVCPSystem    `json:"avcp_system"`
	NotifiedBody   *models.NotifiedBody `json:"notified_body,omitempty"`
	Performance    models.Performance   `json:"performance"`
	Signatory      *models.Signatory    `json:"signatory,omitempty"`
	ValidUntil     *time.Time           `json:"valid_until,omitempty"`
}

func (r *CreateRequest) Normalize() {
	r.Number = strings.TrimSpace(r.Number)
	r.HarmonizedSpec = strings.TrimSpace(r.HarmonizedSpec)
}

func (r *CreateRequest) Validate() error {
	if r.Number == "" {
		return dErrors.New(dErrors.CodeBadRequest, "declaration_number is required")
	}
	if r.RecipeID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "recipe_id is required")
	}
	return nil
}

func (r *CreateRequest) Command() service.CreateCommand {
	return service.CreateCommand{
		Number:         r.Number,
		RecipeID:       r.RecipeID,
		BatchID:        r.BatchID,
		TestReportIDs:  r.TestReportIDs,
		Manufacturer:   r.Manufacturer,
		HarmonizedSpec: r.HarmonizedSpec,
		AVCPSystem:     r.AVCPSystem,
		NotifiedBody:   r.NotifiedBody,
		Performance:    r.Performance,
		Signatory:      r.Signatory,
		ValidUntil:     r.ValidUntil,
	}
}

// ValidateRequest asks which findings a move to Target would produce.
type ValidateRequest struct {
	Target string `json:"target"`
}

func (r *ValidateRequest) Validate() (models.Status, error) {
	return parseStatus("target", r.Target)
}

// TransitionRequest moves a declaration from Expected to Target.
type TransitionRequest struct {
	Expected string `json:"expected"`
	Target   string `json:"target"`
	Actor    string `json:"actor,omitempty"`
}

func (r *TransitionRequest) Validate() (expected, target models.Status, err error) {
	if expected, err = parseStatus("expected", r.Expected); err != nil {
		return "", "", err
	}
	if target, err = parseStatus("target", r.Target); err != nil {
		return "", "", err
	}
	return expected, target, nil
}

// ReviseRequest asks for a new revision.
type ReviseRequest struct {
	Actor            string `json:"actor,omitempty"`
	DeactivateSource bool   `json:"deactivate_source,omitempty"`
}

func parseStatus(field, raw string) (models.Status, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", dErrors.Newf(dErrors.CodeBadRequest, "%s is required", field)
	}
	st, ok := models.ParseStatus(strings.ToLower(raw))
	if !ok {
		return "", dErrors.Newf(dErrors.CodeBadRequest, "%s: unknown workflow status %q", field, raw)
	}
	return st, nil
}
