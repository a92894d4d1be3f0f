package handler

import (
	"en13813/internal/declaration"
	"en13813/internal/declaration/models"
)

// ValidateResponse reports a dry-run validation.
type ValidateResponse struct {
	Target models.Status `json:"target"`
	*declaration.Result
}

// RevisionsResponse lists the revisions of a declaration.
type RevisionsResponse struct {
	Revisions []*models.Declaration `json:"revisions"`
}

// ViolationDetails is the details payload of a blocked transition.
type ViolationDetails struct {
	Target     models.Status           `json:"target"`
	Violations []declaration.Violation `json:"violations"`
	Warnings   []declaration.Violation `json:"warnings"`
}

// ConflictDetails is the details payload of a stale transition.
type ConflictDetails struct {
	Expected models.Status `json:"expected"`
	Actual   models.Status `json:"actual"`
}
