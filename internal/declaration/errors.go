package declaration

import (
	"fmt"
	"strings"

	"en13813/internal/declaration/models"
	id "en13813/pkg/domain"
	dErrors "en13813/pkg/domain-errors"
	"en13813/pkg/platform/sentinel"
)

// ValidationError blocks a transition and carries every violated rule.
type ValidationError struct {
	Target     models.Status
	Violations []Violation
	// Result is the full validation outcome, warnings included.
	Result *Result
}

func NewValidationError(target models.Status, res *Result) *ValidationError {
	return &ValidationError{Target: target, Violations: res.Errors, Result: res}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("declaration cannot move to %s: %d violation(s): %s",
		e.Target, len(e.Violations), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return dErrors.Newf(dErrors.CodeValidation, "declaration failed %s validation", e.Target)
}

// StateConflictError reports that the persisted status differs from the
// status the caller last observed.
type StateConflictError struct {
	ID       id.DeclarationID
	Expected models.Status
	Actual   models.Status
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("declaration %s is %s, expected %s", e.ID, e.Actual, e.Expected)
}

func (e *StateConflictError) Unwrap() []error {
	return []error{
		sentinel.ErrConflict,
		dErrors.Newf(dErrors.CodeConflict, "declaration is %s, expected %s", e.Actual, e.Expected),
	}
}
