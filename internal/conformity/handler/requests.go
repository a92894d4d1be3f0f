package handler

import (
	"strings"

	"en13813/internal/classes"
	"en13813/internal/conformity"
	dErrors "en13813/pkg/domain-errors"
)

const maxBatchSize = 100

// AssessRequest is one sample set.
type AssessRequest struct {
	Property      string    `json:"property"`
	DeclaredClass string    `json:"declared_class"`
	Values        []float64 `json:"values"`
}

// Normalize trims string fields in place.
func (r *AssessRequest) Normalize() {
	r.Property = strings.TrimSpace(r.Property)
	r.DeclaredClass = strings.TrimSpace(r.DeclaredClass)
}

// Validate rejects requests that cannot name a property or carry no values.
func (r *AssessRequest) Validate() error {
	if r.Property == "" {
		return dErrors.New(dErrors.CodeBadRequest, "property is required")
	}
	if r.DeclaredClass == "" {
		return dErrors.New(dErrors.CodeBadRequest, "declared_class is required")
	}
	if len(r.Values) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "values must not be empty")
	}
	return nil
}

func (r *AssessRequest) SampleSet() conformity.SampleSet {
	return conformity.SampleSet{
		Property:      classes.Property(r.Property),
		DeclaredClass: r.DeclaredClass,
		Values:        r.Values,
	}
}

// BatchRequest carries several sample sets.
type BatchRequest struct {
	Sets []AssessRequest `json:"sets"`
}

func (r *BatchRequest) Normalize() {
	for i := range r.Sets {
		r.Sets[i].Normalize()
	}
}

// Validate checks the batch size only; malformed sets are reported per item.
func (r *BatchRequest) Validate() error {
	if len(r.Sets) == 0 {
		return dErrors.New(dErrors.CodeBadRequest, "sets must not be empty")
	}
	if len(r.Sets) > maxBatchSize {
		return dErrors.Newf(dErrors.CodeBadRequest, "at most %d sets per batch", maxBatchSize)
	}
	return nil
}
