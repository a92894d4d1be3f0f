// Package recipe holds the declared classification of a screed product and
// its persistence adapters.
package recipe

import (
	"strings"
	"time"

	"en13813/internal/designation"
	id "en13813/pkg/domain"
	dErrors "en13813/pkg/domain-errors"
)

// Recipe is a product formulation with its declared classes.
//
// Invariants:
//   - Name is non-empty and at most 128 characters
//   - Designation is always Generate(Properties) for the codec in use
type Recipe struct {
	ID          id.RecipeID            `json:"id"`
	Name        string                 `json:"name"`
	Properties  designation.Properties `json:"properties"`
	Designation string                 `json:"designation"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// New builds a recipe and caches its designation string. Properties that
// cannot be encoded surface the codec's format error.
func New(recipeID id.RecipeID, name string, props designation.Properties, codec *designation.Codec, now time.Time) (*Recipe, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "recipe name cannot be empty")
	}
	if len(name) > 128 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "recipe name must be 128 characters or less")
	}
	if codec == nil {
		codec = designation.New()
	}
	code, err := codec.Generate(props)
	if err != nil {
		return nil, err
	}
	return &Recipe{
		ID:          recipeID,
		Name:        name,
		Properties:  props,
		Designation: code,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}
