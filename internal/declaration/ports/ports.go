// Package ports declares the collaborators the declaration workflow depends
// on. Adapters live with their owning context (store, recipe, notifiedbody,
// audit) so the workflow never imports a driver.
package ports

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks DeclarationStore,RecipeStore,NotifiedBodyRegistry,AuditPublisher,Transactor

import (
	"context"
	"time"

	"en13813/internal/audit"
	"en13813/internal/declaration/models"
	"en13813/internal/notifiedbody"
	"en13813/internal/recipe"
	id "en13813/pkg/domain"
)

// DeclarationStore persists declarations. Status only changes through
// UpdateStatus, which must compare and swap atomically: it returns
// sentinel.ErrConflict when the stored status is not expected, and
// sentinel.ErrNotFound for an unknown id.
type DeclarationStore interface {
	Create(ctx context.Context, d *models.Declaration) error
	FindByID(ctx context.Context, declID id.DeclarationID) (*models.Declaration, error)
	UpdateStatus(ctx context.Context, declID id.DeclarationID, expected, next models.Status, at time.Time) error
	SetActive(ctx context.Context, declID id.DeclarationID, active bool, at time.Time) error
	ListRevisions(ctx context.Context, declID id.DeclarationID) ([]*models.Declaration, error)
}

// RecipeStore resolves the recipe a declaration references.
type RecipeStore interface {
	FindByID(ctx context.Context, recipeID id.RecipeID) (*recipe.Recipe, error)
}

// NotifiedBodyRegistry resolves a notified body by number for the required
// scopes. Any failure means "notified body missing" for validation.
type NotifiedBodyRegistry interface {
	Lookup(ctx context.Context, number string, scopes []string) (*notifiedbody.Body, error)
}

// AuditPublisher records workflow events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Transactor runs fn so that the store writes made with the ctx it receives
// commit or roll back together.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
