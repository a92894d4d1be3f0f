package recipe

import (
	"context"
	"errors"
	"log/slog"

	"en13813/internal/audit"
	"en13813/internal/designation"
	id "en13813/pkg/domain"
	dErrors "en13813/pkg/domain-errors"
	"en13813/pkg/platform/sentinel"
	"en13813/pkg/requestcontext"
)

// Store persists recipes.
type Store interface {
	Create(ctx context.Context, r *Recipe) error
	FindByID(ctx context.Context, recipeID id.RecipeID) (*Recipe, error)
	List(ctx context.Context) ([]*Recipe, error)
}

// AuditPublisher records recipe events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service registers and looks up recipes.
type Service struct {
	store          Store
	codec          *designation.Codec
	auditPublisher AuditPublisher
	logger         *slog.Logger
}

type ServiceOption func(*Service)

func WithCodec(codec *designation.Codec) ServiceOption {
	return func(s *Service) {
		s.codec = codec
	}
}

func WithAuditPublisher(p AuditPublisher) ServiceOption {
	return func(s *Service) {
		s.auditPublisher = p
	}
}

func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(store Store, opts ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, errors.New("recipe store is required")
	}
	s := &Service{store: store, codec: designation.New(), logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Create registers a recipe. Properties the codec cannot encode are a
// format error; a bad name is a validation error.
func (s *Service) Create(ctx context.Context, name string, props designation.Properties) (*Recipe, error) {
	r, err := New(id.NewRecipeID(), name, props, s.codec, requestcontext.Now(ctx))
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	if err := s.store.Create(ctx, r); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "recipe already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create recipe")
	}

	event := audit.Event{
		Type:     audit.EventRecipeCreated,
		RecipeID: r.ID.String(),
		Details:  map[string]string{"designation": r.Designation},
	}
	s.logger.InfoContext(ctx, string(event.Type),
		"recipe_id", event.RecipeID,
		"designation", r.Designation,
		"request_id", requestcontext.RequestID(ctx),
		"log_type", "audit",
	)
	if s.auditPublisher != nil {
		if err := s.auditPublisher.Emit(ctx, event); err != nil {
			s.logger.ErrorContext(ctx, "failed to publish audit event", "type", event.Type, "error", err)
		}
	}
	return r, nil
}

func (s *Service) Get(ctx context.Context, recipeID id.RecipeID) (*Recipe, error) {
	r, err := s.store.FindByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "recipe not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load recipe")
	}
	return r, nil
}

func (s *Service) List(ctx context.Context) ([]*Recipe, error) {
	rs, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list recipes")
	}
	return rs, nil
}
