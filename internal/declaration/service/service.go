// Package service runs the declaration-of-performance workflow: creation,
// validation against a target state, status transitions and revisions.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"en13813/internal/audit"
	"en13813/internal/declaration"
	"en13813/internal/declaration/metrics"
	"en13813/internal/declaration/models"
	"en13813/internal/declaration/ports"
	id "en13813/pkg/domain"
	dErrors "en13813/pkg/domain-errors"
	"en13813/pkg/platform/sentinel"
	"en13813/pkg/requestcontext"
)

const (
	defaultLookupTimeout = 5 * time.Second
	// DefaultScope is the harmonized standard a notified body must cover.
	DefaultScope = "EN 13813"
)

// Service orchestrates the declaration workflow.
type Service struct {
	store          ports.DeclarationStore
	recipes        ports.RecipeStore
	registry       ports.NotifiedBodyRegistry
	auditPublisher ports.AuditPublisher
	transactor     ports.Transactor
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer
	policy         declaration.Policy
	lookupTimeout  time.Duration
	scopes         []string
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher ports.AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRegistry enables notified-body lookups for AVCP system 1 declarations.
func WithRegistry(registry ports.NotifiedBodyRegistry) Option {
	return func(s *Service) {
		s.registry = registry
	}
}

func WithPolicy(p declaration.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

// WithLookupTimeout bounds each registry lookup.
func WithLookupTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.lookupTimeout = d
		}
	}
}

// WithScopes sets the scopes a notified body must be notified for.
func WithScopes(scopes ...string) Option {
	return func(s *Service) {
		s.scopes = scopes
	}
}

// WithTransactor makes multi-write operations atomic. Without one each store
// write commits on its own.
func WithTransactor(t ports.Transactor) Option {
	return func(s *Service) {
		s.transactor = t
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New constructs a Service. The declaration and recipe stores are required.
func New(store ports.DeclarationStore, recipes ports.RecipeStore, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("declaration store is required")
	}
	if recipes == nil {
		return nil, errors.New("recipe store is required")
	}
	s := &Service{
		store:         store,
		recipes:       recipes,
		logger:        slog.Default(),
		tracer:        otel.Tracer("en13813/declaration"),
		policy:        declaration.DefaultPolicy(),
		lookupTimeout: defaultLookupTimeout,
		scopes:        []string{DefaultScope},
		transactor:    noopTransactor{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type noopTransactor struct{}

func (noopTransactor) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// CreateCommand carries the content of a new draft.
type CreateCommand struct {
	Number         string
	RecipeID       id.RecipeID
	BatchID        *id.BatchID
	TestReportIDs  []id.TestReportID
	Manufacturer   models.Manufacturer
	HarmonizedSpec string
	AVCPSystem     models.AVCPSystem
	NotifiedBody   *models.NotifiedBody
	Performance    models.Performance
	Signatory      *models.Signatory
	ValidUntil     *time.Time
}

// Create stores a new draft. The referenced recipe must exist; when no
// classes are declared the recipe's classes are copied in.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*models.Declaration, error) {
	now := requestcontext.Now(ctx)
	d, err := models.NewDeclaration(id.NewDeclarationID(), cmd.RecipeID, cmd.Number, now)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}

	rec, err := s.recipes.FindByID(ctx, cmd.RecipeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.Newf(dErrors.CodeValidation, "recipe %s does not exist", cmd.RecipeID)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load recipe")
	}

	d.BatchID = cmd.BatchID
	if len(cmd.TestReportIDs) > 0 {
		d.TestReportIDs = append(d.TestReportIDs, cmd.TestReportIDs...)
	}
	d.Manufacturer = cmd.Manufacturer
	d.HarmonizedSpec = strings.TrimSpace(cmd.HarmonizedSpec)
	d.AVCPSystem = cmd.AVCPSystem
	d.NotifiedBody = cmd.NotifiedBody
	d.Performance = cmd.Performance
	if d.Performance.Classes.BinderType == "" {
		d.Performance.Classes = rec.Properties
	}
	d.Signatory = cmd.Signatory
	d.ValidUntil = cmd.ValidUntil
	d = d.Clone()

	if err := s.store.Create(ctx, d); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "declaration already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create declaration")
	}

	s.metrics.IncrementDeclarationsCreated()
	s.emit(ctx, audit.Event{
		Type:          audit.EventDeclarationCreated,
		DeclarationID: d.ID.String(),
		RecipeID:      d.RecipeID.String(),
		ToStatus:      d.Status.String(),
	})
	return d, nil
}

// Get returns a declaration by id.
func (s *Service) Get(ctx context.Context, declID id.DeclarationID) (*models.Declaration, error) {
	return s.load(ctx, declID)
}

func (s *Service) load(ctx context.Context, declID id.DeclarationID) (*models.Declaration, error) {
	d, err := s.store.FindByID(ctx, declID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "declaration not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load declaration")
	}
	return d, nil
}

// emit logs and publishes an audit event. Publishing failures are logged and
// never fail the workflow operation.
func (s *Service) emit(ctx context.Context, event audit.Event) {
	s.logger.InfoContext(ctx, string(event.Type),
		"declaration_id", event.DeclarationID,
		"from", event.FromStatus,
		"to", event.ToStatus,
		"request_id", requestcontext.RequestID(ctx),
		"log_type", "audit",
	)
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish audit event",
			"type", event.Type,
			"declaration_id", event.DeclarationID,
			"error", err,
		)
	}
}
