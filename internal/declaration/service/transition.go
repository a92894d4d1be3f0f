package service

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"en13813/internal/audit"
	"en13813/internal/declaration"
	"en13813/internal/declaration/models"
	id "en13813/pkg/domain"
	dErrors "en13813/pkg/domain-errors"
	"en13813/pkg/platform/sentinel"
	"en13813/pkg/requestcontext"
)

// TransitionResult is the outcome of an accepted transition.
type TransitionResult struct {
	Declaration *models.Declaration `json:"declaration"`
	From        models.Status       `json:"from"`
	To          models.Status       `json:"to"`
	Validation  *declaration.Result `json:"validation"`
}

// ValidateDeclaration runs the rule set a transition into target would use,
// without changing anything.
func (s *Service) ValidateDeclaration(ctx context.Context, declID id.DeclarationID, target models.Status) (*declaration.Result, error) {
	if !target.IsValid() {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "unknown workflow status %q", target)
	}
	d, err := s.load(ctx, declID)
	if err != nil {
		return nil, err
	}
	return s.validate(ctx, d, target), nil
}

func (s *Service) validate(ctx context.Context, d *models.Declaration, target models.Status) *declaration.Result {
	rules := s.policy.RulesFor(target, requestcontext.Now(ctx))
	res := declaration.Validate(d, rules, s.gatherEvidence(ctx, d))
	for _, v := range res.Errors {
		s.metrics.IncrementFinding(v.Rule, "error")
	}
	for _, v := range res.Warnings {
		s.metrics.IncrementFinding(v.Rule, "warning")
	}
	return res
}

// Transition moves a declaration from expected to target.
//
// The move must be forward-adjacent or a revocation. expected must match the
// stored status, both up front and atomically at write time; a mismatch is a
// *declaration.StateConflictError. Any validation error blocks the move with a
// *declaration.ValidationError; warnings are returned with the result.
// Approved and published add the signatory and validity checks. Revocation
// skips validation.
func (s *Service) Transition(
	ctx context.Context,
	declID id.DeclarationID,
	expected, target models.Status,
	actor string,
) (*TransitionResult, error) {
	ctx, span := s.tracer.Start(ctx, "declaration.Transition", trace.WithAttributes(
		attribute.String("declaration.id", declID.String()),
		attribute.String("declaration.expected", expected.String()),
		attribute.String("declaration.target", target.String()),
	))
	defer span.End()

	if actor == "" {
		actor = requestcontext.Actor(ctx)
	}
	res, err := s.transition(ctx, declID, expected, target, actor)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		return nil, err
	}
	return res, nil
}

func (s *Service) transition(
	ctx context.Context,
	declID id.DeclarationID,
	expected, target models.Status,
	actor string,
) (*TransitionResult, error) {
	now := requestcontext.Now(ctx)
	d, err := s.load(ctx, declID)
	if err != nil {
		return nil, err
	}
	if d.Status != expected {
		s.metrics.IncrementTransition(expected.String(), target.String(), "conflict")
		return nil, &declaration.StateConflictError{ID: declID, Expected: expected, Actual: d.Status}
	}
	if err := d.CanTransitionTo(target); err != nil {
		s.metrics.IncrementTransition(expected.String(), target.String(), "invalid")
		return nil, err
	}

	res := &declaration.Result{Valid: true, Errors: []declaration.Violation{}, Warnings: []declaration.Violation{}}
	if target != models.StatusRevoked {
		res = s.validate(ctx, d, target)
		if !res.Valid {
			s.metrics.IncrementTransition(expected.String(), target.String(), "blocked")
			s.emit(ctx, audit.Event{
				Type:          audit.EventTransitionRejected,
				DeclarationID: declID.String(),
				Actor:         actor,
				FromStatus:    expected.String(),
				ToStatus:      target.String(),
				Reason:        rulesOf(res.Errors),
			})
			return nil, declaration.NewValidationError(target, res)
		}
	}

	if err := s.store.UpdateStatus(ctx, declID, expected, target, now); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrConflict):
			s.metrics.IncrementTransition(expected.String(), target.String(), "conflict")
			actual := models.Status("")
			if current, loadErr := s.store.FindByID(ctx, declID); loadErr == nil {
				actual = current.Status
			}
			return nil, &declaration.StateConflictError{ID: declID, Expected: expected, Actual: actual}
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, dErrors.New(dErrors.CodeNotFound, "declaration not found")
		default:
			s.metrics.IncrementTransition(expected.String(), target.String(), "error")
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update declaration status")
		}
	}
	d.ApplyTransition(target, now)

	s.metrics.IncrementTransition(expected.String(), target.String(), "ok")
	s.emit(ctx, audit.Event{
		Type:          audit.EventDeclarationTransitioned,
		DeclarationID: declID.String(),
		Actor:         actor,
		FromStatus:    expected.String(),
		ToStatus:      target.String(),
	})
	return &TransitionResult{Declaration: d, From: expected, To: target, Validation: res}, nil
}

func rulesOf(vs []declaration.Violation) string {
	rules := make([]string, 0, len(vs))
	for _, v := range vs {
		rules = append(rules, v.Rule)
	}
	return strings.Join(rules, ",")
}
