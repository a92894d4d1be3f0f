package service

import (
	"context"
	"errors"

	"en13813/internal/audit"
	"en13813/internal/declaration/models"
	id "en13813/pkg/domain"
	dErrors "en13813/pkg/domain-errors"
	"en13813/pkg/platform/sentinel"
	"en13813/pkg/requestcontext"
)

// ReviseCommand asks for a new revision of a declaration.
type ReviseCommand struct {
	SourceID id.DeclarationID
	Actor    string
	// DeactivateSource marks the source inactive once the revision exists.
	DeactivateSource bool
}

// Revise creates a fresh draft that copies the source, references it through
// RevisionOf and carries the next version number. The source's status is
// never changed.
func (s *Service) Revise(ctx context.Context, cmd ReviseCommand) (*models.Declaration, error) {
	now := requestcontext.Now(ctx)
	actor := cmd.Actor
	if actor == "" {
		actor = requestcontext.Actor(ctx)
	}

	src, err := s.load(ctx, cmd.SourceID)
	if err != nil {
		return nil, err
	}
	rev := src.NewRevision(id.NewDeclarationID(), now)
	deactivate := cmd.DeactivateSource && src.Active

	err = s.transactor.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.store.Create(ctx, rev); err != nil {
			if errors.Is(err, sentinel.ErrAlreadyUsed) {
				return dErrors.New(dErrors.CodeConflict, "revision already exists")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create revision")
		}
		if !deactivate {
			return nil
		}
		if err := s.store.SetActive(ctx, src.ID, false, now); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to deactivate source declaration")
		}
		return nil
	})
	if err != nil {
		var coded *dErrors.Error
		if !errors.As(err, &coded) {
			err = dErrors.Wrap(err, dErrors.CodeInternal, "revision transaction failed")
		}
		return nil, err
	}

	s.metrics.IncrementRevisionsCreated()
	s.emit(ctx, audit.Event{
		Type:          audit.EventDeclarationRevised,
		DeclarationID: rev.ID.String(),
		Actor:         actor,
		ToStatus:      rev.Status.String(),
		Details:       map[string]string{"revision_of": src.ID.String()},
	})
	if deactivate {
		s.emit(ctx, audit.Event{
			Type:          audit.EventDeclarationDeactivated,
			DeclarationID: src.ID.String(),
			Actor:         actor,
			Details:       map[string]string{"superseded_by": rev.ID.String()},
		})
	}
	return rev, nil
}

// ListRevisions returns the revisions made from declID, oldest first.
func (s *Service) ListRevisions(ctx context.Context, declID id.DeclarationID) ([]*models.Declaration, error) {
	if _, err := s.load(ctx, declID); err != nil {
		return nil, err
	}
	revs, err := s.store.ListRevisions(ctx, declID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list revisions")
	}
	return revs, nil
}
