package service

import (
	"context"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"en13813/internal/declaration"
	"en13813/internal/declaration/models"
)

// gatherEvidence fetches the recipe and, for AVCP system 1, the notified body
// in parallel. Failures are recorded in the evidence, never returned: the
// validator decides what they mean.
func (s *Service) gatherEvidence(ctx context.Context, d *models.Declaration) declaration.Evidence {
	var (
		ev          declaration.Evidence
		g, groupCtx = errgroup.WithContext(ctx)
	)

	g.Go(func() error {
		start := time.Now()
		rec, err := s.recipes.FindByID(groupCtx, d.RecipeID)
		s.metrics.ObserveEvidenceLatency("recipe", time.Since(start))
		ev.Recipe, ev.RecipeErr = rec, err
		return nil
	})

	if s.registry != nil && d.RequiresNotifiedBody() && d.NotifiedBody != nil &&
		strings.TrimSpace(d.NotifiedBody.Number) != "" {
		g.Go(func() error {
			lookupCtx, cancel := context.WithTimeout(groupCtx, s.lookupTimeout)
			defer cancel()

			start := time.Now()
			body, err := s.registry.Lookup(lookupCtx, d.NotifiedBody.Number, s.scopes)
			s.metrics.ObserveEvidenceLatency("notified_body", time.Since(start))
			ev.RegistryChecked = true
			ev.NotifiedBody, ev.RegistryErr = body, err
			if err != nil {
				s.logger.WarnContext(ctx, "notified body lookup failed",
					"declaration_id", d.ID,
					"notified_body", d.NotifiedBody.Number,
					"error", err,
				)
			}
			return nil
		})
	}

	_ = g.Wait()
	return ev
}
