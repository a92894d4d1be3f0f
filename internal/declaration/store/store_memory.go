// Package store persists declarations.
package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"en13813/internal/declaration/models"
	id "en13813/pkg/domain"
	"en13813/pkg/platform/sentinel"
)

// InMemoryStore keeps declarations in memory. UpdateStatus holds the write
// lock across compare and swap, so concurrent transitions from the same
// status have exactly one winner.
type InMemoryStore struct {
	mu           sync.RWMutex
	declarations map[id.DeclarationID]*models.Declaration
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{declarations: make(map[id.DeclarationID]*models.Declaration)}
}

func (s *InMemoryStore) Create(_ context.Context, d *models.Declaration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.declarations[d.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.declarations[d.ID] = d.Clone()
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, declID id.DeclarationID) (*models.Declaration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, ok := s.declarations[declID]; ok {
		return d.Clone(), nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryStore) UpdateStatus(_ context.Context, declID id.DeclarationID, expected, next models.Status, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.declarations[declID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if d.Status != expected {
		return sentinel.ErrConflict
	}
	d.ApplyTransition(next, at)
	return nil
}

func (s *InMemoryStore) SetActive(_ context.Context, declID id.DeclarationID, active bool, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.declarations[declID]
	if !ok {
		return sentinel.ErrNotFound
	}
	d.Active = active
	d.UpdatedAt = at
	return nil
}

// ListRevisions returns every declaration revised from declID, oldest first.
func (s *InMemoryStore) ListRevisions(_ context.Context, declID id.DeclarationID) ([]*models.Declaration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*models.Declaration{}
	for _, d := range s.declarations {
		if d.RevisionOf != nil && *d.RevisionOf == declID {
			out = append(out, d.Clone())
		}
	}
	sortByVersion(out)
	return out, nil
}

func sortByVersion(ds []*models.Declaration) {
	slices.SortFunc(ds, func(a, b *models.Declaration) int { return cmp.Compare(a.Version, b.Version) })
}
