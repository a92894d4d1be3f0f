package recipe

import (
	"context"
	"sort"
	"sync"

	id "en13813/pkg/domain"
	"en13813/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu      sync.RWMutex
	recipes map[id.RecipeID]*Recipe
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{recipes: make(map[id.RecipeID]*Recipe)}
}

func (s *InMemoryStore) Create(_ context.Context, r *Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[r.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.recipes[r.ID] = clone(r)
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, recipeID id.RecipeID) (*Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.recipes[recipeID]; ok {
		return clone(r), nil
	}
	return nil, sentinel.ErrNotFound
}

// List returns all recipes ordered by creation time.
func (s *InMemoryStore) List(_ context.Context) ([]*Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, clone(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func clone(r *Recipe) *Recipe {
	c := *r
	if r.Properties.Wear != nil {
		w := *r.Properties.Wear
		c.Properties.Wear = &w
	}
	return &c
}
