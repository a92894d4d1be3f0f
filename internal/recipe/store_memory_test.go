package recipe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"en13813/internal/classes"
	"en13813/internal/designation"
	id "en13813/pkg/domain"
	"en13813/pkg/platform/sentinel"
)

type InMemoryStoreSuite struct {
	suite.Suite
	store *InMemoryStore
	ctx   context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.store = NewInMemoryStore()
	s.ctx = context.Background()
}

func (s *InMemoryStoreSuite) newRecipe(name string, at time.Time) *Recipe {
	r, err := New(id.NewRecipeID(), name, designation.Properties{
		BinderType:  classes.BinderCalciumSulphate,
		Compressive: "C30",
		Flexural:    "F5",
		Wear:        &designation.WearResistance{Method: classes.WearBCA, Class: "AR1"},
	}, nil, at)
	s.Require().NoError(err)
	return r
}

func (s *InMemoryStoreSuite) TestCreateAndFind() {
	s.Run("round trips a recipe", func() {
		r := s.newRecipe("anhydrite", time.Now())
		s.Require().NoError(s.store.Create(s.ctx, r))

		found, err := s.store.FindByID(s.ctx, r.ID)
		s.Require().NoError(err)
		s.Equal(r.Designation, found.Designation)
		s.Equal(r.Properties, found.Properties)
	})

	s.Run("returns copies", func() {
		r := s.newRecipe("copy", time.Now())
		s.Require().NoError(s.store.Create(s.ctx, r))

		found, err := s.store.FindByID(s.ctx, r.ID)
		s.Require().NoError(err)
		found.Properties.Wear.Class = "AR6"

		again, err := s.store.FindByID(s.ctx, r.ID)
		s.Require().NoError(err)
		s.Equal("AR1", again.Properties.Wear.Class)
	})

	s.Run("rejects duplicate id", func() {
		r := s.newRecipe("dup", time.Now())
		s.Require().NoError(s.store.Create(s.ctx, r))
		s.ErrorIs(s.store.Create(s.ctx, r), sentinel.ErrAlreadyUsed)
	})

	s.Run("unknown id", func() {
		_, err := s.store.FindByID(s.ctx, id.NewRecipeID())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestList() {
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	second := s.newRecipe("second", base.Add(time.Hour))
	first := s.newRecipe("first", base)
	s.Require().NoError(s.store.Create(s.ctx, second))
	s.Require().NoError(s.store.Create(s.ctx, first))

	list, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("first", list[0].Name)
	s.Equal("second", list[1].Name)
}
