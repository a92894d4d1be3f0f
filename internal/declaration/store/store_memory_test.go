package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"en13813/internal/classes"
	"en13813/internal/declaration/models"
	"en13813/internal/designation"
	id "en13813/pkg/domain"
	"en13813/pkg/platform/sentinel"
)

var now = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func newDraft() *models.Declaration {
	d, err := models.NewDeclaration(id.NewDeclarationID(), id.NewRecipeID(), "DoP-2026-003", now)
	if err != nil {
		panic(err)
	}
	d.Performance.Classes = designation.Properties{BinderType: classes.BinderCement, Compressive: "C25", Flexural: "F4"}
	d.NotifiedBody = &models.NotifiedBody{Name: "MPA", Number: "0672", Task: "initial type testing"}
	return d
}

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

func (s *InMemoryStoreSuite) TestCreateAndFind() {
	d := newDraft()
	s.Require().NoError(s.store.Create(s.ctx, d))
	s.ErrorIs(s.store.Create(s.ctx, d), sentinel.ErrAlreadyUsed)

	found, err := s.store.FindByID(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal(d, found)

	_, err = s.store.FindByID(s.ctx, id.NewDeclarationID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestReturnsCopies() {
	d := newDraft()
	s.Require().NoError(s.store.Create(s.ctx, d))
	d.NotifiedBody.Number = "9999"

	found, err := s.store.FindByID(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal("0672", found.NotifiedBody.Number)

	found.Status = models.StatusPublished
	again, err := s.store.FindByID(s.ctx, d.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusDraft, again.Status)
}

func (s *InMemoryStoreSuite) TestUpdateStatus() {
	d := newDraft()
	s.Require().NoError(s.store.Create(s.ctx, d))
	later := now.Add(time.Hour)

	s.Run("matching expected status", func() {
		s.Require().NoError(s.store.UpdateStatus(s.ctx, d.ID, models.StatusDraft, models.StatusSubmitted, later))
		found, err := s.store.FindByID(s.ctx, d.ID)
		s.Require().NoError(err)
		s.Equal(models.StatusSubmitted, found.Status)
		s.Equal(later, found.UpdatedAt)
	})

	s.Run("stale expected status", func() {
		err := s.store.UpdateStatus(s.ctx, d.ID, models.StatusDraft, models.StatusSubmitted, later)
		s.ErrorIs(err, sentinel.ErrConflict)
	})

	s.Run("unknown id", func() {
		err := s.store.UpdateStatus(s.ctx, id.NewDeclarationID(), models.StatusDraft, models.StatusSubmitted, later)
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryStoreSuite) TestUpdateStatus_ConcurrentWritersHaveOneWinner() {
	d := newDraft()
	s.Require().NoError(s.store.Create(s.ctx, d))

	const writers = 16
	var (
		wg        sync.WaitGroup
		wins      atomic.Int32
		conflicts atomic.Int32
	)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.UpdateStatus(s.ctx, d.ID, models.StatusDraft, models.StatusSubmitted, now)
			switch err {
			case nil:
				wins.Add(1)
			case sentinel.ErrConflict:
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), wins.Load())
	s.Equal(int32(writers-1), conflicts.Load())
}

func (s *InMemoryStoreSuite) TestSetActive() {
	d := newDraft()
	s.Require().NoError(s.store.Create(s.ctx, d))

	s.Require().NoError(s.store.SetActive(s.ctx, d.ID, false, now))
	found, err := s.store.FindByID(s.ctx, d.ID)
	s.Require().NoError(err)
	s.False(found.Active)
	s.Equal(models.StatusDraft, found.Status)

	s.ErrorIs(s.store.SetActive(s.ctx, id.NewDeclarationID(), false, now), sentinel.ErrNotFound)
}

func (s *InMemoryStoreSuite) TestListRevisions() {
	src := newDraft()
	s.Require().NoError(s.store.Create(s.ctx, src))
	second := src.NewRevision(id.NewDeclarationID(), now.Add(time.Hour))
	third := second.NewRevision(id.NewDeclarationID(), now.Add(2*time.Hour))
	third.RevisionOf = &src.ID
	s.Require().NoError(s.store.Create(s.ctx, third))
	s.Require().NoError(s.store.Create(s.ctx, second))

	revs, err := s.store.ListRevisions(s.ctx, src.ID)
	s.Require().NoError(err)
	s.Require().Len(revs, 2)
	s.Equal(second.ID, revs[0].ID)
	s.Equal(third.ID, revs[1].ID)

	none, err := s.store.ListRevisions(s.ctx, id.NewDeclarationID())
	s.Require().NoError(err)
	s.Empty(none)
}
