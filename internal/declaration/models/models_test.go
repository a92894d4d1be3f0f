package models

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"en13813/internal/classes"
	"en13813/internal/designation"
	id "en13813/pkg/domain"
	dErrors "en13813/pkg/domain-errors"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestStatus_CanTransitionTo(t *testing.T) {
	allowed := map[Status][]Status{
		StatusDraft:     {StatusSubmitted},
		StatusSubmitted: {StatusReviewed, StatusRevoked},
		StatusReviewed:  {StatusApproved, StatusRevoked},
		StatusApproved:  {StatusPublished, StatusRevoked},
		StatusPublished: {StatusRevoked},
		StatusRevoked:   {},
	}
	for from, targets := range allowed {
		for _, to := range Statuses() {
			assert.Equal(t, slices.Contains(targets, to), from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatus_Helpers(t *testing.T) {
	next, ok := StatusReviewed.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusApproved, next)

	_, ok = StatusPublished.Next()
	assert.False(t, ok)
	_, ok = StatusRevoked.Next()
	assert.False(t, ok)

	assert.True(t, StatusRevoked.IsTerminal())
	assert.True(t, StatusApproved.RequiresSignatory())
	assert.True(t, StatusPublished.RequiresSignatory())
	assert.False(t, StatusReviewed.RequiresSignatory())

	st, ok := ParseStatus("published")
	assert.True(t, ok)
	assert.Equal(t, StatusPublished, st)
	_, ok = ParseStatus("archived")
	assert.False(t, ok)
}

func TestNewDeclaration(t *testing.T) {
	t.Run("starts as active draft version 1", func(t *testing.T) {
		d, err := NewDeclaration(id.NewDeclarationID(), id.NewRecipeID(), " DoP-001 ", now)
		require.NoError(t, err)
		assert.Equal(t, StatusDraft, d.Status)
		assert.Equal(t, 1, d.Version)
		assert.True(t, d.Active)
		assert.Equal(t, "DoP-001", d.Number)
		assert.NotNil(t, d.TestReportIDs)
	})

	t.Run("requires a recipe", func(t *testing.T) {
		_, err := NewDeclaration(id.NewDeclarationID(), id.RecipeID{}, "DoP-001", now)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})
}

func TestDeclaration_CanTransitionTo(t *testing.T) {
	d := &Declaration{Status: StatusPublished}

	err := d.CanTransitionTo(StatusApproved)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidTransition))

	assert.NoError(t, d.CanTransitionTo(StatusRevoked))

	err = d.CanTransitionTo("archived")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestDeclaration_NewRevision(t *testing.T) {
	src, err := NewDeclaration(id.NewDeclarationID(), id.NewRecipeID(), "DoP-001", now)
	require.NoError(t, err)
	src.Status = StatusPublished
	src.Version = 3
	src.NotifiedBody = &NotifiedBody{Name: "MPA", Number: "0672", Task: "initial inspection"}
	src.Performance.Classes = designation.Properties{
		BinderType:  classes.BinderCement,
		Compressive: "C25",
		Wear:        &designation.WearResistance{Method: classes.WearBohme, Class: "A22"},
	}
	src.TestReportIDs = []id.TestReportID{id.NewTestReportID()}

	later := now.Add(time.Hour)
	rev := src.NewRevision(id.NewDeclarationID(), later)

	assert.Equal(t, StatusDraft, rev.Status)
	assert.Equal(t, 4, rev.Version)
	require.NotNil(t, rev.RevisionOf)
	assert.Equal(t, src.ID, *rev.RevisionOf)
	assert.NotEqual(t, src.ID, rev.ID)
	assert.Equal(t, later, rev.CreatedAt)
	assert.Equal(t, src.RecipeID, rev.RecipeID)

	rev.NotifiedBody.Number = "9999"
	rev.Performance.Classes.Wear.Class = "A6"
	rev.TestReportIDs[0] = id.NewTestReportID()
	assert.Equal(t, "0672", src.NotifiedBody.Number)
	assert.Equal(t, "A22", src.Performance.Classes.Wear.Class)
	assert.NotEqual(t, src.TestReportIDs[0], rev.TestReportIDs[0])

	assert.Equal(t, StatusPublished, src.Status)
	assert.Nil(t, src.RevisionOf)
}

func TestDeclaration_ApplyDeactivation(t *testing.T) {
	d := &Declaration{Status: StatusPublished, Active: true}
	d.ApplyDeactivation(now)
	assert.False(t, d.Active)
	assert.Equal(t, StatusPublished, d.Status)
	assert.Equal(t, now, d.UpdatedAt)
}

func TestDeclaration_RequiresNotifiedBody(t *testing.T) {
	tests := []struct {
		name   string
		system AVCPSystem
		fire   string
		want   bool
	}{
		{"system 1", AVCPSystem1, "", true},
		{"system 4 without fire class", AVCPSystem4, "", false},
		{"system 4 with non-combustible default", AVCPSystem4, classes.FireA1fl, false},
		{"system 4 with NPD", AVCPSystem4, classes.FireNPD, false},
		{"system 4 with declared fire class", AVCPSystem4, "Cfl", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &Declaration{AVCPSystem: tt.system}
			d.Performance.Classes.FireClass = tt.fire
			assert.Equal(t, tt.want, d.RequiresNotifiedBody())
		})
	}
}
