package models

import (
	"slices"
	"strings"
	"time"

	"en13813/internal/classes"
	"en13813/internal/designation"
	id "en13813/pkg/domain"
	dErrors "en13813/pkg/domain-errors"
)

// AVCPSystem is the assessment and verification regime of a declaration.
// Zero means not declared.
type AVCPSystem int

const (
	AVCPSystem1 AVCPSystem = 1
	AVCPSystem4 AVCPSystem = 4
)

func (a AVCPSystem) IsValid() bool {
	return a == AVCPSystem1 || a == AVCPSystem4
}

type Manufacturer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// NotifiedBody identifies the third party involved under AVCP system 1.
type NotifiedBody struct {
	Name   string `json:"name"`
	Number string `json:"number"`
	Task   string `json:"task"`
}

type Signatory struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Place    string `json:"place,omitempty"`
}

// Performance is the declared-performance section of a DoP.
type Performance struct {
	// ReleaseOfCorrosiveSubstances is the declared class for corrosive
	// substance release, usually the binder tag (e.g. "CT").
	ReleaseOfCorrosiveSubstances string                 `json:"release_of_corrosive_substances"`
	Classes                      designation.Properties `json:"classes"`
}

// Declaration is the aggregate root for a declaration of performance.
//
// Invariants:
//   - RecipeID is set at construction and never changes
//   - Status starts at draft and only changes through ApplyTransition
//   - Version starts at 1; a revision carries Version+1 and RevisionOf
//   - revoked is terminal
type Declaration struct {
	ID             id.DeclarationID  `json:"id"`
	Number         string            `json:"declaration_number"`
	RecipeID       id.RecipeID       `json:"recipe_id"`
	BatchID        *id.BatchID       `json:"batch_id,omitempty"`
	TestReportIDs  []id.TestReportID `json:"test_report_ids"`
	Manufacturer   Manufacturer      `json:"manufacturer"`
	HarmonizedSpec string            `json:"harmonized_spec"`
	AVCPSystem     AVCPSystem        `json:"avcp_system"`
	NotifiedBody   *NotifiedBody     `json:"notified_body,omitempty"`
	Performance    Performance       `json:"performance"`
	Signatory      *Signatory        `json:"signatory,omitempty"`
	ValidUntil     *time.Time        `json:"valid_until,omitempty"`
	Status         Status            `json:"workflow_status"`
	Version        int               `json:"version"`
	RevisionOf     *id.DeclarationID `json:"revision_of,omitempty"`
	Active         bool              `json:"active"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// NewDeclaration builds a draft for a recipe. Remaining fields are filled in
// by the caller before the draft is stored.
func NewDeclaration(declID id.DeclarationID, recipeID id.RecipeID, number string, now time.Time) (*Declaration, error) {
	if declID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "declaration id cannot be nil")
	}
	if recipeID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "declaration must reference a recipe")
	}
	return &Declaration{
		ID:            declID,
		Number:        strings.TrimSpace(number),
		RecipeID:      recipeID,
		TestReportIDs: []id.TestReportID{},
		Status:        StatusDraft,
		Version:       1,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// CanTransitionTo checks the workflow graph only; completeness rules are
// applied by the validator.
func (d *Declaration) CanTransitionTo(target Status) error {
	if !target.IsValid() {
		return dErrors.Newf(dErrors.CodeBadRequest, "unknown workflow status %q", target)
	}
	if !d.Status.CanTransitionTo(target) {
		return dErrors.Newf(dErrors.CodeInvalidTransition, "cannot move declaration from %s to %s", d.Status, target)
	}
	return nil
}

// ApplyTransition sets the new status.
// Must only be called after CanTransitionTo returns nil.
func (d *Declaration) ApplyTransition(target Status, now time.Time) {
	d.Status = target
	d.UpdatedAt = now
}

// NewRevision returns a fresh draft that copies d's content and points back
// at it. d itself is left unchanged.
func (d *Declaration) NewRevision(revID id.DeclarationID, now time.Time) *Declaration {
	rev := d.Clone()
	src := d.ID
	rev.ID = revID
	rev.Status = StatusDraft
	rev.Version = d.Version + 1
	rev.RevisionOf = &src
	rev.Active = true
	rev.CreatedAt = now
	rev.UpdatedAt = now
	return rev
}

// ApplyDeactivation marks a superseded declaration inactive. Status is not
// touched.
func (d *Declaration) ApplyDeactivation(now time.Time) {
	d.Active = false
	d.UpdatedAt = now
}

// RequiresNotifiedBody reports whether the declaration involves a third party,
// either by its declared system or through a declared fire class.
func (d *Declaration) RequiresNotifiedBody() bool {
	return d.AVCPSystem == AVCPSystem1 || classes.DeclaresFireClass(d.Performance.Classes.FireClass)
}

// Clone returns a deep copy.
func (d *Declaration) Clone() *Declaration {
	c := *d
	c.TestReportIDs = slices.Clone(d.TestReportIDs)
	if c.TestReportIDs == nil {
		c.TestReportIDs = []id.TestReportID{}
	}
	if d.BatchID != nil {
		b := *d.BatchID
		c.BatchID = &b
	}
	if d.NotifiedBody != nil {
		nb := *d.NotifiedBody
		c.NotifiedBody = &nb
	}
	if d.Signatory != nil {
		s := *d.Signatory
		c.Signatory = &s
	}
	if d.ValidUntil != nil {
		v := *d.ValidUntil
		c.ValidUntil = &v
	}
	if d.RevisionOf != nil {
		r := *d.RevisionOf
		c.RevisionOf = &r
	}
	if d.Performance.Classes.Wear != nil {
		w := *d.Performance.Classes.Wear
		c.Performance.Classes.Wear = &w
	}
	return &c
}
