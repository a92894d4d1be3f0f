// Package declaration checks declarations of performance against the
// regulatory completeness rules. Validation is pure: evidence such as the
// referenced recipe or the registry answer is gathered by the caller.
package declaration

import (
	"time"

	"en13813/internal/classes"
	"en13813/internal/declaration/models"
)

// Rule identifiers attached to every finding.
const (
	RuleDeclarationNumber  = "declaration.number"
	RuleManufacturerName   = "manufacturer.name"
	RuleManufacturerAddr   = "manufacturer.address"
	RuleManufacturerCity   = "manufacturer.city"
	RuleManufacturerCtry   = "manufacturer.country"
	RuleHarmonizedSpec     = "harmonized_spec"
	RuleAVCPSystem         = "avcp.system"
	RuleAVCPDerived        = "avcp.derived"
	RuleCorrosiveRelease   = "performance.release_of_corrosive_substances"
	RuleCompressiveClass   = "performance.compressive"
	RuleFlexuralClass      = "performance.flexural"
	RuleDeclaredClasses    = "performance.classes"
	RuleNotifiedBodyName   = "notified_body.name"
	RuleNotifiedBodyNumber = "notified_body.number"
	RuleNotifiedBodyTask   = "notified_body.task"
	RuleSignatoryName      = "signatory.name"
	RuleSignatoryPosition  = "signatory.position"
	RuleValidityExpired    = "validity.expired"
	RuleValidityNearExpiry = "validity.near_expiry"
	RuleRecipe             = "recipe.reference"
	RuleRecipeMismatch     = "recipe.mismatch"
	RuleTestReports        = "evidence.test_reports"
)

// DefaultExpiryHorizon is how far ahead a validity date triggers a warning.
const DefaultExpiryHorizon = 30 * 24 * time.Hour

// Rules selects the checks applied on top of the always-on set.
type Rules struct {
	// RequireSignatory makes signatory name and position mandatory and turns
	// on validity-date checks.
	RequireSignatory bool
	// RequireTestReports warns when no test report is referenced.
	RequireTestReports bool
	// StrictClasses reports out-of-table classes as errors.
	StrictClasses bool
	// ExpiryHorizon is the near-expiry warning window.
	ExpiryHorizon time.Duration
	// Now is the reference time for validity checks.
	Now time.Time
}

// Policy holds the configurable parts of the rule set.
type Policy struct {
	StrictClasses bool
	ExpiryHorizon time.Duration
}

// DefaultPolicy is the lenient policy with a 30-day horizon.
func DefaultPolicy() Policy {
	return Policy{ExpiryHorizon: DefaultExpiryHorizon}
}

// RulesFor returns the rule set used for a transition into target.
func (p Policy) RulesFor(target models.Status, now time.Time) Rules {
	horizon := p.ExpiryHorizon
	if horizon <= 0 {
		horizon = DefaultExpiryHorizon
	}
	strict := target.RequiresSignatory()
	return Rules{
		RequireSignatory:   strict,
		RequireTestReports: strict,
		StrictClasses:      p.StrictClasses,
		ExpiryHorizon:      horizon,
		Now:                now,
	}
}

// DeriveAVCPSystem returns the system implied by the declared fire class:
// 1 for a class other than A1fl or NPD, otherwise 4.
func DeriveAVCPSystem(fireClass string) models.AVCPSystem {
	if classes.DeclaresFireClass(fireClass) {
		return models.AVCPSystem1
	}
	return models.AVCPSystem4
}
