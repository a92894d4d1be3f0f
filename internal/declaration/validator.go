package declaration

import (
	"fmt"
	"strings"

	"en13813/internal/declaration/models"
	"en13813/internal/designation"
	"en13813/internal/notifiedbody"
	"en13813/internal/recipe"
)

// Violation is one finding, tagged with the rule that produced it.
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Rule + ": " + v.Message
}

// Result collects the findings of one validation run.
type Result struct {
	Valid    bool        `json:"valid"`
	Errors   []Violation `json:"errors"`
	Warnings []Violation `json:"warnings"`
}

func (r *Result) errorf(rule, format string, args ...any) {
	r.Errors = append(r.Errors, Violation{Rule: rule, Message: fmt.Sprintf(format, args...)})
}

func (r *Result) warnf(rule, format string, args ...any) {
	r.Warnings = append(r.Warnings, Violation{Rule: rule, Message: fmt.Sprintf(format, args...)})
}

// HasRule reports whether any error or warning carries rule.
func (r *Result) HasRule(rule string) bool {
	for _, v := range r.Errors {
		if v.Rule == rule {
			return true
		}
	}
	for _, v := range r.Warnings {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

// HasError reports whether an error carries rule.
func (r *Result) HasError(rule string) bool {
	for _, v := range r.Errors {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

// Evidence is the collaborator data gathered before validation. Zero values
// mean "not gathered" and skip the related checks.
type Evidence struct {
	Recipe    *recipe.Recipe
	RecipeErr error

	// RegistryChecked is set when the notified body was looked up.
	RegistryChecked bool
	NotifiedBody    *notifiedbody.Body
	RegistryErr     error
}

// Validate applies the always-on checks plus those selected by rules.
// It never fails; every violation is returned in the result.
func Validate(d *models.Declaration, rules Rules, ev Evidence) *Result {
	r := &Result{}

	required(r, RuleDeclarationNumber, d.Number, "declaration number is required")
	required(r, RuleManufacturerName, d.Manufacturer.Name, "manufacturer name is required")
	required(r, RuleManufacturerAddr, d.Manufacturer.Address, "manufacturer address is required")
	required(r, RuleManufacturerCity, d.Manufacturer.City, "manufacturer city is required")
	required(r, RuleManufacturerCtry, d.Manufacturer.Country, "manufacturer country is required")
	required(r, RuleHarmonizedSpec, d.HarmonizedSpec, "harmonized technical specification is required")
	required(r, RuleCorrosiveRelease, d.Performance.ReleaseOfCorrosiveSubstances,
		"release of corrosive substances must be declared")
	required(r, RuleCompressiveClass, d.Performance.Classes.Compressive, "compressive strength class must be declared")
	required(r, RuleFlexuralClass, d.Performance.Classes.Flexural, "flexural strength class must be declared")

	checkAVCP(r, d, ev)
	checkClasses(r, d, rules)
	checkRecipe(r, d, ev)
	if rules.RequireSignatory {
		checkSignatory(r, d, rules)
	}
	if rules.RequireTestReports && len(d.TestReportIDs) == 0 {
		r.warnf(RuleTestReports, "no test reports are referenced as supporting evidence")
	}

	r.Valid = len(r.Errors) == 0
	if r.Errors == nil {
		r.Errors = []Violation{}
	}
	if r.Warnings == nil {
		r.Warnings = []Violation{}
	}
	return r
}

func required(r *Result, rule, value, message string) {
	if strings.TrimSpace(value) == "" {
		r.errorf(rule, "%s", message)
	}
}

func checkAVCP(r *Result, d *models.Declaration, ev Evidence) {
	derived := DeriveAVCPSystem(d.Performance.Classes.FireClass)
	system := d.AVCPSystem
	switch {
	case system == 0:
		r.errorf(RuleAVCPSystem, "AVCP system is required")
		system = derived
	case !system.IsValid():
		r.errorf(RuleAVCPSystem, "AVCP system must be 1 or 4, got %d", system)
		system = derived
	case system == models.AVCPSystem4 && derived == models.AVCPSystem1:
		r.errorf(RuleAVCPDerived, "fire class %q requires AVCP system 1, declared system 4",
			d.Performance.Classes.FireClass)
	}
	// The notified body is mandatory when either the declared or the derived
	// system is 1.
	if system != models.AVCPSystem1 && derived != models.AVCPSystem1 {
		return
	}

	nb := d.NotifiedBody
	if nb == nil {
		nb = &models.NotifiedBody{}
	}
	required(r, RuleNotifiedBodyName, nb.Name, "notified body name is required for AVCP system 1")
	required(r, RuleNotifiedBodyNumber, nb.Number, "notified body number is required for AVCP system 1")
	required(r, RuleNotifiedBodyTask, nb.Task, "notified body task is required for AVCP system 1")

	if strings.TrimSpace(nb.Number) != "" && ev.RegistryChecked && ev.RegistryErr != nil {
		r.errorf(RuleNotifiedBodyNumber, "notified body %s could not be confirmed: %v", nb.Number, ev.RegistryErr)
	}
}

func checkClasses(r *Result, d *models.Declaration, rules Rules) {
	codec := designation.New(designation.WithStrictMode(rules.StrictClasses))
	res := codec.Check(d.Performance.Classes)
	for _, msg := range res.Errors {
		if rules.StrictClasses {
			r.errorf(RuleDeclaredClasses, "%s", msg)
		} else {
			r.warnf(RuleDeclaredClasses, "%s", msg)
		}
	}
	for _, msg := range res.Warnings {
		r.warnf(RuleDeclaredClasses, "%s", msg)
	}
}

func checkRecipe(r *Result, d *models.Declaration, ev Evidence) {
	if ev.RecipeErr != nil {
		r.errorf(RuleRecipe, "recipe %s could not be loaded: %v", d.RecipeID, ev.RecipeErr)
		return
	}
	if ev.Recipe == nil {
		return
	}
	declared, recipeClasses := d.Performance.Classes, ev.Recipe.Properties
	if declared.Compressive != "" && recipeClasses.Compressive != "" && declared.Compressive != recipeClasses.Compressive {
		r.errorf(RuleRecipeMismatch, "declared compressive class %s does not match recipe class %s",
			declared.Compressive, recipeClasses.Compressive)
	}
	if declared.Flexural != "" && recipeClasses.Flexural != "" && declared.Flexural != recipeClasses.Flexural {
		r.errorf(RuleRecipeMismatch, "declared flexural class %s does not match recipe class %s",
			declared.Flexural, recipeClasses.Flexural)
	}
}

func checkSignatory(r *Result, d *models.Declaration, rules Rules) {
	sig := d.Signatory
	if sig == nil {
		sig = &models.Signatory{}
	}
	required(r, RuleSignatoryName, sig.Name, "signatory name is required")
	required(r, RuleSignatoryPosition, sig.Position, "signatory position is required")

	if d.ValidUntil == nil {
		return
	}
	until := *d.ValidUntil
	switch {
	case !until.After(rules.Now):
		r.errorf(RuleValidityExpired, "validity expired on %s", until.Format("2006-01-02"))
	case until.Sub(rules.Now) <= rules.ExpiryHorizon:
		r.warnf(RuleValidityNearExpiry, "validity ends on %s, within %d days",
			until.Format("2006-01-02"), int(rules.ExpiryHorizon.Hours()/24))
	}
}
