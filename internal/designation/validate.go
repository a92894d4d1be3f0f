package designation

import (
	"fmt"

	"en13813/internal/classes"
)

// Result is the outcome of validating a designation. Errors and Warnings are
// human-readable; Valid is true when Errors is empty.
type Result struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (r *Result) addError(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// rangeIssue records an out-of-set value as a warning, or an error in strict mode.
func (r *Result) rangeIssue(strict bool, format string, args ...any) {
	if strict {
		r.addError(format, args...)
		return
	}
	r.addWarning(format, args...)
}

func (r *Result) finish() Result {
	r.Valid = len(r.Errors) == 0
	if r.Errors == nil {
		r.Errors = []string{}
	}
	if r.Warnings == nil {
		r.Warnings = []string{}
	}
	return *r
}

// Validate parses s and checks the result against the designation rules. It
// never fails; parse errors are reported in Errors.
func (c *Codec) Validate(s string) Result {
	var r Result
	parsed, err := c.ParseDetailed(s)
	if err != nil {
		r.addError("%s", err.Error())
		return r.finish()
	}
	c.check(&r, parsed.Properties)
	for _, tok := range parsed.Ignored {
		r.addWarning("token %q was not recognised and has been ignored", tok)
	}
	return r.finish()
}

// Check validates structured properties with the same rules Validate applies
// to a parsed designation.
func (c *Codec) Check(p Properties) Result {
	var r Result
	c.check(&r, p)
	return r.finish()
}

func (c *Codec) check(r *Result, p Properties) {
	switch {
	case p.BinderType == "":
		r.addError("binder type is required")
	case !p.BinderType.IsValid():
		r.addError("unknown binder type %q", p.BinderType)
	}

	if !p.HasStrengthClass() {
		r.addError("at least one strength class (compressive or flexural) is required")
	}
	if p.BinderType.RequiresBothStrengthClasses() {
		if p.Compressive == "" {
			r.addError("%s screeds require a compressive strength class", p.BinderType)
		}
		if p.Flexural == "" {
			r.addError("%s screeds require a flexural strength class", p.BinderType)
		}
	}

	c.checkClass(r, classes.PropertyCompressive, p.Compressive)
	c.checkClass(r, classes.PropertyFlexural, p.Flexural)
	if p.Wear != nil {
		switch {
		case !p.Wear.Method.IsValid():
			r.addError("unknown wear-resistance method %q", p.Wear.Method)
		case p.Wear.Class == "":
			r.addError("wear-resistance method %s set without a class", p.Wear.Method)
		case !classToken(p.Wear.Class).IsClass(p.Wear.Method.Prefix()):
			r.addError("wear-resistance class %q does not match method %s", p.Wear.Class, p.Wear.Method)
		default:
			c.checkClass(r, p.Wear.Method.Property(), p.Wear.Class)
		}
	}

	c.checkBinderSpecific(r, p.BinderType, classes.PropertySurfaceHardness, p.SurfaceHardness)
	c.checkBinderSpecific(r, p.BinderType, classes.PropertyBondStrength, p.BondStrength)
	c.checkBinderSpecific(r, p.BinderType, classes.PropertyImpactResistance, p.ImpactResistance)
	c.checkBinderSpecific(r, p.BinderType, classes.PropertyIndentation, p.Indentation)

	if p.FireClass != "" && !classes.Contains(classes.PropertyFire, p.FireClass) {
		r.rangeIssue(c.strict, "fire class %q is not an enumerated class", p.FireClass)
	}
}

func (c *Codec) checkClass(r *Result, prop classes.Property, value string) {
	if value == "" {
		return
	}
	if !classes.Contains(prop, value) {
		r.rangeIssue(c.strict, "%s class %q is not an enumerated class", prop, value)
	}
}

func (c *Codec) checkBinderSpecific(r *Result, binder classes.BinderType, prop classes.Property, value string) {
	if value == "" {
		return
	}
	if !appliesTo(prop, binder) {
		owner, _ := classes.ApplicableBinder(prop)
		r.rangeIssue(c.strict, "%s applies to %s screeds only and is ignored for %s", prop, owner, binder)
		return
	}
	c.checkClass(r, prop, value)
}
