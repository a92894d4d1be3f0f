// Package designation encodes and decodes the EN 13813 product designation,
// e.g. "CT-C25-F4-A22".
//
// The string is persisted and printed verbatim, so Generate is strict about
// token order and grammar. Parse is deliberately tolerant: tokens it does not
// recognise are skipped rather than rejected, so designations written by newer
// tooling still decode. ParseDetailed exposes what was skipped.
package designation

import (
	"strings"

	"en13813/internal/classes"
)

// Separator joins designation tokens.
const Separator = "-"

// WearResistance is the single declared abrasion class. Only one method can be
// active; a nil *WearResistance means no wear class is declared.
type WearResistance struct {
	Method classes.WearMethod `json:"method"`
	Class  string             `json:"class"`
}

// Properties is the declared classification of a screed product.
type Properties struct {
	BinderType       classes.BinderType `json:"binder_type"`
	Compressive      string             `json:"compressive_class,omitempty"`
	Flexural         string             `json:"flexural_class,omitempty"`
	Wear             *WearResistance    `json:"wear_resistance,omitempty"`
	SurfaceHardness  string             `json:"surface_hardness_class,omitempty"`
	BondStrength     string             `json:"bond_strength_class,omitempty"`
	ImpactResistance string             `json:"impact_resistance_class,omitempty"`
	Indentation      string             `json:"indentation_class,omitempty"`
	FireClass        string             `json:"fire_class,omitempty"`
	Heated           bool               `json:"heated,omitempty"`
}

// Normalized returns the properties as they survive a Generate/Parse round
// trip: binder-specific classes on a non-matching binder type and the
// A1fl/NPD fire sentinels are dropped.
func (p Properties) Normalized() Properties {
	out := p
	if p.Wear != nil {
		w := *p.Wear
		out.Wear = &w
	}
	if !appliesTo(classes.PropertySurfaceHardness, p.BinderType) {
		out.SurfaceHardness = ""
	}
	if !appliesTo(classes.PropertyBondStrength, p.BinderType) {
		out.BondStrength = ""
	}
	if !appliesTo(classes.PropertyImpactResistance, p.BinderType) {
		out.ImpactResistance = ""
	}
	if !appliesTo(classes.PropertyIndentation, p.BinderType) {
		out.Indentation = ""
	}
	if !classes.DeclaresFireClass(p.FireClass) {
		out.FireClass = ""
	}
	return out
}

// HasStrengthClass reports whether a compressive or flexural class is declared.
func (p Properties) HasStrengthClass() bool {
	return strings.TrimSpace(p.Compressive) != "" || strings.TrimSpace(p.Flexural) != ""
}

func appliesTo(prop classes.Property, binder classes.BinderType) bool {
	b, ok := classes.ApplicableBinder(prop)
	return !ok || b == binder
}
