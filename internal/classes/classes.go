// Package classes holds the EN 13813 class enumerations and the acceptance
// constant table.
//
// Everything here is built at package initialisation and never mutated.
// Accessors return copies so callers cannot alter the shared tables; reads
// need no locking.
package classes

import (
	"slices"
	"strings"
)

// BinderType is the five-way screed material classification.
type BinderType string

const (
	BinderCement          BinderType = "CT"
	BinderCalciumSulphate BinderType = "CA"
	BinderMagnesite       BinderType = "MA"
	BinderMasticAsphalt   BinderType = "AS"
	BinderSyntheticResin  BinderType = "SR"
)

var binderTypes = []BinderType{
	BinderCement,
	BinderCalciumSulphate,
	BinderMagnesite,
	BinderMasticAsphalt,
	BinderSyntheticResin,
}

var binderDescriptions = map[BinderType]string{
	BinderCement:          "cementitious screed",
	BinderCalciumSulphate: "calcium sulphate screed",
	BinderMagnesite:       "magnesite screed",
	BinderMasticAsphalt:   "mastic asphalt screed",
	BinderSyntheticResin:  "synthetic resin screed",
}

// BinderTypes returns the enumerated binder tags in designation order.
func BinderTypes() []BinderType {
	return slices.Clone(binderTypes)
}

func (b BinderType) IsValid() bool {
	return slices.Contains(binderTypes, b)
}

func (b BinderType) Description() string {
	return binderDescriptions[b]
}

func (b BinderType) String() string {
	return string(b)
}

// RequiresBothStrengthClasses reports whether the binder type must declare
// compressive and flexural classes together.
func (b BinderType) RequiresBothStrengthClasses() bool {
	return b == BinderCement || b == BinderCalciumSulphate
}

// Property identifies a classified characteristic.
type Property string

const (
	PropertyCompressive      Property = "compressive_strength"
	PropertyFlexural         Property = "flexural_strength"
	PropertyWearBohme        Property = "wear_resistance_bohme"
	PropertyWearBCA          Property = "wear_resistance_bca"
	PropertyWearRollingWheel Property = "wear_resistance_rolling_wheel"
	PropertySurfaceHardness  Property = "surface_hardness"
	PropertyBondStrength     Property = "bond_strength"
	PropertyImpactResistance Property = "impact_resistance"
	PropertyIndentation      Property = "indentation"
	PropertyFire             Property = "reaction_to_fire"
)

// Class token prefixes as they appear in the designation.
const (
	PrefixCompressive      = "C"
	PrefixFlexural         = "F"
	PrefixWearBohme        = "A"
	PrefixWearBCA          = "AR"
	PrefixWearRollingWheel = "RWA"
	PrefixSurfaceHardness  = "SH"
	PrefixBondStrength     = "B"
	PrefixImpactResistance = "IR"
	PrefixIndentationCube  = "IC"
	PrefixIndentationPlate = "IP"
	HeatedMarker           = "H"
)

var enumerations = map[Property][]string{
	PropertyCompressive: {
		"C5", "C7", "C12", "C16", "C20", "C25", "C30", "C35", "C40", "C50", "C60", "C70", "C80",
	},
	PropertyFlexural: {
		"F1", "F2", "F3", "F4", "F5", "F6", "F7", "F10", "F15", "F20", "F30", "F40", "F50",
	},
	PropertyWearBohme:        {"A22", "A15", "A12", "A9", "A6", "A3", "A1.5"},
	PropertyWearBCA:          {"AR6", "AR4", "AR2", "AR1", "AR0.5"},
	PropertyWearRollingWheel: {"RWA300", "RWA100", "RWA20", "RWA10", "RWA1"},
	PropertySurfaceHardness:  {"SH30", "SH40", "SH50", "SH70", "SH100", "SH150", "SH200"},
	PropertyBondStrength:     {"B0.2", "B0.5", "B1.0", "B1.5", "B2.0"},
	PropertyImpactResistance: {"IR1", "IR2", "IR4", "IR10", "IR20"},
	PropertyIndentation: {
		"IC10", "IC15", "IC40", "IC100", "IP10", "IP15", "IP40", "IP70",
	},
	PropertyFire: {FireA1fl, "A2fl", "Bfl", "Cfl", "Dfl", "Efl", "Ffl", FireNPD},
}

// binderSpecific maps properties that only apply to one binder type.
var binderSpecific = map[Property]BinderType{
	PropertySurfaceHardness:  BinderMagnesite,
	PropertyBondStrength:     BinderSyntheticResin,
	PropertyImpactResistance: BinderSyntheticResin,
	PropertyIndentation:      BinderMasticAsphalt,
}

// Values returns the permitted classes for a property, or nil for an unknown property.
func Values(p Property) []string {
	return slices.Clone(enumerations[p])
}

// Contains reports whether class is an enumerated value of p.
func Contains(p Property, class string) bool {
	return slices.Contains(enumerations[p], class)
}

// ApplicableBinder returns the binder type a binder-specific property belongs to.
// ok is false for properties that apply to every binder type.
func ApplicableBinder(p Property) (BinderType, bool) {
	b, ok := binderSpecific[p]
	return b, ok
}

// Fire class sentinels.
const (
	// FireA1fl is the non-combustible default; it never appears in a designation.
	FireA1fl = "A1fl"
	// FireNPD marks "no performance determined".
	FireNPD = "NPD"
)

// DeclaresFireClass reports whether fire names an actual declared reaction-to-fire
// class, i.e. it is set and is neither the non-combustible default nor NPD.
func DeclaresFireClass(fire string) bool {
	fire = strings.TrimSpace(fire)
	return fire != "" && fire != FireA1fl && !strings.EqualFold(fire, FireNPD)
}
