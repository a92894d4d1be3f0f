// Package conformity evaluates production test samples against a declared
// EN 13813 class.
//
// Every property family runs the same shape of check: an individual-value
// bound derived from the declared value, then (for n >= 3) a characteristic
// value from the sample mean and standard deviation compared against the
// declared value. Direction decides which side of each bound fails.
//
// Assessments are pure functions of their inputs; they never log and never
// return an error for a material that fails. Errors are reserved for input
// that cannot be interpreted at all, such as a declared class with the wrong
// grammar.
package conformity

import (
	"en13813/internal/classes"
)

// Direction says which way a measurement improves.
type Direction string

const (
	HigherIsBetter Direction = "higher_is_better"
	LowerIsBetter  Direction = "lower_is_better"
)

// SampleSet is an ordered, non-empty series of measurements for one
// property, tagged with the class the manufacturer declared.
type SampleSet struct {
	Property      classes.Property `json:"property"`
	DeclaredClass string           `json:"declared_class"`
	Values        []float64        `json:"values"`
}

// IndividualCheck reports the per-value bound.
type IndividualCheck struct {
	Passed bool    `json:"passed"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	// Threshold is the bound each value is compared with: a minimum for
	// higher-is-better properties, a maximum for lower-is-better ones.
	Threshold float64 `json:"threshold"`
	// AllowedDeviation is how far Threshold sits from the declared value.
	AllowedDeviation float64   `json:"allowed_deviation"`
	FailingValues    []float64 `json:"failing_values"`
}

// StatisticalCheck reports the characteristic-value comparison.
type StatisticalCheck struct {
	Passed              bool    `json:"passed"`
	SampleSize          int     `json:"sample_size"`
	Mean                float64 `json:"mean"`
	StdDev              float64 `json:"std_dev"`
	AcceptanceConstant  float64 `json:"acceptance_constant"`
	CharacteristicValue float64 `json:"characteristic_value"`
	RequiredValue       float64 `json:"required_value"`
	// UpperFractile is set for lower-is-better properties, whose
	// characteristic value mean + kA*s reuses the lower-fractile kA table.
	UpperFractile bool `json:"upper_fractile,omitempty"`
}

// Result is the verdict of one assessment. It is built once and not
// modified afterwards; slices are owned by the result.
type Result struct {
	Property      classes.Property  `json:"property"`
	DeclaredClass string            `json:"declared_class"`
	DeclaredValue float64           `json:"declared_value"`
	Direction     Direction         `json:"direction"`
	Passed        bool              `json:"passed"`
	Individual    IndividualCheck   `json:"individual"`
	Statistical   *StatisticalCheck `json:"statistical,omitempty"`
	// InsufficientSample is set when fewer than classes.MinStatisticalSampleSize
	// values were supplied; Statistical is nil in that case.
	InsufficientSample bool     `json:"insufficient_sample,omitempty"`
	Warnings           []string `json:"warnings"`
}
