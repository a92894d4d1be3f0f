package conformity

import (
	"fmt"
	"math"

	"en13813/internal/classes"
	dErrors "en13813/pkg/domain-errors"
)

// Assess evaluates a sample set with the criteria registered for its property.
func Assess(set SampleSet) (Result, error) {
	c, ok := CriteriaFor(set.Property)
	if !ok {
		return Result{}, dErrors.Newf(dErrors.CodeBadRequest, "no conformity criteria for property %q", set.Property)
	}
	return AssessWith(c, set.DeclaredClass, set.Values)
}

// AssessCompressive checks compressive strength (MPa) against a C class.
func AssessCompressive(values []float64, declaredClass string) (Result, error) {
	return AssessWith(compressiveCriteria, declaredClass, values)
}

// AssessFlexural checks flexural strength (MPa) against an F class.
func AssessFlexural(values []float64, declaredClass string) (Result, error) {
	return AssessWith(flexuralCriteria, declaredClass, values)
}

// AssessSurfaceHardness checks Brinell surface hardness against an SH class.
func AssessSurfaceHardness(values []float64, declaredClass string) (Result, error) {
	return AssessWith(surfaceHardnessCriteria, declaredClass, values)
}

// AssessBondStrength checks pull-off bond strength (N/mm²) against a B class.
func AssessBondStrength(values []float64, declaredClass string) (Result, error) {
	return AssessWith(bondStrengthCriteria, declaredClass, values)
}

// AssessWearResistance checks abrasion results against the class of the
// given method. Lower measurements are better for every method.
func AssessWearResistance(method classes.WearMethod, values []float64, declaredClass string) (Result, error) {
	if !method.IsValid() {
		return Result{}, dErrors.Newf(dErrors.CodeBadRequest, "unknown wear-resistance method %q", method)
	}
	c, _ := CriteriaFor(method.Property())
	return AssessWith(c, declaredClass, values)
}

// AssessWith runs the shared algorithm:
//
//  1. parse the declared value from the class string;
//  2. compare each value with the individual bound;
//  3. for n >= 3, compare mean -/+ kA*s with the declared value;
//  4. pass when the individual check passes and the statistical check
//     passes or was not applicable.
func AssessWith(c Criteria, declaredClass string, values []float64) (Result, error) {
	if len(values) == 0 {
		return Result{}, dErrors.New(dErrors.CodeInvalidInput, "at least one measurement is required")
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Result{}, dErrors.Newf(dErrors.CodeInvalidInput, "measurement %d is not a finite number", i)
		}
	}
	declared, err := c.ParseDeclared(declaredClass)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Property:      c.Property,
		DeclaredClass: declaredClass,
		DeclaredValue: declared,
		Direction:     c.Direction,
		Individual:    individualCheck(c, declared, values),
		Warnings:      []string{},
	}
	if n := len(res.Individual.FailingValues); n > 0 {
		res.Warnings = append(res.Warnings, individualWarning(c, n, res.Individual.Threshold))
	}

	if stat, ok := statisticalCheck(c, declared, values); ok {
		res.Statistical = &stat
		if !stat.Passed {
			res.Warnings = append(res.Warnings, characteristicWarning(c, stat))
		}
	} else {
		res.InsufficientSample = true
		res.Warnings = append(res.Warnings, fmt.Sprintf(
			"statistical check needs at least %d values, got %d; only individual values were checked",
			classes.MinStatisticalSampleSize, len(values)))
	}

	res.Passed = res.Individual.Passed && (res.Statistical == nil || res.Statistical.Passed)
	return res, nil
}

func individualCheck(c Criteria, declared float64, values []float64) IndividualCheck {
	bound := c.individualBound(declared)
	lo, hi := minMax(values)
	check := IndividualCheck{
		Min:              lo,
		Max:              hi,
		Threshold:        bound,
		AllowedDeviation: math.Abs(declared - bound),
		FailingValues:    []float64{},
	}
	for _, v := range values {
		if failsBound(c.Direction, v, bound) {
			check.FailingValues = append(check.FailingValues, v)
		}
	}
	check.Passed = len(check.FailingValues) == 0
	return check
}

func failsBound(d Direction, v, bound float64) bool {
	if d == LowerIsBetter {
		return v > bound
	}
	return v < bound
}

func statisticalCheck(c Criteria, declared float64, values []float64) (StatisticalCheck, bool) {
	kA, ok := classes.AcceptanceConstant(len(values))
	if !ok {
		return StatisticalCheck{}, false
	}
	m := mean(values)
	s := sampleStdDev(values, m)
	stat := StatisticalCheck{
		SampleSize:         len(values),
		Mean:               m,
		StdDev:             s,
		AcceptanceConstant: kA,
		RequiredValue:      declared,
	}
	if c.Direction == LowerIsBetter {
		stat.CharacteristicValue = m + kA*s
		stat.Passed = stat.CharacteristicValue <= declared
		stat.UpperFractile = true
	} else {
		stat.CharacteristicValue = m - kA*s
		stat.Passed = stat.CharacteristicValue >= declared
	}
	return stat, true
}

func individualWarning(c Criteria, failing int, bound float64) string {
	side := "below the minimum"
	if c.Direction == LowerIsBetter {
		side = "above the maximum"
	}
	return fmt.Sprintf("%d individual value(s) %s of %.2f", failing, side, bound)
}

func characteristicWarning(c Criteria, stat StatisticalCheck) string {
	side := "below"
	if c.Direction == LowerIsBetter {
		side = "above"
	}
	return fmt.Sprintf("characteristic value %.2f is %s the declared value %.2f",
		stat.CharacteristicValue, side, stat.RequiredValue)
}
