package conformity

import (
	"strconv"
	"strings"

	"en13813/internal/classes"
	dErrors "en13813/pkg/domain-errors"
)

// Criteria parameterise the shared assessment algorithm for one property.
type Criteria struct {
	Property  classes.Property
	Direction Direction
	// Prefixes lists accepted declared-class prefixes, longest first.
	Prefixes []string
	// DeviationFactor scales the declared value into the individual bound.
	DeviationFactor float64
	// AbsoluteFloor, when non-zero, is a minimum individual bound for
	// higher-is-better properties regardless of the declared value.
	AbsoluteFloor float64
	// AllowDecimal permits declared values such as "B1.5".
	AllowDecimal bool
}

var (
	compressiveCriteria = Criteria{
		Property:        classes.PropertyCompressive,
		Direction:       HigherIsBetter,
		Prefixes:        []string{classes.PrefixCompressive},
		DeviationFactor: 0.85,
	}
	flexuralCriteria = Criteria{
		Property:        classes.PropertyFlexural,
		Direction:       HigherIsBetter,
		Prefixes:        []string{classes.PrefixFlexural},
		DeviationFactor: 0.75,
	}
	surfaceHardnessCriteria = Criteria{
		Property:        classes.PropertySurfaceHardness,
		Direction:       HigherIsBetter,
		Prefixes:        []string{classes.PrefixSurfaceHardness},
		DeviationFactor: 0.8,
	}
	bondStrengthCriteria = Criteria{
		Property:        classes.PropertyBondStrength,
		Direction:       HigherIsBetter,
		Prefixes:        []string{classes.PrefixBondStrength},
		DeviationFactor: 0.75,
		AbsoluteFloor:   0.5,
		AllowDecimal:    true,
	}
	wearBohmeCriteria = Criteria{
		Property:        classes.PropertyWearBohme,
		Direction:       LowerIsBetter,
		Prefixes:        []string{classes.PrefixWearBohme},
		DeviationFactor: 1.5,
		AllowDecimal:    true,
	}
	wearBCACriteria = Criteria{
		Property:        classes.PropertyWearBCA,
		Direction:       LowerIsBetter,
		Prefixes:        []string{classes.PrefixWearBCA},
		DeviationFactor: 1.5,
		AllowDecimal:    true,
	}
	wearRollingWheelCriteria = Criteria{
		Property:        classes.PropertyWearRollingWheel,
		Direction:       LowerIsBetter,
		Prefixes:        []string{classes.PrefixWearRollingWheel},
		DeviationFactor: 1.5,
		AllowDecimal:    true,
	}
)

var criteriaByProperty = map[classes.Property]Criteria{
	classes.PropertyCompressive:      compressiveCriteria,
	classes.PropertyFlexural:         flexuralCriteria,
	classes.PropertySurfaceHardness:  surfaceHardnessCriteria,
	classes.PropertyBondStrength:     bondStrengthCriteria,
	classes.PropertyWearBohme:        wearBohmeCriteria,
	classes.PropertyWearBCA:          wearBCACriteria,
	classes.PropertyWearRollingWheel: wearRollingWheelCriteria,
}

// CriteriaFor returns the assessment criteria for a property.
func CriteriaFor(p classes.Property) (Criteria, bool) {
	c, ok := criteriaByProperty[p]
	return c, ok
}

// individualBound is the per-value threshold for a declared value.
func (c Criteria) individualBound(declared float64) float64 {
	bound := c.DeviationFactor * declared
	if c.Direction == HigherIsBetter && bound < c.AbsoluteFloor {
		bound = c.AbsoluteFloor
	}
	return bound
}

// ParseDeclared extracts the numeric declared value from a class string.
// A class that does not match the property grammar is a CodeFormat error.
func (c Criteria) ParseDeclared(class string) (float64, error) {
	class = strings.TrimSpace(class)
	for _, prefix := range c.Prefixes {
		if !strings.HasPrefix(class, prefix) {
			continue
		}
		digits := class[len(prefix):]
		if !numericGrammar(digits, c.AllowDecimal) {
			break
		}
		v, err := strconv.ParseFloat(digits, 64)
		if err != nil || v <= 0 {
			break
		}
		return v, nil
	}
	return 0, dErrors.Newf(dErrors.CodeFormat, "declared class %q is not a valid %s class", class, c.Property)
}

func numericGrammar(s string, allowDecimal bool) bool {
	if s == "" {
		return false
	}
	dot := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
		case s[i] == '.' && allowDecimal && !dot && i > 0 && i < len(s)-1:
			dot = true
		default:
			return false
		}
	}
	return true
}
