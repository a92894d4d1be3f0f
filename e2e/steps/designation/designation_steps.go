//go:build e2e

package designation

import (
	"context"
	"strconv"
	"strings"

	"github.com/cucumber/godog"
)

// TestContext defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
}

// RegisterSteps registers designation and conformity step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &designationSteps{tc: tc}
	ctx.Step(`^I generate a designation for binder "([^"]*)" with compressive "([^"]*)" and flexural "([^"]*)"$`, steps.generate)
	ctx.Step(`^I parse the designation "([^"]*)"$`, steps.parse)
	ctx.Step(`^I validate the designation "([^"]*)"$`, steps.validate)
	ctx.Step(`^I assess "([^"]*)" samples "([^"]*)" against class "([^"]*)"$`, steps.assess)
}

type designationSteps struct {
	tc TestContext
}

func (s *designationSteps) generate(_ context.Context, binder, compressive, flexural string) error {
	return s.tc.POST("/designations/generate", map[string]any{
		"binder_type":       binder,
		"compressive_class": compressive,
		"flexural_class":    flexural,
	})
}

func (s *designationSteps) parse(_ context.Context, code string) error {
	return s.tc.POST("/designations/parse", map[string]any{"designation": code})
}

func (s *designationSteps) validate(_ context.Context, code string) error {
	return s.tc.POST("/designations/validate", map[string]any{"designation": code})
}

func (s *designationSteps) assess(_ context.Context, property, samples, class string) error {
	values := []float64{}
	for _, raw := range strings.Split(samples, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	return s.tc.POST("/conformity/assess", map[string]any{
		"property":       property,
		"declared_class": class,
		"values":         values,
	})
}
