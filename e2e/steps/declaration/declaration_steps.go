//go:build e2e

package declaration

import (
	"context"
	"fmt"
	"time"

	"github.com/cucumber/godog"
)

// TestContext defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string) error
	LastStatus() int
	ResponseField(path string) (any, error)
	SetID(name, value string)
	ID(name string) string
}

// RegisterSteps registers recipe and declaration workflow step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &declarationSteps{tc: tc}

	ctx.Step(`^a recipe "([^"]*)" with binder "([^"]*)", compressive class "([^"]*)" and flexural class "([^"]*)"$`, steps.createRecipe)
	ctx.Step(`^a draft declaration "([^"]*)" for the recipe (with|without) a (signatory|manufacturer)$`, steps.createDeclaration)
	ctx.Step(`^the declaration has been moved to "([^"]*)"$`, steps.advanceTo)

	ctx.Step(`^I move the declaration from "([^"]*)" to "([^"]*)"$`, steps.transition)
	ctx.Step(`^I validate the declaration for "([^"]*)"$`, steps.validate)
	ctx.Step(`^I revise the declaration deactivating the source$`, steps.revise)
	ctx.Step(`^I list the revisions of the declaration$`, steps.listRevisions)

	ctx.Step(`^the declaration status should be "([^"]*)"$`, steps.statusShouldBe)
	ctx.Step(`^the violations should include rule "([^"]*)"$`, steps.violationsInclude)
	ctx.Step(`^the source declaration should be inactive$`, steps.sourceInactive)
}

type declarationSteps struct {
	tc TestContext
}

var workflow = []string{"draft", "submitted", "reviewed", "approved", "published"}

func (s *declarationSteps) createRecipe(_ context.Context, name, binder, compressive, flexural string) error {
	err := s.tc.POST("/recipes", map[string]any{
		"name": name,
		"properties": map[string]any{
			"binder_type":       binder,
			"compressive_class": compressive,
			"flexural_class":    flexural,
		},
	})
	if err != nil {
		return err
	}
	return s.saveID("recipe", 201)
}

func (s *declarationSteps) createDeclaration(_ context.Context, number, with, party string) error {
	body := map[string]any{
		"declaration_number": number,
		"recipe_id":          s.tc.ID("recipe"),
		"test_report_ids":    []string{"6f1c2a4e-5b7d-4c1a-9e2f-0a1b2c3d4e5f"},
		"manufacturer": map[string]any{
			"name":    "Estrichwerk GmbH",
			"address": "Industriestr. 4",
			"city":    "Ulm",
			"country": "DE",
		},
		"harmonized_spec": "EN 13813:2002",
		"avcp_system":     4,
		"performance":     map[string]any{"release_of_corrosive_substances": "CT"},
		"valid_until":     time.Now().AddDate(1, 0, 0).UTC().Format(time.RFC3339),
	}
	switch {
	case party == "signatory" && with == "with":
		body["signatory"] = map[string]any{"name": "A. Weber", "position": "Head of QA"}
	case party == "manufacturer" && with == "without":
		delete(body, "manufacturer")
	}
	if err := s.tc.POST("/declarations", body); err != nil {
		return err
	}
	return s.saveID("declaration", 201)
}

// advanceTo walks the forward workflow from draft up to target.
func (s *declarationSteps) advanceTo(ctx context.Context, target string) error {
	for i := 1; i < len(workflow); i++ {
		if err := s.transition(ctx, workflow[i-1], workflow[i]); err != nil {
			return err
		}
		if s.tc.LastStatus() != 200 {
			return fmt.Errorf("moving to %s returned %d", workflow[i], s.tc.LastStatus())
		}
		if workflow[i] == target {
			return nil
		}
	}
	return fmt.Errorf("unknown forward status %q", target)
}

func (s *declarationSteps) transition(_ context.Context, from, to string) error {
	return s.tc.POST(s.path("/transition"), map[string]any{
		"expected": from,
		"target":   to,
		"actor":    "qa@example.com",
	})
}

func (s *declarationSteps) validate(_ context.Context, target string) error {
	return s.tc.POST(s.path("/validate"), map[string]any{"target": target})
}

func (s *declarationSteps) revise(_ context.Context) error {
	err := s.tc.POST(s.path("/revise"), map[string]any{
		"actor":             "qa@example.com",
		"deactivate_source": true,
	})
	if err != nil {
		return err
	}
	if s.tc.LastStatus() == 201 {
		return s.saveID("revision", 201)
	}
	return nil
}

func (s *declarationSteps) listRevisions(_ context.Context) error {
	return s.tc.GET(s.path("/revisions"))
}

func (s *declarationSteps) statusShouldBe(_ context.Context, want string) error {
	if err := s.tc.GET(s.path("")); err != nil {
		return err
	}
	got, err := s.tc.ResponseField("workflow_status")
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("expected declaration to be %s, got %v", want, got)
	}
	return nil
}

func (s *declarationSteps) violationsInclude(_ context.Context, rule string) error {
	raw, err := s.tc.ResponseField("details.violations")
	if err != nil {
		return err
	}
	violations, _ := raw.([]any)
	for _, v := range violations {
		if m, ok := v.(map[string]any); ok && m["rule"] == rule {
			return nil
		}
	}
	return fmt.Errorf("rule %q not among violations %v", rule, violations)
}

func (s *declarationSteps) sourceInactive(_ context.Context) error {
	if err := s.tc.GET(s.path("")); err != nil {
		return err
	}
	active, err := s.tc.ResponseField("active")
	if err != nil {
		return err
	}
	if active != false {
		return fmt.Errorf("expected source declaration to be inactive, got active=%v", active)
	}
	return nil
}

func (s *declarationSteps) path(suffix string) string {
	return "/declarations/" + s.tc.ID("declaration") + suffix
}

func (s *declarationSteps) saveID(name string, status int) error {
	if got := s.tc.LastStatus(); got != status {
		return fmt.Errorf("expected status %d creating %s, got %d", status, name, got)
	}
	v, err := s.tc.ResponseField("id")
	if err != nil {
		return err
	}
	id, ok := v.(string)
	if !ok || id == "" {
		return fmt.Errorf("%s response has no id", name)
	}
	s.tc.SetID(name, id)
	return nil
}
