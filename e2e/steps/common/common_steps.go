//go:build e2e

package common

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext is the part of the scenario context the shared assertions need.
type TestContext interface {
	LastStatus() int
	ResponseField(path string) (any, error)
}

// RegisterSteps registers response assertions shared by every feature.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}
	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response error should be "([^"]*)"$`, steps.errorShouldBe)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, steps.fieldShouldBe)
	ctx.Step(`^the response field "([^"]*)" should not be empty$`, steps.fieldShouldNotBeEmpty)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) statusShouldBe(_ context.Context, status int) error {
	if got := s.tc.LastStatus(); got != status {
		body, _ := s.tc.ResponseField("error_description")
		return fmt.Errorf("expected status %d, got %d (%v)", status, got, body)
	}
	return nil
}

func (s *commonSteps) errorShouldBe(ctx context.Context, code string) error {
	return s.fieldShouldBe(ctx, "error", code)
}

func (s *commonSteps) fieldShouldBe(_ context.Context, path, want string) error {
	v, err := s.tc.ResponseField(path)
	if err != nil {
		return err
	}
	if got := fmt.Sprint(v); got != want {
		return fmt.Errorf("expected %s to be %q, got %q", path, want, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldNotBeEmpty(_ context.Context, path string) error {
	v, err := s.tc.ResponseField(path)
	if err != nil {
		return err
	}
	switch val := v.(type) {
	case nil:
		return fmt.Errorf("expected %s to be set", path)
	case string:
		if val == "" {
			return fmt.Errorf("expected %s to be non-empty", path)
		}
	case []any:
		if len(val) == 0 {
			return fmt.Errorf("expected %s to be non-empty", path)
		}
	}
	return nil
}
