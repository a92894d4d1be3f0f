//go:build e2e

// Package e2e runs the Gherkin features in features/ against the assembled
// HTTP router.
package e2e

import (
	"github.com/cucumber/godog"

	"en13813/e2e/steps/common"
	"en13813/e2e/steps/declaration"
	"en13813/e2e/steps/designation"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	designation.RegisterSteps(ctx, tc)
	declaration.RegisterSteps(ctx, tc)
}
