package steps

import (
	"github.com/cucumber/godog"
)

// Def is one step definition with its documentation metadata.
type Def struct {
	// Pattern is the regex godog matches Gherkin phrases against.
	Pattern string

	// Description explains what the step does.
	Description string

	// Example shows the step in a feature file.
	Example string

	// Handler implements the step.
	Handler interface{}
}

// Category groups related step definitions, one per page or concern.
type Category struct {
	Name        string
	Description string
	Steps       []Def
}

// register wires a category's steps into a godog scenario context.
func register(ctx *godog.ScenarioContext, categories []Category) {
	for _, cat := range categories {
		for _, def := range cat.Steps {
			ctx.Step(def.Pattern, def.Handler)
		}
	}
}
