package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/ou2sema/Playwright-framework/internal/steps"
)

var StepsCmd = &cli.Command{
	Name:  "steps",
	Usage: "List all registered step definitions",
	Action: func(ctx *cli.Context) error {
		// Step metadata does not need an open session or a loaded store.
		state := steps.NewScenario(nil, nil)
		for _, cat := range state.Categories() {
			fmt.Printf("%s - %s\n", cat.Name, cat.Description)
			for _, def := range cat.Steps {
				fmt.Printf("  %s\n", def.Pattern)
				if def.Description != "" {
					fmt.Printf("      %s\n", def.Description)
				}
				if def.Example != "" {
					fmt.Printf("      e.g. %s\n", def.Example)
				}
			}
			fmt.Println()
		}
		return nil
	},
}
