package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/ou2sema/Playwright-framework/internal/datastore"
	"github.com/ou2sema/Playwright-framework/internal/synthesizer"
)

var GenerateCmd = &cli.Command{
	Name:      "generate",
	Usage:     "Synthesize the data-driven feature file without running the suite",
	ArgsUsage: "[harness.yml]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "env",
			Usage: "environment profile (local, development, staging, production)",
		},
	},
	Action: func(ctx *cli.Context) error {
		cfg, _, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		store := datastore.New()
		if err := store.Load(cfg.Data.Path); err != nil {
			return err
		}

		return synthesizer.New(store, cfg.Data.Sheet, cfg.Data.GeneratedPath).Generate()
	},
}
