package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/ou2sema/Playwright-framework/internal/config"
	"github.com/ou2sema/Playwright-framework/internal/logger"
	"github.com/ou2sema/Playwright-framework/internal/runner"
)

// loadConfig reads the harness.yml argument shared by run and generate.
func loadConfig(ctx *cli.Context) (*config.File, config.Profile, error) {
	configPath := "harness.yml"
	if ctx.Args().Len() == 1 {
		configPath = ctx.Args().First()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, config.Profile{}, fmt.Errorf("loading config %s: %w", configPath, err)
	}

	if tags := ctx.String("tags"); tags != "" {
		cfg.Features.Tags = tags
	}
	if paths := ctx.String("features"); paths != "" {
		cfg.Features.Paths = strings.Split(paths, ",")
	}
	if env := ctx.String("env"); env != "" {
		cfg.Settings.Environment = env
	}

	profile := config.Resolve(cfg.Settings.Environment)
	logger.Setup(profile.LogLevel)

	return cfg, profile, nil
}

var RunCmd = &cli.Command{
	Name:      "run",
	Usage:     "Run the behavioral test suite",
	ArgsUsage: "[harness.yml]",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "tags",
			Usage: "tag filter expression, e.g. \"@login && ~@wip\"",
		},
		&cli.StringFlag{
			Name:  "features",
			Usage: "comma-separated feature paths, overrides config",
		},
		&cli.StringFlag{
			Name:  "env",
			Usage: "environment profile (local, development, staging, production)",
		},
	},
	Action: func(ctx *cli.Context) error {
		cfg, profile, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		r, err := runner.New(cfg, profile)
		if err != nil {
			return err
		}
		return r.Run(context.Background())
	},
}
