package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/ou2sema/Playwright-framework/cmd"
	"github.com/ou2sema/Playwright-framework/internal/version"
)

func main() {
	app := cli.NewApp()
	app.Name = "harness"
	app.Usage = "UI test automation harness"
	app.Version = version.Print()
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "env.file",
			Aliases: []string{"e"},
			Usage:   "environment variable file path",
		},
	}
	app.Commands = []*cli.Command{
		cmd.RunCmd,
		cmd.GenerateCmd,
		cmd.StepsCmd,
	}

	app.Before = func(ctx *cli.Context) error {
		if envFile := ctx.String("env.file"); envFile != "" {
			return godotenv.Load(envFile)
		}
		return nil
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
