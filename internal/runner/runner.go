// Package runner wires the harness together: global setup (data load,
// scenario synthesis), the godog suite, and the per-scenario session
// lifecycle hooks.
package runner

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/cucumber/godog/colors"
	"github.com/rs/zerolog/log"

	"github.com/ou2sema/Playwright-framework/internal/config"
	"github.com/ou2sema/Playwright-framework/internal/datastore"
	"github.com/ou2sema/Playwright-framework/internal/report"
	"github.com/ou2sema/Playwright-framework/internal/session"
	"github.com/ou2sema/Playwright-framework/internal/steps"
	"github.com/ou2sema/Playwright-framework/internal/synthesizer"
)

// Runner executes the behavioral test suite.
type Runner struct {
	cfg      *config.File
	profile  config.Profile
	store    *datastore.Store
	reporter *report.Writer
}

// New creates a runner for the given suite configuration and resolved
// execution profile.
func New(cfg *config.File, profile config.Profile) (*Runner, error) {
	reporter, err := report.NewWriter(profile.ResultsDir)
	if err != nil {
		return nil, fmt.Errorf("initializing report writer: %w", err)
	}

	return &Runner{
		cfg:      cfg,
		profile:  profile,
		store:    datastore.New(),
		reporter: reporter,
	}, nil
}

// Run performs global setup and executes the suite. Setup failures
// abort the run before any scenario starts: running scenarios against
// an absent data cache would only produce misleading empty lookups.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.Prepare(ctx); err != nil {
		return err
	}

	opts := &godog.Options{
		Output:        colors.Colored(os.Stdout),
		Format:        r.cfg.Settings.Output,
		Paths:         r.cfg.Features.Paths,
		Tags:          r.cfg.Features.Tags,
		StopOnFailure: r.cfg.Settings.FailFast,
		Strict:        true,
		Concurrency:   r.cfg.Settings.Parallel,
	}

	suite := godog.TestSuite{
		Name:                "ui-harness",
		ScenarioInitializer: r.initializeScenario,
		Options:             opts,
	}

	if status := suite.Run(); status != 0 {
		return fmt.Errorf("tests failed with status %d", status)
	}
	return nil
}

// Prepare runs global setup: load the data workbook and synthesize the
// generated feature file. Must complete before godog discovers
// scenario sources, since the synthesized file is ordinary scenario
// input.
func (r *Runner) Prepare(ctx context.Context) error {
	log.Debug().Str("path", r.cfg.Data.Path).Msg("loading data workbook")
	if err := r.store.Load(r.cfg.Data.Path); err != nil {
		log.Error().Err(err).Msg("FATAL: data load failed, aborting run")
		return err
	}

	gen := synthesizer.New(r.store, r.cfg.Data.Sheet, r.cfg.Data.GeneratedPath)
	if err := gen.Generate(); err != nil {
		log.Error().Err(err).Msg("FATAL: scenario synthesis failed, aborting run")
		return err
	}

	return nil
}

// initializeScenario is invoked by godog for each scenario. Each gets a
// fresh session and step state; the store is shared read-only.
func (r *Runner) initializeScenario(ctx *godog.ScenarioContext) {
	sess := session.New(r.profile)
	state := steps.NewScenario(sess, r.store)
	state.Register(ctx)

	var start time.Time

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		start = time.Now()
		log.Debug().Str("scenario", sc.Name).Msg("opening browser session")
		if err := sess.Open(); err != nil {
			return ctx, err
		}
		state.BindPages()
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, scErr error) (context.Context, error) {
		r.finishScenario(sess, sc.Name, start, scErr)
		return ctx, scErr
	})
}

// artifactSession is the part of the session the after hook needs,
// split out so teardown behavior is testable without a browser.
type artifactSession interface {
	Close()
	CaptureArtifact(label string) ([]byte, bool)
}

// finishScenario reports the outcome and releases the session. Close
// runs unconditionally, on every exit path, exactly once per scenario.
func (r *Runner) finishScenario(sess artifactSession, name string, start time.Time, scErr error) {
	defer sess.Close()

	result := report.Result{
		Name:   name,
		Status: report.StatusPassed,
		Start:  start.UnixMilli(),
		Stop:   time.Now().UnixMilli(),
		Labels: []report.Label{
			{Name: "suite", Value: "ui-harness"},
			{Name: "host", Value: r.profile.Environment},
		},
	}

	if scErr != nil {
		result.Status = report.StatusFailed
		result.StatusDetails = &report.StatusDetails{Message: scErr.Error()}
		log.Warn().Str("scenario", name).Err(scErr).Msg("scenario failed")

		if r.profile.ScreenshotOnFail {
			if png, ok := sess.CaptureArtifact(name); ok {
				if att, err := r.reporter.AttachScreenshot(name, png); err != nil {
					log.Warn().Err(err).Str("scenario", name).Msg("attaching screenshot failed")
				} else {
					result.Attachments = append(result.Attachments, att)
				}
			}
		}
	}

	if err := r.reporter.WriteResult(result); err != nil {
		log.Warn().Err(err).Str("scenario", name).Msg("writing report result failed")
	}
}
