// Package config resolves harness configuration from two sources: the
// harness.yml suite file (feature paths, tags, data file, output
// locations) and the process environment (execution profile: browser,
// headless, timeouts, base URL).
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// File represents the harness.yml configuration.
type File struct {
	Version  int      `yaml:"version"`
	Settings Settings `yaml:"settings"`
	Data     Data     `yaml:"data"`
	Features Features `yaml:"features"`
}

type Settings struct {
	Environment string        `yaml:"environment"`
	Timeout     time.Duration `yaml:"timeout"`
	Parallel    int           `yaml:"parallel"`
	FailFast    bool          `yaml:"fail_fast"`
	Output      string        `yaml:"output"`
}

// Data configures the tabular source workbook and the synthesized
// feature file derived from it.
type Data struct {
	Path          string `yaml:"path"`
	Sheet         string `yaml:"sheet"`
	GeneratedPath string `yaml:"generated_path"`
}

type Features struct {
	Paths []string `yaml:"paths"`
	Tags  string   `yaml:"tags"`
}

// Load reads and parses the harness.yml configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg File
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func (c *File) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Settings.Environment == "" {
		c.Settings.Environment = os.Getenv("NODE_ENV")
	}
	if c.Settings.Timeout == 0 {
		c.Settings.Timeout = 5 * time.Minute
	}
	if c.Settings.Parallel == 0 {
		c.Settings.Parallel = 1
	}
	if c.Settings.Output == "" {
		c.Settings.Output = "pretty"
	}
	if c.Data.Path == "" {
		c.Data.Path = "testdata/test_data.xlsx"
	}
	if c.Data.Sheet == "" {
		c.Data.Sheet = "Login"
	}
	if c.Data.GeneratedPath == "" {
		c.Data.GeneratedPath = "features/generated/login_data.feature"
	}
	if len(c.Features.Paths) == 0 {
		c.Features.Paths = []string{"./features"}
	}
}

func (c *File) validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (expected 1)", c.Version)
	}

	validOutputs := map[string]bool{"pretty": true, "progress": true, "junit": true, "cucumber": true}
	if !validOutputs[c.Settings.Output] {
		return fmt.Errorf("invalid output format: %s", c.Settings.Output)
	}

	if c.Settings.Parallel < 1 {
		return fmt.Errorf("parallel must be at least 1, got %d", c.Settings.Parallel)
	}

	return nil
}
