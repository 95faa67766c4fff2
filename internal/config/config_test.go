package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func createTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "harness.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to create temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantErr  bool
		validate func(*testing.T, *File)
	}{
		{
			name:    "minimal valid config",
			content: "version: 1\n",
			validate: func(t *testing.T, cfg *File) {
				if cfg.Settings.Timeout != 5*time.Minute {
					t.Errorf("expected default timeout 5m, got %v", cfg.Settings.Timeout)
				}
				if cfg.Settings.Parallel != 1 {
					t.Errorf("expected default parallel 1, got %d", cfg.Settings.Parallel)
				}
				if cfg.Settings.Output != "pretty" {
					t.Errorf("expected default output pretty, got %s", cfg.Settings.Output)
				}
				if cfg.Data.Sheet != "Login" {
					t.Errorf("expected default sheet Login, got %s", cfg.Data.Sheet)
				}
				if cfg.Data.GeneratedPath != "features/generated/login_data.feature" {
					t.Errorf("unexpected generated path %s", cfg.Data.GeneratedPath)
				}
				if len(cfg.Features.Paths) != 1 || cfg.Features.Paths[0] != "./features" {
					t.Errorf("unexpected feature paths %v", cfg.Features.Paths)
				}
			},
		},
		{
			name: "full config",
			content: `
version: 1
settings:
  environment: staging
  timeout: 10m
  parallel: 4
  fail_fast: true
  output: progress
data:
  path: data/cases.xlsx
  sheet: Login
  generated_path: features/generated/cases.feature
features:
  paths:
    - ./features
    - ./smoke
  tags: "@login"
`,
			validate: func(t *testing.T, cfg *File) {
				if cfg.Settings.Environment != "staging" {
					t.Errorf("expected environment staging, got %s", cfg.Settings.Environment)
				}
				if cfg.Settings.Timeout != 10*time.Minute {
					t.Errorf("expected timeout 10m, got %v", cfg.Settings.Timeout)
				}
				if !cfg.Settings.FailFast {
					t.Error("expected fail_fast true")
				}
				if cfg.Data.Path != "data/cases.xlsx" {
					t.Errorf("unexpected data path %s", cfg.Data.Path)
				}
				if len(cfg.Features.Paths) != 2 {
					t.Errorf("expected 2 feature paths, got %d", len(cfg.Features.Paths))
				}
				if cfg.Features.Tags != "@login" {
					t.Errorf("unexpected tags %s", cfg.Features.Tags)
				}
			},
		},
		{
			name:    "unsupported version",
			content: "version: 9\n",
			wantErr: true,
		},
		{
			name:    "invalid output format",
			content: "version: 1\nsettings:\n  output: fancy\n",
			wantErr: true,
		},
		{
			name:    "negative parallel",
			content: "version: 1\nsettings:\n  parallel: -2\n",
			wantErr: true,
		},
		{
			name:    "not yaml",
			content: "{{{",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(createTempConfig(t, tt.content))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, cfg)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("HARNESS_TEST_SHEET", "Cases")
	cfg, err := Load(createTempConfig(t, "version: 1\ndata:\n  sheet: ${HARNESS_TEST_SHEET}\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Data.Sheet != "Cases" {
		t.Errorf("expected env-expanded sheet Cases, got %s", cfg.Data.Sheet)
	}
}
