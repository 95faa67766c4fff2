package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// BrowserFamily is the closed set of supported browser engines.
type BrowserFamily int

const (
	Chromium BrowserFamily = iota
	Firefox
	Webkit
)

func (b BrowserFamily) String() string {
	switch b {
	case Chromium:
		return "chromium"
	case Firefox:
		return "firefox"
	case Webkit:
		return "webkit"
	default:
		return fmt.Sprintf("BrowserFamily(%d)", int(b))
	}
}

// ParseBrowserFamily maps a browser name to its family. The name is the
// lowercase engine name as used by the BROWSER environment variable.
func ParseBrowserFamily(name string) (BrowserFamily, error) {
	switch name {
	case "chromium", "chrome", "":
		return Chromium, nil
	case "firefox":
		return Firefox, nil
	case "webkit", "safari":
		return Webkit, nil
	default:
		return Chromium, fmt.Errorf("unsupported browser family: %q (expected chromium, firefox or webkit)", name)
	}
}

// Viewport is the browser window size in pixels.
type Viewport struct {
	Width  int
	Height int
}

// Profile holds the resolved execution settings for one environment.
type Profile struct {
	Environment      string
	BaseURL          string
	Browser          BrowserFamily
	BrowserName      string // raw BROWSER value, validated at session open
	Headless         bool
	SlowMo           time.Duration
	Timeout          time.Duration
	Viewport         Viewport
	LogLevel         string
	ResultsDir       string
	ScreenshotOnFail bool
}

// profileDefaults are the named per-environment defaults that
// environment variables override.
var profileDefaults = map[string]Profile{
	"local": {
		BaseURL:  "http://localhost:3000",
		Headless: false,
		SlowMo:   50 * time.Millisecond,
		Timeout:  30 * time.Second,
	},
	"development": {
		BaseURL:  "https://dev.todo-app.example.com",
		Headless: true,
		Timeout:  30 * time.Second,
	},
	"staging": {
		BaseURL:  "https://staging.todo-app.example.com",
		Headless: true,
		Timeout:  45 * time.Second,
	},
	"production": {
		BaseURL:  "https://todo-app.example.com",
		Headless: true,
		Timeout:  60 * time.Second,
	},
}

// Resolve derives the execution profile for the named environment. It
// is a pure function of the process environment: named defaults first,
// environment variable overrides on top. Unrecognized environment names
// fall back to the local profile; Resolve never fails. An invalid
// BROWSER value is carried through and surfaces at session open.
func Resolve(environment string) Profile {
	p, ok := profileDefaults[environment]
	if !ok {
		environment = "local"
		p = profileDefaults["local"]
	}
	p.Environment = environment
	p.Viewport = Viewport{Width: 1280, Height: 720}
	p.ResultsDir = "allure-results"
	p.ScreenshotOnFail = true

	if v := os.Getenv("BASE_URL"); v != "" {
		p.BaseURL = v
	}
	p.BrowserName = os.Getenv("BROWSER")
	if fam, err := ParseBrowserFamily(p.BrowserName); err == nil {
		p.Browser = fam
	}
	if v := os.Getenv("HEADLESS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			p.Headless = b
		}
	}
	if v := os.Getenv("SLOW_MO"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			p.SlowMo = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("TIMEOUT"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			p.Timeout = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("VIEWPORT_WIDTH"); v != "" {
		if w, err := strconv.Atoi(v); err == nil && w > 0 {
			p.Viewport.Width = w
		}
	}
	if v := os.Getenv("VIEWPORT_HEIGHT"); v != "" {
		if h, err := strconv.Atoi(v); err == nil && h > 0 {
			p.Viewport.Height = h
		}
	}
	p.LogLevel = os.Getenv("LOG_LEVEL")
	if v := os.Getenv("ALLURE_RESULTS_DIR"); v != "" {
		p.ResultsDir = v
	}
	if v := os.Getenv("SCREENSHOT_ON_FAIL"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			p.ScreenshotOnFail = b
		}
	}

	return p
}
