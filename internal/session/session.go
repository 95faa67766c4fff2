// Package session owns the per-scenario browser session: one Session is
// constructed fresh for every scenario, opened by the before hook and
// closed unconditionally by the after hook.
package session

import (
	"fmt"
	"sync"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog/log"

	"github.com/ou2sema/Playwright-framework/internal/config"
)

// SessionError reports a browser session that could not be launched.
type SessionError struct {
	Browser string
	Err     error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("opening %s session: %v", e.Browser, e.Err)
}

func (e *SessionError) Unwrap() error { return e.Err }

// Session holds the browser handles for one scenario plus a
// scenario-scoped bag of ad-hoc test data. Discarded when the scenario
// ends; never reused.
type Session struct {
	profile config.Profile

	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page

	mu  sync.Mutex
	bag map[string]any
}

// New creates an unopened session for the given profile.
func New(profile config.Profile) *Session {
	return &Session{
		profile: profile,
		bag:     make(map[string]any),
	}
}

// Open launches the configured browser family and prepares a page with
// the profile's viewport and default timeout. An unsupported BROWSER
// value or a launch failure yields a *SessionError; the scenario fails
// but siblings are unaffected.
func (s *Session) Open() error {
	family, err := config.ParseBrowserFamily(s.profile.BrowserName)
	if err != nil {
		return &SessionError{Browser: s.profile.BrowserName, Err: err}
	}

	pw, err := playwright.Run()
	if err != nil {
		return &SessionError{Browser: family.String(), Err: fmt.Errorf("starting playwright driver: %w", err)}
	}
	s.pw = pw

	var browserType playwright.BrowserType
	switch family {
	case config.Chromium:
		browserType = pw.Chromium
	case config.Firefox:
		browserType = pw.Firefox
	case config.Webkit:
		browserType = pw.WebKit
	}

	browser, err := browserType.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.profile.Headless),
		SlowMo:   playwright.Float(float64(s.profile.SlowMo.Milliseconds())),
	})
	if err != nil {
		s.Close()
		return &SessionError{Browser: family.String(), Err: fmt.Errorf("launching browser: %w", err)}
	}
	s.browser = browser

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  s.profile.Viewport.Width,
			Height: s.profile.Viewport.Height,
		},
	})
	if err != nil {
		s.Close()
		return &SessionError{Browser: family.String(), Err: fmt.Errorf("creating browser context: %w", err)}
	}
	s.context = context

	page, err := context.NewPage()
	if err != nil {
		s.Close()
		return &SessionError{Browser: family.String(), Err: fmt.Errorf("creating page: %w", err)}
	}
	page.SetDefaultTimeout(float64(s.profile.Timeout.Milliseconds()))
	s.page = page

	log.Debug().
		Str("browser", family.String()).
		Bool("headless", s.profile.Headless).
		Str("base_url", s.profile.BaseURL).
		Msg("browser session opened")
	return nil
}

// Close tears the session down in page, context, browser, driver order.
// Safe to call with no session open and safe to call twice; each handle
// is released at most once. Close errors are logged, not returned,
// because teardown must never mask the scenario's own failure.
func (s *Session) Close() {
	if s.page != nil {
		if err := s.page.Close(); err != nil {
			log.Warn().Err(err).Msg("closing page")
		}
		s.page = nil
	}
	if s.context != nil {
		if err := s.context.Close(); err != nil {
			log.Warn().Err(err).Msg("closing browser context")
		}
		s.context = nil
	}
	if s.browser != nil {
		if err := s.browser.Close(); err != nil {
			log.Warn().Err(err).Msg("closing browser")
		}
		s.browser = nil
	}
	if s.pw != nil {
		if err := s.pw.Stop(); err != nil {
			log.Warn().Err(err).Msg("stopping playwright driver")
		}
		s.pw = nil
	}
}

// Page returns the active page, or nil when the session is not open.
func (s *Session) Page() playwright.Page { return s.page }

// Profile returns the resolved execution profile for this session.
func (s *Session) Profile() config.Profile { return s.profile }

// CaptureArtifact screenshots the active page and returns the PNG
// bytes. With no active page it reports ok=false instead of failing, so
// the after hook can call it unconditionally.
func (s *Session) CaptureArtifact(label string) ([]byte, bool) {
	if s.page == nil {
		return nil, false
	}
	shot, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		log.Warn().Err(err).Str("label", label).Msg("screenshot capture failed")
		return nil, false
	}
	return shot, true
}

// Put stores a scenario-scoped value.
func (s *Session) Put(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bag[key] = value
}

// Get retrieves a scenario-scoped value.
func (s *Session) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.bag[key]
	return v, ok
}

// Delete removes a scenario-scoped value.
func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bag, key)
}
