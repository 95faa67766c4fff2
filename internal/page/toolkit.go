// Package page holds the page objects for the application under test
// and the interaction toolkit they are composed from.
//
// Pages are plain structs holding a Toolkit value and exposing semantic
// verbs over named elements; there is no base-page inheritance. The
// toolkit funnels every DOM interaction through one place so logging
// and timeout behavior stay consistent across pages.
package page

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog/log"
)

// Object is the minimal contract every page object satisfies.
type Object interface {
	// Name identifies the page in logs and step failure messages.
	Name() string
	// IsLoaded waits for the page's landmark elements, returning false
	// (not an error) when they do not appear within the timeout.
	IsLoaded(timeout time.Duration) bool
}

// Toolkit wraps a playwright page with logged, timeout-bounded DOM
// primitives. It is a value type: pages hold their own copy bound to
// the scenario's session page.
type Toolkit struct {
	page    playwright.Page
	baseURL string
	timeout time.Duration
}

// NewToolkit binds a toolkit to a session page.
func NewToolkit(pw playwright.Page, baseURL string, timeout time.Duration) Toolkit {
	return Toolkit{page: pw, baseURL: baseURL, timeout: timeout}
}

// Goto navigates to a path relative to the base URL.
func (t Toolkit) Goto(path string) error {
	url := t.baseURL + path
	log.Debug().Str("url", url).Msg("navigate")
	if _, err := t.page.Goto(url); err != nil {
		return fmt.Errorf("navigating to %s: %w", url, err)
	}
	return nil
}

// Fill clears the element and types the value.
func (t Toolkit) Fill(selector, value string) error {
	log.Debug().Str("selector", selector).Msg("fill")
	if err := t.page.Locator(selector).Fill(value); err != nil {
		return fmt.Errorf("filling %s: %w", selector, err)
	}
	return nil
}

// Click clicks the element.
func (t Toolkit) Click(selector string) error {
	log.Debug().Str("selector", selector).Msg("click")
	if err := t.page.Locator(selector).Click(); err != nil {
		return fmt.Errorf("clicking %s: %w", selector, err)
	}
	return nil
}

// Check sets a checkbox element to checked.
func (t Toolkit) Check(selector string) error {
	log.Debug().Str("selector", selector).Msg("check")
	if err := t.page.Locator(selector).Check(); err != nil {
		return fmt.Errorf("checking %s: %w", selector, err)
	}
	return nil
}

// Press sends a key press to the element.
func (t Toolkit) Press(selector, key string) error {
	log.Debug().Str("selector", selector).Str("key", key).Msg("press")
	if err := t.page.Locator(selector).Press(key); err != nil {
		return fmt.Errorf("pressing %s on %s: %w", key, selector, err)
	}
	return nil
}

// Text returns the element's inner text.
func (t Toolkit) Text(selector string) (string, error) {
	text, err := t.page.Locator(selector).InnerText()
	if err != nil {
		return "", fmt.Errorf("reading text of %s: %w", selector, err)
	}
	return text, nil
}

// Visible reports whether the element is currently visible, without
// waiting.
func (t Toolkit) Visible(selector string) bool {
	visible, err := t.page.Locator(selector).IsVisible()
	if err != nil {
		log.Debug().Err(err).Str("selector", selector).Msg("visibility probe failed")
		return false
	}
	return visible
}

// WaitVisible waits up to timeout for the element to become visible,
// returning false and logging on timeout rather than erroring. This is
// the primitive page-loaded predicates are built on.
func (t Toolkit) WaitVisible(selector string, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = t.timeout
	}
	err := t.page.Locator(selector).WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		log.Debug().Str("selector", selector).Dur("timeout", timeout).Msg("element did not become visible")
		return false
	}
	return true
}

// WaitHidden waits up to timeout for the element to leave the DOM or
// become hidden.
func (t Toolkit) WaitHidden(selector string, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = t.timeout
	}
	err := t.page.Locator(selector).WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(float64(timeout.Milliseconds())),
	})
	if err != nil {
		log.Debug().Str("selector", selector).Dur("timeout", timeout).Msg("element did not disappear")
		return false
	}
	return true
}

// CountOf returns the number of elements matching the selector.
func (t Toolkit) CountOf(selector string) (int, error) {
	n, err := t.page.Locator(selector).Count()
	if err != nil {
		return 0, fmt.Errorf("counting %s: %w", selector, err)
	}
	return n, nil
}

// CurrentURL returns the page's current location.
func (t Toolkit) CurrentURL() string {
	return t.page.URL()
}

// Timeout returns the toolkit's default wait timeout.
func (t Toolkit) Timeout() time.Duration { return t.timeout }
