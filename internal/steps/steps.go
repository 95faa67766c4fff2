// Package steps maps Gherkin phrases onto page object calls. Every step
// operates on an explicitly constructed Scenario value holding the
// session and data store for that one scenario; nothing is carried
// through ambient globals.
package steps

import (
	"fmt"

	"github.com/cucumber/godog"

	"github.com/ou2sema/Playwright-framework/internal/datastore"
	"github.com/ou2sema/Playwright-framework/internal/page"
	"github.com/ou2sema/Playwright-framework/internal/session"
)

// Scenario is the per-scenario state every step receives: the browser
// session, the shared read-only data store, and the page objects bound
// to the session's page. One Scenario is built per godog scenario and
// discarded afterwards.
type Scenario struct {
	Session *session.Session
	Store   *datastore.Store

	login *page.Login
	todos *page.Todos
}

// NewScenario creates the step state for one scenario. The session is
// not yet open; BindPages must be called after the before hook opens
// it.
func NewScenario(sess *session.Session, store *datastore.Store) *Scenario {
	return &Scenario{Session: sess, Store: store}
}

// BindPages constructs the page objects against the open session.
func (s *Scenario) BindPages() {
	profile := s.Session.Profile()
	tk := page.NewToolkit(s.Session.Page(), profile.BaseURL, profile.Timeout)
	s.login = page.NewLogin(tk)
	s.todos = page.NewTodos(tk)
}

// ready guards steps against running before the session opened.
func (s *Scenario) ready() error {
	if s.login == nil || s.todos == nil {
		return fmt.Errorf("browser session is not open")
	}
	return nil
}

// Register wires all step definitions into the godog scenario context.
func (s *Scenario) Register(ctx *godog.ScenarioContext) {
	register(ctx, s.Categories())
}

// Categories returns every step definition grouped by page, used both
// for godog registration and for the steps listing command.
func (s *Scenario) Categories() []Category {
	return []Category{
		s.loginSteps(),
		s.todoSteps(),
	}
}
