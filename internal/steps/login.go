package steps

import (
	"fmt"
	"strings"

	"github.com/ou2sema/Playwright-framework/internal/datastore"
	"github.com/ou2sema/Playwright-framework/internal/expect"
)

// loginDataSheet is the workbook sheet data-driven login cases live in,
// keyed by the case_id column.
const (
	loginDataSheet = "Login"
	loginCaseKey   = "case_id"
)

func (s *Scenario) loginSteps() Category {
	return Category{
		Name:        "Login",
		Description: "Authentication against the login screen, including data-driven cases",
		Steps: []Def{
			{
				Pattern:     `^the login page is open$`,
				Description: "Navigates to the login screen and waits for its landmarks",
				Example:     `Given the login page is open`,
				Handler:     s.theLoginPageIsOpen,
			},
			{
				Pattern:     `^the user logs in as "([^"]*)" with password "([^"]*)"$`,
				Description: "Fills the credential fields and submits",
				Example:     `When the user logs in as "admin" with password "password"`,
				Handler:     s.theUserLogsInAs,
			},
			{
				Pattern:     `^the user submits the credentials from case "([^"]*)"$`,
				Description: "Looks up the data case by id and submits its credentials",
				Example:     `When the user submits the credentials from case "TC-LOGIN-001"`,
				Handler:     s.theUserSubmitsCredentialsFromCase,
			},
			{
				Pattern:     `^the login outcome matches case "([^"]*)"$`,
				Description: "Asserts the branch the case's expected_result value selects",
				Example:     `Then the login outcome matches case "TC-LOGIN-001"`,
				Handler:     s.theLoginOutcomeMatchesCase,
			},
			{
				Pattern:     `^the user should see the todo list$`,
				Description: "Asserts the session landed on the todos screen",
				Example:     `Then the user should see the todo list`,
				Handler:     s.theUserShouldSeeTheTodoList,
			},
			{
				Pattern:     `^the login error "([^"]*)" should be shown$`,
				Description: "Asserts the error banner contains the message and the session stayed on the login screen",
				Example:     `Then the login error "Invalid credentials" should be shown`,
				Handler:     s.theLoginErrorShouldBeShown,
			},
		},
	}
}

func (s *Scenario) theLoginPageIsOpen() error {
	if err := s.ready(); err != nil {
		return err
	}
	if err := s.login.Navigate(); err != nil {
		return err
	}
	if !s.login.IsLoaded(0) {
		return fmt.Errorf("login page did not finish loading")
	}
	return nil
}

func (s *Scenario) theUserLogsInAs(username, password string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.login.LoginAs(username, password)
}

// loginCase resolves a data-driven case row, turning a lookup miss into
// an explicit, descriptive step failure rather than a silent pass.
func (s *Scenario) loginCase(caseID string) (datastore.Row, error) {
	row, found, err := s.Store.GetRow(loginDataSheet, loginCaseKey, caseID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("case %q not found in sheet %q (key column %q)", caseID, loginDataSheet, loginCaseKey)
	}
	return row, nil
}

func (s *Scenario) theUserSubmitsCredentialsFromCase(caseID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	row, err := s.loginCase(caseID)
	if err != nil {
		return err
	}
	return s.login.LoginAs(row.String("username"), row.String("password"))
}

func (s *Scenario) theLoginOutcomeMatchesCase(caseID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	row, err := s.loginCase(caseID)
	if err != nil {
		return err
	}

	outcome, err := expect.Parse(row.String("expected_result"))
	if err != nil {
		return fmt.Errorf("case %q: %w", caseID, err)
	}

	switch outcome.Kind {
	case expect.Success:
		if err := s.assertLoggedIn(row.String("username")); err != nil {
			return fmt.Errorf("case %q expected success: %w", caseID, err)
		}
		return nil
	case expect.Failure:
		if err := s.assertLoginFailed(outcome.Message); err != nil {
			return fmt.Errorf("case %q expected %q: %w", caseID, outcome.Message, err)
		}
		return nil
	default:
		return fmt.Errorf("case %q: unhandled outcome kind %v", caseID, outcome.Kind)
	}
}

// assertLoggedIn is the success branch: the session must have left the
// login screen for the todos screen and the greeting landmark must name
// the user.
func (s *Scenario) assertLoggedIn(username string) error {
	if !s.todos.IsLoaded(0) {
		return fmt.Errorf("todo list did not load after login")
	}
	if !s.todos.AtTodosURL() {
		return fmt.Errorf("session did not navigate to the todos screen")
	}
	greeting, err := s.todos.Greeting()
	if err != nil {
		return err
	}
	if username != "" && !strings.Contains(greeting, username) {
		return fmt.Errorf("greeting %q does not mention user %q", greeting, username)
	}
	return nil
}

// assertLoginFailed is the error branch: the banner must contain the
// expected message and the session must have stayed on the login
// screen.
func (s *Scenario) assertLoginFailed(message string) error {
	banner, err := s.login.ErrorMessage()
	if err != nil {
		return err
	}
	if !strings.Contains(banner, message) {
		return fmt.Errorf("error banner %q does not contain %q", banner, message)
	}
	if !s.login.AtLoginURL() {
		return fmt.Errorf("session left the login screen on a failed login")
	}
	return nil
}

func (s *Scenario) theUserShouldSeeTheTodoList() error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.assertLoggedIn("")
}

func (s *Scenario) theLoginErrorShouldBeShown(message string) error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.assertLoginFailed(message)
}
