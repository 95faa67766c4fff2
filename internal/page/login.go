package page

import (
	"fmt"
	"strings"
	"time"
)

// Login page selectors.
const (
	loginPath          = "/login"
	loginUsernameInput = "#username"
	loginPasswordInput = "#password"
	loginSubmitButton  = "button[type='submit']"
	loginErrorBanner   = "[data-test='login-error']"
	loginForm          = "[data-test='login-form']"
)

// Login is the login screen of the application under test.
type Login struct {
	tk Toolkit
}

// NewLogin binds the login page to a toolkit.
func NewLogin(tk Toolkit) *Login {
	return &Login{tk: tk}
}

func (p *Login) Name() string { return "login" }

// Navigate opens the login screen.
func (p *Login) Navigate() error {
	return p.tk.Goto(loginPath)
}

// IsLoaded waits for the login form landmarks.
func (p *Login) IsLoaded(timeout time.Duration) bool {
	return p.tk.WaitVisible(loginForm, timeout) &&
		p.tk.WaitVisible(loginUsernameInput, timeout) &&
		p.tk.WaitVisible(loginPasswordInput, timeout)
}

// LoginAs fills the credential fields and submits the form.
func (p *Login) LoginAs(username, password string) error {
	if err := p.tk.Fill(loginUsernameInput, username); err != nil {
		return err
	}
	if err := p.tk.Fill(loginPasswordInput, password); err != nil {
		return err
	}
	return p.tk.Click(loginSubmitButton)
}

// ErrorMessage waits for the error banner and returns its text. An
// absent banner is an error here; callers asserting "no error" should
// use HasError instead.
func (p *Login) ErrorMessage() (string, error) {
	if !p.tk.WaitVisible(loginErrorBanner, 0) {
		return "", fmt.Errorf("login error banner did not appear")
	}
	return p.tk.Text(loginErrorBanner)
}

// HasError reports whether the error banner is currently visible.
func (p *Login) HasError() bool {
	return p.tk.Visible(loginErrorBanner)
}

// AtLoginURL reports whether the session is still on the login screen.
func (p *Login) AtLoginURL() bool {
	return strings.Contains(p.tk.CurrentURL(), loginPath)
}
