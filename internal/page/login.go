package page

import (
	"github.com/grez-lucas/pagekit/internal/driver"
	"github.com/grez-lucas/pagekit/internal/wait"
)

// LoginPage drives a username/password login form.
//
// It keeps no state of its own between calls: every accessor re-reads the
// live page, so there is no cached "logged in" flag.
type LoginPage struct {
	base *Base

	usernameField  driver.Locator
	passwordField  driver.Locator
	loginButton    driver.Locator
	errorMessage   driver.Locator
	welcomeMessage driver.Locator
}

// NewLoginPage wraps session. It fails like NewBase.
func NewLoginPage(session driver.Session, opts ...Option) (*LoginPage, error) {
	base, err := NewBase(session, opts...)
	if err != nil {
		return nil, err
	}

	return &LoginPage{
		base:           base,
		usernameField:  driver.ByID(SelectorUsernameInput),
		passwordField:  driver.ByID(SelectorPasswordInput),
		loginButton:    driver.ByID(SelectorLoginButton),
		errorMessage:   driver.ByClassName(SelectorErrorMessage),
		welcomeMessage: driver.ByClassName(SelectorWelcomeMessage),
	}, nil
}

// GoTo navigates to baseURL + "/login". The URL is not normalised.
func (p *LoginPage) GoTo(baseURL string) error {
	return p.base.Navigate(baseURL + LoginPath)
}

func (p *LoginPage) EnterUsername(username string) error {
	return p.base.EnterText(p.usernameField, username)
}

func (p *LoginPage) EnterPassword(password string) error {
	return p.base.EnterText(p.passwordField, password)
}

func (p *LoginPage) ClickLogin() error {
	return p.base.Click(p.loginButton)
}

// Login fills both fields and submits, in that order. The first failing
// step ends the login; later steps are not attempted.
func (p *LoginPage) Login(username, password string) error {
	if err := p.EnterUsername(username); err != nil {
		return err
	}
	if err := p.EnterPassword(password); err != nil {
		return err
	}
	return p.ClickLogin()
}

// Outcome is what the application showed after a login attempt.
type Outcome struct {
	Succeeded bool
	Message   string
}

// AwaitOutcome waits until the welcome or the error banner is displayed and
// returns its text. The welcome message wins when both are shown.
func (p *LoginPage) AwaitOutcome() (Outcome, error) {
	banner, err := wait.For(p.base.poller, "login outcome", func() (driver.Locator, bool, error) {
		switch {
		case p.IsWelcomeMessageDisplayed():
			return p.welcomeMessage, true, nil
		case p.IsErrorMessageDisplayed():
			return p.errorMessage, true, nil
		}
		return driver.Locator{}, false, nil
	})
	if err != nil {
		return Outcome{}, err
	}

	msg, err := p.base.Text(banner)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Succeeded: banner == p.welcomeMessage, Message: msg}, nil
}

func (p *LoginPage) ErrorMessage() (string, error) {
	return p.base.Text(p.errorMessage)
}

func (p *LoginPage) IsErrorMessageDisplayed() bool {
	return p.base.IsDisplayed(p.errorMessage)
}

func (p *LoginPage) WelcomeMessage() (string, error) {
	return p.base.Text(p.welcomeMessage)
}

func (p *LoginPage) IsWelcomeMessageDisplayed() bool {
	return p.base.IsDisplayed(p.welcomeMessage)
}

// IsLoginButtonEnabled waits for the submit button and reports whether it
// accepts clicks.
func (p *LoginPage) IsLoginButtonEnabled() (bool, error) {
	return p.base.IsEnabled(p.loginButton)
}

func (p *LoginPage) Title() (string, error) {
	return p.base.Title()
}
