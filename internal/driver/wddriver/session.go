// Package wddriver implements driver.Session over the W3C WebDriver protocol
// with tebeka/selenium. It talks to any remote end: a Selenium Grid, a
// standalone chromedriver or geckodriver, or a cloud provider.
package wddriver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/grez-lucas/pagekit/internal/driver"
	"github.com/rs/zerolog"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

// Browser names understood by WebDriver remote ends.
const (
	BrowserChrome  = "chrome"
	BrowserFirefox = "firefox"
	BrowserEdge    = "MicrosoftEdge"
)

const edgeOptionsKey = "ms:edgeOptions"

// ErrNoRemote is returned by Dial without a remote URL.
var ErrNoRemote = errors.New("webdriver remote URL is required")

// Options configures Dial.
type Options struct {
	RemoteURL string
	// Browser is one of the Browser constants.
	Browser string
	// Args are passed to the browser as command line switches.
	Args []string
	// Bin is the browser executable on the remote host.
	Bin string
	// Prefs are browser preferences: Chrome profile prefs or Firefox
	// about:config entries.
	Prefs  map[string]interface{}
	Logger zerolog.Logger
}

// Session is one WebDriver session.
type Session struct {
	wd     selenium.WebDriver
	logger zerolog.Logger
	closed bool
}

// Dial opens a new session on the remote end.
func Dial(opts Options) (*Session, error) {
	if opts.RemoteURL == "" {
		return nil, ErrNoRemote
	}

	wd, err := selenium.NewRemote(capabilities(opts), opts.RemoteURL)
	if err != nil {
		return nil, fmt.Errorf("create webdriver session at %s: %w", opts.RemoteURL, err)
	}

	// Lookups must not block; the page layer does its own polling.
	if err := wd.SetImplicitWaitTimeout(0); err != nil {
		_ = wd.Quit()
		return nil, fmt.Errorf("disable implicit wait: %w", err)
	}

	logger := opts.Logger.With().Str("component", "wddriver").Logger()
	logger.Debug().Str("remote", opts.RemoteURL).Str("browser", opts.Browser).Msg("session created")

	return Wrap(wd, logger), nil
}

// Wrap adapts an existing WebDriver. Quit ends its session.
func Wrap(wd selenium.WebDriver, logger zerolog.Logger) *Session {
	return &Session{wd: wd, logger: logger}
}

// capabilities builds the new-session request for opts.Browser.
func capabilities(opts Options) selenium.Capabilities {
	caps := selenium.Capabilities{"browserName": opts.Browser}

	switch opts.Browser {
	case BrowserChrome:
		caps.AddChrome(chrome.Capabilities{Args: opts.Args, Path: opts.Bin, Prefs: opts.Prefs, W3C: true})
	case BrowserFirefox:
		caps.AddFirefox(firefox.Capabilities{Args: opts.Args, Binary: opts.Bin, Prefs: opts.Prefs})
	case BrowserEdge:
		edge := map[string]interface{}{"args": opts.Args}
		if opts.Bin != "" {
			edge["binary"] = opts.Bin
		}
		caps[edgeOptionsKey] = edge
	}

	return caps
}

func (s *Session) Navigate(url string) error {
	return s.wd.Get(url)
}

func (s *Session) Title() (string, error) {
	return s.wd.Title()
}

func (s *Session) FindElement(loc driver.Locator) (driver.Element, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	by, value := selenium.ByXPATH, loc.Value
	if css, ok := loc.CSS(); ok {
		by, value = selenium.ByCSSSelector, css
	}

	el, err := s.wd.FindElement(by, value)
	if err != nil {
		return nil, classify(loc, err)
	}
	return &Element{el: el, loc: loc}, nil
}

// Quit ends the remote session. Calling it again is a no-op.
func (s *Session) Quit() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true

	return s.wd.Quit()
}

// classify maps WebDriver error codes onto the driver sentinels.
func classify(loc driver.Locator, err error) error {
	if err == nil {
		return nil
	}

	code := err.Error()
	var wdErr *selenium.Error
	if errors.As(err, &wdErr) {
		code = wdErr.Err
	}

	switch {
	case strings.Contains(code, "no such element"):
		return driver.NotFound(loc, "")
	case strings.Contains(code, "stale element reference"):
		return driver.Stale(loc, "")
	default:
		return err
	}
}

var _ driver.Session = (*Session)(nil)
