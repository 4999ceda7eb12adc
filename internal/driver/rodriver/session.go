// Package rodriver implements driver.Session with Rod over the Chrome
// DevTools Protocol. It drives Chromium-family browsers: Chrome, Chromium
// and Edge.
package rodriver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/grez-lucas/pagekit/internal/driver"
	"github.com/rs/zerolog"
)

const defaultNavigationTimeout = 30 * time.Second

// Options configures Launch.
type Options struct {
	// Bin is the browser executable. Empty lets the launcher find or
	// download a Chromium.
	Bin      string
	Headless bool
	// NoSandbox disables the Chrome sandbox.
	NoSandbox bool
	// Flags are extra command line switches, "name" or "name=value", with
	// or without the leading dashes.
	Flags []string
	// Stealth opens the page with go-rod/stealth evasions.
	Stealth bool
	// HumanTyping types with small random delays between keystrokes.
	HumanTyping bool
	// Hijack, when set, answers every request the page makes.
	Hijack func(*rod.Hijack)
	// NavigationTimeout bounds Navigate and the actionability waits of
	// Click, Clear and SendKeys. Zero means 30s.
	NavigationTimeout time.Duration
	Logger            zerolog.Logger
}

// Session is a single Rod page. When created by Launch it owns the browser
// process and releases it in Quit.
type Session struct {
	browser  *rod.Browser
	page     *rod.Page
	launcher *launcher.Launcher
	router   *rod.HijackRouter

	// parent is set on frame sessions, which never own the page.
	parent *Session

	humanTyping bool
	navTimeout  time.Duration
	logger      zerolog.Logger
	closed      bool
}

// Launch starts a browser and opens a blank page in it.
func Launch(opts Options) (*Session, error) {
	l := launcher.New().Headless(opts.Headless)
	if opts.Bin != "" {
		l = l.Bin(opts.Bin)
	}
	if opts.NoSandbox {
		l = l.NoSandbox(true)
	}
	for _, f := range opts.Flags {
		name, value, hasValue := strings.Cut(strings.TrimLeft(f, "-"), "=")
		if hasValue {
			l = l.Set(flags.Flag(name), value)
		} else {
			l = l.Set(flags.Flag(name))
		}
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect to browser: %w", err)
	}

	var page *rod.Page
	if opts.Stealth {
		page, err = stealth.Page(browser)
	} else {
		page, err = browser.Page(proto.TargetCreateTarget{})
	}
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("open page: %w", err)
	}

	s := newSession(page, opts)
	s.browser = browser
	s.launcher = l

	if opts.Hijack != nil {
		router := browser.HijackRequests()
		if err := router.Add("*", "", opts.Hijack); err != nil {
			_ = s.Quit()
			return nil, fmt.Errorf("hijack requests: %w", err)
		}
		go router.Run()
		s.router = router
	}

	s.logger.Debug().
		Str("bin", opts.Bin).
		Bool("headless", opts.Headless).
		Bool("stealth", opts.Stealth).
		Msg("browser launched")

	return s, nil
}

// Wrap adapts an existing page. Quit closes only the page; the browser
// stays with its owner.
func Wrap(page *rod.Page, opts Options) *Session {
	return newSession(page, opts)
}

func newSession(page *rod.Page, opts Options) *Session {
	navTimeout := opts.NavigationTimeout
	if navTimeout <= 0 {
		navTimeout = defaultNavigationTimeout
	}

	return &Session{
		page:        page,
		humanTyping: opts.HumanTyping,
		navTimeout:  navTimeout,
		logger:      opts.Logger.With().Str("component", "rodriver").Logger(),
	}
}

// Page returns the underlying Rod page.
func (s *Session) Page() *rod.Page {
	return s.page
}

func (s *Session) Navigate(url string) error {
	p := s.page.Timeout(s.navTimeout)
	defer p.CancelTimeout()

	if err := p.Navigate(url); err != nil {
		return err
	}
	return p.WaitLoad()
}

func (s *Session) Title() (string, error) {
	info, err := s.page.Info()
	if err != nil {
		return "", err
	}
	return info.Title, nil
}

// FindElement queries the page once; it never waits for the element to
// appear.
func (s *Session) FindElement(loc driver.Locator) (driver.Element, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	p := s.page.Sleeper(rod.NotFoundSleeper)

	var el *rod.Element
	var err error
	if css, ok := loc.CSS(); ok {
		el, err = p.Element(css)
	} else {
		el, err = p.ElementX(loc.Value)
	}
	if err != nil {
		return nil, classify(loc, err)
	}

	return &Element{
		el:            el,
		loc:           loc,
		humanTyping:   s.humanTyping,
		actionTimeout: s.navTimeout,
	}, nil
}

// Quit closes the page, or the whole browser when the session launched it.
// Calling it again is a no-op.
func (s *Session) Quit() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true

	if s.parent != nil {
		return nil
	}

	if s.router != nil {
		_ = s.router.Stop()
	}

	if s.browser == nil {
		return s.page.Close()
	}

	err := s.browser.Close()
	if s.launcher != nil {
		s.launcher.Cleanup()
	}
	return err
}

// classify maps Rod lookup failures onto the driver sentinels. Anything
// else is an engine failure and is returned unchanged.
func classify(loc driver.Locator, err error) error {
	if err == nil {
		return nil
	}

	var notFound *rod.ElementNotFoundError
	if errors.As(err, &notFound) {
		return driver.NotFound(loc, "")
	}

	var objNotFound *rod.ObjectNotFoundError
	if errors.As(err, &objNotFound) {
		return driver.Stale(loc, err.Error())
	}

	msg := err.Error()
	for _, marker := range []string{"Cannot find context with specified id", "Could not find node with given id", "Node is detached"} {
		if strings.Contains(msg, marker) {
			return driver.Stale(loc, msg)
		}
	}

	return err
}

var _ driver.Session = (*Session)(nil)
