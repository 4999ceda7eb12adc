package factory

import (
	"fmt"

	"github.com/grez-lucas/pagekit/internal/driver"
	"github.com/grez-lucas/pagekit/internal/driver/pwdriver"
	"github.com/grez-lucas/pagekit/internal/driver/rodriver"
	"github.com/grez-lucas/pagekit/internal/driver/wddriver"
	"github.com/rs/zerolog"
)

// Option configures NewSession.
type Option func(*settings)

type settings struct {
	headless    bool
	remoteURL   string
	bin         string
	stealth     bool
	hardened    bool
	humanTyping bool
	playwright  bool
	logger      zerolog.Logger
}

// engine is the backend a session runs on.
type engine int

const (
	engineRod engine = iota
	enginePlaywright
	engineWebDriver
)

// WithHeadless runs the browser without a window.
func WithHeadless(headless bool) Option {
	return func(s *settings) {
		s.headless = headless
	}
}

// WithRemoteURL drives the browser through the WebDriver server at url
// instead of launching it locally.
func WithRemoteURL(url string) Option {
	return func(s *settings) {
		s.remoteURL = url
	}
}

// WithBinary sets the browser executable.
func WithBinary(path string) Option {
	return func(s *settings) {
		s.bin = path
	}
}

// WithStealth opens Chrome and Edge pages with anti-detection evasions.
// Other engines ignore it.
func WithStealth(enabled bool) Option {
	return func(s *settings) {
		s.stealth = enabled
	}
}

// WithHardening adds privacy and security switches and preferences.
func WithHardening(enabled bool) Option {
	return func(s *settings) {
		s.hardened = enabled
	}
}

// WithHumanTyping types into Chrome and Edge with random keystroke delays.
func WithHumanTyping(enabled bool) Option {
	return func(s *settings) {
		s.humanTyping = enabled
	}
}

// WithPlaywright runs Chrome and Edge on Playwright's Chromium instead of
// Rod. Firefox always runs on Playwright.
func WithPlaywright(enabled bool) Option {
	return func(s *settings) {
		s.playwright = enabled
	}
}

// WithLogger sets the logger handed to the engine.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// NewSession starts a browser of the given kind. A remote URL selects the
// WebDriver engine for every kind; otherwise Chrome and Edge run on Rod,
// or Playwright with WithPlaywright, and Firefox on Playwright. An unknown kind fails before anything is launched.
func NewSession(kind BrowserKind, opts ...Option) (driver.Session, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unsupported browser kind %v", driver.ErrInvalidConfiguration, kind)
	}

	s := settings{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&s)
	}

	logger := s.logger.With().Str("component", "factory").Logger()
	logger.Debug().
		Stringer("kind", kind).
		Bool("headless", s.headless).
		Bool("remote", s.remoteURL != "").
		Msg("creating session")

	switch engineFor(kind, s) {
	case engineWebDriver:
		return dialRemote(kind, s)
	case enginePlaywright:
		return launchPlaywright(kind, s)
	default:
		return launchRod(kind, s)
	}
}

func engineFor(kind BrowserKind, s settings) engine {
	switch {
	case s.remoteURL != "":
		return engineWebDriver
	case kind == Firefox || s.playwright:
		return enginePlaywright
	default:
		return engineRod
	}
}

func dialRemote(kind BrowserKind, s settings) (driver.Session, error) {
	browser := map[BrowserKind]string{
		Chrome:  wddriver.BrowserChrome,
		Firefox: wddriver.BrowserFirefox,
		Edge:    wddriver.BrowserEdge,
	}[kind]

	session, err := wddriver.Dial(wddriver.Options{
		RemoteURL: s.remoteURL,
		Browser:   browser,
		Args:      LaunchArgs(kind, s.headless, s.hardened),
		Bin:       s.bin,
		Prefs:     launchPrefs(kind, s.hardened),
		Logger:    s.logger,
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func launchPlaywright(kind BrowserKind, s settings) (driver.Session, error) {
	opts := pwdriver.Options{
		Engine:   pwdriver.EngineChromium,
		Headless: s.headless,
		Bin:      s.bin,
		Args:     LaunchArgs(kind, false, s.hardened),
		Logger:   s.logger,
	}

	switch kind {
	case Firefox:
		opts.Engine = pwdriver.EngineFirefox
		opts.FirefoxPrefs = launchPrefs(Firefox, s.hardened)
	case Edge:
		bin, err := edgeBinary(s.bin)
		if err != nil {
			return nil, err
		}
		opts.Bin = bin
	}

	session, err := pwdriver.Launch(opts)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// edgeBinary returns bin, or the installed Edge when bin is empty.
func edgeBinary(bin string) (string, error) {
	if bin != "" {
		return bin, nil
	}
	found, err := findEdgeBinary()
	if err != nil {
		return "", fmt.Errorf("edge: %w", err)
	}
	return found, nil
}

func launchRod(kind BrowserKind, s settings) (driver.Session, error) {
	bin := s.bin
	if kind == Edge {
		found, err := edgeBinary(bin)
		if err != nil {
			return nil, err
		}
		bin = found
	}

	// The launcher sets headless itself.
	session, err := rodriver.Launch(rodriver.Options{
		Bin:         bin,
		Headless:    s.headless,
		Flags:       LaunchArgs(kind, false, s.hardened),
		Stealth:     s.stealth,
		HumanTyping: s.humanTyping,
		Logger:      s.logger,
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// NewChromeSession starts Chrome.
func NewChromeSession(opts ...Option) (driver.Session, error) {
	return NewSession(Chrome, opts...)
}

// NewFirefoxSession starts Firefox.
func NewFirefoxSession(opts ...Option) (driver.Session, error) {
	return NewSession(Firefox, opts...)
}

// NewEdgeSession starts Edge.
func NewEdgeSession(opts ...Option) (driver.Session, error) {
	return NewSession(Edge, opts...)
}

// NewHeadlessChromeSession starts Chrome without a window.
func NewHeadlessChromeSession(opts ...Option) (driver.Session, error) {
	return NewSession(Chrome, append(opts, WithHeadless(true))...)
}

// Quit releases session. A nil session is a no-op, and so is a session
// that was already released.
func Quit(session driver.Session) error {
	if driver.IsNil(session) {
		return nil
	}
	return session.Quit()
}
