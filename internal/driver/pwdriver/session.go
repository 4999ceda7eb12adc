// Package pwdriver implements driver.Session with Playwright's Firefox and
// Chromium.
package pwdriver

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/grez-lucas/pagekit/internal/driver"
	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"
)

// ErrUnknownEngine is returned by Launch for an Engine it does not know.
var ErrUnknownEngine = errors.New("unknown playwright engine")

// Engines Launch can start.
const (
	EngineChromium = "chromium"
	EngineFirefox  = "firefox"
)

const defaultActionTimeout = 30 * time.Second

// Options configures Launch.
type Options struct {
	// Engine is EngineFirefox when empty.
	Engine   string
	Headless bool
	// Bin overrides the bundled browser executable.
	Bin  string
	Args []string
	// FirefoxPrefs are about:config preferences, Firefox only.
	FirefoxPrefs map[string]interface{}
	// ActionTimeout bounds navigation and every element action. Zero
	// means 30s.
	ActionTimeout time.Duration
	Logger        zerolog.Logger
}

// Session is one Playwright page in its own browser.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
	logger  zerolog.Logger
	closed  bool
}

// Launch starts the Playwright driver, a browser and a page.
func Launch(opts Options) (*Session, error) {
	engine := opts.Engine
	if engine == "" {
		engine = EngineFirefox
	}

	if engine != EngineChromium && engine != EngineFirefox {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, engine)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	browserType := pw.Firefox
	if engine == EngineChromium {
		browserType = pw.Chromium
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(opts.Headless),
		Args:     opts.Args,
	}
	if opts.Bin != "" {
		launchOpts.ExecutablePath = playwright.String(opts.Bin)
	}
	if engine == EngineFirefox && len(opts.FirefoxPrefs) > 0 {
		launchOpts.FirefoxUserPrefs = opts.FirefoxPrefs
	}

	browser, err := browserType.Launch(launchOpts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch %s: %w", engine, err)
	}

	page, err := browser.NewPage()
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("open page: %w", err)
	}

	timeout := opts.ActionTimeout
	if timeout <= 0 {
		timeout = defaultActionTimeout
	}
	ms := float64(timeout.Milliseconds())
	page.SetDefaultTimeout(ms)
	page.SetDefaultNavigationTimeout(ms)

	logger := opts.Logger.With().Str("component", "pwdriver").Logger()
	logger.Debug().Str("engine", engine).Bool("headless", opts.Headless).Msg("browser launched")

	return &Session{pw: pw, browser: browser, page: page, logger: logger}, nil
}

// Page returns the underlying Playwright page.
func (s *Session) Page() playwright.Page {
	return s.page
}

func (s *Session) Navigate(url string) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	})
	return err
}

func (s *Session) Title() (string, error) {
	return s.page.Title()
}

// FindElement counts the matches once and fails with ErrNoSuchElement when
// there are none. It never waits.
func (s *Session) FindElement(loc driver.Locator) (driver.Element, error) {
	sel, err := selector(loc)
	if err != nil {
		return nil, err
	}

	first := s.page.Locator(sel).First()
	n, err := first.Count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, driver.NotFound(loc, "")
	}

	return &Element{locator: first, loc: loc}, nil
}

// Quit closes the browser and stops the driver. Calling it again is a
// no-op.
func (s *Session) Quit() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true

	return errors.Join(s.browser.Close(), s.pw.Stop())
}

// selector renders loc in Playwright's selector syntax.
func selector(loc driver.Locator) (string, error) {
	if err := loc.Validate(); err != nil {
		return "", err
	}
	if css, ok := loc.CSS(); ok {
		return "css=" + css, nil
	}

	xpath := loc.Value
	if !strings.HasPrefix(xpath, "/") && !strings.HasPrefix(xpath, "(") {
		// Playwright only treats rooted expressions as XPath.
		xpath = "//" + xpath
	}
	return "xpath=" + xpath, nil
}

var _ driver.Session = (*Session)(nil)
