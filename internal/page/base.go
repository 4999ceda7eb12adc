// Package page implements page objects: Base wraps a driver.Session with
// explicit waits, and workflows such as LoginPage compose its primitives
// into user-facing steps.
package page

import (
	"fmt"
	"time"

	"github.com/grez-lucas/pagekit/internal/driver"
	"github.com/grez-lucas/pagekit/internal/redact"
	"github.com/grez-lucas/pagekit/internal/wait"
	"github.com/rs/zerolog"
)

// ErrTimeout is returned, wrapped in a *wait.TimeoutError, when an element
// never reaches the state an operation waits for.
var ErrTimeout = wait.ErrTimeout

// Base exposes the primitive operations every page object is built from.
// It borrows its Session and never releases it.
type Base struct {
	session driver.Session
	poller  *wait.Poller
	logger  zerolog.Logger
}

type options struct {
	timeout  time.Duration
	interval time.Duration
	logger   zerolog.Logger
}

// Option configures a Base or a workflow built on it.
type Option func(*options)

// WithTimeout sets how long every wait issued through the page may take.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithPollInterval sets the delay between two checks of a wait condition.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		o.interval = d
	}
}

// WithLogger sets the logger used for debug diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewBase wraps session. It fails with driver.ErrInvalidConfiguration when
// session is nil, including a typed nil backend pointer, or the wait timing
// is not positive.
func NewBase(session driver.Session, opts ...Option) (*Base, error) {
	if driver.IsNil(session) {
		return nil, fmt.Errorf("%w: nil session", driver.ErrInvalidConfiguration)
	}

	o := options{
		timeout:  wait.DefaultTimeout,
		interval: wait.DefaultInterval,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.timeout <= 0 {
		return nil, fmt.Errorf("%w: wait timeout must be positive, got %s", driver.ErrInvalidConfiguration, o.timeout)
	}
	if o.interval <= 0 {
		return nil, fmt.Errorf("%w: poll interval must be positive, got %s", driver.ErrInvalidConfiguration, o.interval)
	}

	return &Base{
		session: session,
		poller: wait.New(o.timeout,
			wait.WithInterval(o.interval),
			wait.Ignoring(driver.ErrNoSuchElement, driver.ErrStaleElement),
		),
		logger: o.logger.With().Str("component", "page").Logger(),
	}, nil
}

// Timeout returns the wait timeout applied to every operation.
func (b *Base) Timeout() time.Duration {
	return b.poller.Timeout()
}

// Navigate loads url. Engine failures are returned as is.
func (b *Base) Navigate(url string) error {
	b.logger.Debug().Str("url", url).Msg("navigate")
	return b.session.Navigate(url)
}

// Title returns the current page title.
func (b *Base) Title() (string, error) {
	return b.session.Title()
}

// WaitForElement waits until loc matches a displayed element and returns it.
func (b *Base) WaitForElement(loc driver.Locator) (driver.Element, error) {
	return wait.For(b.poller, "visibility of "+loc.String(), func() (driver.Element, bool, error) {
		el, err := b.session.FindElement(loc)
		if err != nil {
			return nil, false, err
		}
		displayed, err := el.Displayed()
		if err != nil {
			return nil, false, err
		}
		return el, displayed, nil
	})
}

// waitForClickable waits until loc matches an element that is displayed and
// enabled.
func (b *Base) waitForClickable(loc driver.Locator) (driver.Element, error) {
	return wait.For(b.poller, "element to be clickable: "+loc.String(), func() (driver.Element, bool, error) {
		el, err := b.session.FindElement(loc)
		if err != nil {
			return nil, false, err
		}
		displayed, err := el.Displayed()
		if err != nil || !displayed {
			return nil, false, err
		}
		enabled, err := el.Enabled()
		if err != nil {
			return nil, false, err
		}
		return el, enabled, nil
	})
}

// Click waits for loc to be clickable and clicks it.
func (b *Base) Click(loc driver.Locator) error {
	el, err := b.waitForClickable(loc)
	if err != nil {
		return err
	}
	b.logger.Debug().Stringer("locator", loc).Msg("click")
	return el.Click()
}

// EnterText waits for loc, clears its current value and types text.
func (b *Base) EnterText(loc driver.Locator, text string) error {
	el, err := b.WaitForElement(loc)
	if err != nil {
		return err
	}

	b.logger.Debug().
		Stringer("locator", loc).
		Str("text", redact.Value(loc.Value, text)).
		Msg("enter text")

	if err := el.Clear(); err != nil {
		return err
	}
	return el.SendKeys(text)
}

// Text waits for loc and returns its text content.
func (b *Base) Text(loc driver.Locator) (string, error) {
	el, err := b.WaitForElement(loc)
	if err != nil {
		return "", err
	}
	return el.Text()
}

// IsEnabled waits for loc and reports whether it is enabled.
func (b *Base) IsEnabled(loc driver.Locator) (bool, error) {
	el, err := b.WaitForElement(loc)
	if err != nil {
		return false, err
	}
	return el.Enabled()
}

// Visibility is the outcome of a single, non-waiting visibility check.
// Err is set when the check itself failed, e.g. because nothing matched.
type Visibility struct {
	Displayed bool
	Err       error
}

// Lookup checks once whether loc is displayed, keeping the failure reason.
func (b *Base) Lookup(loc driver.Locator) (v Visibility) {
	defer func() {
		if r := recover(); r != nil {
			v = Visibility{Err: fmt.Errorf("lookup %s panicked: %v", loc, r)}
		}
	}()

	if err := loc.Validate(); err != nil {
		return Visibility{Err: err}
	}

	el, err := b.session.FindElement(loc)
	if err != nil {
		return Visibility{Err: err}
	}

	displayed, err := el.Displayed()
	if err != nil {
		return Visibility{Err: err}
	}
	return Visibility{Displayed: displayed}
}

// IsDisplayed reports whether loc is currently displayed. It never fails:
// a missing or stale element, an invalid locator or an engine error all
// read as false.
func (b *Base) IsDisplayed(loc driver.Locator) bool {
	v := b.Lookup(loc)
	if v.Err != nil {
		b.logger.Debug().Err(v.Err).Stringer("locator", loc).Msg("visibility check failed")
	}
	return v.Displayed
}
