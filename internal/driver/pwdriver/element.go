package pwdriver

import (
	"github.com/grez-lucas/pagekit/internal/driver"
	"github.com/playwright-community/playwright-go"
)

// Element is the first match of a Playwright locator. Playwright locators
// re-resolve on every call, so an element that has left the document is
// reported as stale rather than waited for.
type Element struct {
	locator playwright.Locator
	loc     driver.Locator
}

// attached fails with ErrStaleElement once nothing matches any more.
func (e *Element) attached() error {
	n, err := e.locator.Count()
	if err != nil {
		return err
	}
	if n == 0 {
		return driver.Stale(e.loc, "no longer in the document")
	}
	return nil
}

func (e *Element) Displayed() (bool, error) {
	if err := e.attached(); err != nil {
		return false, err
	}
	return e.locator.IsVisible()
}

func (e *Element) Enabled() (bool, error) {
	if err := e.attached(); err != nil {
		return false, err
	}
	return e.locator.IsEnabled()
}

func (e *Element) Click() error {
	if err := e.attached(); err != nil {
		return err
	}
	return e.locator.Click()
}

func (e *Element) Clear() error {
	if err := e.attached(); err != nil {
		return err
	}
	return e.locator.Clear()
}

// SendKeys types text after the current value, one key press per rune.
func (e *Element) SendKeys(text string) error {
	if err := e.attached(); err != nil {
		return err
	}
	return e.locator.PressSequentially(text)
}

func (e *Element) Text() (string, error) {
	if err := e.attached(); err != nil {
		return "", err
	}
	return e.locator.InnerText()
}

var _ driver.Element = (*Element)(nil)
