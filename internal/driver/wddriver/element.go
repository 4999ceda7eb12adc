package wddriver

import (
	"github.com/grez-lucas/pagekit/internal/driver"
	"github.com/tebeka/selenium"
)

// Element wraps a remote WebElement.
type Element struct {
	el  selenium.WebElement
	loc driver.Locator
}

func (e *Element) Displayed() (bool, error) {
	ok, err := e.el.IsDisplayed()
	return ok, classify(e.loc, err)
}

func (e *Element) Enabled() (bool, error) {
	ok, err := e.el.IsEnabled()
	return ok, classify(e.loc, err)
}

func (e *Element) Click() error {
	return classify(e.loc, e.el.Click())
}

func (e *Element) Clear() error {
	return classify(e.loc, e.el.Clear())
}

func (e *Element) SendKeys(text string) error {
	return classify(e.loc, e.el.SendKeys(text))
}

func (e *Element) Text() (string, error) {
	text, err := e.el.Text()
	return text, classify(e.loc, err)
}

var _ driver.Element = (*Element)(nil)
