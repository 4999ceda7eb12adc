package rodriver

import (
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/grez-lucas/pagekit/internal/driver"
)

// Element wraps a Rod element. Every call maps detached-node failures to
// driver.ErrStaleElement.
type Element struct {
	el          *rod.Element
	loc         driver.Locator
	humanTyping bool
	// actionTimeout bounds the actionability waits Rod runs before a click
	// or keystroke.
	actionTimeout time.Duration
}

// Rod returns the underlying Rod element.
func (e *Element) Rod() *rod.Element {
	return e.el
}

func (e *Element) Displayed() (bool, error) {
	visible, err := e.el.Visible()
	if err != nil {
		return false, classify(e.loc, err)
	}
	return visible, nil
}

func (e *Element) Enabled() (bool, error) {
	disabled, err := e.el.Property("disabled")
	if err != nil {
		return false, classify(e.loc, err)
	}
	return !disabled.Bool(), nil
}

func (e *Element) Click() error {
	el := e.el.Timeout(e.actionTimeout)
	defer el.CancelTimeout()

	return classify(e.loc, el.Click(proto.InputMouseButtonLeft, 1))
}

// Clear selects the current value and replaces it with nothing.
func (e *Element) Clear() error {
	el := e.el.Timeout(e.actionTimeout)
	defer el.CancelTimeout()

	if err := el.SelectAllText(); err != nil {
		return classify(e.loc, err)
	}
	return classify(e.loc, el.Input(""))
}

func (e *Element) SendKeys(text string) error {
	el := e.el.Timeout(e.actionTimeout)
	defer el.CancelTimeout()

	if e.humanTyping {
		return classify(e.loc, typeHuman(el, text))
	}
	return classify(e.loc, typeFast(el, text))
}

func (e *Element) Text() (string, error) {
	text, err := e.el.Text()
	if err != nil {
		return "", classify(e.loc, err)
	}
	return text, nil
}

var _ driver.Element = (*Element)(nil)
