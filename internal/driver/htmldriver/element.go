package htmldriver

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/grez-lucas/pagekit/internal/driver"
)

// Element is a node of the session's current document.
type Element struct {
	session    *Session
	sel        *goquery.Selection
	loc        driver.Locator
	generation int
}

func (e *Element) check() error {
	if e.session.closed {
		return ErrSessionClosed
	}
	if e.generation != e.session.generation {
		return driver.Stale(e.loc, "document was replaced")
	}
	return nil
}

// Displayed applies the static rules a browser would: the element and all
// its ancestors must not be hidden by attribute or inline style.
func (e *Element) Displayed() (bool, error) {
	if err := e.check(); err != nil {
		return false, err
	}
	return isDisplayed(e.sel), nil
}

func isDisplayed(sel *goquery.Selection) bool {
	for node := sel; node.Length() > 0; node = node.Parent() {
		switch goquery.NodeName(node) {
		case "head", "script", "style", "template", "noscript":
			return false
		case "input":
			if t, _ := node.Attr("type"); strings.EqualFold(t, "hidden") {
				return false
			}
		}

		if _, hidden := node.Attr("hidden"); hidden {
			return false
		}

		style := strings.ReplaceAll(strings.ToLower(node.AttrOr("style", "")), " ", "")
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			return false
		}
	}
	return true
}

func (e *Element) Enabled() (bool, error) {
	if err := e.check(); err != nil {
		return false, err
	}
	_, disabled := e.sel.Attr("disabled")
	return !disabled, nil
}

// Click records the click and runs the handler registered for the
// element's locator. Disabled elements ignore clicks.
func (e *Element) Click() error {
	if err := e.check(); err != nil {
		return err
	}
	if _, disabled := e.sel.Attr("disabled"); disabled {
		return nil
	}

	e.session.clicks = append(e.session.clicks, e.loc)
	if fn, ok := e.session.handlers[e.loc]; ok {
		return fn(e.session)
	}
	return nil
}

func (e *Element) editable() bool {
	switch goquery.NodeName(e.sel) {
	case "input", "textarea":
		_, readonly := e.sel.Attr("readonly")
		return !readonly
	default:
		return false
	}
}

func (e *Element) value() string {
	if goquery.NodeName(e.sel) == "textarea" {
		return e.sel.Text()
	}
	return e.sel.AttrOr("value", "")
}

func (e *Element) setValue(v string) {
	if goquery.NodeName(e.sel) == "textarea" {
		e.sel.SetText(v)
		return
	}
	e.sel.SetAttr("value", v)
}

func (e *Element) Clear() error {
	if err := e.check(); err != nil {
		return err
	}
	if !e.editable() {
		return &driver.LookupError{Locator: e.loc, Cause: ErrNotEditable}
	}
	e.setValue("")
	return nil
}

func (e *Element) SendKeys(text string) error {
	if err := e.check(); err != nil {
		return err
	}
	if !e.editable() {
		return &driver.LookupError{Locator: e.loc, Cause: ErrNotEditable}
	}
	e.setValue(e.value() + text)
	return nil
}

// Text returns the rendered text with whitespace collapsed. Hidden elements
// have no rendered text.
func (e *Element) Text() (string, error) {
	if err := e.check(); err != nil {
		return "", err
	}
	if !isDisplayed(e.sel) {
		return "", nil
	}
	return strings.Join(strings.Fields(e.sel.Text()), " "), nil
}

var _ driver.Element = (*Element)(nil)
