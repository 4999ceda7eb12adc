// Package driver defines the engine-neutral browser session used by the page
// objects. Each backend (rod, playwright, selenium, static HTML) implements
// Session and Element and translates its own lookup failures into the
// sentinels in errors.go.
package driver

import "reflect"

// Session is a live handle to one browser page under automated control.
//
// A Session is not safe for concurrent use. Run one Session per worker.
type Session interface {
	// Navigate loads url in the current page.
	Navigate(url string) error

	// Title returns the title of the current document.
	Title() (string, error)

	// FindElement returns the first element matching loc without waiting.
	// It returns ErrNoSuchElement when nothing matches.
	FindElement(loc Locator) (Element, error)

	// Quit releases the browser. Calling it more than once is a no-op.
	Quit() error
}

// Element is a handle to a single element found through a Session.
type Element interface {
	Displayed() (bool, error)
	Enabled() (bool, error)
	Click() error
	// Clear removes the current value of an editable element.
	Clear() error
	// SendKeys types text at the end of the current value.
	SendKeys(text string) error
	Text() (string, error)
}

// IsNil reports whether s is nil or wraps a nil pointer, such as a
// (*rodriver.Session)(nil) stored in a Session variable.
func IsNil(s Session) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
