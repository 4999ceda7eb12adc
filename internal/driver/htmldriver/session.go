// Package htmldriver is an offline driver.Session over static HTML documents
// parsed with goquery. It needs no browser, which makes it the backend of
// choice for exercising page objects against captured fixtures.
//
// Scripts never run. Behaviour that a real page implements in JavaScript
// (submitting a form, revealing a banner) is simulated with OnClick
// handlers that navigate or edit the document.
package htmldriver

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/grez-lucas/pagekit/internal/driver"
)

var (
	ErrPageNotFound  = errors.New("no document registered for url")
	ErrSessionClosed = errors.New("session closed")
	ErrUnsupported   = errors.New("unsupported by static documents")
	ErrNotEditable   = errors.New("element is not editable")
)

// ClickHandler reacts to a click on an element, e.g. by navigating to the
// next page or editing the current document.
type ClickHandler func(s *Session) error

// Session serves documents registered by URL.
type Session struct {
	pages    map[string]string
	handlers map[driver.Locator]ClickHandler

	doc        *goquery.Document
	url        string
	generation int
	history    []string
	clicks     []driver.Locator
	closed     bool
}

// Option configures a Session.
type Option func(*Session)

// WithPage registers html as the document served for url.
func WithPage(url, html string) Option {
	return func(s *Session) {
		s.pages[url] = html
	}
}

// OnClick runs fn whenever the element matched by loc is clicked.
func OnClick(loc driver.Locator, fn ClickHandler) Option {
	return func(s *Session) {
		s.handlers[loc] = fn
	}
}

// New creates a Session with no current document.
func New(opts ...Option) *Session {
	s := &Session{
		pages:    make(map[string]string),
		handlers: make(map[driver.Locator]ClickHandler),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Navigate replaces the current document with the one registered for url.
// Elements found before the navigation become stale.
func (s *Session) Navigate(url string) error {
	if s.closed {
		return ErrSessionClosed
	}

	html, ok := s.pages[url]
	if !ok {
		return fmt.Errorf("navigate %q: %w", url, ErrPageNotFound)
	}

	if err := s.load(html); err != nil {
		return fmt.Errorf("navigate %q: %w", url, err)
	}

	s.url = url
	s.history = append(s.history, url)
	return nil
}

// Load replaces the current document with html without registering it.
func (s *Session) Load(html string) error {
	if s.closed {
		return ErrSessionClosed
	}
	if err := s.load(html); err != nil {
		return err
	}
	s.url = "about:blank"
	return nil
}

func (s *Session) load(html string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	s.doc = doc
	s.generation++
	return nil
}

// Title returns the text of the document's <title>.
func (s *Session) Title() (string, error) {
	if s.closed {
		return "", ErrSessionClosed
	}
	if s.doc == nil {
		return "", nil
	}
	return strings.TrimSpace(s.doc.Find("title").First().Text()), nil
}

// FindElement returns the first match of loc. XPath locators are not
// supported.
func (s *Session) FindElement(loc driver.Locator) (driver.Element, error) {
	if s.closed {
		return nil, ErrSessionClosed
	}
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	css, ok := loc.CSS()
	if !ok {
		return nil, fmt.Errorf("find %s: %w", loc, ErrUnsupported)
	}

	if s.doc == nil {
		return nil, driver.NotFound(loc, "no document loaded")
	}

	sel := s.doc.Find(css).First()
	if sel.Length() == 0 {
		return nil, driver.NotFound(loc, s.url)
	}

	return &Element{session: s, sel: sel, loc: loc, generation: s.generation}, nil
}

// Quit closes the session. Calling it again is a no-op.
func (s *Session) Quit() error {
	if s == nil {
		return nil
	}
	s.closed = true
	s.doc = nil
	return nil
}

// URL returns the URL of the current document.
func (s *Session) URL() string {
	return s.url
}

// History returns every URL navigated to, oldest first.
func (s *Session) History() []string {
	return append([]string(nil), s.history...)
}

// Clicks returns the locators of every click, oldest first.
func (s *Session) Clicks() []driver.Locator {
	return append([]driver.Locator(nil), s.clicks...)
}

// Document exposes the current document so click handlers can edit it.
func (s *Session) Document() *goquery.Document {
	return s.doc
}

// Value returns the current value of the form control matched by loc.
func (s *Session) Value(loc driver.Locator) (string, error) {
	el, err := s.FindElement(loc)
	if err != nil {
		return "", err
	}
	return el.(*Element).value(), nil
}

var _ driver.Session = (*Session)(nil)
