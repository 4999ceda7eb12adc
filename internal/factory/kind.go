// Package factory creates browser sessions for a browser kind and picks the
// engine that drives it.
package factory

import (
	"fmt"
	"strings"

	"github.com/grez-lucas/pagekit/internal/driver"
)

// BrowserKind names a supported browser.
type BrowserKind int

const (
	Chrome BrowserKind = iota + 1
	Firefox
	Edge
)

var kindNames = map[BrowserKind]string{
	Chrome:  "chrome",
	Firefox: "firefox",
	Edge:    "edge",
}

func (k BrowserKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("BrowserKind(%d)", int(k))
}

// Valid reports whether k is one of the declared kinds.
func (k BrowserKind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// ParseBrowserKind accepts "chrome", "firefox" and "edge" in any case.
func ParseBrowserKind(s string) (BrowserKind, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for kind, name := range kindNames {
		if name == want {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("%w: unsupported browser %q", driver.ErrInvalidConfiguration, s)
}
