package driver

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Strategy names how a Locator finds its element.
type Strategy string

const (
	StrategyID        Strategy = "id"
	StrategyClassName Strategy = "class name"
	StrategyName      Strategy = "name"
	StrategyTagName   Strategy = "tag name"
	StrategyCSS       Strategy = "css selector"
	StrategyXPath     Strategy = "xpath"
)

// Locator describes how to find one UI element. Locators are plain values:
// two locators with the same strategy and value are the same locator. The
// zero Locator is invalid.
type Locator struct {
	Strategy Strategy
	Value    string
}

func ByID(id string) Locator            { return Locator{Strategy: StrategyID, Value: id} }
func ByClassName(class string) Locator  { return Locator{Strategy: StrategyClassName, Value: class} }
func ByName(name string) Locator        { return Locator{Strategy: StrategyName, Value: name} }
func ByTagName(tag string) Locator      { return Locator{Strategy: StrategyTagName, Value: tag} }
func ByCSS(selector string) Locator     { return Locator{Strategy: StrategyCSS, Value: selector} }
func ByXPath(expression string) Locator { return Locator{Strategy: StrategyXPath, Value: expression} }

// IsZero reports whether l is the zero Locator.
func (l Locator) IsZero() bool {
	return l == Locator{}
}

// Validate returns ErrInvalidLocator when the strategy is unknown, the
// value is blank or a class name holds more than one class.
func (l Locator) Validate() error {
	switch l.Strategy {
	case StrategyID, StrategyClassName, StrategyName, StrategyTagName, StrategyCSS, StrategyXPath:
	default:
		return fmt.Errorf("%w: unknown strategy %q", ErrInvalidLocator, l.Strategy)
	}
	if strings.TrimSpace(l.Value) == "" {
		return fmt.Errorf("%w: empty %s", ErrInvalidLocator, l.Strategy)
	}
	if l.Strategy == StrategyClassName && strings.ContainsFunc(l.Value, unicode.IsSpace) {
		return fmt.Errorf("%w: compound class name %q", ErrInvalidLocator, l.Value)
	}
	return nil
}

// CSS converts l to an equivalent CSS selector. XPath locators have no CSS
// form and report false.
func (l Locator) CSS() (string, bool) {
	switch l.Strategy {
	case StrategyID:
		return `[id="` + escapeAttr(l.Value) + `"]`, true
	case StrategyClassName:
		return "." + escapeIdent(l.Value), true
	case StrategyName:
		return `[name="` + escapeAttr(l.Value) + `"]`, true
	case StrategyTagName, StrategyCSS:
		return l.Value, true
	default:
		return "", false
	}
}

func (l Locator) String() string {
	if l.IsZero() {
		return "<nil locator>"
	}
	return string(l.Strategy) + "=" + l.Value
}

func escapeAttr(v string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(v)
}

// escapeIdent escapes v for use as a CSS identifier. A leading digit, or a
// digit after a leading hyphen, becomes a hex escape.
func escapeIdent(v string) string {
	var b strings.Builder
	for i, r := range v {
		switch {
		case r >= '0' && r <= '9' && (i == 0 || (i == 1 && v[0] == '-')):
			b.WriteString(`\` + strconv.FormatInt(int64(r), 16) + " ")
		case r == '-' || r == '_' || r >= 0x80 ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}
