package driver

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration reports bad construction input: a nil session,
	// an unknown browser kind or an unusable option value. It is never
	// retried.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	ErrNoSuchElement  = errors.New("no such element")
	ErrStaleElement   = errors.New("stale element reference")
	ErrInvalidLocator = errors.New("invalid locator")
)

// LookupError carries the locator and backend detail of a failed lookup.
// It unwraps to one of the sentinels above.
type LookupError struct {
	Locator Locator
	Cause   error
	Details string
}

func (e *LookupError) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s: %v", e.Locator, e.Cause)
	}
	return fmt.Sprintf("%s: %v - %s", e.Locator, e.Cause, e.Details)
}

func (e *LookupError) Unwrap() error {
	return e.Cause
}

// NotFound builds the error backends return when loc matches nothing.
func NotFound(loc Locator, details string) error {
	return &LookupError{Locator: loc, Cause: ErrNoSuchElement, Details: details}
}

// Stale builds the error backends return when an element handle went away.
func Stale(loc Locator, details string) error {
	return &LookupError{Locator: loc, Cause: ErrStaleElement, Details: details}
}
