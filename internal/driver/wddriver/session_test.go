package wddriver

import (
	"errors"
	"fmt"
	"testing"

	"github.com/grez-lucas/pagekit/internal/driver"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"
)

// fakeWD answers lookups from a map keyed by "strategy=value". Methods it
// does not override panic through the nil embedded interface.
type fakeWD struct {
	selenium.WebDriver

	elements map[string]selenium.WebElement
	lookups  []string
	quits    int
}

func (f *fakeWD) FindElement(by, value string) (selenium.WebElement, error) {
	key := by + "=" + value
	f.lookups = append(f.lookups, key)
	if el, ok := f.elements[key]; ok {
		return el, nil
	}
	return nil, &selenium.Error{Err: "no such element", Message: "Unable to locate element"}
}

func (f *fakeWD) Quit() error {
	f.quits++
	return nil
}

type fakeElement struct {
	selenium.WebElement
	displayedErr error
}

func (f *fakeElement) IsDisplayed() (bool, error) {
	return f.displayedErr == nil, f.displayedErr
}

func TestCapabilities(t *testing.T) {
	args := []string{"--headless=new", "--no-sandbox"}

	caps := capabilities(Options{Browser: BrowserChrome, Args: args, Bin: "/usr/bin/chromium"})
	assert.Equal(t, "chrome", caps["browserName"])
	chromeCaps, ok := caps[chrome.CapabilitiesKey].(chrome.Capabilities)
	require.True(t, ok)
	assert.Equal(t, args, chromeCaps.Args)
	assert.Equal(t, "/usr/bin/chromium", chromeCaps.Path)

	caps = capabilities(Options{Browser: BrowserFirefox, Args: []string{"-headless"}})
	ffCaps, ok := caps[firefox.CapabilitiesKey].(firefox.Capabilities)
	require.True(t, ok)
	assert.Equal(t, []string{"-headless"}, ffCaps.Args)

	caps = capabilities(Options{Browser: BrowserEdge, Args: args})
	assert.Equal(t, "MicrosoftEdge", caps["browserName"])
	assert.Equal(t, map[string]interface{}{"args": args}, caps[edgeOptionsKey])
}

func TestDial_RequiresRemote(t *testing.T) {
	_, err := Dial(Options{Browser: BrowserChrome})
	assert.ErrorIs(t, err, ErrNoRemote)
}

func TestFindElement_TranslatesLocators(t *testing.T) {
	wd := &fakeWD{elements: map[string]selenium.WebElement{
		`css selector=[id="username"]`: &fakeElement{},
		"xpath=//button":               &fakeElement{},
	}}
	s := Wrap(wd, zerolog.Nop())

	_, err := s.FindElement(driver.ByID("username"))
	require.NoError(t, err)
	_, err = s.FindElement(driver.ByXPath("//button"))
	require.NoError(t, err)

	_, err = s.FindElement(driver.ByClassName("error-message"))
	assert.ErrorIs(t, err, driver.ErrNoSuchElement)

	_, err = s.FindElement(driver.Locator{})
	assert.ErrorIs(t, err, driver.ErrInvalidLocator)

	assert.Equal(t, []string{
		`css selector=[id="username"]`,
		"xpath=//button",
		"css selector=.error-message",
	}, wd.lookups)
}

func TestElement_StaleReference(t *testing.T) {
	stale := &selenium.Error{Err: "stale element reference", Message: "element is not attached to the page document"}
	wd := &fakeWD{elements: map[string]selenium.WebElement{
		"css selector=.welcome-message": &fakeElement{displayedErr: stale},
	}}
	s := Wrap(wd, zerolog.Nop())

	el, err := s.FindElement(driver.ByClassName("welcome-message"))
	require.NoError(t, err)

	_, err = el.Displayed()
	assert.ErrorIs(t, err, driver.ErrStaleElement)
}

func TestClassify(t *testing.T) {
	loc := driver.ByID("x")
	other := errors.New("session not created")

	assert.NoError(t, classify(loc, nil))
	assert.ErrorIs(t, classify(loc, fmt.Errorf("wrapped: %w", &selenium.Error{Err: "no such element"})), driver.ErrNoSuchElement)
	// Legacy remote ends report the code only in the message.
	assert.ErrorIs(t, classify(loc, errors.New("stale element reference: element is not attached")), driver.ErrStaleElement)
	assert.Same(t, other, classify(loc, other))
}

func TestQuit_Idempotent(t *testing.T) {
	wd := &fakeWD{}
	s := Wrap(wd, zerolog.Nop())

	require.NoError(t, s.Quit())
	require.NoError(t, s.Quit())
	assert.Equal(t, 1, wd.quits)
}
