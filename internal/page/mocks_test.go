package page

import (
	"time"

	"github.com/grez-lucas/pagekit/internal/driver"
	"github.com/stretchr/testify/mock"
)

// fastWaits keeps timeouts short so failing waits do not slow the suite.
var fastWaits = []Option{
	WithTimeout(50 * time.Millisecond),
	WithPollInterval(5 * time.Millisecond),
}

type mockSession struct {
	mock.Mock
}

func (m *mockSession) Navigate(url string) error {
	return m.Called(url).Error(0)
}

func (m *mockSession) Title() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *mockSession) FindElement(loc driver.Locator) (driver.Element, error) {
	args := m.Called(loc)
	el, _ := args.Get(0).(driver.Element)
	return el, args.Error(1)
}

func (m *mockSession) Quit() error {
	return m.Called().Error(0)
}

type mockElement struct {
	mock.Mock
}

func (m *mockElement) Displayed() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func (m *mockElement) Enabled() (bool, error) {
	args := m.Called()
	return args.Bool(0), args.Error(1)
}

func (m *mockElement) Click() error {
	return m.Called().Error(0)
}

func (m *mockElement) Clear() error {
	return m.Called().Error(0)
}

func (m *mockElement) SendKeys(text string) error {
	return m.Called(text).Error(0)
}

func (m *mockElement) Text() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

// visibleElement returns an element that is displayed and enabled.
func visibleElement() *mockElement {
	el := &mockElement{}
	el.On("Displayed").Return(true, nil)
	el.On("Enabled").Return(true, nil)
	return el
}
