package factory

import (
	"errors"
	"os"
	"testing"

	"github.com/grez-lucas/pagekit/internal/driver"
	"github.com/grez-lucas/pagekit/internal/driver/htmldriver"
	"github.com/grez-lucas/pagekit/internal/driver/rodriver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestLaunchArgs(t *testing.T) {
	tests := []struct {
		name     string
		kind     BrowserKind
		headless bool
		hardened bool
		want     []string
	}{
		{"chrome", Chrome, false, false, []string{"--no-sandbox", "--disable-dev-shm-usage"}},
		{"headless chrome", Chrome, true, false, []string{"--headless=new", "--no-sandbox", "--disable-dev-shm-usage"}},
		{"firefox", Firefox, false, false, nil},
		{"headless firefox", Firefox, true, false, []string{"-headless"}},
		{"hardened firefox", Firefox, false, true, nil},
		{"edge", Edge, false, false, nil},
		{"headless edge", Edge, true, false, []string{"--headless=new"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LaunchArgs(tt.kind, tt.headless, tt.hardened))
		})
	}
}

func TestLaunchArgs_HardenedChrome(t *testing.T) {
	args := LaunchArgs(Chrome, true, true)

	assert.Equal(t, []string{"--headless=new", "--no-sandbox", "--disable-dev-shm-usage"}, args[:3])
	assert.Contains(t, args, "--incognito")
	assert.Contains(t, args, "--window-size=1920,1080")
	assert.Len(t, args, 3+len(hardenedChromiumFlags)-1, "--disable-dev-shm-usage appears once")
}

func TestLaunchArgs_Properties(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		kind := rapid.SampledFrom([]BrowserKind{Chrome, Firefox, Edge}).Draw(rt, "kind")
		headless := rapid.Bool().Draw(rt, "headless")
		hardened := rapid.Bool().Draw(rt, "hardened")

		args := LaunchArgs(kind, headless, hardened)

		seen := map[string]bool{}
		for _, a := range args {
			if seen[a] {
				rt.Fatalf("duplicate arg %q in %v", a, args)
			}
			seen[a] = true
		}
		if seen[headlessArg(kind)] != headless {
			rt.Fatalf("headless=%v but args are %v", headless, args)
		}
		if kind == Chrome && !(seen["--no-sandbox"] && seen["--disable-dev-shm-usage"]) {
			rt.Fatalf("chrome args missing container flags: %v", args)
		}
	})
}

func TestLaunchPrefs(t *testing.T) {
	assert.Nil(t, launchPrefs(Chrome, false))
	assert.Equal(t, false, launchPrefs(Firefox, true)["geo.enabled"])
	assert.Equal(t, 0, launchPrefs(Edge, true)["profile.default_content_settings.popups"])
}

func TestNewSession_UnknownKindFailsFast(t *testing.T) {
	for _, kind := range []BrowserKind{0, 4, -1} {
		session, err := NewSession(kind, WithHeadless(true))
		assert.ErrorIs(t, err, driver.ErrInvalidConfiguration)
		assert.Nil(t, session)
	}
}

func TestNewEdgeSession_BinaryMissing(t *testing.T) {
	stubLookups(t, nil, nil)

	session, err := NewEdgeSession(WithHeadless(true))
	assert.ErrorIs(t, err, ErrBrowserNotFound)
	assert.Nil(t, session)

	session, err = NewEdgeSession(WithHeadless(true), WithPlaywright(true))
	assert.ErrorIs(t, err, ErrBrowserNotFound)
	assert.Nil(t, session)
}

func TestEngineFor(t *testing.T) {
	tests := []struct {
		name string
		kind BrowserKind
		opts []Option
		want engine
	}{
		{"chrome", Chrome, nil, engineRod},
		{"edge", Edge, nil, engineRod},
		{"firefox", Firefox, nil, enginePlaywright},
		{"firefox ignores the flag", Firefox, []Option{WithPlaywright(false)}, enginePlaywright},
		{"chrome on playwright", Chrome, []Option{WithPlaywright(true)}, enginePlaywright},
		{"edge on playwright", Edge, []Option{WithPlaywright(true)}, enginePlaywright},
		{"remote chrome", Chrome, []Option{WithRemoteURL("http://grid:4444/wd/hub")}, engineWebDriver},
		{"remote wins over playwright", Edge, []Option{WithPlaywright(true), WithRemoteURL("http://grid:4444")}, engineWebDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s settings
			for _, opt := range tt.opts {
				opt(&s)
			}
			assert.Equal(t, tt.want, engineFor(tt.kind, s))
		})
	}
}

func TestFindEdgeBinary(t *testing.T) {
	t.Run("install location", func(t *testing.T) {
		stubLookups(t, map[string]bool{"/opt/microsoft/msedge/msedge": true}, nil)

		path, err := findEdgeBinary()
		require.NoError(t, err)
		assert.Equal(t, "/opt/microsoft/msedge/msedge", path)
	})

	t.Run("on PATH", func(t *testing.T) {
		stubLookups(t, nil, map[string]string{"msedge": "/home/u/bin/msedge"})

		path, err := findEdgeBinary()
		require.NoError(t, err)
		assert.Equal(t, "/home/u/bin/msedge", path)
	})
}

// stubLookups replaces the filesystem and PATH lookups used to find browsers.
func stubLookups(t *testing.T, files map[string]bool, commands map[string]string) {
	t.Helper()

	origStat, origLook := statFile, lookPath
	t.Cleanup(func() { statFile, lookPath = origStat, origLook })

	statFile = func(name string) (os.FileInfo, error) {
		if files[name] {
			return nil, nil
		}
		return nil, os.ErrNotExist
	}
	lookPath = func(file string) (string, error) {
		if path, ok := commands[file]; ok {
			return path, nil
		}
		return "", errors.New("not found")
	}
}

type mockSession struct {
	mock.Mock
}

func (m *mockSession) Navigate(url string) error { return m.Called(url).Error(0) }

func (m *mockSession) Title() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *mockSession) FindElement(loc driver.Locator) (driver.Element, error) {
	args := m.Called(loc)
	el, _ := args.Get(0).(driver.Element)
	return el, args.Error(1)
}

func (m *mockSession) Quit() error { return m.Called().Error(0) }

func TestQuit(t *testing.T) {
	assert.NoError(t, Quit(nil))
	assert.NoError(t, Quit((*htmldriver.Session)(nil)))
	assert.NoError(t, Quit((*rodriver.Session)(nil)))

	s := new(mockSession)
	s.On("Quit").Return(nil).Once()
	assert.NoError(t, Quit(s))
	s.AssertExpectations(t)

	failing := new(mockSession)
	failing.On("Quit").Return(errors.New("browser gone"))
	assert.EqualError(t, Quit(failing), "browser gone")
}
