// Package config loads pagekit settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/grez-lucas/pagekit/internal/driver"
	"github.com/grez-lucas/pagekit/internal/factory"
	"github.com/grez-lucas/pagekit/internal/page"
	"github.com/grez-lucas/pagekit/internal/wait"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Environment variables read by Load.
const (
	EnvBrowser      = "PAGEKIT_BROWSER"
	EnvHeadless     = "PAGEKIT_HEADLESS"
	EnvWaitTimeout  = "PAGEKIT_WAIT_TIMEOUT"
	EnvPollInterval = "PAGEKIT_POLL_INTERVAL"
	EnvBaseURL      = "PAGEKIT_BASE_URL"
	EnvRemoteURL    = "PAGEKIT_REMOTE_URL"
	EnvBrowserBin   = "PAGEKIT_BROWSER_BIN"
	EnvStealth      = "PAGEKIT_STEALTH"
	EnvHardened     = "PAGEKIT_HARDENED"
	EnvPlaywright   = "PAGEKIT_PLAYWRIGHT"
	EnvLogLevel     = "PAGEKIT_LOG_LEVEL"
	EnvUsername     = "PAGEKIT_USERNAME"
	EnvPassword     = "PAGEKIT_PASSWORD"
)

// Config holds all pagekit settings.
type Config struct {
	// Browser
	Browser    factory.BrowserKind
	Headless   bool
	RemoteURL  string
	BrowserBin string
	Stealth    bool
	Hardened   bool
	// Playwright runs Chrome and Edge on Playwright instead of Rod.
	Playwright bool

	// Waiting
	WaitTimeout  time.Duration
	PollInterval time.Duration

	// Application under test
	BaseURL  string
	Username string
	Password string

	LogLevel zerolog.Level
}

// ValidationError lists every invalid setting found by Load.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("configuration validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Unwrap makes a ValidationError match driver.ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error {
	return driver.ErrInvalidConfiguration
}

// Load reads the given .env files (".env" when none are named) into the
// process environment without overriding variables already set, then
// builds a Config from the environment. Missing files are skipped.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	return FromEnv()
}

// FromEnv builds a Config from the environment alone.
func FromEnv() (*Config, error) {
	p := parser{}

	cfg := &Config{
		Browser:      p.browser(EnvBrowser, factory.Chrome),
		Headless:     p.bool(EnvHeadless, false),
		RemoteURL:    strings.TrimSpace(os.Getenv(EnvRemoteURL)),
		BrowserBin:   strings.TrimSpace(os.Getenv(EnvBrowserBin)),
		Stealth:      p.bool(EnvStealth, false),
		Hardened:     p.bool(EnvHardened, false),
		Playwright:   p.bool(EnvPlaywright, false),
		WaitTimeout:  p.duration(EnvWaitTimeout, wait.DefaultTimeout),
		PollInterval: p.duration(EnvPollInterval, wait.DefaultInterval),
		BaseURL:      strings.TrimSpace(os.Getenv(EnvBaseURL)),
		Username:     os.Getenv(EnvUsername),
		Password:     os.Getenv(EnvPassword),
		LogLevel:     p.level(EnvLogLevel, zerolog.InfoLevel),
	}

	if len(p.errs) > 0 {
		return nil, &ValidationError{Errors: p.errs}
	}
	return cfg, nil
}

// SessionOptions returns the factory options for the browser settings.
func (c *Config) SessionOptions(logger zerolog.Logger) []factory.Option {
	opts := []factory.Option{
		factory.WithHeadless(c.Headless),
		factory.WithStealth(c.Stealth),
		factory.WithHardening(c.Hardened),
		factory.WithLogger(logger),
	}
	if c.RemoteURL != "" {
		opts = append(opts, factory.WithRemoteURL(c.RemoteURL))
	}
	if c.BrowserBin != "" {
		opts = append(opts, factory.WithBinary(c.BrowserBin))
	}
	if c.Playwright {
		opts = append(opts, factory.WithPlaywright(true))
	}
	return opts
}

// PageOptions returns the page options for the wait settings.
func (c *Config) PageOptions(logger zerolog.Logger) []page.Option {
	return []page.Option{
		page.WithTimeout(c.WaitTimeout),
		page.WithPollInterval(c.PollInterval),
		page.WithLogger(logger),
	}
}

// parser collects every bad value instead of stopping at the first.
type parser struct {
	errs []string
}

func (p *parser) fail(key, value, want string) {
	p.errs = append(p.errs, fmt.Sprintf("%s=%q: %s", key, value, want))
}

func (p *parser) bool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		p.fail(key, raw, "want true or false")
		return def
	}
	return v
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		p.fail(key, raw, "want a positive duration such as 10s")
		return def
	}
	return v
}

func (p *parser) browser(key string, def factory.BrowserKind) factory.BrowserKind {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	kind, err := factory.ParseBrowserKind(raw)
	if err != nil {
		p.fail(key, raw, "want chrome, firefox or edge")
		return def
	}
	return kind
}

func (p *parser) level(key string, def zerolog.Level) zerolog.Level {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(raw))
	if err != nil {
		p.fail(key, raw, "want trace, debug, info, warn, error or disabled")
		return def
	}
	return lvl
}
