package main

import (
	"fmt"
	"os"
	"time"

	"github.com/grez-lucas/pagekit/internal/config"
	"github.com/grez-lucas/pagekit/internal/driver"
	"github.com/grez-lucas/pagekit/internal/factory"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// opener starts a browser session; tests replace it.
type opener func(kind factory.BrowserKind, opts ...factory.Option) (driver.Session, error)

type app struct {
	open   opener
	cfg    *config.Config
	logger zerolog.Logger

	// persistent flags
	envFile   string
	browser   string
	headless  bool
	timeout   time.Duration
	remoteURL string
}

func main() {
	if err := newRootCmd(factory.NewSession).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(open opener) *cobra.Command {
	a := &app{open: open, logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "pagecheck",
		Short: "Drive login pages in a real browser",
		Long: `pagecheck opens a browser, runs a page workflow against a web application
and reports what the page showed.

Settings come from PAGEKIT_* environment variables, optionally loaded from a
.env file; flags override them.

Example:
  pagecheck login --base-url https://example.com --username alice --password s3cret`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", ".env", "File to load PAGEKIT_* variables from, if present")
	pf.StringVar(&a.browser, "browser", "", "Browser: chrome, firefox, edge (default: PAGEKIT_BROWSER or chrome)")
	pf.BoolVar(&a.headless, "headless", false, "Run the browser without a window")
	pf.DurationVar(&a.timeout, "timeout", 0, "How long to wait for each element (default: PAGEKIT_WAIT_TIMEOUT or 10s)")
	pf.StringVar(&a.remoteURL, "remote-url", "", "Drive the browser through this WebDriver server")

	rootCmd.AddCommand(a.loginCmd(), a.titleCmd(), a.snapshotCmd())
	return rootCmd
}

// setup loads the configuration and applies the flags the user set.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("browser") {
		kind, err := factory.ParseBrowserKind(a.browser)
		if err != nil {
			return err
		}
		cfg.Browser = kind
	}
	if flags.Changed("headless") {
		cfg.Headless = a.headless
	}
	if flags.Changed("timeout") {
		if a.timeout <= 0 {
			return fmt.Errorf("%w: --timeout must be positive", driver.ErrInvalidConfiguration)
		}
		cfg.WaitTimeout = a.timeout
	}
	if flags.Changed("remote-url") {
		cfg.RemoteURL = a.remoteURL
	}

	a.cfg = cfg
	a.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
		Level(cfg.LogLevel).
		With().Timestamp().Logger()

	return nil
}

// withSession runs fn with a fresh browser session and always releases it.
func (a *app) withSession(fn func(driver.Session) error) error {
	a.logger.Debug().Stringer("browser", a.cfg.Browser).Msg("starting browser")

	session, err := a.open(a.cfg.Browser, a.cfg.SessionOptions(a.logger)...)
	if err != nil {
		return fmt.Errorf("start %s: %w", a.cfg.Browser, err)
	}
	defer func() {
		if err := factory.Quit(session); err != nil {
			a.logger.Warn().Err(err).Msg("failed to quit browser")
		}
	}()

	return fn(session)
}
