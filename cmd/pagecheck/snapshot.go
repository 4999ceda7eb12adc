package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/grez-lucas/pagekit/internal/driver"
	"github.com/spf13/cobra"
)

// ErrSnapshotUnsupported is returned when the session cannot serialize its
// page.
var ErrSnapshotUnsupported = errors.New("snapshots need a Chrome or Edge session")

type snapshotter interface {
	Snapshot() (html string, shadowRoots int, err error)
}

func (a *app) snapshotCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "snapshot <url>",
		Short: "Save a page as an HTML fixture, shadow roots included",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(session driver.Session) error {
				snap, ok := session.(snapshotter)
				if !ok {
					return ErrSnapshotUnsupported
				}
				if err := session.Navigate(args[0]); err != nil {
					return fmt.Errorf("navigate to %s: %w", args[0], err)
				}

				html, shadowRoots, err := snap.Snapshot()
				if err != nil {
					return err
				}
				a.logger.Info().Int("shadow_roots", shadowRoots).Int("bytes", len(html)).Msg("captured page")

				if output == "" || output == "-" {
					_, err := fmt.Fprint(cmd.OutOrStdout(), html)
					return err
				}
				if err := os.WriteFile(output, []byte(html), 0o644); err != nil {
					return fmt.Errorf("write snapshot: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved %s\n", output)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")
	return cmd
}
