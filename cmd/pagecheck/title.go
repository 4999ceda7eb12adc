package main

import (
	"fmt"

	"github.com/grez-lucas/pagekit/internal/driver"
	"github.com/spf13/cobra"
)

func (a *app) titleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "title <url>",
		Short: "Print the title of a page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(func(session driver.Session) error {
				if err := session.Navigate(args[0]); err != nil {
					return fmt.Errorf("navigate to %s: %w", args[0], err)
				}
				title, err := session.Title()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), title)
				return nil
			})
		},
	}
}
