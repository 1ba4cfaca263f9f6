package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLocalesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "locales",
		Short: "List the locales available in the label catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, locale := range a.catalog.Locales() {
				marker := " "
				if locale == a.catalog.DefaultLocale() {
					marker = "*"
				}
				if _, err := fmt.Fprintf(out, "%s %s\n", marker, locale); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
