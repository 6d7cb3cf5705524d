package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewDetailsCommand() *cobra.Command {
	remote := false
	cmd := &cobra.Command{
		Use:     "details",
		GroupID: gBasic,
		Short:   "Print the raw data reported by the battery source",
		Long: `Print every raw field the battery source reported, before normalization.

Fields the source did not report are printed as null.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			snap, err := takeSnapshot(cmd, remote)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), snap.Details())
			return nil
		},
	}
	cmd.Flags().BoolVar(&remote, "remote", false, "ask the xbat daemon instead of reading the battery directly")
	return cmd
}
