package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version and Commit are set at build time via -ldflags.
var (
	Version = "0.1.0-dev"
	Commit  = ""
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the hefind version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "hefind %s\n", okColor.Sprint(Version))
			if Commit != "" {
				fmt.Fprintf(out, "commit: %s\n", Commit)
			}
			return nil
		},
	}
}
