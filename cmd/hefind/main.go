// Command hefind detects the absorption lines of an element, helium by
// default, in spectra stored as text lists.
//
// Usage:
//
//	hefind find [flags] FILE...
//	hefind lines [flags] FILE
//	hefind stats FILE...
//	hefind synth [flags] OUT
//	hefind version
//
// Examples:
//
//	hefind find -t 1.5 spectra/*.txt
//	hefind find --verbose --table he-i --jobs 4 spectra/*.txt
//	hefind lines --config hefind.toml spec-0266-51602-0003.txt
//	hefind synth --lines 4471.5,5875.6404 --noise 0.01 test.txt
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-lines/internal/logger"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hefind",
		Short:         "Detect helium absorption lines in spectra",
		Long:          `hefind smooths each spectrum, removes its continuum, finds lines deeper than the local noise and matches them against a reference wavelength table`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				if _, err := logger.ParseLevel(level); err != nil {
					return err
				}
				logger.SetLevel(level)
			}
			if mode, _ := cmd.Flags().GetString("color"); mode != "" {
				applyColor(mode)
			}
			return nil
		},
	}

	root.PersistentFlags().String("config", "", "TOML configuration file")
	root.PersistentFlags().String("table", "", "reference table (helium, he-i, he-ii or a [[tables]] name)")
	root.PersistentFlags().String("color", "", "colorize output (auto|always|never)")
	root.PersistentFlags().String("log-level", "", "diagnostic level (debug|info|warn|error)")

	root.AddCommand(newFindCmd())
	root.AddCommand(newLinesCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newSynthCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		errorColor.Fprintf(os.Stderr, "hefind: %v\n", err)
		os.Exit(1)
	}
}
