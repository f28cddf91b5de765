package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-lines/batch"
)

func newFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find [flags] FILE...",
		Short: "Print the spectrum files showing the reference lines",
		Long:  `Analyse every FILE in parallel and print those with a positive verdict. Unreadable files are reported and skipped.`,
		Args:  cobra.MinimumNArgs(1),
		RunE:  runFind,
	}
	addDetectFlags(cmd)
	cmd.Flags().Bool("verbose", false, "print the matched lines and their signal-to-noise ratio")
	cmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	return cmd
}

func runFind(cmd *cobra.Command, args []string) error {
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	results, err := batch.Run(cmd.Context(), args, batch.FileAnalyzer(st.detector, st.table), jobs)
	if err != nil {
		return err
	}

	failed := printVerdicts(cmd.OutOrStdout(), results, verbose)
	if failed == len(results) {
		return fmt.Errorf("no spectrum could be analysed")
	}
	return nil
}

// printVerdicts writes positive files in input order and returns the number
// of files that failed.
func printVerdicts(w io.Writer, results []batch.Result, verbose bool) int {
	var failed int
	for _, r := range results {
		if r.Err != nil {
			failed++
			continue
		}
		if !r.Verdict.Present {
			continue
		}
		okColor.Fprintln(w, r.Path)
		if !verbose {
			continue
		}
		for _, m := range r.Verdict.Matches {
			lineColor.Fprintf(w, "   line %.1f angstrom; S/N %.2f\n", m.Line.Wavelength, m.Line.SNR)
		}
	}
	return failed
}
