package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-lines/spectrum/specio"
	"github.com/cwbudde/algo-lines/stats/flux"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats FILE...",
		Short: "Print wavelength coverage and flux statistics",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runStats,
	}
}

func runStats(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tN\tSTART\tEND\tSTEP\tMEAN\tSTDDEV\tMIN\tMIN λ\tMAX\tMAX λ")

	var all flux.Accumulator
	for _, path := range args {
		s, err := specio.ReadFile(path)
		if err != nil {
			return err
		}
		sum := flux.Summarize(s)
		all.Update(s.Fluxes())
		writeSummary(w, path, sum)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(args) > 1 {
		return writeTotal(out, all.Result())
	}
	return nil
}

func writeSummary(w io.Writer, path string, s flux.Summary) {
	f := s.Flux
	fmt.Fprintf(w, "%s\t%d\t%.2f\t%.2f\t%.4f\t%.5g\t%.5g\t%.5g\t%.2f\t%.5g\t%.2f\n",
		path, f.Length, s.Start, s.End, s.Step, f.Mean, f.StdDev,
		f.Min, s.MinWavelength, f.Max, s.MaxWavelength)
}

func writeTotal(w io.Writer, f flux.Stats) error {
	_, err := fmt.Fprintf(w, "all: %d samples, mean %.5g, stddev %.5g, skewness %.3f, kurtosis %.3f\n",
		f.Length, f.Mean, f.StdDev, f.Skewness, f.Kurtosis)
	return err
}
