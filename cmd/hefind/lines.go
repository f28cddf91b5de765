package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-lines/lines"
	"github.com/cwbudde/algo-lines/spectrum/specio"
)

func newLinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lines [flags] FILE",
		Short: "List every detected line of a spectrum",
		Long:  `Print each resolved line with its signal-to-noise ratio and the reference wavelengths it matches, followed by the verdict.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runLines,
	}
	addDetectFlags(cmd)
	return cmd
}

func runLines(cmd *cobra.Command, args []string) error {
	st, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	s, err := specio.ReadFile(args[0])
	if err != nil {
		return err
	}
	v, err := st.detector.Analyze(s, st.table)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	return printLines(cmd.OutOrStdout(), v)
}

func printLines(out io.Writer, v lines.Verdict) error {
	refs := make(map[int][]string)
	for _, m := range v.Matches {
		refs[m.Line.Index] = append(refs[m.Line.Index], fmt.Sprintf("%.2f", m.Reference))
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tWAVELENGTH\tS/N\tREFERENCE")
	for _, l := range v.Lines {
		ref := "-"
		if r, ok := refs[l.Index]; ok {
			ref = strings.Join(r, ",")
		}
		fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%s\n", l.Index, l.Wavelength, l.SNR, ref)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	verdict := dimColor.Sprint("absent")
	if v.Present {
		verdict = okColor.Sprint("present")
	}
	_, err := fmt.Fprintf(out, "%d lines, %d matches: %s %s\n", len(v.Lines), len(v.Matches), v.Table, verdict)
	return err
}
