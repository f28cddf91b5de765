package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-lines/internal/logger"
	"github.com/cwbudde/algo-lines/spectrum/specio"
	"github.com/cwbudde/algo-lines/spectrum/synth"
)

func newSynthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synth [flags] OUT",
		Short: "Write a synthetic spectrum with absorption dips",
		Args:  cobra.ExactArgs(1),
		RunE:  runSynth,
	}
	cmd.Flags().Float64Slice("lines", []float64{4471.5, 5875.6404}, "dip wavelengths in Ångström")
	cmd.Flags().Float64("depth", 0.5, "dip depth in continuum units")
	cmd.Flags().Int("width", 10, "dip width in samples (sigma for --gaussian)")
	cmd.Flags().Bool("gaussian", false, "Gaussian instead of box-shaped dips")
	cmd.Flags().Float64("start", 3700, "first wavelength")
	cmd.Flags().Float64("end", 8000, "last wavelength")
	cmd.Flags().Int("samples", 2000, "number of samples")
	cmd.Flags().Float64("continuum", 1, "continuum level at the first sample")
	cmd.Flags().Float64("slope", 0, "continuum slope per Ångström")
	cmd.Flags().Float64("noise", 0, "uniform white noise amplitude")
	cmd.Flags().Int64("seed", 1, "noise seed")
	return cmd
}

func runSynth(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	wavs, err := flags.GetFloat64Slice("lines")
	if err != nil {
		return fmt.Errorf("failed to get lines flag: %w", err)
	}
	depth, _ := flags.GetFloat64("depth")
	width, _ := flags.GetInt("width")
	gaussian, _ := flags.GetBool("gaussian")
	start, _ := flags.GetFloat64("start")
	end, _ := flags.GetFloat64("end")
	samples, _ := flags.GetInt("samples")
	level, _ := flags.GetFloat64("continuum")
	slope, _ := flags.GetFloat64("slope")
	noise, _ := flags.GetFloat64("noise")
	seed, _ := flags.GetInt64("seed")

	shape := synth.Box
	if gaussian {
		shape = synth.Gaussian
	}
	dips := make([]synth.Dip, len(wavs))
	for i, w := range wavs {
		dips[i] = synth.Dip{Wavelength: w, Depth: depth, Width: width, Shape: shape}
	}

	g := synth.NewGenerator(
		synth.WithRange(start, end),
		synth.WithSamples(samples),
		synth.WithContinuum(level, slope),
		synth.WithNoise(noise),
		synth.WithSeed(seed),
	)
	s, err := g.Spectrum(dips...)
	if err != nil {
		return err
	}
	if err := specio.WriteFile(args[0], s); err != nil {
		return err
	}
	logger.Infof("wrote %d samples with %d dips to %s", s.Len(), len(dips), args[0])
	return nil
}
