package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-lines/internal/config"
	"github.com/cwbudde/algo-lines/internal/logger"
	"github.com/cwbudde/algo-lines/lines"
	"github.com/cwbudde/algo-lines/reference"
)

var (
	okColor    = color.New(color.FgGreen, color.Bold)
	lineColor  = color.New(color.FgCyan)
	dimColor   = color.New(color.Faint)
	errorColor = color.New(color.FgRed, color.Bold)
)

// settings is the configuration of one command run: the config file, then
// any flags set on the command line.
type settings struct {
	cfg      config.Config
	table    reference.Table
	detector *lines.Detector
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	applyFlags(cmd, &cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.SetLevel(cfg.Output.LogLevel)
	applyColor(cfg.Output.Color)

	table, err := cfg.ReferenceTable()
	if err != nil {
		return nil, err
	}
	opts := append(cfg.Options(), lines.WithLogger(logger.L()))
	d, err := lines.NewDetector(opts...)
	if err != nil {
		return nil, err
	}
	logger.Debugf("reference table %s with %d lines", table.Name(), table.Len())
	return &settings{cfg: cfg, table: table, detector: d}, nil
}

// applyFlags copies explicitly set flags over cfg. Commands register only
// the detection flags they use; Changed is false for unregistered names.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("table") {
		cfg.Table, _ = flags.GetString("table")
	}
	if flags.Changed("color") {
		cfg.Output.Color, _ = flags.GetString("color")
	}
	if flags.Changed("log-level") {
		cfg.Output.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("threshold") {
		cfg.Detect.Threshold, _ = flags.GetFloat64("threshold")
	}
	if flags.Changed("tolerance") {
		cfg.Detect.Tolerance, _ = flags.GetFloat64("tolerance")
	}
	if flags.Changed("min-matches") {
		cfg.Detect.MinMatches, _ = flags.GetInt("min-matches")
	}
	if flags.Changed("fraction") {
		cfg.Detect.Fraction, _ = flags.GetFloat64("fraction")
	}
}

func applyColor(mode string) {
	switch mode {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	}
}

// addDetectFlags registers the tunables shared by find and lines.
func addDetectFlags(cmd *cobra.Command) {
	cmd.Flags().Float64P("threshold", "t", lines.DefaultThreshold, "line depth in units of the local noise")
	cmd.Flags().Float64("tolerance", lines.DefaultTolerance, "matching tolerance in Ångström")
	cmd.Flags().Int("min-matches", lines.DefaultMinMatches, "matches needed for a positive verdict")
	cmd.Flags().Float64("fraction", lines.DefaultFraction, "baseline and noise window as a fraction of the spectrum")
}
