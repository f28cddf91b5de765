// Package config loads detector tunables, output settings and custom
// reference tables from a TOML file.
//
//	table = "helium"
//
//	[detect]
//	smooth_width = 7
//	smooth_passes = 3
//	fraction = 0.2
//	threshold = 1.0
//	tolerance = 5.0
//	min_matches = 2
//
//	[output]
//	log_level = "info"
//	color = "auto"
//
//	[[tables]]
//	name = "sodium"
//	wavelengths = [5889.95, 5895.92]
//
// Keys left out keep their defaults. When table is not set, the first
// [[tables]] entry is used, or helium if there is none.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/cwbudde/algo-lines/dsp/smooth"
	"github.com/cwbudde/algo-lines/internal/logger"
	"github.com/cwbudde/algo-lines/lines"
	"github.com/cwbudde/algo-lines/reference"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// DefaultTable names the reference table used when none is configured.
const DefaultTable = "helium"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config is the decoded configuration file.
type Config struct {
	Table  string      `toml:"table"`
	Detect Detect      `toml:"detect"`
	Output Output      `toml:"output"`
	Tables []TableSpec `toml:"tables"`
}

// Detect mirrors the detector tunables.
type Detect struct {
	SmoothWidth  int     `toml:"smooth_width"`
	SmoothPasses int     `toml:"smooth_passes"`
	Fraction     float64 `toml:"fraction"`
	Threshold    float64 `toml:"threshold"`
	Tolerance    float64 `toml:"tolerance"`
	MinMatches   int     `toml:"min_matches"`
}

// Output controls diagnostics and terminal colors.
type Output struct {
	LogLevel string `toml:"log_level"`
	Color    string `toml:"color"`
}

// TableSpec is a custom reference table.
type TableSpec struct {
	Name        string    `toml:"name"`
	Wavelengths []float64 `toml:"wavelengths"`
}

// Default returns the configuration used without a file.
func Default() Config {
	return Config{
		Table: DefaultTable,
		Detect: Detect{
			SmoothWidth:  smooth.DefaultWidth,
			SmoothPasses: smooth.DefaultPasses,
			Fraction:     lines.DefaultFraction,
			Threshold:    lines.DefaultThreshold,
			Tolerance:    lines.DefaultTolerance,
			MinMatches:   lines.DefaultMinMatches,
		},
		Output: Output{
			LogLevel: "info",
			Color:    ColorAuto,
		},
	}
}

// Load decodes path over the defaults and validates the result. Unknown keys
// are rejected so that typos do not silently fall back to defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalid, strings.Join(keys, ", "))
	}
	if !meta.IsDefined("table") && len(cfg.Tables) > 0 {
		cfg.Table = cfg.Tables[0].Name
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := lines.ApplyOptions(c.Options()...).Validate(); err != nil {
		return fmt.Errorf("%w: [detect]: %w", ErrInvalid, err)
	}
	if _, err := logger.ParseLevel(c.Output.LogLevel); err != nil {
		return fmt.Errorf("%w: [output].log_level: %w", ErrInvalid, err)
	}
	switch c.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: [output].color must be auto, always or never: %q", ErrInvalid, c.Output.Color)
	}

	seen := make(map[string]bool, len(c.Tables))
	for i, t := range c.Tables {
		name := strings.ToLower(strings.TrimSpace(t.Name))
		if name == "" {
			return fmt.Errorf("%w: [[tables]] entry %d: missing name", ErrInvalid, i)
		}
		if seen[name] {
			return fmt.Errorf("%w: [[tables]] entry %d: duplicate name %q", ErrInvalid, i, t.Name)
		}
		seen[name] = true
		if _, err := reference.NewTable(t.Name, t.Wavelengths); err != nil {
			return fmt.Errorf("%w: [[tables]] %q: %w", ErrInvalid, t.Name, err)
		}
	}

	if _, err := c.ReferenceTable(); err != nil {
		return fmt.Errorf("%w: table: %w", ErrInvalid, err)
	}
	return nil
}

// Options converts the [detect] section into detector options.
func (c Config) Options() []lines.Option {
	d := c.Detect
	return []lines.Option{
		lines.WithSmoothing(d.SmoothWidth, d.SmoothPasses),
		lines.WithFraction(d.Fraction),
		lines.WithThreshold(d.Threshold),
		lines.WithTolerance(d.Tolerance),
		lines.WithMinMatches(d.MinMatches),
	}
}

// ReferenceTable resolves the configured table name. Custom tables take
// precedence over the built-in ones.
func (c Config) ReferenceTable() (reference.Table, error) {
	return c.Resolve(c.Table)
}

// Resolve looks name up among the custom tables, then the built-in ones.
func (c Config) Resolve(name string) (reference.Table, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, t := range c.Tables {
		if strings.ToLower(strings.TrimSpace(t.Name)) == want {
			return reference.NewTable(t.Name, t.Wavelengths)
		}
	}
	return reference.Lookup(name)
}
