package lines

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-lines/dsp/smooth"
)

// ErrInvalidConfig reports a tunable outside its valid range. It is a
// configuration error: callers should fail at startup rather than per spectrum.
var ErrInvalidConfig = errors.New("lines: invalid configuration")

// Default tunables.
const (
	DefaultFraction   = 0.2
	DefaultThreshold  = 1.0
	DefaultTolerance  = 5.0
	DefaultMinMatches = 2
)

// Config holds the detector tunables.
type Config struct {
	SmoothWidth  int     // moving-average width, odd >= 3
	SmoothPasses int     // moving-average passes, >= 1
	Fraction     float64 // baseline element and noise window as a fraction of the spectrum length
	Threshold    float64 // line complexes sit below -Threshold*noise
	Tolerance    float64 // maximum |λ - reference| in Ångström, exclusive
	MinMatches   int     // matches needed for a positive verdict
	Logger       *slog.Logger
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the defaults used when no option is given.
func DefaultConfig() Config {
	return Config{
		SmoothWidth:  smooth.DefaultWidth,
		SmoothPasses: smooth.DefaultPasses,
		Fraction:     DefaultFraction,
		Threshold:    DefaultThreshold,
		Tolerance:    DefaultTolerance,
		MinMatches:   DefaultMinMatches,
	}
}

// WithSmoothing sets the moving-average width and number of passes.
func WithSmoothing(width, passes int) Option {
	return func(cfg *Config) {
		cfg.SmoothWidth = width
		cfg.SmoothPasses = passes
	}
}

// WithFraction sets the baseline structuring element and noise window size
// as a fraction of the spectrum length.
func WithFraction(fraction float64) Option {
	return func(cfg *Config) {
		cfg.Fraction = fraction
	}
}

// WithThreshold sets how many noise amplitudes a line must reach below the
// corrected continuum.
func WithThreshold(threshold float64) Option {
	return func(cfg *Config) {
		cfg.Threshold = threshold
	}
}

// WithTolerance sets the reference matching tolerance in Ångström.
func WithTolerance(tolerance float64) Option {
	return func(cfg *Config) {
		cfg.Tolerance = tolerance
	}
}

// WithMinMatches sets how many reference matches make a positive verdict.
func WithMinMatches(n int) Option {
	return func(cfg *Config) {
		cfg.MinMatches = n
	}
}

// WithLogger routes debug output of the detector to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = logger
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports the first tunable outside its valid range.
func (c Config) Validate() error {
	if err := smooth.Validate(c.SmoothWidth, c.SmoothPasses); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if !(c.Fraction > 0 && c.Fraction < 1) {
		return fmt.Errorf("%w: fraction must be in (0,1): %v", ErrInvalidConfig, c.Fraction)
	}
	if err := validateThreshold(c.Threshold); err != nil {
		return err
	}
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance must be > 0: %v", ErrInvalidConfig, c.Tolerance)
	}
	if c.MinMatches < 1 {
		return fmt.Errorf("%w: min matches must be >= 1: %d", ErrInvalidConfig, c.MinMatches)
	}
	return nil
}

func validateThreshold(threshold float64) error {
	if !(threshold > 0) || math.IsInf(threshold, 0) {
		return fmt.Errorf("%w: threshold must be > 0: %v", ErrInvalidConfig, threshold)
	}
	return nil
}
