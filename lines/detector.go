package lines

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-lines/dsp/smooth"
	"github.com/cwbudde/algo-lines/reference"
	"github.com/cwbudde/algo-lines/spectrum"
)

// Result holds every intermediate sequence of one detection run. All slices
// are aligned with the input spectrum.
type Result struct {
	Smoothed  []float64
	Corrected []float64
	Noise     Noise
	Complexes []Complex
	Lines     []DetectedLine
}

// Verdict is the outcome of matching a spectrum against a reference table.
type Verdict struct {
	Present bool
	Table   string
	Matches []Match
	Lines   []DetectedLine
}

// Detector runs the line detection pipeline with fixed tunables.
type Detector struct {
	cfg Config
	log *slog.Logger
}

// NewDetector validates the configured tunables and returns a Detector.
// Any error wraps ErrInvalidConfig.
func NewDetector(opts ...Option) (*Detector, error) {
	cfg := ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Detector{cfg: cfg, log: log}, nil
}

// Config returns the detector tunables.
func (d *Detector) Config() Config {
	return d.cfg
}

// Detect finds the lines of s. A spectrum without lines is not an error.
func (d *Detector) Detect(s spectrum.Spectrum) (Result, error) {
	n := s.Len()
	flux := s.Fluxes()

	smoothed, err := smooth.MovingAverage(flux, d.cfg.SmoothWidth, d.cfg.SmoothPasses)
	if err != nil {
		if errors.Is(err, smooth.ErrDegenerateWindow) {
			return Result{}, fmt.Errorf("%w: %w", spectrum.ErrDegenerateWindow, err)
		}
		return Result{}, fmt.Errorf("lines: %w", err)
	}

	corrected, err := Baseline(smoothed, d.cfg.Fraction)
	if err != nil {
		return Result{}, err
	}

	noise, err := EstimateNoise(flux, smoothed, NoiseWindow(n, d.cfg.Fraction))
	if err != nil {
		return Result{}, err
	}

	complexes, err := FindComplexes(corrected, noise.Amplitude, d.cfg.Threshold)
	if err != nil {
		return Result{}, err
	}

	var found []DetectedLine
	for _, c := range complexes {
		for _, off := range ResolveCenters(corrected[c.Start:c.End]) {
			idx := c.Start + off
			found = append(found, DetectedLine{
				Index:      idx,
				Wavelength: s.Wavelength(idx),
				SNR:        noise.SNR(idx),
			})
		}
	}

	d.log.Debug("lines detected",
		slog.Int("samples", n),
		slog.Int("complexes", len(complexes)),
		slog.Int("lines", len(found)))

	return Result{
		Smoothed:  smoothed,
		Corrected: corrected,
		Noise:     noise,
		Complexes: complexes,
		Lines:     found,
	}, nil
}

// Analyze detects the lines of s and matches them against table.
func (d *Detector) Analyze(s spectrum.Spectrum, table reference.Table) (Verdict, error) {
	res, err := d.Detect(s)
	if err != nil {
		return Verdict{}, err
	}

	matches, present := MatchReference(res.Lines, table, d.cfg.Tolerance, d.cfg.MinMatches)
	for _, m := range matches {
		d.log.Debug("reference match",
			slog.String("table", table.Name()),
			slog.Float64("wavelength", m.Line.Wavelength),
			slog.Float64("reference", m.Reference),
			slog.Float64("snr", m.Line.SNR))
	}

	return Verdict{
		Present: present,
		Table:   table.Name(),
		Matches: matches,
		Lines:   res.Lines,
	}, nil
}

// Analyze validates the samples, detects lines and matches them against table
// in one call.
func Analyze(wavelengths, fluxes []float64, table reference.Table, opts ...Option) (Verdict, error) {
	d, err := NewDetector(opts...)
	if err != nil {
		return Verdict{}, err
	}
	s, err := spectrum.New(wavelengths, fluxes)
	if err != nil {
		return Verdict{}, err
	}
	return d.Analyze(s, table)
}
