package lines

import (
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/cwbudde/algo-lines/internal/testutil"
	"github.com/cwbudde/algo-lines/reference"
	"github.com/cwbudde/algo-lines/spectrum"
	"github.com/cwbudde/algo-lines/spectrum/synth"
)

const gridStep = (8000.0 - 3700.0) / 1999

func heliumDip(wavelength float64) synth.Dip {
	return synth.Dip{Wavelength: wavelength, Depth: 0.5, Width: 10}
}

func mustDetector(t *testing.T, opts ...Option) *Detector {
	t.Helper()
	d, err := NewDetector(opts...)
	if err != nil {
		t.Fatalf("NewDetector: %v", err)
	}
	return d
}

func mustSpectrum(t *testing.T, g *synth.Generator, dips ...synth.Dip) spectrum.Spectrum {
	t.Helper()
	s, err := g.Spectrum(dips...)
	if err != nil {
		t.Fatalf("Spectrum: %v", err)
	}
	return s
}

func TestDetectSingleGaussianDip(t *testing.T) {
	s := mustSpectrum(t, synth.NewGenerator(),
		synth.Dip{Wavelength: 5000, Depth: 0.4, Width: 3, Shape: synth.Gaussian})

	res, err := mustDetector(t).Detect(s)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	if len(res.Complexes) != 1 {
		t.Fatalf("complexes = %v, want exactly one", res.Complexes)
	}
	if len(res.Lines) != 1 {
		t.Fatalf("lines = %+v, want exactly one", res.Lines)
	}

	line := res.Lines[0]
	if math.Abs(line.Wavelength-5000) > gridStep {
		t.Fatalf("center %.3f Å, want within %.3f Å of 5000", line.Wavelength, gridStep)
	}
	if c := res.Complexes[0]; line.Index < c.Start || line.Index >= c.End {
		t.Fatalf("line index %d outside complex %+v", line.Index, c)
	}
	if !(line.SNR > DefaultThreshold) {
		t.Fatalf("SNR = %v, want > %v", line.SNR, DefaultThreshold)
	}
}

func TestDetectIntermediatesAligned(t *testing.T) {
	s := mustSpectrum(t, synth.NewGenerator(synth.WithNoise(0.01)), heliumDip(6678.1517))

	res, err := mustDetector(t).Detect(s)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}

	n := s.Len()
	if len(res.Smoothed) != n || len(res.Corrected) != n || len(res.Noise.Amplitude) != n {
		t.Fatalf("lengths smoothed=%d corrected=%d noise=%d, want %d",
			len(res.Smoothed), len(res.Corrected), len(res.Noise.Amplitude), n)
	}
	testutil.RequireFinite(t, res.Corrected)
	testutil.RequireNonNegative(t, res.Noise.Amplitude)

	for i := 1; i < len(res.Complexes); i++ {
		if res.Complexes[i].Start < res.Complexes[i-1].End {
			t.Fatalf("complexes overlap: %+v", res.Complexes)
		}
	}
}

func TestDetectSlopedContinuum(t *testing.T) {
	g := synth.NewGenerator(synth.WithContinuum(1, 1e-4))
	s := mustSpectrum(t, g, synth.Dip{Wavelength: 6000, Depth: 0.3, Width: 3, Shape: synth.Gaussian})

	res, err := mustDetector(t).Detect(s)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(res.Lines) != 1 {
		t.Fatalf("lines = %+v, want exactly one", res.Lines)
	}
	if math.Abs(res.Lines[0].Wavelength-6000) > gridStep {
		t.Fatalf("center %.3f Å, want near 6000", res.Lines[0].Wavelength)
	}
}

func TestDetectBlendedComplex(t *testing.T) {
	// Twelve samples apart: one complex, two resolved minima.
	first := 5000.0
	second := first + 12*gridStep
	s := mustSpectrum(t, synth.NewGenerator(),
		synth.Dip{Wavelength: first, Depth: 0.5, Width: 1, Shape: synth.Gaussian},
		synth.Dip{Wavelength: second, Depth: 0.5, Width: 1, Shape: synth.Gaussian})

	res, err := mustDetector(t).Detect(s)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(res.Complexes) != 1 {
		t.Fatalf("complexes = %+v, want one", res.Complexes)
	}
	if len(res.Lines) != 2 {
		t.Fatalf("lines = %+v, want two", res.Lines)
	}
	for i, want := range []float64{first, second} {
		if got := res.Lines[i].Wavelength; math.Abs(got-want) > 2*gridStep {
			t.Fatalf("line %d at %.3f Å, want near %.3f", i, got, want)
		}
	}
}

func TestDetectFlatSpectrumHasNoLines(t *testing.T) {
	s := mustSpectrum(t, synth.NewGenerator())

	res, err := mustDetector(t).Detect(s)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(res.Complexes) != 0 || len(res.Lines) != 0 {
		t.Fatalf("complexes=%v lines=%v, want none", res.Complexes, res.Lines)
	}
}

func TestAnalyzeHeliumPositive(t *testing.T) {
	s := mustSpectrum(t, synth.NewGenerator(), heliumDip(4471.5), heliumDip(5875.6404))

	v, err := mustDetector(t).Analyze(s, reference.Helium)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !v.Present {
		t.Fatalf("verdict negative, lines %+v", v.Lines)
	}
	if v.Table != reference.Helium.Name() {
		t.Fatalf("table = %q", v.Table)
	}
	if len(v.Matches) != 2 {
		t.Fatalf("matches = %+v, want two", v.Matches)
	}
	for _, m := range v.Matches {
		if !(m.Line.SNR > DefaultThreshold) {
			t.Fatalf("match %+v: SNR not above threshold", m)
		}
	}
}

func TestAnalyzeHeliumNegative(t *testing.T) {
	s := mustSpectrum(t, synth.NewGenerator(), heliumDip(5875.6404))

	v, err := mustDetector(t).Analyze(s, reference.Helium)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if v.Present {
		t.Fatalf("verdict positive with matches %+v", v.Matches)
	}
	if len(v.Matches) != 1 || v.Matches[0].Reference != 5875.6404 {
		t.Fatalf("matches = %+v, want the 5875.6404 line only", v.Matches)
	}
}

func TestAnalyzeMinMatchesOne(t *testing.T) {
	s := mustSpectrum(t, synth.NewGenerator(), heliumDip(5875.6404))

	v, err := mustDetector(t, WithMinMatches(1)).Analyze(s, reference.Helium)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !v.Present {
		t.Fatal("verdict negative, want positive with one required match")
	}
}

func TestAnalyzeFunction(t *testing.T) {
	s := mustSpectrum(t, synth.NewGenerator(), heliumDip(4471.5), heliumDip(5875.6404))

	v, err := Analyze(s.Wavelengths(), s.Fluxes(), reference.Helium,
		WithThreshold(1), WithLogger(slog.New(slog.DiscardHandler)))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if !v.Present {
		t.Fatal("verdict negative")
	}
}

func TestAnalyzeMalformedInput(t *testing.T) {
	_, err := Analyze([]float64{1, 2, 2}, []float64{1, 1, 1}, reference.Helium)
	if !errors.Is(err, spectrum.ErrMalformedInput) {
		t.Fatalf("error = %v, want ErrMalformedInput", err)
	}
}

func TestDetectDegenerateWindow(t *testing.T) {
	g := synth.NewGenerator(synth.WithSamples(7))
	s := mustSpectrum(t, g)

	_, err := mustDetector(t).Detect(s)
	if !errors.Is(err, spectrum.ErrDegenerateWindow) {
		t.Fatalf("error = %v, want ErrDegenerateWindow", err)
	}
}

func TestNewDetectorInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{name: "zero threshold", opt: WithThreshold(0)},
		{name: "negative threshold", opt: WithThreshold(-1)},
		{name: "nan threshold", opt: WithThreshold(math.NaN())},
		{name: "even width", opt: WithSmoothing(4, 3)},
		{name: "narrow width", opt: WithSmoothing(1, 3)},
		{name: "no passes", opt: WithSmoothing(7, 0)},
		{name: "fraction one", opt: WithFraction(1)},
		{name: "fraction zero", opt: WithFraction(0)},
		{name: "zero tolerance", opt: WithTolerance(0)},
		{name: "no matches", opt: WithMinMatches(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDetector(tt.opt)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := mustDetector(t).Config()
	if cfg.SmoothWidth != 7 || cfg.SmoothPasses != 3 || cfg.Fraction != 0.2 ||
		cfg.Threshold != 1 || cfg.Tolerance != 5 || cfg.MinMatches != 2 {
		t.Fatalf("defaults = %+v", cfg)
	}
}
