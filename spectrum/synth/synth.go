// Package synth builds deterministic synthetic spectra: a continuum sampled on
// a linear wavelength grid, optional white noise, and absorption dips at
// chosen wavelengths.
package synth

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/cwbudde/algo-lines/spectrum"
)

// Shape selects the profile of an absorption dip.
type Shape int

const (
	// Box lowers Width consecutive samples by Depth.
	Box Shape = iota
	// Gaussian lowers flux by Depth*exp(-(λ-λ0)²/2σ²) with σ = Width samples.
	Gaussian
)

// Dip describes one synthetic absorption line.
type Dip struct {
	Wavelength float64
	Depth      float64
	Width      int
	Shape      Shape
}

// Generator creates spectra from a shared configuration.
type Generator struct {
	start, end float64
	samples    int
	continuum  float64
	slope      float64
	noise      float64
	seed       int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithRange sets the wavelength range covered by the grid.
func WithRange(start, end float64) Option {
	return func(g *Generator) {
		g.start, g.end = start, end
	}
}

// WithSamples sets the number of grid samples.
func WithSamples(n int) Option {
	return func(g *Generator) {
		g.samples = n
	}
}

// WithContinuum sets the continuum level at the first sample and its slope
// per Ångström.
func WithContinuum(level, slope float64) Option {
	return func(g *Generator) {
		g.continuum, g.slope = level, slope
	}
}

// WithNoise adds uniform white noise in [-amplitude, amplitude].
func WithNoise(amplitude float64) Option {
	return func(g *Generator) {
		g.noise = amplitude
	}
}

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator returns a generator for a flat unit continuum of 2000 samples
// spanning 3700–8000 Å, modified by opts.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		start:     3700,
		end:       8000,
		samples:   2000,
		continuum: 1,
		seed:      1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Spectrum renders the configured continuum with the given dips.
func (g *Generator) Spectrum(dips ...Dip) (spectrum.Spectrum, error) {
	wavs, err := Grid(g.start, g.end, g.samples)
	if err != nil {
		return spectrum.Spectrum{}, err
	}

	flux := make([]float64, len(wavs))
	for i, w := range wavs {
		flux[i] = g.continuum + g.slope*(w-g.start)
	}

	if g.noise > 0 {
		noise, err := WhiteNoise(g.seed, g.noise, len(flux))
		if err != nil {
			return spectrum.Spectrum{}, err
		}
		for i := range flux {
			flux[i] += noise[i]
		}
	}

	for _, d := range dips {
		if err := AddDip(flux, wavs, d); err != nil {
			return spectrum.Spectrum{}, err
		}
	}

	return spectrum.New(wavs, flux)
}

// Grid returns n wavelengths evenly spaced over [start, end].
func Grid(start, end float64, n int) ([]float64, error) {
	if n < 2 {
		return nil, fmt.Errorf("synth: grid needs at least 2 samples: %d", n)
	}
	if !(end > start) {
		return nil, fmt.Errorf("synth: grid end must exceed start: %g <= %g", end, start)
	}
	out := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = end
	return out, nil
}

// Flat returns n samples of value.
func Flat(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func WhiteNoise(seed int64, amplitude float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("synth: noise samples must be > 0: %d", n)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("synth: noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, n)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// AddDip subtracts the profile of d from flux in place. wavs must be the
// increasing wavelength grid of flux.
func AddDip(flux, wavs []float64, d Dip) error {
	if len(flux) != len(wavs) {
		return fmt.Errorf("synth: %d flux samples, %d wavelengths", len(flux), len(wavs))
	}
	if d.Width < 1 {
		return fmt.Errorf("synth: dip width must be >= 1: %d", d.Width)
	}
	center := spectrum.NearestIndex(wavs, d.Wavelength)
	if center < 0 {
		return fmt.Errorf("synth: empty grid")
	}

	switch d.Shape {
	case Box:
		first := center - d.Width/2
		for i := max(first, 0); i < min(first+d.Width, len(flux)); i++ {
			flux[i] -= d.Depth
		}
	case Gaussian:
		step := (wavs[len(wavs)-1] - wavs[0]) / float64(len(wavs)-1)
		sigma := float64(d.Width) * step
		for i, w := range wavs {
			z := (w - d.Wavelength) / sigma
			if math.Abs(z) > 8 {
				continue
			}
			flux[i] -= d.Depth * math.Exp(-0.5*z*z)
		}
	default:
		return fmt.Errorf("synth: unknown dip shape %d", d.Shape)
	}
	return nil
}
