// Package spectrum defines the observed spectrum consumed by the line
// detector: flux sampled at strictly increasing wavelengths.
package spectrum

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-lines/dsp/core"
)

// Errors describing spectra that cannot be analysed. They are local to one
// spectrum; callers processing batches record them and continue.
var (
	// ErrMalformedInput covers length mismatches, non-increasing wavelengths,
	// non-finite samples and sample-count mismatches in spectrum files.
	ErrMalformedInput = errors.New("spectrum: malformed input")
	// ErrDegenerateWindow is returned when a smoothing or noise window is not
	// shorter than the spectrum.
	ErrDegenerateWindow = errors.New("spectrum: window not shorter than spectrum")
)

// Spectrum is an immutable sequence of (wavelength, flux) samples.
type Spectrum struct {
	wavelengths []float64
	flux        []float64
}

// New validates and copies the given samples into a Spectrum.
func New(wavelengths, flux []float64) (Spectrum, error) {
	if len(wavelengths) != len(flux) {
		return Spectrum{}, fmt.Errorf("%w: %d wavelengths, %d flux values",
			ErrMalformedInput, len(wavelengths), len(flux))
	}
	if len(wavelengths) == 0 {
		return Spectrum{}, fmt.Errorf("%w: no samples", ErrMalformedInput)
	}
	for i, w := range wavelengths {
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return Spectrum{}, fmt.Errorf("%w: wavelength %d is not finite", ErrMalformedInput, i)
		}
		if i > 0 && w <= wavelengths[i-1] {
			return Spectrum{}, fmt.Errorf("%w: wavelength %d (%g) not greater than %g",
				ErrMalformedInput, i, w, wavelengths[i-1])
		}
	}
	if !core.AllFinite(flux) {
		return Spectrum{}, fmt.Errorf("%w: flux contains NaN or Inf", ErrMalformedInput)
	}

	return Spectrum{
		wavelengths: append([]float64(nil), wavelengths...),
		flux:        append([]float64(nil), flux...),
	}, nil
}

// Len returns the number of samples.
func (s Spectrum) Len() int {
	return len(s.flux)
}

// Wavelength returns the wavelength of sample i.
func (s Spectrum) Wavelength(i int) float64 {
	return s.wavelengths[i]
}

// Flux returns the flux of sample i.
func (s Spectrum) Flux(i int) float64 {
	return s.flux[i]
}

// Wavelengths returns a copy of the wavelength samples.
func (s Spectrum) Wavelengths() []float64 {
	return append([]float64(nil), s.wavelengths...)
}

// Fluxes returns a copy of the flux samples.
func (s Spectrum) Fluxes() []float64 {
	return append([]float64(nil), s.flux...)
}

// Range returns the first and last wavelength. Both are zero for an empty spectrum.
func (s Spectrum) Range() (lo, hi float64) {
	if len(s.wavelengths) == 0 {
		return 0, 0
	}
	return s.wavelengths[0], s.wavelengths[len(s.wavelengths)-1]
}

// NearestIndex returns the index of the sample whose wavelength is closest to w.
func (s Spectrum) NearestIndex(w float64) int {
	return NearestIndex(s.wavelengths, w)
}

// NearestIndex returns the index in the increasing slice wavelengths closest
// to w, or -1 for an empty slice.
func NearestIndex(wavelengths []float64, w float64) int {
	n := len(wavelengths)
	if n == 0 {
		return -1
	}
	i := sort.SearchFloat64s(wavelengths, w)
	switch {
	case i == 0:
		return 0
	case i == n:
		return n - 1
	case w-wavelengths[i-1] <= wavelengths[i]-w:
		return i - 1
	default:
		return i
	}
}
