// Package flux summarises the flux values of a spectrum in a single pass.
package flux

import (
	"math"

	"github.com/cwbudde/algo-lines/spectrum"
)

// Stats holds flux statistics.
type Stats struct {
	Length   int
	Mean     float64
	StdDev   float64 // population standard deviation
	Variance float64
	Min      float64
	MinPos   int
	Max      float64
	MaxPos   int
	Range    float64 // max - min
	Skewness float64
	Kurtosis float64 // excess kurtosis
}

// Summary describes a whole spectrum: its wavelength coverage and the
// statistics of its flux.
type Summary struct {
	Start, End    float64 // first and last wavelength
	Step          float64 // mean sampling step
	MinWavelength float64 // wavelength of the flux minimum
	MaxWavelength float64 // wavelength of the flux maximum
	Flux          Stats
}

// Summarize computes the Summary of s.
func Summarize(s spectrum.Spectrum) Summary {
	st := Calculate(s.Fluxes())
	if st.Length == 0 {
		return Summary{Flux: st}
	}
	lo, hi := s.Range()
	var step float64
	if st.Length > 1 {
		step = (hi - lo) / float64(st.Length-1)
	}
	return Summary{
		Start:         lo,
		End:           hi,
		Step:          step,
		MinWavelength: s.Wavelength(st.MinPos),
		MaxWavelength: s.Wavelength(st.MaxPos),
		Flux:          st,
	}
}

// Calculate computes all statistics in a single pass.
func Calculate(flux []float64) Stats {
	var a Accumulator
	a.Update(flux)
	return a.Result()
}

// Accumulator collects statistics over several blocks of flux, for instance
// over every spectrum of a batch. Moments use Welford's online update, so the
// result equals Calculate on the concatenated input.
type Accumulator struct {
	n      int
	mean   float64
	m2     float64
	m3     float64
	m4     float64
	maxVal float64
	maxPos int
	minVal float64
	minPos int
}

// Update adds a block of samples.
func (a *Accumulator) Update(samples []float64) {
	for _, x := range samples {
		a.n++
		ni := float64(a.n)

		delta := x - a.mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(a.n-1)

		// M4 before M3, M3 before M2.
		a.m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*a.m2 - 4*deltaN*a.m3
		a.m3 += term1*deltaN*(float64(a.n-1)-1) - 3*deltaN*a.m2
		a.m2 += term1
		a.mean += deltaN

		if a.n == 1 || x > a.maxVal {
			a.maxVal = x
			a.maxPos = a.n - 1
		}
		if a.n == 1 || x < a.minVal {
			a.minVal = x
			a.minPos = a.n - 1
		}
	}
}

// Len returns the number of samples seen.
func (a *Accumulator) Len() int { return a.n }

// Result returns the statistics of all samples seen so far. Positions count
// from the first sample ever added.
func (a *Accumulator) Result() Stats {
	if a.n == 0 {
		return Stats{}
	}

	nf := float64(a.n)
	variance := a.m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (a.m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (a.m4/nf)/(variance*variance) - 3
	}

	return Stats{
		Length:   a.n,
		Mean:     a.mean,
		StdDev:   math.Sqrt(variance),
		Variance: variance,
		Min:      a.minVal,
		MinPos:   a.minPos,
		Max:      a.maxVal,
		MaxPos:   a.maxPos,
		Range:    a.maxVal - a.minVal,
		Skewness: skewness,
		Kurtosis: kurtosis,
	}
}

// Reset clears the accumulator for reuse.
func (a *Accumulator) Reset() {
	*a = Accumulator{}
}
