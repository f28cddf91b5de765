package lines

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-lines/dsp/conv"
	"github.com/cwbudde/algo-lines/dsp/core"
	"github.com/cwbudde/algo-lines/spectrum"
)

// UndefinedSNR is reported for a line whose local noise amplitude is zero.
// Callers decide whether such a line counts as a strong detection.
var UndefinedSNR = math.Inf(1)

// Noise is the local noise profile of a spectrum.
type Noise struct {
	// Amplitude is the windowed mean of |raw - smoothed|, one non-negative
	// value per spectrum sample.
	Amplitude []float64
	// Residual is |raw - smoothed| mirror-extended by HalfWidth samples at
	// both ends; Residual[i+HalfWidth] belongs to sample i.
	Residual  []float64
	HalfWidth int
}

// NoiseWindow returns the odd noise window width for n samples:
// int(n*fraction/2)*2 + 1.
func NoiseWindow(n int, fraction float64) int {
	return int(float64(n)*fraction/2)*2 + 1
}

// EstimateNoise computes the local noise amplitude as the running mean of the
// absolute residual between raw and smoothed flux over an odd window.
func EstimateNoise(raw, smoothed []float64, width int) (Noise, error) {
	n := len(raw)
	if n == 0 || len(smoothed) != n {
		return Noise{}, fmt.Errorf("%w: noise: %d raw, %d smoothed samples",
			spectrum.ErrMalformedInput, n, len(smoothed))
	}
	if width < 1 || width%2 == 0 {
		return Noise{}, fmt.Errorf("%w: noise window must be odd and >= 1: %d", ErrInvalidConfig, width)
	}
	if width > 1 && width >= n {
		return Noise{}, fmt.Errorf("%w: noise window %d, %d samples", spectrum.ErrDegenerateWindow, width, n)
	}

	residual := make([]float64, n)
	for i := range raw {
		residual[i] = math.Abs(raw[i] - smoothed[i])
	}

	amplitude, err := conv.BoxFilter(residual, width)
	if err != nil {
		return Noise{}, fmt.Errorf("lines: noise: %w", err)
	}

	// FFT round-off leaves tiny (possibly negative) values where the
	// residual is exactly zero; flush them so flat flux has zero noise.
	floor := 1e-12 * core.MaxAbs(residual)
	for i, v := range amplitude {
		if v <= floor {
			amplitude[i] = 0
		}
	}

	half := width / 2
	return Noise{
		Amplitude: amplitude,
		Residual:  core.ReflectPad(residual, half, half),
		HalfWidth: half,
	}, nil
}

// SNR returns the signal-to-noise ratio of the line centred on sample c:
// the residual at c over the local noise amplitude. A zero amplitude yields
// UndefinedSNR.
func (n Noise) SNR(c int) float64 {
	amp := n.Amplitude[c]
	if amp == 0 {
		return UndefinedSNR
	}
	return n.Residual[c+n.HalfWidth] / amp
}
