package lines

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-lines/dsp/core"
	"github.com/cwbudde/algo-lines/dsp/morph"
)

// Baseline removes the continuum from flux and returns the corrected flux.
//
// Absorption lines are narrow dips on a broad continuum. The flux is negated
// so the lines become peaks, a white top-hat with a flat structuring element
// of round(fraction*len(flux)) samples keeps those peaks and drops the
// continuum, and the result is negated back. Corrected flux is therefore <= 0,
// with lines as negative excursions. The signal is extended past its ends by
// point reflection, which leaves a linear continuum exactly flat.
func Baseline(flux []float64, fraction float64) ([]float64, error) {
	if len(flux) == 0 {
		return nil, fmt.Errorf("lines: baseline: %w", morph.ErrEmptyInput)
	}
	if !(fraction > 0 && fraction < 1) {
		return nil, fmt.Errorf("%w: fraction must be in (0,1): %v", ErrInvalidConfig, fraction)
	}

	size := StructureSize(len(flux), fraction)
	th, err := morph.WhiteTopHat(core.Negate(flux), size, morph.PointMirror)
	if err != nil {
		return nil, fmt.Errorf("lines: baseline: %w", err)
	}
	for i, v := range th {
		th[i] = -v
	}
	return th, nil
}

// StructureSize returns the baseline structuring-element width for a
// spectrum of n samples.
func StructureSize(n int, fraction float64) int {
	return max(1, int(math.Round(fraction*float64(n))))
}
