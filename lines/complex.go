package lines

import (
	"fmt"

	"github.com/cwbudde/algo-lines/spectrum"
)

// Complex is a half-open index range [Start, End) of consecutive samples
// whose corrected flux lies below the noise threshold. One complex may hold
// several blended lines.
type Complex struct {
	Start, End int
}

// Len returns the number of samples in the complex.
func (c Complex) Len() int { return c.End - c.Start }

// FindComplexes scans corrected flux left to right and returns the ordered,
// disjoint runs where corrected[i] < -threshold*noise[i].
func FindComplexes(corrected, noise []float64, threshold float64) ([]Complex, error) {
	if len(corrected) != len(noise) {
		return nil, fmt.Errorf("%w: %d corrected, %d noise samples",
			spectrum.ErrMalformedInput, len(corrected), len(noise))
	}
	if err := validateThreshold(threshold); err != nil {
		return nil, err
	}

	var out []Complex
	n := len(corrected)
	for pos := 0; pos < n; pos++ {
		start := pos
		for pos < n && corrected[pos] < -threshold*noise[pos] {
			pos++
		}
		if pos > start {
			out = append(out, Complex{Start: start, End: pos})
		}
	}
	return out, nil
}
