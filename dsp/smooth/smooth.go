// Package smooth denoises sampled spectra with repeated moving averages.
package smooth

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-lines/dsp/conv"
)

// Defaults used by the line detector.
const (
	DefaultWidth  = 7
	DefaultPasses = 3
)

var (
	// ErrInvalidWidth is returned for even widths or widths below 3.
	ErrInvalidWidth = errors.New("smooth: window width must be odd and >= 3")
	// ErrInvalidPasses is returned when passes < 1.
	ErrInvalidPasses = errors.New("smooth: passes must be >= 1")
	// ErrDegenerateWindow is returned when the window is not shorter than the input.
	ErrDegenerateWindow = errors.New("smooth: window width must be shorter than the input")
)

// Validate checks a width/passes pair without touching any data.
func Validate(width, passes int) error {
	if width < 3 || width%2 == 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	if passes < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPasses, passes)
	}
	return nil
}

// MovingAverage applies passes rounds of a centred moving average of the
// given width to flux. Every pass mirror-extends its input by width/2 samples
// on both sides, so the result has exactly len(flux) samples and no boundary
// shrinkage. The input is not modified.
func MovingAverage(flux []float64, width, passes int) ([]float64, error) {
	if err := Validate(width, passes); err != nil {
		return nil, err
	}
	if width >= len(flux) {
		return nil, fmt.Errorf("%w: width %d, length %d", ErrDegenerateWindow, width, len(flux))
	}

	out := flux
	for range passes {
		next, err := conv.BoxFilter(out, width)
		if err != nil {
			return nil, fmt.Errorf("smooth: %w", err)
		}
		out = next
	}
	return out, nil
}
