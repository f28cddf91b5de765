package conv

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-lines/dsp/core"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
	ErrInvalidWindow  = errors.New("conv: window width must be odd and >= 1")
	ErrWindowTooLong  = errors.New("conv: window width must be shorter than the input")
)

// directThreshold is the kernel length up to which Convolve stays in the
// time domain.
const directThreshold = 64

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
//
// This is an O(N*M) algorithm suitable for short kernels.
// For longer kernels, use FFT-based methods like OverlapAdd.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	result := make([]float64, len(a)+len(b)-1)
	DirectTo(result, a, b)
	return result, nil
}

// DirectTo performs direct convolution, writing to a pre-allocated destination.
// dst must have length len(a) + len(b) - 1.
func DirectTo(dst, a, b []float64) {
	n := len(a)
	m := len(b)

	for i := range dst {
		dst[i] = 0
	}

	const simdThreshold = 4
	if m < simdThreshold {
		for i := 0; i < n; i++ {
			for j := 0; j < m; j++ {
				dst[i+j] += a[i] * b[j]
			}
		}
		return
	}

	// dst[i:i+m] += b * a[i], vectorised through vecmath.
	temp := make([]float64, m)
	for i := 0; i < n; i++ {
		vecmath.ScaleBlock(temp, b, a[i])
		vecmath.AddBlockInPlace(dst[i:i+m], temp)
	}
}

// Convolve performs linear convolution with automatic algorithm selection.
// Kernels up to 64 samples use direct convolution, longer ones FFT overlap-add.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	if len(b) > len(a) {
		a, b = b, a
	}

	if len(b) <= directThreshold {
		return Direct(a, b)
	}

	return OverlapAddConvolve(a, b)
}

// ConvolveValid returns the part of the convolution of a and b where the
// signals fully overlap, max(len(a), len(b)) - min(len(a), len(b)) + 1 samples.
func ConvolveValid(a, b []float64) ([]float64, error) {
	full, err := Convolve(a, b)
	if err != nil {
		return nil, err
	}

	if len(a) >= len(b) {
		return full[len(b)-1 : len(a)], nil
	}
	return full[len(a)-1 : len(b)], nil
}

// BoxFilter returns the running mean of x over a centred window of odd width.
// The input is mirror-extended by width/2 samples at both ends (edge samples
// are not repeated) and only the fully overlapping part of the convolution is
// kept, so the output has len(x) samples aligned with x.
func BoxFilter(x []float64, width int) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if width < 1 || width%2 == 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, width)
	}
	if width > 1 && width >= len(x) {
		return nil, fmt.Errorf("%w: width %d, length %d", ErrWindowTooLong, width, len(x))
	}

	half := width / 2
	padded := core.ReflectPad(x, half, half)

	kernel := make([]float64, width)
	for i := range kernel {
		kernel[i] = 1 / float64(width)
	}

	out, err := ConvolveValid(padded, kernel)
	if err != nil {
		return nil, err
	}
	if len(out) != len(x) {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrLengthMismatch, len(out), len(x))
	}
	return out, nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
