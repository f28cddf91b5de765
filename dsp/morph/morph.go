// Package morph implements one-dimensional grayscale morphology with a flat
// structuring element: erosion, dilation, opening and the white top-hat.
//
// Sliding minima and maxima use a monotonic deque, so every operation is
// O(n) regardless of the structuring-element size. Samples outside the signal
// are supplied by a [Boundary] extension.
//
// For a structuring element of size s the erosion window at index i covers
// [i-s/2, i+s-1-s/2]; dilation uses the reflected window so that [Open] is
// anti-extensive for even sizes as well.
package morph

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-lines/dsp/core"
)

// Errors returned by morphology functions.
var (
	ErrEmptyInput  = errors.New("morph: empty input")
	ErrInvalidSize = errors.New("morph: structuring element size must be >= 1")
)

// Boundary selects how the signal is extended past its ends.
type Boundary int

const (
	// Mirror reflects samples about the edge sample without repeating it.
	Mirror Boundary = iota
	// PointMirror reflects indices like Mirror and values through the edge
	// sample, so linear trends continue into the extension.
	PointMirror
)

func (b Boundary) pad(x []float64, left, right int) []float64 {
	if b == PointMirror {
		return core.ReflectPadOdd(x, left, right)
	}
	return core.ReflectPad(x, left, right)
}

// Erode returns the grayscale erosion (sliding minimum) of x.
func Erode(x []float64, size int, boundary Boundary) ([]float64, error) {
	if err := validate(x, size); err != nil {
		return nil, err
	}
	before, after := erosionSpan(size)
	p := boundary.pad(x, before, after)
	out := make([]float64, len(p))
	slidingMin(out, p, before, after)
	return out[before : before+len(x)], nil
}

// Dilate returns the grayscale dilation (sliding maximum) of x.
func Dilate(x []float64, size int, boundary Boundary) ([]float64, error) {
	if err := validate(x, size); err != nil {
		return nil, err
	}
	before, after := erosionSpan(size)
	// Reflected structuring element.
	before, after = after, before
	p := boundary.pad(x, before, after)
	out := make([]float64, len(p))
	slidingMax(out, p, before, after)
	return out[before : before+len(x)], nil
}

// Open returns the morphological opening of x: erosion followed by dilation.
// Both passes run on a single extension of x so the result never exceeds x.
func Open(x []float64, size int, boundary Boundary) ([]float64, error) {
	if err := validate(x, size); err != nil {
		return nil, err
	}
	before, after := erosionSpan(size)
	pad := before + after
	p := boundary.pad(x, pad, pad)

	eroded := make([]float64, len(p))
	slidingMin(eroded, p, before, after)
	opened := make([]float64, len(p))
	slidingMax(opened, eroded, after, before)

	return opened[pad : pad+len(x)], nil
}

// WhiteTopHat returns x minus its opening: narrow peaks survive, features
// wider than size are removed. The result is non-negative.
func WhiteTopHat(x []float64, size int, boundary Boundary) ([]float64, error) {
	opened, err := Open(x, size, boundary)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(x))
	for i := range x {
		out[i] = x[i] - opened[i]
	}
	return out, nil
}

func validate(x []float64, size int) error {
	if len(x) == 0 {
		return ErrEmptyInput
	}
	if size < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return nil
}

func erosionSpan(size int) (before, after int) {
	before = size / 2
	return before, size - 1 - before
}

func slidingMin(dst, src []float64, before, after int) {
	slide(dst, src, before, after, func(a, b float64) bool { return a < b })
}

func slidingMax(dst, src []float64, before, after int) {
	slide(dst, src, before, after, func(a, b float64) bool { return a > b })
}

// slide writes into dst[j] the extreme of src over [j-before, j+after],
// clipped to the slice. better(a, b) reports whether a strictly wins over b.
func slide(dst, src []float64, before, after int, better func(a, b float64) bool) {
	m := len(src)
	deque := make([]int, 0, m)
	head, next := 0, 0

	for j := range m {
		for next < m && next <= j+after {
			for len(deque) > head && !better(src[deque[len(deque)-1]], src[next]) {
				deque = deque[:len(deque)-1]
			}
			deque = append(deque, next)
			next++
		}
		for deque[head] < j-before {
			head++
		}
		dst[j] = src[deque[head]]
	}
}
