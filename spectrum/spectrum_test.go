package spectrum

import (
	"errors"
	"math"
	"testing"
)

func TestNewCopiesInput(t *testing.T) {
	w := []float64{1, 2, 3}
	f := []float64{4, 5, 6}

	s, err := New(w, f)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w[0], f[0] = 100, 100

	if s.Wavelength(0) != 1 || s.Flux(0) != 4 {
		t.Fatalf("spectrum aliases caller slices: %v %v", s.Wavelength(0), s.Flux(0))
	}
	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}

	ws := s.Wavelengths()
	ws[1] = -1
	if s.Wavelength(1) != 2 {
		t.Fatal("Wavelengths returned internal storage")
	}
}

func TestNewMalformed(t *testing.T) {
	tests := []struct {
		name string
		w    []float64
		f    []float64
	}{
		{name: "length mismatch", w: []float64{1, 2}, f: []float64{1}},
		{name: "empty", w: nil, f: nil},
		{name: "not increasing", w: []float64{1, 3, 2}, f: []float64{0, 0, 0}},
		{name: "duplicate wavelength", w: []float64{1, 1}, f: []float64{0, 0}},
		{name: "nan flux", w: []float64{1, 2}, f: []float64{0, math.NaN()}},
		{name: "inf wavelength", w: []float64{1, math.Inf(1)}, f: []float64{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.w, tt.f)
			if !errors.Is(err, ErrMalformedInput) {
				t.Fatalf("error = %v, want ErrMalformedInput", err)
			}
		})
	}
}

func TestZeroFluxIsAccepted(t *testing.T) {
	if _, err := New([]float64{1, 2, 3}, []float64{0, 0, 0}); err != nil {
		t.Fatalf("zero-valued samples rejected: %v", err)
	}
}

func TestNearestIndex(t *testing.T) {
	w := []float64{10, 20, 30, 40}
	tests := []struct {
		x    float64
		want int
	}{
		{x: 0, want: 0},
		{x: 14, want: 0},
		{x: 15, want: 0},
		{x: 16, want: 1},
		{x: 30, want: 2},
		{x: 99, want: 3},
	}

	for _, tt := range tests {
		if got := NearestIndex(w, tt.x); got != tt.want {
			t.Errorf("NearestIndex(%v) = %d, want %d", tt.x, got, tt.want)
		}
	}
	if got := NearestIndex(nil, 1); got != -1 {
		t.Errorf("NearestIndex(nil) = %d, want -1", got)
	}
}

func TestRange(t *testing.T) {
	s, err := New([]float64{3700, 5000, 8000}, []float64{1, 1, 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	lo, hi := s.Range()
	if lo != 3700 || hi != 8000 {
		t.Fatalf("Range = (%v, %v), want (3700, 8000)", lo, hi)
	}
}
