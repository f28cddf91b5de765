package smooth

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-lines/internal/testutil"
	"github.com/cwbudde/algo-lines/spectrum/synth"
)

func TestMovingAverageLengthPreserving(t *testing.T) {
	for _, n := range []int{8, 9, 50, 2000} {
		flux, err := synth.WhiteNoise(int64(n), 1.0, n)
		if err != nil {
			t.Fatalf("WhiteNoise: %v", err)
		}
		out, err := MovingAverage(flux, DefaultWidth, DefaultPasses)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(out) != n {
			t.Fatalf("len = %d, want %d", len(out), n)
		}
		testutil.RequireFinite(t, out)
	}
}

func TestMovingAverageConstant(t *testing.T) {
	flux := synth.Flat(3.5, 100)

	out, err := MovingAverage(flux, 7, 3)
	if err != nil {
		t.Fatalf("MovingAverage: %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, out, flux, 1e-12)
}

func TestMovingAverageSinglePass(t *testing.T) {
	flux := []float64{0, 0, 0, 7, 0, 0, 0, 0}

	out, err := MovingAverage(flux, 3, 1)
	if err != nil {
		t.Fatalf("MovingAverage: %v", err)
	}

	want := []float64{0, 0, 7.0 / 3, 7.0 / 3, 7.0 / 3, 0, 0, 0}
	testutil.RequireSliceNearlyEqual(t, out, want, 1e-12)
}

func TestMovingAverageReflectsEdges(t *testing.T) {
	// Mirror padding of a ramp keeps the ramp away from the edges and bends it
	// symmetrically at them.
	flux := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	out, err := MovingAverage(flux, 3, 1)
	if err != nil {
		t.Fatalf("MovingAverage: %v", err)
	}

	if math.Abs(out[0]-2.0/3) > 1e-12 {
		t.Fatalf("out[0] = %v, want 2/3", out[0])
	}
	if math.Abs(out[9]-(8+9+8)/3.0) > 1e-12 {
		t.Fatalf("out[9] = %v, want 25/3", out[9])
	}
	for i := 1; i < 9; i++ {
		if math.Abs(out[i]-float64(i)) > 1e-12 {
			t.Fatalf("out[%d] = %v, want %d", i, out[i], i)
		}
	}
}

func TestMovingAverageDoesNotModifyInput(t *testing.T) {
	flux := []float64{1, 5, 1, 5, 1, 5, 1, 5, 1, 5}
	orig := append([]float64(nil), flux...)

	if _, err := MovingAverage(flux, 3, 2); err != nil {
		t.Fatalf("MovingAverage: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, flux, orig, 0)
}

func TestMovingAverageErrors(t *testing.T) {
	tests := []struct {
		name   string
		n      int
		width  int
		passes int
		want   error
	}{
		{name: "even width", n: 20, width: 4, passes: 1, want: ErrInvalidWidth},
		{name: "width one", n: 20, width: 1, passes: 1, want: ErrInvalidWidth},
		{name: "no passes", n: 20, width: 3, passes: 0, want: ErrInvalidPasses},
		{name: "degenerate", n: 7, width: 7, passes: 1, want: ErrDegenerateWindow},
		{name: "empty", n: 0, width: 3, passes: 1, want: ErrDegenerateWindow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MovingAverage(make([]float64, tt.n), tt.width, tt.passes)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
