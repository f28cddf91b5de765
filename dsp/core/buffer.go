package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Negate returns a new slice holding -x[i].
func Negate(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = -v
	}
	return out
}

// ReflectIndex maps an out-of-range index onto [0, n) by mirroring about the
// first and last samples without repeating them:
//
//	... 2 1 | 0 1 2 3 4 | 3 2 ...
//
// Indices any distance outside the range fold repeatedly.
func ReflectIndex(i, n int) int {
	if n <= 1 {
		return 0
	}
	period := 2*n - 2
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}

// ReflectPad returns x extended by left samples before and right samples after,
// mirrored with ReflectIndex. The samples of x occupy out[left:left+len(x)].
func ReflectPad(x []float64, left, right int) []float64 {
	return ReflectPadTo(nil, x, left, right)
}

// ReflectPadTo is ReflectPad writing into dst, reusing its capacity.
func ReflectPadTo(dst, x []float64, left, right int) []float64 {
	if left < 0 {
		left = 0
	}
	if right < 0 {
		right = 0
	}
	n := len(x)
	dst = EnsureLen(dst, n+left+right)
	if n == 0 {
		return dst[:0]
	}
	for i := range dst {
		dst[i] = x[ReflectIndex(i-left, n)]
	}
	return dst
}

// ReflectPadOdd is ReflectPad with point reflection: a sample mirrored across
// an edge is reflected through the edge value as well (2*x[edge] - x[mirror]).
// Linear trends continue unchanged into the padding; repeated folds keep
// adding the end-to-end rise of x.
func ReflectPadOdd(x []float64, left, right int) []float64 {
	if left < 0 {
		left = 0
	}
	if right < 0 {
		right = 0
	}
	n := len(x)
	if n == 0 {
		return []float64{}
	}
	out := make([]float64, n+left+right)
	if n == 1 {
		for i := range out {
			out[i] = x[0]
		}
		return out
	}

	period := 2*n - 2
	rise := 2 * (x[n-1] - x[0])
	for i := range out {
		j := i - left
		q := j / period
		if j%period < 0 {
			q--
		}
		t := j - q*period

		v := x[min(t, n-1)]
		if t >= n {
			v = 2*x[n-1] - x[period-t]
		}
		out[i] = v + float64(q)*rise
	}
	return out
}
