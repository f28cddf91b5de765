// Package conv provides the convolution routines behind spectrum smoothing and
// noise estimation.
//
//   - Direct convolution: O(N*M) time-domain convolution for short kernels
//   - Overlap-add (OLA): FFT-based block convolution for long kernels
//
// [Convolve] selects between the two by kernel length (direct up to 64 taps).
// [ConvolveValid] keeps only the part where the signals fully overlap.
//
// # Running means
//
// [BoxFilter] is the uniform-kernel running mean used throughout the line
// detector. It mirror-extends the input without repeating the edge samples
// and keeps the valid part of the convolution, so the output stays aligned
// with the input:
//
//	smoothed, err := conv.BoxFilter(flux, 7)
package conv
