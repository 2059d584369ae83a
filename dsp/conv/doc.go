// Package conv provides linear convolution and correlation of finite
// real-valued sequences.
//
// Two strategies are available:
//
//   - Direct convolution: O(N*M) time-domain evaluation, used for short kernels
//   - Overlap-add (OLA): FFT-based block convolution for long kernels
//
// [Convolve] selects between them by kernel length. Both produce the full
// linear convolution of length len(a)+len(b)-1.
//
// # Usage
//
//	y, err := conv.Convolve(signal, taps)    // full convolution
//	r, err := conv.AutoCorrelate(signal)     // lags -(N-1)..(N-1)
//	r, err := conv.AutoCorrelateLags(x, 10)  // lags 0..10
//
// Applying an FIR filter with zero initial state is convolution truncated to
// the input length:
//
//	y, _ := conv.Convolve(x, h)
//	y = y[:len(x)]
package conv
