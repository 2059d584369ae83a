// Package fir applies finite impulse response filters.
//
// [Apply] filters a whole buffer with zero initial state, y[n] =
// sum_k h[k]*x[n-k], producing exactly len(x) samples. It runs through
// dsp/conv, so long tap sets such as designed Wiener filters go through
// FFT overlap-add.
//
// [Filter] is the streaming form with a delay line. It produces the same
// output sample by sample and exposes the frequency response of its taps.
package fir
