package fir

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-denoise/dsp/conv"
)

// ErrEmptyTaps is returned when a filter has no coefficients.
var ErrEmptyTaps = errors.New("fir: empty taps")

// Apply filters x with taps and zero initial state. The result has the
// length of x; the convolution tail is discarded.
func Apply(taps, x []float64) ([]float64, error) {
	if len(taps) == 0 {
		return nil, ErrEmptyTaps
	}

	if len(x) == 0 {
		return []float64{}, nil
	}

	y, err := conv.Convolve(x, taps)
	if err != nil {
		return nil, fmt.Errorf("fir: %w", err)
	}

	return y[:len(x)], nil
}

// Filter is a direct-form FIR filter. The delay line is stored twice so
// the current history is always one contiguous window for the dot product.
type Filter struct {
	coeffs   []float64
	reversed []float64
	delay    []float64
	pos      int
}

// New creates a filter from coeffs, which are copied. A nil or empty
// coefficient set yields a filter that outputs zeros.
func New(coeffs []float64) *Filter {
	n := len(coeffs)

	f := &Filter{
		coeffs:   make([]float64, n),
		reversed: make([]float64, n),
		delay:    make([]float64, 2*n),
	}

	copy(f.coeffs, coeffs)

	for k, c := range coeffs {
		f.reversed[n-1-k] = c
	}

	return f
}

// ProcessSample filters one input sample:
//
//	y[n] = sum_{k=0}^{N-1} h[k] * x[n-k]
func (f *Filter) ProcessSample(x float64) float64 {
	n := len(f.coeffs)
	if n == 0 {
		return 0
	}

	f.delay[f.pos] = x
	f.delay[f.pos+n] = x

	// delay[pos+1 : pos+1+n] runs from x[n-N+1] up to x[n].
	y := vecmath.DotProduct(f.reversed, f.delay[f.pos+1:f.pos+1+n])

	f.pos++
	if f.pos == n {
		f.pos = 0
	}

	return y
}

// Len returns the number of taps.
func (f *Filter) Len() int {
	return len(f.coeffs)
}

// Coefficients returns a copy of the filter coefficients.
func (f *Filter) Coefficients() []float64 {
	return append([]float64(nil), f.coeffs...)
}

// Response returns the complex frequency response H(e^{jw}) at freqHz.
func (f *Filter) Response(freqHz, sampleRate float64) complex128 {
	w := 2 * math.Pi * freqHz / sampleRate

	var h complex128
	for k, c := range f.coeffs {
		h += complex(c, 0) * cmplx.Exp(complex(0, -w*float64(k)))
	}

	return h
}

// MagnitudeDB returns the magnitude response in dB at freqHz. A zero
// response yields -Inf.
func (f *Filter) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(f.Response(freqHz, sampleRate)))
}
