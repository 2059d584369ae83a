package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/dsp/window"
)

// DefaultSegmentSize is the Welch segment length used when none is
// configured.
const DefaultSegmentSize = 256

// PSD is a one-sided power spectral density estimate.
type PSD struct {
	// Freqs holds the bin centre frequencies in Hz.
	Freqs []float64
	// Power holds the density in units²/Hz. len(Power) == SegmentSize/2+1.
	Power []float64
	// SegmentSize is the segment length actually used, which is smaller
	// than the configured one for short signals.
	SegmentSize int
	SampleRate  float64
}

// Len returns the number of frequency bins.
func (p PSD) Len() int { return len(p.Power) }

// WelchOption configures Welch.
type WelchOption func(*welchConfig)

type welchConfig struct {
	segmentSize     int
	segmentDuration float64
	window          window.Type
}

// WithSegmentSize sets the segment length in samples.
func WithSegmentSize(n int) WelchOption {
	return func(c *welchConfig) {
		if n > 0 {
			c.segmentSize = n
			c.segmentDuration = 0
		}
	}
}

// WithSegmentDuration derives the segment length from the sample rate,
// rounding seconds*sampleRate to the nearest sample.
func WithSegmentDuration(seconds float64) WelchOption {
	return func(c *welchConfig) {
		if seconds > 0 {
			c.segmentDuration = seconds
		}
	}
}

// WithWindow selects the segment window. The periodic form is used.
func WithWindow(t window.Type) WelchOption {
	return func(c *welchConfig) {
		c.window = t
	}
}

// Welch estimates the power spectral density of x with Welch's method:
// periodic-Hann windowed segments with 50% overlap, each detrended by its
// mean, scaled to a one-sided density and averaged.
func Welch(x []float64, sampleRate float64, opts ...WelchOption) (PSD, error) {
	if len(x) == 0 {
		return PSD{}, ErrEmptyInput
	}

	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return PSD{}, fmt.Errorf("%w: %v", ErrInvalidSampleRate, sampleRate)
	}

	cfg := welchConfig{segmentSize: DefaultSegmentSize, window: window.TypeHann}
	for _, opt := range opts {
		opt(&cfg)
	}

	size := cfg.segmentSize
	if cfg.segmentDuration > 0 {
		size = max(1, int(math.Round(cfg.segmentDuration*sampleRate)))
	}

	size = min(size, len(x))
	step := size - size/2
	segments := (len(x)-size)/step + 1

	win := window.Generate(cfg.window, size, window.WithPeriodic())

	powerSum := window.PowerSum(win)
	if powerSum == 0 {
		return PSD{}, fmt.Errorf("%w: zero-energy window of size %d", ErrInvalidSize, size)
	}

	scale := 1 / (sampleRate * powerSum)

	fft := fourier.NewFFT(size)
	seg := make([]float64, size)
	coeffs := make([]complex128, size/2+1)
	power := make([]float64, size/2+1)
	acc := make([]float64, size/2+1)

	for s := range segments {
		start := s * step
		copy(seg, x[start:start+size])

		mean := core.Mean(seg)
		for i := range seg {
			seg[i] = (seg[i] - mean) * win[i]
		}

		fft.Coefficients(coeffs, seg)
		PowerTo(power, coeffs)

		for i, p := range power {
			acc[i] += p
		}
	}

	norm := scale / float64(segments)
	for i := range acc {
		acc[i] *= norm
	}

	// One-sided density: fold the negative frequencies onto the interior
	// bins. DC and, for even sizes, Nyquist have no mirror.
	last := len(acc)
	if size%2 == 0 {
		last--
	}

	for i := 1; i < last; i++ {
		acc[i] *= 2
	}

	return PSD{
		Freqs:       BinFrequencies(size, sampleRate),
		Power:       acc,
		SegmentSize: size,
		SampleRate:  sampleRate,
	}, nil
}
