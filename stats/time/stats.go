// Package time measures the level of a signal in the time domain and the
// error of a processed signal against its reference.
package time

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-denoise/dsp/core"
)

var ErrLengthMismatch = errors.New("time: signal lengths differ")

// Level holds the level figures of a signal.
//
//nolint:revive
type Level struct {
	Length         int
	DC             float64
	RMS            float64
	RMS_dB         float64
	Peak           float64
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	ZeroCrossings  int
}

// AmpTodB converts an amplitude to decibels, -Inf for zero.
func AmpTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// Measure computes every Level field. Empty input yields zero levels and
// -Inf decibel values.
func Measure(signal []float64) Level {
	rms := RMS(signal)
	peak := Peak(signal)
	crest := CrestFactor(signal)

	crestDB := math.Inf(-1)
	if crest > 0 {
		crestDB = 20 * math.Log10(crest)
	}

	return Level{
		Length:         len(signal),
		DC:             core.Mean(signal),
		RMS:            rms,
		RMS_dB:         AmpTodB(rms),
		Peak:           peak,
		Peak_dB:        AmpTodB(peak),
		CrestFactor:    crest,
		CrestFactor_dB: crestDB,
		ZeroCrossings:  ZeroCrossings(signal),
	}
}

// Power returns the mean square of the signal.
func Power(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return vecmath.DotProduct(signal, signal) / float64(len(signal))
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	return math.Sqrt(Power(signal))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	return core.Peak(signal)
}

// CrestFactor returns peak / RMS, or 0 for a silent signal.
func CrestFactor(signal []float64) float64 {
	r := RMS(signal)
	if r == 0 {
		return 0
	}

	return Peak(signal) / r
}

// ZeroCrossings counts sign changes between consecutive samples.
func ZeroCrossings(signal []float64) int {
	var count int

	for i := 1; i < len(signal); i++ {
		if signal[i-1]*signal[i] < 0 {
			count++
		}
	}

	return count
}

// SNR returns 10·log10(Σref² / Σ(ref−est)²) in dB. An exact estimate
// gives +Inf.
func SNR(reference, estimate []float64) (float64, error) {
	if len(reference) != len(estimate) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(reference), len(estimate))
	}

	residual := make([]float64, len(reference))
	vecmath.ScaleBlock(residual, estimate, -1)
	vecmath.AddBlockInPlace(residual, reference)

	noise := vecmath.DotProduct(residual, residual)
	if noise == 0 {
		return math.Inf(1), nil
	}

	return 10 * math.Log10(vecmath.DotProduct(reference, reference)/noise), nil
}
