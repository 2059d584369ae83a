// Package frequency computes spectral shape descriptors from one-sided
// spectra.
//
// The bin frequency of bin i in an n-bin spectrum is
//
//	f_i = i * sampleRate / (2 * (n - 1))
//
// which matches the bins of an even-length real transform.
package frequency

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// DefaultAmin is the power floor applied before taking logarithms in
// Flatness.
const DefaultAmin = 1e-10

// binFreq returns the frequency in Hz of bin i of an n-bin spectrum.
func binFreq(i int, sampleRate float64, n int) float64 {
	return float64(i) * sampleRate / float64(2*(n-1))
}

// Centroid returns the spectral centroid in Hz:
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
//
// A silent spectrum, or one with fewer than two bins, yields 0.
func Centroid(magnitude []float64, sampleRate float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	sum := vecmath.Sum(magnitude)
	if sum == 0 {
		return 0
	}

	var weighted float64
	for i, v := range magnitude {
		weighted += binFreq(i, sampleRate, n) * v
	}

	return weighted / sum
}

// Spread returns the magnitude-weighted standard deviation around the
// centroid in Hz.
func Spread(magnitude []float64, sampleRate float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	sum := vecmath.Sum(magnitude)
	if sum == 0 {
		return 0
	}

	cent := Centroid(magnitude, sampleRate)

	var weighted float64
	for i, v := range magnitude {
		d := binFreq(i, sampleRate, n) - cent
		weighted += d * d * v
	}

	return math.Sqrt(weighted / sum)
}

// Rolloff returns the frequency below which the fraction percent (0..1) of
// the spectral energy lies.
func Rolloff(magnitude []float64, sampleRate, percent float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	energy := vecmath.DotProduct(magnitude, magnitude)
	if energy == 0 {
		return 0
	}

	threshold := percent * energy

	var cum float64
	for i, v := range magnitude {
		cum += v * v
		if cum >= threshold {
			return binFreq(i, sampleRate, n)
		}
	}

	return binFreq(n-1, sampleRate, n)
}

// Flatness returns the spectral flatness of a power spectrum,
//
//	flatness = exp(mean(log S)) / mean(S),  S = max(power, amin)
//
// over all bins including DC. The floor keeps silent bins finite, so an
// all-zero spectrum yields 1. amin <= 0 selects DefaultAmin.
func Flatness(power []float64, amin float64) float64 {
	if len(power) == 0 {
		return 0
	}

	if amin <= 0 {
		amin = DefaultAmin
	}

	var sumLin, sumLog float64
	for _, p := range power {
		s := max(p, amin)
		sumLin += s
		sumLog += math.Log(s)
	}

	n := float64(len(power))

	return math.Exp(sumLog/n) / (sumLin / n)
}

// CentroidFrames returns the centroid of every frame.
func CentroidFrames(magnitudes [][]float64, sampleRate float64) []float64 {
	out := make([]float64, len(magnitudes))
	for t, mag := range magnitudes {
		out[t] = Centroid(mag, sampleRate)
	}

	return out
}

// FlatnessFrames returns the flatness of every power frame.
func FlatnessFrames(powers [][]float64, amin float64) []float64 {
	out := make([]float64, len(powers))
	for t, p := range powers {
		out[t] = Flatness(p, amin)
	}

	return out
}

// SpreadFrames returns the spectral spread of every frame.
func SpreadFrames(magnitudes [][]float64, sampleRate float64) []float64 {
	out := make([]float64, len(magnitudes))
	for t, mag := range magnitudes {
		out[t] = Spread(mag, sampleRate)
	}

	return out
}

// RolloffFrames returns the rolloff frequency of every frame.
func RolloffFrames(magnitudes [][]float64, sampleRate, percent float64) []float64 {
	out := make([]float64, len(magnitudes))
	for t, mag := range magnitudes {
		out[t] = Rolloff(mag, sampleRate, percent)
	}

	return out
}
