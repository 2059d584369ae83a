package wiener

import (
	"math"

	"github.com/cwbudde/algo-denoise/dsp/spectrum"
)

// noiseExponent is applied to the weighted-sum difference in NoisePSD.
const noiseExponent = 1.5

// NoisePSD derives a flat noise-floor curve from a PSD estimate.
//
// With f[i] the bin frequencies and N the bin count it computes
//
//	s1 = Σ psd[i]·sin(2π·f[i]·i/N)
//	s2 = Σ psd[i]·cos(2π·f[i]·i/N)
//
// and returns |s1−s2|^1.5 in every bin. This is a heuristic, not a noise
// model; the weighting and exponent are kept as is so existing results
// stay reproducible.
func NoisePSD(psd spectrum.PSD) []float64 {
	n := psd.Len()
	if n == 0 {
		return nil
	}

	var s1, s2 float64
	for i, p := range psd.Power {
		phase := 2 * math.Pi * psd.Freqs[i] * float64(i) / float64(n)
		s1 += p * math.Sin(phase)
		s2 += p * math.Cos(phase)
	}

	level := math.Pow(math.Abs(s1-s2), noiseExponent)

	noise := make([]float64, n)
	for i := range noise {
		noise[i] = level
	}

	return noise
}
