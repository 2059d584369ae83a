package wiener

import (
	"fmt"

	"github.com/cwbudde/algo-denoise/dsp/spectrum"
)

// Gain returns the per-bin Wiener gain psd/(psd+noise). Bins where both
// are zero get gain 0.
func Gain(psd, noise []float64) ([]float64, error) {
	if len(psd) != len(noise) {
		return nil, fmt.Errorf("%w: psd has %d bins, noise has %d", ErrLengthMismatch, len(psd), len(noise))
	}

	h := make([]float64, len(psd))
	for i, p := range psd {
		if den := p + noise[i]; den != 0 {
			h[i] = p / den
		}
	}

	return h, nil
}

// TapsFromPSD designs len(psd) FIR taps from the Wiener gain. The gain is
// read as a one-sided spectrum and inverted with a length-N real inverse
// transform, so only its first N/2+1 bins contribute.
func TapsFromPSD(psd, noise []float64) ([]float64, error) {
	if len(psd) == 0 {
		return nil, ErrEmptyPSD
	}

	h, err := Gain(psd, noise)
	if err != nil {
		return nil, err
	}

	bins := make([]complex128, len(h))
	for i, g := range h {
		bins[i] = complex(g, 0)
	}

	taps, err := spectrum.InverseReal(bins, len(h))
	if err != nil {
		return nil, fmt.Errorf("wiener: %w", err)
	}

	return taps, nil
}
