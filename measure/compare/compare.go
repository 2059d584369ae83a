// Package compare measures how far two recordings are apart spectrally.
//
// [Extract] reduces a waveform to a per-frame spectral centroid sequence
// and a mean spectral flatness. [CompareProperties] turns two such
// summaries into symmetric percentage differences bounded to [0, 100].
package compare

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/dsp/spectrum"
	"github.com/cwbudde/algo-denoise/dsp/waveform"
	frequencystats "github.com/cwbudde/algo-denoise/stats/frequency"
)

// Properties summarises the spectral character of a recording.
type Properties struct {
	// Centroids holds the spectral centroid of every frame in Hz.
	Centroids []float64
	// Flatness is the spectral flatness averaged over frames.
	Flatness float64
	// Rolloff is the mean rolloff frequency in Hz.
	Rolloff float64
	// Spread is the mean spectral spread around the centroid in Hz.
	Spread     float64
	SampleRate float64
}

// MeanCentroid returns the average centroid over all frames.
func (p Properties) MeanCentroid() float64 {
	if len(p.Centroids) == 0 {
		return 0
	}

	return stat.Mean(p.Centroids, nil)
}

// Result holds percentage differences between two recordings.
type Result struct {
	CentroidDiff float64
	MeanDiff     float64
}

// Extract computes the spectral properties of w. Multichannel input is
// averaged to mono first.
func Extract(w waveform.Waveform, opts ...Option) (Properties, error) {
	if err := w.Validate(); err != nil {
		return Properties{}, err
	}

	opts = append(opts[:len(opts):len(opts)], WithSampleRate(float64(w.SampleRate)))

	return ExtractSamples(w.Mono(), opts...)
}

// ExtractSamples computes the spectral properties of a mono signal at the
// configured sample rate.
func ExtractSamples(x []float64, opts ...Option) (Properties, error) {
	cfg := ApplyOptions(opts...)

	spec, err := spectrum.STFT(x,
		spectrum.WithFrameSize(cfg.FrameSize),
		spectrum.WithHopSize(cfg.HopSize))
	if err != nil {
		return Properties{}, fmt.Errorf("compare: %w", err)
	}

	mags := spec.Magnitudes()

	return Properties{
		Centroids:  frequencystats.CentroidFrames(mags, cfg.SampleRate),
		Flatness:   stat.Mean(frequencystats.FlatnessFrames(spec.Powers(), cfg.Amin), nil),
		Rolloff:    stat.Mean(frequencystats.RolloffFrames(mags, cfg.SampleRate, cfg.RolloffPercent), nil),
		Spread:     stat.Mean(frequencystats.SpreadFrames(mags, cfg.SampleRate), nil),
		SampleRate: cfg.SampleRate,
	}, nil
}

// CompareProperties returns
//
//	CentroidDiff = mean_i(|cA_i − cB_i| / max(cA_i + cB_i, ε)) · 100
//	MeanDiff     = |fA − fB| / max(fA + fB, ε) · 100
//
// over the common prefix of the two centroid sequences, with ε = 1e-10.
// The result is symmetric in a and b.
func CompareProperties(a, b Properties) Result {
	n := min(len(a.Centroids), len(b.Centroids))

	var centroidDiff float64
	if n > 0 {
		ratios := make([]float64, n)
		for i := range ratios {
			ratios[i] = relativeDiff(a.Centroids[i], b.Centroids[i])
		}

		centroidDiff = floats.Sum(ratios) / float64(n) * 100
	}

	return Result{
		CentroidDiff: centroidDiff,
		MeanDiff:     relativeDiff(a.Flatness, b.Flatness) * 100,
	}
}

// Compare extracts the properties of both waveforms and compares them.
func Compare(a, b waveform.Waveform, opts ...Option) (Result, error) {
	pa, err := Extract(a, opts...)
	if err != nil {
		return Result{}, fmt.Errorf("compare: first input: %w", err)
	}

	pb, err := Extract(b, opts...)
	if err != nil {
		return Result{}, fmt.Errorf("compare: second input: %w", err)
	}

	return CompareProperties(pa, pb), nil
}

func relativeDiff(x, y float64) float64 {
	return core.SafeRatio(math.Abs(x-y), x+y, core.DefaultEpsilon)
}
