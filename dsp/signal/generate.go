// Package signal generates deterministic test material: tones, coloured
// noise and noise mixed into a signal at a chosen signal-to-noise ratio.
package signal

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"math/rand"
	"strings"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-denoise/dsp/core"
	timestats "github.com/cwbudde/algo-denoise/stats/time"
)

// Errors returned by the generators.
var (
	ErrInvalidLength  = errors.New("signal: samples must be > 0")
	ErrUnknownNoise   = errors.New("signal: unknown noise type")
	ErrSilentNoise    = errors.New("signal: noise has zero power")
	ErrLengthMismatch = errors.New("signal: signal and noise lengths differ")
)

// NoiseType selects a noise colour.
type NoiseType int

const (
	NoiseWhite NoiseType = iota
	NoisePink
	NoiseBrown
	NoiseUniform
)

var noiseNames = map[NoiseType]string{
	NoiseWhite:   "white",
	NoisePink:    "pink",
	NoiseBrown:   "brown",
	NoiseUniform: "uniform",
}

// String returns the lower-case noise name.
func (t NoiseType) String() string {
	if name, ok := noiseNames[t]; ok {
		return name
	}

	return fmt.Sprintf("noise(%d)", int(t))
}

// ParseNoiseType resolves a noise name. "random" is accepted for uniform.
func ParseNoiseType(name string) (NoiseType, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "random" {
		return NoiseUniform, nil
	}

	for t, n := range noiseNames {
		if n == key {
			return t, nil
		}
	}

	return NoiseWhite, fmt.Errorf("%w: %q", ErrUnknownNoise, name)
}

// Generator creates deterministic signals from a shared configuration.
// Every noise call starts from the configured seed.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator with the given processor options.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return NewGeneratorWithOptions(opts)
}

// NewGeneratorWithOptions creates a generator with processor and
// generator options.
func NewGeneratorWithOptions(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Config returns the processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// SetSeed replaces the noise seed.
func (g *Generator) SetSeed(seed int64) {
	g.seed = seed
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 {
	return g.seed
}

func (g *Generator) rng() *rand.Rand {
	return rand.New(rand.NewSource(g.seed))
}

// Sine generates a sine wave starting at phase 0.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}

	if g.cfg.SampleRate <= 0 {
		return nil, fmt.Errorf("signal: sample rate must be > 0: %f", g.cfg.SampleRate)
	}

	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate

	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}

	return out, nil
}

// WhiteNoise generates zero-mean Gaussian noise with standard deviation
// sigma.
func (g *Generator) WhiteNoise(sigma float64, samples int) ([]float64, error) {
	if err := checkNoise(sigma, samples); err != nil {
		return nil, err
	}

	rng := g.rng()

	out := make([]float64, samples)
	for i := range out {
		out[i] = rng.NormFloat64() * sigma
	}

	return out, nil
}

// UniformNoise generates noise uniformly distributed in [0, amplitude).
func (g *Generator) UniformNoise(amplitude float64, samples int) ([]float64, error) {
	if err := checkNoise(amplitude, samples); err != nil {
		return nil, err
	}

	rng := g.rng()

	out := make([]float64, samples)
	for i := range out {
		out[i] = rng.Float64() * amplitude
	}

	return out, nil
}

// PinkNoise generates 1/f noise with the Voss-McCartney algorithm using
// ceil(log2(samples)) rows, normalised to peak amplitude.
func (g *Generator) PinkNoise(amplitude float64, samples int) ([]float64, error) {
	if err := checkNoise(amplitude, samples); err != nil {
		return nil, err
	}

	rng := g.rng()
	rows := max(1, bits.Len(uint(samples-1)))
	values := make([]float64, rows)

	var sum float64
	for r := range values {
		values[r] = rng.NormFloat64()
		sum += values[r]
	}

	out := make([]float64, samples)
	for i := range out {
		// Row r is redrawn every 2^r samples: the row to update is the
		// number of trailing zeros of the sample counter.
		if i > 0 {
			r := min(bits.TrailingZeros(uint(i)), rows-1)
			sum -= values[r]
			values[r] = rng.NormFloat64()
			sum += values[r]
		}

		out[i] = sum + rng.NormFloat64()
	}

	return Normalize(out, amplitude)
}

// BrownNoise generates integrated Gaussian noise normalised to peak
// amplitude.
func (g *Generator) BrownNoise(amplitude float64, samples int) ([]float64, error) {
	if err := checkNoise(amplitude, samples); err != nil {
		return nil, err
	}

	rng := g.rng()

	out := make([]float64, samples)

	var acc float64
	for i := range out {
		acc += rng.NormFloat64()
		out[i] = acc
	}

	return Normalize(out, amplitude)
}

// Noise generates noise of the given type. level is the standard deviation
// for white noise and the peak amplitude otherwise.
func (g *Generator) Noise(t NoiseType, level float64, samples int) ([]float64, error) {
	switch t {
	case NoiseWhite:
		return g.WhiteNoise(level, samples)
	case NoisePink:
		return g.PinkNoise(level, samples)
	case NoiseBrown:
		return g.BrownNoise(level, samples)
	case NoiseUniform:
		return g.UniformNoise(level, samples)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownNoise, t)
	}
}

func checkNoise(level float64, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLength, samples)
	}

	if level < 0 {
		return fmt.Errorf("signal: noise level must be >= 0: %f", level)
	}

	return nil
}

// MixAtSNR returns x plus noise scaled so that the ratio of the mean power
// of x to that of the scaled noise equals snrDB.
func MixAtSNR(x, noise []float64, snrDB float64) ([]float64, error) {
	if len(x) != len(noise) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(x), len(noise))
	}

	if len(x) == 0 {
		return nil, ErrInvalidLength
	}

	noisePower := timestats.Power(noise)
	if noisePower == 0 {
		return nil, ErrSilentNoise
	}

	signalPower := timestats.Power(x)
	gain := math.Sqrt(signalPower / (noisePower * math.Pow(10, snrDB/10)))

	out := make([]float64, len(x))
	vecmath.ScaleBlock(out, noise, gain)
	vecmath.AddBlockInPlace(out, x)

	return out, nil
}

// Normalize scales data to the target peak and returns a new slice.
// Silent input stays silent.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("signal: target peak must be >= 0: %f", targetPeak)
	}

	if len(data) == 0 {
		return nil, ErrInvalidLength
	}

	out := core.PeakNormalize(data)
	vecmath.ScaleBlockInPlace(out, targetPeak)

	return out, nil
}
