package compare

import (
	"github.com/cwbudde/algo-denoise/dsp/core"
	frequencystats "github.com/cwbudde/algo-denoise/stats/frequency"
)

// DefaultRolloffPercent is the energy fraction used for the rolloff
// descriptor.
const DefaultRolloffPercent = 0.85

// Config defines the short-time analysis used by Extract.
type Config struct {
	core.ProcessorConfig
	// Amin floors the power spectrum before the flatness logarithm.
	Amin float64
	// RolloffPercent is the energy fraction for the rolloff descriptor.
	RolloffPercent float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns 2048-sample frames with a 512-sample hop.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig: core.DefaultProcessorConfig(),
		Amin:            frequencystats.DefaultAmin,
		RolloffPercent:  DefaultRolloffPercent,
	}
}

// WithSampleRate sets the sample rate used by ExtractSamples. Extract
// always uses the waveform's own rate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFrameSize sets the STFT frame length; it must be a power of two.
func WithFrameSize(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.FrameSize = n
		}
	}
}

// WithHopSize sets the STFT hop.
func WithHopSize(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.HopSize = n
		}
	}
}

// WithAmin sets the power floor used by the flatness measure.
func WithAmin(amin float64) Option {
	return func(cfg *Config) {
		if amin > 0 {
			cfg.Amin = amin
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
