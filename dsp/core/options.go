package core

// ProcessorConfig defines the sample rate and short-time framing shared by
// analysis stages.
type ProcessorConfig struct {
	SampleRate float64
	FrameSize  int
	HopSize    int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the analysis defaults: 44.1 kHz, 2048-sample
// frames and a quarter-frame hop.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 44100,
		FrameSize:  2048,
		HopSize:    512,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithFrameSize sets the analysis frame length in samples.
func WithFrameSize(frameSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if frameSize > 0 {
			cfg.FrameSize = frameSize
		}
	}
}

// WithHopSize sets the distance between consecutive frames in samples.
func WithHopSize(hopSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if hopSize > 0 {
			cfg.HopSize = hopSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
