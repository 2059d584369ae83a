package wiener

import (
	"go.uber.org/zap"

	"github.com/cwbudde/algo-denoise/dsp/spectrum"
)

// Filter orders of the autocorrelation design. Each channel solves a dense
// order×order system by SVD, so the cost grows with the cube of the order:
// DefaultOrder takes seconds per channel, ShortOrder is near free.
const (
	DefaultOrder = 1024
	ShortOrder   = 10
)

// Option configures Denoise and SolveAutocorrelation. Options that do not
// apply to the selected method are ignored.
type Option func(*config)

type config struct {
	segmentSize     int
	segmentDuration float64
	order           int
	compensate      bool
	logger          *zap.Logger
}

func defaultConfig() config {
	return config{
		segmentSize: spectrum.DefaultSegmentSize,
		order:       DefaultOrder,
		compensate:  true,
		logger:      zap.NewNop(),
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithSegmentSize sets the Welch segment length of the frequency-domain
// design.
func WithSegmentSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.segmentSize = n
			c.segmentDuration = 0
		}
	}
}

// WithSegmentDuration derives the Welch segment length from the channel
// sample rate.
func WithSegmentDuration(seconds float64) Option {
	return func(c *config) {
		if seconds > 0 {
			c.segmentDuration = seconds
		}
	}
}

// WithOrder sets the filter order of the autocorrelation design. Doubling
// the order makes the per-channel SVD roughly eight times slower.
func WithOrder(order int) Option {
	return func(c *config) {
		c.order = order
	}
}

// WithoutNoiseCompensation solves the raw autocorrelation system without
// removing the white-noise floor from the zero-lag target.
func WithoutNoiseCompensation() Option {
	return func(c *config) {
		c.compensate = false
	}
}

// WithLogger sets the logger for solver diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func (c config) welchOptions() []spectrum.WelchOption {
	if c.segmentDuration > 0 {
		return []spectrum.WelchOption{spectrum.WithSegmentDuration(c.segmentDuration)}
	}

	return []spectrum.WelchOption{spectrum.WithSegmentSize(c.segmentSize)}
}
