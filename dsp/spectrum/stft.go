package spectrum

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-denoise/dsp/window"
)

// Short-time transform defaults.
const (
	DefaultFrameSize = 2048
	DefaultHopSize   = 512
)

// Spectrogram holds the one-sided bins of a short-time Fourier transform.
// Frames[t][k] is bin k of frame t; every frame has FrameSize/2+1 bins.
type Spectrogram struct {
	Frames    [][]complex128
	FrameSize int
	HopSize   int
}

// NumFrames returns the number of frames.
func (s Spectrogram) NumFrames() int { return len(s.Frames) }

// NumBins returns the bins per frame.
func (s Spectrogram) NumBins() int { return s.FrameSize/2 + 1 }

// Magnitudes returns |X| per frame.
func (s Spectrogram) Magnitudes() [][]float64 {
	out := make([][]float64, len(s.Frames))
	for t, frame := range s.Frames {
		out[t] = Magnitude(frame)
	}

	return out
}

// Powers returns |X|^2 per frame.
func (s Spectrogram) Powers() [][]float64 {
	out := make([][]float64, len(s.Frames))
	for t, frame := range s.Frames {
		out[t] = Power(frame)
	}

	return out
}

// STFTOption configures STFT.
type STFTOption func(*stftConfig)

type stftConfig struct {
	frameSize int
	hopSize   int
	window    window.Type
	center    bool
}

// WithFrameSize sets the frame length. It must be a power of two.
func WithFrameSize(n int) STFTOption {
	return func(c *stftConfig) {
		c.frameSize = n
	}
}

// WithHopSize sets the distance between frame starts.
func WithHopSize(n int) STFTOption {
	return func(c *stftConfig) {
		c.hopSize = n
	}
}

// WithFrameWindow selects the frame window. The periodic form is used.
func WithFrameWindow(t window.Type) STFTOption {
	return func(c *stftConfig) {
		c.window = t
	}
}

// WithoutCentering starts the first frame at sample 0 instead of centring
// it on sample 0.
func WithoutCentering() STFTOption {
	return func(c *stftConfig) {
		c.center = false
	}
}

// STFT computes the short-time Fourier transform of x.
//
// By default frames are 2048 samples with a hop of 512 and a periodic Hann
// window, and the signal is zero-padded by FrameSize/2 on each side so that
// frame t is centred on sample t*HopSize. The centred transform yields
// 1 + len(x)/HopSize frames.
func STFT(x []float64, opts ...STFTOption) (Spectrogram, error) {
	cfg := stftConfig{
		frameSize: DefaultFrameSize,
		hopSize:   DefaultHopSize,
		window:    window.TypeHann,
		center:    true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(x) == 0 {
		return Spectrogram{}, ErrEmptyInput
	}

	if cfg.frameSize < 2 || cfg.frameSize&(cfg.frameSize-1) != 0 {
		return Spectrogram{}, fmt.Errorf("%w: frame size %d is not a power of two", ErrInvalidSize, cfg.frameSize)
	}

	if cfg.hopSize <= 0 {
		return Spectrogram{}, fmt.Errorf("%w: hop size %d", ErrInvalidSize, cfg.hopSize)
	}

	n := cfg.frameSize
	offset := 0

	padded := len(x)
	if cfg.center {
		offset = n / 2
		padded += n
	}

	padded = max(padded, n)
	frames := 1 + (padded-n)/cfg.hopSize

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return Spectrogram{}, fmt.Errorf("spectrum: failed to create FFT plan: %w", err)
	}

	win := window.Generate(cfg.window, n, window.WithPeriodic())
	buf := make([]complex128, n)
	spec := make([]complex128, n)

	out := Spectrogram{
		Frames:    make([][]complex128, frames),
		FrameSize: n,
		HopSize:   cfg.hopSize,
	}

	for t := range frames {
		// Sample i of the frame reads x[start+i]; positions outside x are
		// the zero padding.
		start := t*cfg.hopSize - offset
		for i := range buf {
			var v float64
			if j := start + i; j >= 0 && j < len(x) {
				v = x[j]
			}

			buf[i] = complex(v*win[i], 0)
		}

		if err := plan.Forward(spec, buf); err != nil {
			return Spectrogram{}, fmt.Errorf("spectrum: forward FFT failed: %w", err)
		}

		out.Frames[t] = append([]complex128(nil), spec[:n/2+1]...)
	}

	return out, nil
}
