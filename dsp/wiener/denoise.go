package wiener

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/dsp/filter/fir"
	"github.com/cwbudde/algo-denoise/dsp/spectrum"
	"github.com/cwbudde/algo-denoise/dsp/waveform"
)

// Errors returned by the denoisers.
var (
	ErrEmptyInput     = errors.New("wiener: empty input")
	ErrEmptyPSD       = errors.New("wiener: empty PSD")
	ErrLengthMismatch = errors.New("wiener: length mismatch")
	ErrInvalidOrder   = errors.New("wiener: order must be >= 1")
	ErrUnknownMethod  = errors.New("wiener: unknown method")
	ErrFactorization  = errors.New("wiener: SVD factorization failed")
)

// Method selects a Wiener design.
type Method int

const (
	// FrequencyDomain designs taps from the Welch PSD and a noise floor.
	FrequencyDomain Method = iota
	// Autocorrelation solves the autocorrelation system by least squares.
	Autocorrelation
)

// String returns the short method name.
func (m Method) String() string {
	switch m {
	case FrequencyDomain:
		return "freq"
	case Autocorrelation:
		return "autocorr"
	default:
		return fmt.Sprintf("method(%d)", int(m))
	}
}

// ParseMethod resolves "freq" or "autocorr" and their long forms.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "freq", "frequency", "wiener":
		return FrequencyDomain, nil
	case "autocorr", "autocorrelation", "lib":
		return Autocorrelation, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
	}
}

// Denoise applies the selected design to every channel of w and returns a
// new waveform of the same shape. Stereo channels are processed
// concurrently and independently.
func Denoise(ctx context.Context, w waveform.Waveform, method Method, opts ...Option) (waveform.Waveform, error) {
	cfg := applyOptions(opts)

	var fn waveform.ChannelFunc

	switch method {
	case FrequencyDomain:
		fn = cfg.frequencyDomain
	case Autocorrelation:
		if cfg.order < 1 {
			return waveform.Waveform{}, fmt.Errorf("%w: %d", ErrInvalidOrder, cfg.order)
		}

		fn = cfg.autocorrelation
	default:
		return waveform.Waveform{}, fmt.Errorf("%w: %v", ErrUnknownMethod, method)
	}

	cfg.logger.Debug("denoising",
		zap.Stringer("method", method),
		zap.Int("channels", w.NumChannels()),
		zap.Int("samples", w.Len()),
		zap.Int("sample_rate", w.SampleRate))

	return waveform.Apply(ctx, w, fn)
}

// DenoiseChannel applies the selected design to a single channel.
func DenoiseChannel(x []float64, sampleRate int, method Method, opts ...Option) ([]float64, error) {
	w, err := waveform.New(sampleRate, x)
	if err != nil {
		return nil, err
	}

	out, err := Denoise(context.Background(), w, method, opts...)
	if err != nil {
		return nil, err
	}

	return out.Channels[0], nil
}

func (c config) frequencyDomain(_ context.Context, sampleRate int, x []float64) ([]float64, error) {
	normalized := core.PeakNormalize(x)

	taps, err := c.frequencyTaps(normalized, sampleRate)
	if err != nil {
		return nil, err
	}

	return fir.Apply(taps, normalized)
}

func (c config) autocorrelation(_ context.Context, _ int, x []float64) ([]float64, error) {
	sol, err := c.solve(x, c.order)
	if err != nil {
		return nil, err
	}

	return fir.Apply(sol.Taps, x)
}

func (c config) frequencyTaps(normalized []float64, sampleRate int) ([]float64, error) {
	psd, err := spectrum.Welch(normalized, float64(sampleRate), c.welchOptions()...)
	if err != nil {
		return nil, fmt.Errorf("wiener: %w", err)
	}

	return TapsFromPSD(psd.Power, NoisePSD(psd))
}

// DesignTaps returns the FIR taps the selected method would apply to x
// without filtering. Frequency-domain taps are designed on the
// peak-normalised signal.
func DesignTaps(x []float64, sampleRate int, method Method, opts ...Option) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	c := applyOptions(opts)
	c.logger.Debug("designing taps",
		zap.Stringer("method", method),
		zap.Int("samples", len(x)),
		zap.Int("sample_rate", sampleRate))

	switch method {
	case FrequencyDomain:
		if sampleRate <= 0 {
			return nil, fmt.Errorf("%w: sample rate %d", waveform.ErrSampleRate, sampleRate)
		}

		return c.frequencyTaps(core.PeakNormalize(x), sampleRate)
	case Autocorrelation:
		sol, err := c.solve(x, c.order)
		if err != nil {
			return nil, err
		}

		return sol.Taps, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, method)
	}
}
