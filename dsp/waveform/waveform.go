package waveform

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-denoise/dsp/core"
)

// Validation errors. Content problems wrap ErrInvalidInput; an
// unsupported channel count is reported separately.
var (
	ErrInvalidInput      = errors.New("waveform: invalid input")
	ErrEmpty             = fmt.Errorf("%w: no samples", ErrInvalidInput)
	ErrChannelLength     = fmt.Errorf("%w: channels differ in length", ErrInvalidInput)
	ErrSampleRate        = fmt.Errorf("%w: sample rate must be > 0", ErrInvalidInput)
	ErrUnsupportedLayout = errors.New("waveform: only mono and stereo are supported")
	ErrLengthMismatch    = errors.New("waveform: processed channel changed length")
)

// MaxChannels is the largest supported channel count.
const MaxChannels = 2

// Waveform is a block of audio with one sample slice per channel.
type Waveform struct {
	SampleRate int
	Channels   [][]float64
}

// New builds a waveform from channel slices, which are copied.
func New(sampleRate int, channels ...[]float64) (Waveform, error) {
	w := Waveform{SampleRate: sampleRate, Channels: make([][]float64, len(channels))}
	for i, ch := range channels {
		w.Channels[i] = core.Clone(ch)
	}

	if err := w.Validate(); err != nil {
		return Waveform{}, err
	}

	return w, nil
}

// FromInterleaved splits frame-interleaved samples into channels.
func FromInterleaved(sampleRate, numChannels int, samples []float64) (Waveform, error) {
	if numChannels < 1 || numChannels > MaxChannels {
		return Waveform{}, fmt.Errorf("%w: %d channels", ErrUnsupportedLayout, numChannels)
	}

	if len(samples)%numChannels != 0 {
		return Waveform{}, fmt.Errorf("%w: %d samples for %d channels", ErrChannelLength, len(samples), numChannels)
	}

	frames := len(samples) / numChannels
	w := Waveform{SampleRate: sampleRate, Channels: make([][]float64, numChannels)}

	for c := range w.Channels {
		ch := make([]float64, frames)
		for i := range ch {
			ch[i] = samples[i*numChannels+c]
		}

		w.Channels[c] = ch
	}

	if err := w.Validate(); err != nil {
		return Waveform{}, err
	}

	return w, nil
}

// Validate checks the layout and content invariants.
func (w Waveform) Validate() error {
	if n := len(w.Channels); n < 1 || n > MaxChannels {
		return fmt.Errorf("%w: %d channels", ErrUnsupportedLayout, n)
	}

	if w.SampleRate <= 0 {
		return fmt.Errorf("%w: got %d", ErrSampleRate, w.SampleRate)
	}

	n := len(w.Channels[0])
	if n == 0 {
		return ErrEmpty
	}

	for c, ch := range w.Channels[1:] {
		if len(ch) != n {
			return fmt.Errorf("%w: channel %d has %d samples, channel 0 has %d", ErrChannelLength, c+1, len(ch), n)
		}
	}

	return nil
}

// NumChannels returns the channel count.
func (w Waveform) NumChannels() int { return len(w.Channels) }

// Len returns the number of samples per channel.
func (w Waveform) Len() int {
	if len(w.Channels) == 0 {
		return 0
	}

	return len(w.Channels[0])
}

// Duration returns the length in seconds.
func (w Waveform) Duration() float64 {
	if w.SampleRate <= 0 {
		return 0
	}

	return float64(w.Len()) / float64(w.SampleRate)
}

// Interleaved returns the samples frame by frame.
func (w Waveform) Interleaved() []float64 {
	nc := len(w.Channels)
	out := make([]float64, w.Len()*nc)

	for c, ch := range w.Channels {
		for i, v := range ch {
			out[i*nc+c] = v
		}
	}

	return out
}

// Mono returns the channel average. A mono waveform returns a copy of its
// only channel.
func (w Waveform) Mono() []float64 {
	out := make([]float64, w.Len())
	if len(w.Channels) == 0 {
		return out
	}

	for _, ch := range w.Channels {
		for i, v := range ch {
			out[i] += v
		}
	}

	if nc := len(w.Channels); nc > 1 {
		inv := 1 / float64(nc)
		for i := range out {
			out[i] *= inv
		}
	}

	return out
}

// Clone returns a deep copy.
func (w Waveform) Clone() Waveform {
	out := Waveform{SampleRate: w.SampleRate, Channels: make([][]float64, len(w.Channels))}
	for i, ch := range w.Channels {
		out.Channels[i] = core.Clone(ch)
	}

	return out
}

// Truncate returns a copy limited to at most n samples per channel.
func (w Waveform) Truncate(n int) Waveform {
	out := Waveform{SampleRate: w.SampleRate, Channels: make([][]float64, len(w.Channels))}
	for i, ch := range w.Channels {
		out.Channels[i] = core.Fit(ch, max(0, min(n, len(ch))))
	}

	return out
}
