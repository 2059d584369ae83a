package waveform

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-denoise/dsp/core"
)

// ChannelFunc processes the samples of one channel. It receives a private
// copy of the channel and must return a slice of the same length.
type ChannelFunc func(ctx context.Context, sampleRate int, samples []float64) ([]float64, error)

// Apply validates w and runs fn over each channel. Stereo channels run
// concurrently; the first error cancels the others. The context is checked
// before each channel starts. w is never modified.
func Apply(ctx context.Context, w Waveform, fn ChannelFunc) (Waveform, error) {
	if err := w.Validate(); err != nil {
		return Waveform{}, err
	}

	out := Waveform{SampleRate: w.SampleRate, Channels: make([][]float64, len(w.Channels))}

	g, gctx := errgroup.WithContext(ctx)

	for c, ch := range w.Channels {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := fn(gctx, w.SampleRate, core.Clone(ch))
			if err != nil {
				return fmt.Errorf("channel %d: %w", c, err)
			}

			if len(res) != len(ch) {
				return fmt.Errorf("%w: channel %d returned %d samples, want %d", ErrLengthMismatch, c, len(res), len(ch))
			}

			out.Channels[c] = res

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Waveform{}, err
	}

	return out, nil
}
