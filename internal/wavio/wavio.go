// Package wavio reads and writes integer PCM WAV files as waveforms.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-denoise/dsp/waveform"
)

// DefaultBitDepth is used when no source depth is known.
const DefaultBitDepth = 16

// wavFormatPCM is the WAVE_FORMAT_PCM format tag.
const wavFormatPCM = 1

var (
	ErrInvalidFile      = errors.New("wavio: invalid WAV file")
	ErrUnsupportedDepth = errors.New("wavio: unsupported bit depth")
)

// File is a decoded WAV file.
type File struct {
	Waveform waveform.Waveform
	BitDepth int
}

// Read decodes the WAV file at path.
func Read(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("wavio: open %s: %w", path, err)
	}
	defer f.Close()

	file, err := Decode(f)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}

	return file, nil
}

// Decode reads integer PCM from r and maps it to [-1, 1] per channel.
func Decode(r io.ReadSeeker) (File, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return File{}, ErrInvalidFile
	}

	if dec.WavAudioFormat != wavFormatPCM {
		return File{}, fmt.Errorf("%w: format tag %d", ErrInvalidFile, dec.WavAudioFormat)
	}

	depth := int(dec.BitDepth)
	if !supportedDepth(depth) {
		return File{}, fmt.Errorf("%w: %d", ErrUnsupportedDepth, depth)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return File{}, fmt.Errorf("wavio: read PCM: %w", err)
	}

	samples := make([]float64, len(buf.Data))
	full := fullScale(depth)

	for i, v := range buf.Data {
		if depth == 8 {
			v -= 128
		}

		samples[i] = float64(v) / full
	}

	w, err := waveform.FromInterleaved(buf.Format.SampleRate, buf.Format.NumChannels, samples)
	if err != nil {
		return File{}, err
	}

	return File{Waveform: w, BitDepth: depth}, nil
}

// Write encodes w to a new WAV file at path. A bitDepth of 0 selects
// DefaultBitDepth.
func Write(path string, w waveform.Waveform, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: create %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("wavio: close %s: %w", path, cerr)
		}
	}()

	return Encode(f, w, bitDepth)
}

// Encode writes w as integer PCM. Samples are clamped to [-1, 1].
func Encode(ws io.WriteSeeker, w waveform.Waveform, bitDepth int) error {
	if bitDepth == 0 {
		bitDepth = DefaultBitDepth
	}

	if !supportedDepth(bitDepth) {
		return fmt.Errorf("%w: %d", ErrUnsupportedDepth, bitDepth)
	}

	if err := w.Validate(); err != nil {
		return err
	}

	interleaved := w.Interleaved()
	data := make([]int, len(interleaved))
	peak := fullScale(bitDepth) - 1

	for i, x := range interleaved {
		v := int(math.Round(math.Max(-1, math.Min(1, x)) * peak))
		if bitDepth == 8 {
			v += 128
		}

		data[i] = v
	}

	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: w.NumChannels(),
			SampleRate:  w.SampleRate,
		},
		Data:           data,
		SourceBitDepth: bitDepth,
	}

	enc := wav.NewEncoder(ws, w.SampleRate, bitDepth, w.NumChannels(), wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: write PCM: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavio: finalize: %w", err)
	}

	return nil
}

func supportedDepth(bits int) bool {
	switch bits {
	case 8, 16, 24, 32:
		return true
	default:
		return false
	}
}

func fullScale(bits int) float64 {
	return float64(int64(1) << (bits - 1))
}
