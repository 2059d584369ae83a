package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-denoise/dsp/waveform"
	"github.com/cwbudde/algo-denoise/internal/wavio"
	"github.com/cwbudde/algo-denoise/measure/compare"
	timestats "github.com/cwbudde/algo-denoise/stats/time"
)

// ReferenceLabel labels reference rows in absolute reports.
const ReferenceLabel = "reference"

var ErrNoFiles = errors.New("report: no WAV files in reference directory")

// Candidate is a directory of processed files named like the reference
// files.
type Candidate struct {
	Dir   string
	Label string
}

// ParseCandidate parses "DIR" or "DIR=LABEL". The label defaults to the
// directory's base name.
func ParseCandidate(s string) (Candidate, error) {
	dir, label, _ := strings.Cut(s, "=")
	if dir == "" {
		return Candidate{}, fmt.Errorf("report: empty candidate directory in %q", s)
	}

	if label == "" {
		label = filepath.Base(filepath.Clean(dir))
	}

	return Candidate{Dir: dir, Label: label}, nil
}

// Batch compares every WAV file in Reference against the same-named file
// in each candidate directory. With Absolute set it reports raw
// descriptors for every file instead.
type Batch struct {
	Reference  string
	Candidates []Candidate
	Absolute   bool
	Options    []compare.Option
	Logger     *zap.Logger
}

// Run processes the files in name order. Cancellation is checked between
// files. Candidates missing a file are skipped with a warning.
func (b *Batch) Run(ctx context.Context) (*Report, error) {
	log := b.Logger
	if log == nil {
		log = zap.NewNop()
	}

	files, err := wavFiles(b.Reference)
	if err != nil {
		return nil, err
	}

	rep := &Report{}
	if b.Absolute {
		rep.Absolutes = []Absolute{}
	} else {
		rep.Comparisons = []Comparison{}
	}

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ref, err := b.extract(filepath.Join(b.Reference, name))
		if err != nil {
			return nil, err
		}

		if b.Absolute {
			rep.Absolutes = append(rep.Absolutes, ref.Row(name, ReferenceLabel))
		}

		for _, c := range b.Candidates {
			path := filepath.Join(c.Dir, name)
			if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
				log.Warn("candidate file missing", zap.String("file", name), zap.String("label", c.Label))
				continue
			}

			props, err := b.extract(path)
			if err != nil {
				return nil, err
			}

			if b.Absolute {
				rep.Absolutes = append(rep.Absolutes, props.Row(name, c.Label))
				continue
			}

			res := compare.CompareProperties(ref.props, props.props)
			rep.Comparisons = append(rep.Comparisons, Comparison{
				File:         name,
				Label:        c.Label,
				CentroidDiff: res.CentroidDiff,
				MeanDiff:     res.MeanDiff,
			})
		}

		log.Debug("compared file", zap.String("file", name), zap.Int("candidates", len(b.Candidates)))
	}

	return rep, nil
}

// measured pairs the spectral descriptors of a file with its level.
type measured struct {
	props compare.Properties
	level timestats.Level
}

func (b *Batch) extract(path string) (measured, error) {
	f, err := wavio.Read(path)
	if err != nil {
		return measured{}, err
	}

	return measure(path, f.Waveform, b.Options...)
}

// Describe returns the absolute row for one waveform.
func Describe(file, label string, w waveform.Waveform, opts ...compare.Option) (Absolute, error) {
	m, err := measure(file, w, opts...)
	if err != nil {
		return Absolute{}, err
	}

	return m.Row(file, label), nil
}

func measure(name string, w waveform.Waveform, opts ...compare.Option) (measured, error) {
	props, err := compare.Extract(w, opts...)
	if err != nil {
		return measured{}, fmt.Errorf("%s: %w", name, err)
	}

	return measured{props: props, level: timestats.Measure(w.Mono())}, nil
}

func (m measured) Row(name, label string) Absolute {
	return Absolute{
		File:         name,
		Label:        label,
		MeanCentroid: m.props.MeanCentroid(),
		Flatness:     m.props.Flatness,
		RMSdB:        m.level.RMS_dB,
		CrestdB:      m.level.CrestFactor_dB,
	}
}

func wavFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			names = append(names, e.Name())
		}
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, dir)
	}

	sort.Strings(names)

	return names, nil
}
