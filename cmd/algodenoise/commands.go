package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/dsp/filter/fir"
	dspsignal "github.com/cwbudde/algo-denoise/dsp/signal"
	"github.com/cwbudde/algo-denoise/dsp/waveform"
	"github.com/cwbudde/algo-denoise/dsp/wiener"
	"github.com/cwbudde/algo-denoise/internal/report"
	"github.com/cwbudde/algo-denoise/internal/wavio"
	"github.com/cwbudde/algo-denoise/measure/compare"
)

// DesignFlags select a profile and optionally override its settings.
type DesignFlags struct {
	Profile        string `short:"p" default:"wiener" help:"Profile name from the config (wiener, lib, lib-short)."`
	Method         string `short:"m" help:"Override the profile method (freq, autocorr)."`
	Order          int    `help:"Override the autocorrelation filter order."`
	Segment        int    `help:"Override the Welch segment size in samples."`
	NoCompensation bool   `help:"Disable white-noise compensation of the autocorrelation system."`
}

func (f DesignFlags) resolve(a *app) (wiener.Method, []wiener.Option, error) {
	p, err := a.cfg.Profile(f.Profile)
	if err != nil {
		return 0, nil, err
	}

	if f.Method != "" {
		p.Method = f.Method
	}

	if f.Order > 0 {
		p.Order = f.Order
	}

	if f.Segment > 0 {
		p.SegmentSize = f.Segment
		p.SegmentDuration = 0
	}

	if f.NoCompensation {
		off := false
		p.NoiseCompensation = &off
	}

	method, opts, err := p.Options()
	if err != nil {
		return 0, nil, err
	}

	return method, append(opts, wiener.WithLogger(a.log)), nil
}

// DenoiseCmd filters a file with the selected Wiener design.
type DenoiseCmd struct {
	In  string `arg:"" type:"existingfile" help:"Input WAV file."`
	Out string `arg:"" type:"path" help:"Output WAV file."`

	DesignFlags `embed:""`
}

func (c *DenoiseCmd) Run(a *app) error {
	method, opts, err := c.resolve(a)
	if err != nil {
		return err
	}

	in, err := wavio.Read(c.In)
	if err != nil {
		return err
	}

	start := time.Now()

	out, err := wiener.Denoise(a.ctx, in.Waveform, method, opts...)
	if err != nil {
		return err
	}

	a.log.Info("denoised",
		zap.String("file", c.In),
		zap.Stringer("method", method),
		zap.Duration("elapsed", time.Since(start)))

	if err := wavio.Write(c.Out, out, outputDepth(a, in.BitDepth)); err != nil {
		return err
	}

	printTitle(a.stdout, "Denoised")
	printKV(a.stdout, "Input:", "%s", c.In)
	printKV(a.stdout, "Output:", "%s", c.Out)
	printKV(a.stdout, "Method:", "%s", method)
	printKV(a.stdout, "Duration:", "%.2f s x %d ch", out.Duration(), out.NumChannels())

	return nil
}

func outputDepth(a *app, source int) int {
	if a.cfg.Output.BitDepth > 0 {
		return a.cfg.Output.BitDepth
	}

	return source
}

// CompareCmd prints centroid and flatness differences of two files.
type CompareCmd struct {
	A string `arg:"" type:"existingfile" help:"First WAV file."`
	B string `arg:"" type:"existingfile" help:"Second WAV file."`
}

func (c *CompareCmd) Run(a *app) error {
	fa, err := wavio.Read(c.A)
	if err != nil {
		return err
	}

	fb, err := wavio.Read(c.B)
	if err != nil {
		return err
	}

	res, err := compare.Compare(fa.Waveform, fb.Waveform, a.cfg.CompareOptions()...)
	if err != nil {
		return err
	}

	printTitle(a.stdout, "Spectral comparison")
	printKV(a.stdout, "Centroid diff:", "%.2f %%", res.CentroidDiff)
	printKV(a.stdout, "Flatness diff:", "%.2f %%", res.MeanDiff)

	return nil
}

// AnalyzeCmd prints the raw descriptors of each file.
type AnalyzeCmd struct {
	Files []string `arg:"" type:"existingfile" help:"WAV files to analyse."`
}

func (c *AnalyzeCmd) Run(a *app) error {
	rep := &report.Report{Absolutes: []report.Absolute{}}

	for _, path := range c.Files {
		if err := a.ctx.Err(); err != nil {
			return err
		}

		f, err := wavio.Read(path)
		if err != nil {
			return err
		}

		row, err := report.Describe(path, fmt.Sprintf("%d Hz", f.Waveform.SampleRate), f.Waveform, a.cfg.CompareOptions()...)
		if err != nil {
			return err
		}

		rep.Absolutes = append(rep.Absolutes, row)
	}

	return rep.WriteTable(a.stdout)
}

// BatchCmd compares directories of processed files against references.
type BatchCmd struct {
	Reference string   `required:"" type:"existingdir" help:"Directory of reference WAV files."`
	Candidate []string `required:"" help:"Candidate directory, optionally DIR=LABEL. Repeatable."`
	Out       string   `short:"o" type:"path" help:"Write CSV to this file instead of a table on stdout."`
	Absolute  bool     `help:"Report raw descriptors instead of differences."`
}

func (c *BatchCmd) Run(a *app) (err error) {
	b := &report.Batch{
		Reference: c.Reference,
		Absolute:  c.Absolute,
		Options:   a.cfg.CompareOptions(),
		Logger:    a.log,
	}

	for _, s := range c.Candidate {
		cand, err := report.ParseCandidate(s)
		if err != nil {
			return err
		}

		b.Candidates = append(b.Candidates, cand)
	}

	rep, err := b.Run(a.ctx)
	if err != nil {
		return err
	}

	if c.Out == "" {
		return rep.WriteTable(a.stdout)
	}

	f, err := os.Create(c.Out)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := rep.WriteCSV(f); err != nil {
		return err
	}

	a.log.Info("wrote report", zap.String("path", c.Out), zap.Int("rows", rep.Len()))

	return nil
}

// AddNoiseCmd produces noisy test material from a clean file.
type AddNoiseCmd struct {
	In         string  `arg:"" type:"existingfile" help:"Clean input WAV file."`
	Out        string  `arg:"" type:"path" help:"Noisy output WAV file."`
	Type       string  `short:"t" default:"white" enum:"white,pink,brown,uniform,random" help:"Noise colour."`
	SNR        float64 `default:"10" help:"Signal-to-noise ratio in dB."`
	Seed       int64   `default:"1" help:"Random seed. Channel n uses seed+n."`
	MaxSeconds float64 `default:"10" help:"Clip the input to this many seconds (0 keeps everything)."`
}

func (c *AddNoiseCmd) Run(a *app) error {
	noiseType, err := dspsignal.ParseNoiseType(c.Type)
	if err != nil {
		return err
	}

	in, err := wavio.Read(c.In)
	if err != nil {
		return err
	}

	w := in.Waveform
	if c.MaxSeconds > 0 {
		w = w.Truncate(int(math.Round(c.MaxSeconds * float64(w.SampleRate))))
	}

	gen := dspsignal.NewGenerator(core.WithSampleRate(float64(w.SampleRate)))
	out := waveform.Waveform{SampleRate: w.SampleRate, Channels: make([][]float64, w.NumChannels())}

	for ch, x := range w.Channels {
		gen.SetSeed(c.Seed + int64(ch))

		noise, err := gen.Noise(noiseType, 1, len(x))
		if err != nil {
			return err
		}

		mixed, err := dspsignal.MixAtSNR(x, noise, c.SNR)
		if err != nil {
			return fmt.Errorf("channel %d: %w", ch, err)
		}

		out.Channels[ch] = mixed
	}

	if err := wavio.Write(c.Out, out, outputDepth(a, in.BitDepth)); err != nil {
		return err
	}

	printTitle(a.stdout, "Added noise")
	printKV(a.stdout, "Type:", "%s", noiseType)
	printKV(a.stdout, "SNR:", "%.1f dB", c.SNR)
	printKV(a.stdout, "Output:", "%s (%.2f s)", c.Out, out.Duration())

	return nil
}

// TapsCmd prints designed taps and their magnitude response.
type TapsCmd struct {
	File  string    `arg:"" type:"existingfile" help:"WAV file to design taps for (mono downmix)."`
	Show  int       `default:"16" help:"Number of leading taps to print."`
	Freqs []float64 `default:"100,1000,5000" help:"Frequencies (Hz) at which to print the response."`

	DesignFlags `embed:""`
}

func (c *TapsCmd) Run(a *app) error {
	method, opts, err := c.resolve(a)
	if err != nil {
		return err
	}

	f, err := wavio.Read(c.File)
	if err != nil {
		return err
	}

	taps, err := wiener.DesignTaps(f.Waveform.Mono(), f.Waveform.SampleRate, method, opts...)
	if err != nil {
		return err
	}

	filter := fir.New(taps)
	fs := float64(f.Waveform.SampleRate)

	printTitle(a.stdout, fmt.Sprintf("%s taps (%d)", method, filter.Len()))

	coeffs := filter.Coefficients()
	for i, h := range coeffs[:max(0, min(c.Show, len(coeffs)))] {
		printKV(a.stdout, fmt.Sprintf("h[%d]", i), "%+.6f", h)
	}

	fmt.Fprintln(a.stdout, sectionStyle.Render("Response"))

	for _, freq := range c.Freqs {
		printKV(a.stdout, fmt.Sprintf("%.0f Hz", freq), "%.2f dB", filter.MagnitudeDB(freq, fs))
	}

	return nil
}
