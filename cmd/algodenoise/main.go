// Command algodenoise removes broadband noise from WAV files with Wiener
// filters and compares the spectral character of recordings.
//
// Usage:
//
//	algodenoise denoise IN.wav OUT.wav [--profile lib-short]
//	algodenoise compare A.wav B.wav
//	algodenoise analyze FILE.wav...
//	algodenoise batch --reference clean/ --candidate out/lib=lib --out report.csv
//	algodenoise addnoise IN.wav OUT.wav --type pink --snr 10
//	algodenoise taps FILE.wav --profile lib-short
//	algodenoise windows --size 256
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-denoise/internal/config"
	"github.com/cwbudde/algo-denoise/internal/logging"
)

var version = "0.1.0"

// CLI defines the command-line interface.
type CLI struct {
	Config    string           `short:"c" type:"path" help:"Path to YAML config file."`
	LogLevel  string           `help:"Log level (debug, info, warn, error). Overrides the config file."`
	LogFormat string           `help:"Log encoding (console, json). Overrides the config file."`
	Version   kong.VersionFlag `short:"v" help:"Show version information."`

	Denoise  DenoiseCmd  `cmd:"" help:"Remove broadband noise from a WAV file."`
	Compare  CompareCmd  `cmd:"" help:"Compare the spectral properties of two WAV files."`
	Analyze  AnalyzeCmd  `cmd:"" help:"Print mean spectral centroid and flatness per file."`
	Batch    BatchCmd    `cmd:"" help:"Compare directories of processed files against references."`
	AddNoise AddNoiseCmd `cmd:"" name:"addnoise" help:"Mix generated noise into a WAV file."`
	Taps     TapsCmd     `cmd:"" help:"Print the Wiener taps designed for a WAV file."`
	Windows  WindowsCmd  `cmd:"" help:"Print properties of the analysis windows."`
}

// app is bound into every command's Run method.
type app struct {
	ctx    context.Context
	cfg    *config.Config
	log    *zap.Logger
	stdout io.Writer
}

type exitCode int

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}

			code = int(c)
		}
	}()

	var cli CLI

	parser, err := kong.New(&cli,
		kong.Name("algodenoise"),
		kong.Description("Wiener-filter denoising and spectral comparison for WAV files."),
		kong.UsageOnError(),
		kong.Vars{"version": version},
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) { panic(exitCode(c)) }),
		kong.Help(styledHelp),
	)
	if err != nil {
		printError(stderr, err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		printError(stderr, err)
		return 1
	}

	a, err := cli.setup(ctx, stdout, stderr)
	if err != nil {
		printError(stderr, err)
		return 1
	}

	defer func() { _ = a.log.Sync() }()

	if err := kctx.Run(a); err != nil {
		a.log.Debug("command failed", zap.String("command", kctx.Command()), zap.Error(err))
		printError(stderr, err)

		return 1
	}

	return 0
}

// setup loads the config file and builds the logger. Command-line log
// flags take precedence over the file.
func (c *CLI) setup(ctx context.Context, stdout, stderr io.Writer) (*app, error) {
	cfg := config.Default()

	if c.Config != "" {
		loaded, err := config.Load(c.Config)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}

	if c.LogFormat != "" {
		cfg.Log.Format = c.LogFormat
	}

	log, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: stderr})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	return &app{ctx: ctx, cfg: cfg, log: log, stdout: stdout}, nil
}
