// Package config loads the YAML file that drives the command-line tools:
// named denoising profiles, comparison framing, logging and output depth.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-denoise/dsp/spectrum"
	"github.com/cwbudde/algo-denoise/dsp/wiener"
	"github.com/cwbudde/algo-denoise/internal/logging"
	"github.com/cwbudde/algo-denoise/measure/compare"
)

// Built-in profile names.
const (
	ProfileWiener   = "wiener"
	ProfileLib      = "lib"
	ProfileLibShort = "lib-short"
)

var (
	ErrUnknownProfile = errors.New("config: unknown profile")
	ErrInvalid        = errors.New("config: invalid value")
)

// Config is the root of the YAML document.
type Config struct {
	Log      LogConfig          `yaml:"log"`
	Profiles map[string]Profile `yaml:"profiles"`
	Compare  CompareConfig      `yaml:"compare"`
	Output   OutputConfig       `yaml:"output"`
}

// LogConfig feeds logging.New.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Profile is a named denoiser setup.
type Profile struct {
	Method            string  `yaml:"method"`
	SegmentSize       int     `yaml:"segment_size,omitempty"`
	SegmentDuration   float64 `yaml:"segment_duration,omitempty"` // seconds, overrides segment_size
	Order             int     `yaml:"order,omitempty"`
	NoiseCompensation *bool   `yaml:"noise_compensation,omitempty"`
}

// CompareConfig sets the STFT framing of the comparator.
type CompareConfig struct {
	FrameSize int `yaml:"frame_size"`
	HopSize   int `yaml:"hop_size"`
}

// OutputConfig controls written WAV files. A zero bit depth keeps the
// source depth.
type OutputConfig struct {
	BitDepth int `yaml:"bit_depth"`
}

func boolPtr(b bool) *bool { return &b }

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: logging.FormatConsole},
		Profiles: map[string]Profile{
			ProfileWiener:   {Method: wiener.FrequencyDomain.String(), SegmentSize: spectrum.DefaultSegmentSize},
			ProfileLib:      {Method: wiener.Autocorrelation.String(), Order: wiener.DefaultOrder, NoiseCompensation: boolPtr(true)},
			ProfileLibShort: {Method: wiener.Autocorrelation.String(), Order: wiener.ShortOrder, NoiseCompensation: boolPtr(true)},
		},
		Compare: CompareConfig{FrameSize: spectrum.DefaultFrameSize, HopSize: spectrum.DefaultHopSize},
		Output:  OutputConfig{BitDepth: 16},
	}
}

// Load reads path and overlays it on Default. Profiles named in the file
// replace the built-in profile of the same name.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.Compare.FrameSize <= 0 || c.Compare.HopSize <= 0 {
		return fmt.Errorf("%w: compare frame %d hop %d", ErrInvalid, c.Compare.FrameSize, c.Compare.HopSize)
	}

	switch c.Output.BitDepth {
	case 0, 8, 16, 24, 32:
	default:
		return fmt.Errorf("%w: output.bit_depth %d", ErrInvalid, c.Output.BitDepth)
	}

	for name, p := range c.Profiles {
		if _, _, err := p.Options(); err != nil {
			return fmt.Errorf("profile %q: %w", name, err)
		}
	}

	return nil
}

// Profile looks up a profile by name.
func (c *Config) Profile(name string) (Profile, error) {
	p, ok := c.Profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q (have %v)", ErrUnknownProfile, name, c.ProfileNames())
	}

	return p, nil
}

// ProfileNames returns the sorted profile names.
func (c *Config) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// CompareOptions converts the compare section to comparator options.
func (c *Config) CompareOptions() []compare.Option {
	return []compare.Option{
		compare.WithFrameSize(c.Compare.FrameSize),
		compare.WithHopSize(c.Compare.HopSize),
	}
}

// Options resolves the profile to a method and denoiser options.
func (p Profile) Options() (wiener.Method, []wiener.Option, error) {
	method, err := wiener.ParseMethod(p.Method)
	if err != nil {
		return method, nil, err
	}

	var opts []wiener.Option

	if p.SegmentSize < 0 || p.SegmentDuration < 0 || p.Order < 0 {
		return method, nil, fmt.Errorf("%w: negative size", ErrInvalid)
	}

	if p.SegmentSize > 0 {
		opts = append(opts, wiener.WithSegmentSize(p.SegmentSize))
	}

	if p.SegmentDuration > 0 {
		opts = append(opts, wiener.WithSegmentDuration(p.SegmentDuration))
	}

	if p.Order > 0 {
		opts = append(opts, wiener.WithOrder(p.Order))
	}

	if p.NoiseCompensation != nil && !*p.NoiseCompensation {
		opts = append(opts, wiener.WithoutNoiseCompensation())
	}

	return method, opts, nil
}
