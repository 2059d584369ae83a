package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-denoise/dsp/wiener"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "algodenoise.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestDefaultProfiles(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	tests := []struct {
		name    string
		method  wiener.Method
		options int
	}{
		{ProfileWiener, wiener.FrequencyDomain, 1},
		{ProfileLib, wiener.Autocorrelation, 1},
		{ProfileLibShort, wiener.Autocorrelation, 1},
	}

	for _, tc := range tests {
		p, err := cfg.Profile(tc.name)
		if err != nil {
			t.Fatalf("Profile(%q) error = %v", tc.name, err)
		}

		method, opts, err := p.Options()
		if err != nil {
			t.Fatalf("%s: Options() error = %v", tc.name, err)
		}

		if method != tc.method || len(opts) != tc.options {
			t.Fatalf("%s: method %v with %d options", tc.name, method, len(opts))
		}
	}

	if got := cfg.ProfileNames(); len(got) != 3 || got[0] != ProfileLib {
		t.Fatalf("ProfileNames() = %v", got)
	}
}

func TestLoadOverlay(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
profiles:
  lib:
    method: autocorr
    order: 64
    noise_compensation: false
  custom:
    method: freq
    segment_duration: 0.02
compare:
  hop_size: 256
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "debug" || cfg.Log.Format != "console" {
		t.Fatalf("log = %+v", cfg.Log)
	}

	if cfg.Compare.FrameSize != 2048 || cfg.Compare.HopSize != 256 {
		t.Fatalf("compare = %+v", cfg.Compare)
	}

	if cfg.Output.BitDepth != 16 {
		t.Fatalf("bit depth = %d", cfg.Output.BitDepth)
	}

	lib, _ := cfg.Profile(ProfileLib)
	if lib.Order != 64 || lib.NoiseCompensation == nil || *lib.NoiseCompensation {
		t.Fatalf("lib = %+v", lib)
	}

	_, opts, err := lib.Options()
	if err != nil || len(opts) != 2 {
		t.Fatalf("lib options = %d, %v", len(opts), err)
	}

	if _, err := cfg.Profile(ProfileLibShort); err != nil {
		t.Fatalf("built-in profile lost: %v", err)
	}

	custom, err := cfg.Profile("custom")
	if err != nil || custom.SegmentDuration != 0.02 {
		t.Fatalf("custom = %+v, %v", custom, err)
	}

	if got := len(cfg.CompareOptions()); got != 2 {
		t.Fatalf("CompareOptions() len = %d", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"bad method", "profiles:\n  x:\n    method: spectral\n", wiener.ErrUnknownMethod},
		{"negative order", "profiles:\n  x:\n    method: autocorr\n    order: -1\n", ErrInvalid},
		{"bit depth", "output:\n  bit_depth: 12\n", ErrInvalid},
		{"hop", "compare:\n  hop_size: 0\n", ErrInvalid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.body))
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := Load(writeConfig(t, "log: [")); err == nil {
		t.Fatal("expected parse error")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing: err = %v", err)
	}

	if _, err := Default().Profile("nope"); !errors.Is(err, ErrUnknownProfile) {
		t.Fatalf("unknown profile: err = %v", err)
	}
}
