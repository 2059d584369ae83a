package signal

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/dsp/spectrum"
	"github.com/cwbudde/algo-denoise/internal/testutil"
)

func TestSineLength(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))

	s, err := g.Sine(1000, 1, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}

	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
}

func TestSineErrors(t *testing.T) {
	g := NewGenerator()
	if _, err := g.Sine(440, 1, 0); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("zero length: err = %v", err)
	}

	// Non-positive rates are ignored by the option.
	if rate := NewGenerator(core.WithSampleRate(0)).Config().SampleRate; rate != 44100 {
		t.Fatalf("WithSampleRate(0) rate = %v, want default 44100", rate)
	}

	g = &Generator{cfg: core.ProcessorConfig{}, seed: 1}
	if _, err := g.Sine(440, 1, 8); err == nil {
		t.Fatal("expected error for zero sample rate")
	}
}

func TestNoiseDeterministic(t *testing.T) {
	for _, nt := range []NoiseType{NoiseWhite, NoisePink, NoiseBrown, NoiseUniform} {
		t.Run(nt.String(), func(t *testing.T) {
			g := NewGeneratorWithOptions(nil, WithSeed(42))

			a, err := g.Noise(nt, 1, 512)
			if err != nil {
				t.Fatalf("Noise() error = %v", err)
			}

			b, err := g.Noise(nt, 1, 512)
			if err != nil {
				t.Fatalf("Noise() error = %v", err)
			}

			testutil.RequireSliceNearlyEqual(t, a, b, 0)
			testutil.RequireFinite(t, a)
		})
	}
}

func TestSetSeed(t *testing.T) {
	g := NewGenerator()
	g.SetSeed(7)

	if g.Seed() != 7 {
		t.Fatalf("Seed() = %d, want 7", g.Seed())
	}

	a, _ := g.WhiteNoise(1, 64)

	g.SetSeed(8)
	b, _ := g.WhiteNoise(1, 64)

	if diff, err := testutil.MaxAbsDiff(a, b); err != nil || diff == 0 {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestWhiteNoiseStatistics(t *testing.T) {
	g := NewGeneratorWithOptions(nil, WithSeed(3))

	x, err := g.WhiteNoise(0.5, 100000)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}

	if mean := core.Mean(x); math.Abs(mean) > 0.01 {
		t.Fatalf("mean = %f, want ~0", mean)
	}

	if rms := testutil.RMS(x); math.Abs(rms-0.5) > 0.01 {
		t.Fatalf("rms = %f, want ~0.5", rms)
	}
}

func TestUniformNoiseRange(t *testing.T) {
	g := NewGenerator()

	x, err := g.UniformNoise(2, 10000)
	if err != nil {
		t.Fatalf("UniformNoise() error = %v", err)
	}

	for i, v := range x {
		if v < 0 || v >= 2 {
			t.Fatalf("x[%d] = %f outside [0, 2)", i, v)
		}
	}

	if mean := core.Mean(x); math.Abs(mean-1) > 0.05 {
		t.Fatalf("mean = %f, want ~1", mean)
	}
}

func TestColouredNoisePeak(t *testing.T) {
	g := NewGenerator()

	for _, nt := range []NoiseType{NoisePink, NoiseBrown} {
		x, err := g.Noise(nt, 0.8, 4096)
		if err != nil {
			t.Fatalf("%v: error = %v", nt, err)
		}

		testutil.RequireNearlyEqual(t, nt.String()+" peak", core.Peak(x), 0.8, 1e-12)
	}
}

// lowToHighRatio compares Welch power in the lowest and highest eighth
// of the spectrum.
func lowToHighRatio(t *testing.T, x []float64) float64 {
	t.Helper()

	psd, err := spectrum.Welch(x, 1, spectrum.WithSegmentSize(256))
	if err != nil {
		t.Fatalf("Welch() error = %v", err)
	}

	n := psd.Len() / 8

	var low, high float64
	for i := 1; i <= n; i++ {
		low += psd.Power[i]
		high += psd.Power[psd.Len()-i]
	}

	return low / high
}

func TestNoiseColour(t *testing.T) {
	g := NewGeneratorWithOptions(nil, WithSeed(11))

	white, _ := g.WhiteNoise(1, 1<<15)
	pink, _ := g.PinkNoise(1, 1<<15)
	brown, _ := g.BrownNoise(1, 1<<15)

	w := lowToHighRatio(t, white)
	p := lowToHighRatio(t, pink)
	b := lowToHighRatio(t, brown)

	if w < 0.5 || w > 2 {
		t.Fatalf("white ratio = %f, want ~1", w)
	}

	if p < 3*w {
		t.Fatalf("pink ratio = %f, want well above white %f", p, w)
	}

	if b < p {
		t.Fatalf("brown ratio = %f, want above pink %f", b, p)
	}
}

func TestParseNoiseType(t *testing.T) {
	tests := []struct {
		in   string
		want NoiseType
		err  bool
	}{
		{"white", NoiseWhite, false},
		{"Pink", NoisePink, false},
		{" brown ", NoiseBrown, false},
		{"uniform", NoiseUniform, false},
		{"random", NoiseUniform, false},
		{"violet", NoiseWhite, true},
	}

	for _, tc := range tests {
		got, err := ParseNoiseType(tc.in)
		if tc.err {
			if !errors.Is(err, ErrUnknownNoise) {
				t.Fatalf("%q: err = %v, want ErrUnknownNoise", tc.in, err)
			}

			continue
		}

		if err != nil || got != tc.want {
			t.Fatalf("%q: got %v, %v want %v", tc.in, got, err, tc.want)
		}
	}

	if s := NoiseType(99).String(); s != "noise(99)" {
		t.Fatalf("String() = %q", s)
	}
}

func TestNoiseErrors(t *testing.T) {
	g := NewGenerator()

	if _, err := g.Noise(NoiseType(99), 1, 8); !errors.Is(err, ErrUnknownNoise) {
		t.Fatalf("unknown type: err = %v", err)
	}

	if _, err := g.PinkNoise(1, 0); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("zero length: err = %v", err)
	}

	if _, err := g.BrownNoise(-1, 8); err == nil {
		t.Fatal("expected error for negative level")
	}
}

func TestMixAtSNR(t *testing.T) {
	g := NewGeneratorWithOptions([]core.ProcessorOption{core.WithSampleRate(8000)}, WithSeed(5))

	x, _ := g.Sine(440, 1, 8000)
	noise, _ := g.PinkNoise(1, 8000)

	for _, snr := range []float64{-5, 0, 10, 30} {
		mixed, err := MixAtSNR(x, noise, snr)
		if err != nil {
			t.Fatalf("MixAtSNR(%v) error = %v", snr, err)
		}

		residual := make([]float64, len(x))
		for i := range x {
			residual[i] = mixed[i] - x[i]
		}

		got := 20 * math.Log10(testutil.RMS(x)/testutil.RMS(residual))
		testutil.RequireNearlyEqual(t, "snr", got, snr, 1e-9)
	}
}

func TestMixAtSNRErrors(t *testing.T) {
	if _, err := MixAtSNR([]float64{1, 2}, []float64{1}, 0); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("mismatch: err = %v", err)
	}

	if _, err := MixAtSNR([]float64{1, 2}, []float64{0, 0}, 0); !errors.Is(err, ErrSilentNoise) {
		t.Fatalf("silent: err = %v", err)
	}

	if _, err := MixAtSNR(nil, nil, 0); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("empty: err = %v", err)
	}
}

func TestNormalize(t *testing.T) {
	in := []float64{-0.5, 0.25, 1}

	out, err := Normalize(in, 0.5)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	testutil.RequireSliceNearlyEqual(t, out, []float64{-0.25, 0.125, 0.5}, 1e-15)

	if in[0] != -0.5 {
		t.Fatal("input modified")
	}

	silent, err := Normalize([]float64{0, 0}, 1)
	if err != nil {
		t.Fatalf("Normalize(silence) error = %v", err)
	}

	testutil.RequireZeros(t, silent)

	if _, err := Normalize(in, -1); err == nil {
		t.Fatal("expected error for negative peak")
	}
}
