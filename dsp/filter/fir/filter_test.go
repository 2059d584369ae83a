package fir

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-denoise/internal/testutil"
)

const eps = 1e-12

func TestNewCopiesCoefficients(t *testing.T) {
	coeffs := []float64{0.25, 0.5, 0.25}
	f := New(coeffs)

	if f.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", f.Len())
	}

	coeffs[0] = 999
	if f.Coefficients()[0] == 999 {
		t.Error("New did not copy coefficients")
	}

	got := f.Coefficients()
	got[1] = 999

	if f.Coefficients()[1] != 0.5 {
		t.Error("Coefficients did not return a copy")
	}
}

func TestProcessSampleImpulse(t *testing.T) {
	coeffs := []float64{0.1, -0.2, 0.3, 0.4, -0.5, 0.6}
	f := New(coeffs)

	out := make([]float64, 12)
	for i, x := range testutil.Impulse(12, 0) {
		out[i] = f.ProcessSample(x)
	}

	want := append(append([]float64(nil), coeffs...), make([]float64, 6)...)
	testutil.RequireSliceNearlyEqual(t, out, want, eps)
}

func TestProcessSampleMovingAverage(t *testing.T) {
	f := New([]float64{1.0 / 3, 1.0 / 3, 1.0 / 3})

	in := []float64{3, 3, 3, 3, 3}
	want := []float64{1, 2, 3, 3, 3}

	for i, x := range in {
		if y := f.ProcessSample(x); math.Abs(y-want[i]) > eps {
			t.Errorf("sample %d: got %v, want %v", i, y, want[i])
		}
	}
}

func TestApplyMatchesStreaming(t *testing.T) {
	x := testutil.DeterministicNoise(9, 1, 2000)

	for _, n := range []int{1, 3, 10, 200} {
		taps := testutil.DeterministicNoise(int64(n), 0.3, n)

		got, err := Apply(taps, x)
		if err != nil {
			t.Fatal(err)
		}

		if len(got) != len(x) {
			t.Fatalf("taps %d: length %d, want %d", n, len(got), len(x))
		}

		f := New(taps)
		want := make([]float64, len(x))

		for i, v := range x {
			want[i] = f.ProcessSample(v)
		}

		diff, _ := testutil.MaxAbsDiff(got, want)
		if diff > 1e-9 {
			t.Errorf("taps %d: max diff %v", n, diff)
		}
	}
}

func TestApplyTapsLongerThanSignal(t *testing.T) {
	got, err := Apply([]float64{0, 0, 1, 0, 0, 0}, []float64{1, 2, 3})
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, got, []float64{0, 0, 1}, eps)
}

func TestApplyEdgeCases(t *testing.T) {
	if _, err := Apply(nil, []float64{1}); !errors.Is(err, ErrEmptyTaps) {
		t.Fatalf("expected ErrEmptyTaps, got %v", err)
	}

	got, err := Apply([]float64{1}, nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("Apply on empty input = %v, %v", got, err)
	}
}

func TestEmptyFilter(t *testing.T) {
	f := New(nil)
	if y := f.ProcessSample(1); y != 0 {
		t.Fatalf("empty filter output %v", y)
	}
}

func TestResponse(t *testing.T) {
	f := New([]float64{0.25, 0.5, 0.25})

	if h := f.Response(0, 48000); math.Abs(real(h)-1) > eps || math.Abs(imag(h)) > eps {
		t.Fatalf("DC response = %v, want 1", h)
	}

	if h := f.Response(24000, 48000); cmplx.Abs(h) > 1e-12 {
		t.Fatalf("Nyquist response = %v, want 0", h)
	}

	mag := cmplx.Abs(f.Response(6000, 48000))
	if db := f.MagnitudeDB(6000, 48000); math.Abs(db-20*math.Log10(mag)) > eps {
		t.Fatalf("MagnitudeDB = %v, want %v", db, 20*math.Log10(mag))
	}
}
