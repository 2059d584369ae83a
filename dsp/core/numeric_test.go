package core

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		lo       float64
		hi       float64
		expected float64
	}{
		{name: "inside", value: 0.5, lo: 0, hi: 1, expected: 0.5},
		{name: "below", value: -1, lo: 0, hi: 1, expected: 0},
		{name: "above", value: 2, lo: 0, hi: 1, expected: 1},
		{name: "swapped", value: 2, lo: 1, hi: 0, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.lo, tt.hi)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(1e9, 1e9+1, 1e-6) {
		t.Fatal("expected relative tolerance for large magnitudes")
	}
}

func TestSafeRatio(t *testing.T) {
	if got := SafeRatio(1, 0, 0); got != 1/DefaultEpsilon {
		t.Fatalf("SafeRatio(1, 0) = %v, want %v", got, 1/DefaultEpsilon)
	}
	if got := SafeRatio(0, 0, 1e-3); got != 0 {
		t.Fatalf("SafeRatio(0, 0) = %v, want 0", got)
	}
	if got := SafeRatio(3, 4, 0); got != 0.75 {
		t.Fatalf("SafeRatio(3, 4) = %v, want 0.75", got)
	}
}

func TestPeakNormalize(t *testing.T) {
	out := PeakNormalize([]float64{0.5, -2, 1})
	want := []float64{0.25, -1, 0.5}
	for i := range want {
		if !NearlyEqual(out[i], want[i], 1e-15) {
			t.Fatalf("out[%d] = %v, want %v", i, out[i], want[i])
		}
	}
}

func TestPeakNormalizeSilence(t *testing.T) {
	in := make([]float64, 16)
	out := PeakNormalize(in)
	if len(out) != len(in) {
		t.Fatalf("len = %d, want %d", len(out), len(in))
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("out[%d] = %v, want 0", i, v)
		}
	}
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Fatalf("Mean(nil) = %v, want 0", got)
	}
	if got := Mean([]float64{1, 2, 3, 6}); got != 3 {
		t.Fatalf("Mean() = %v, want 3", got)
	}
}
