package window

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateSymmetricGolden(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want []float64
	}{
		{name: "rectangular", typ: TypeRectangular, want: []float64{1, 1, 1, 1, 1}},
		{name: "hann", typ: TypeHann, want: []float64{0, 0.5, 1, 0.5, 0}},
		{name: "hamming", typ: TypeHamming, want: []float64{0.08, 0.54, 1, 0.54, 0.08}},
		{name: "blackman", typ: TypeBlackman, want: []float64{0, 0.34, 1, 0.34, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkGolden(t, Generate(tt.typ, 5), tt.want, 1e-12)
		})
	}
}

func TestPeriodicHann(t *testing.T) {
	got := Generate(TypeHann, 4, WithPeriodic())
	checkGolden(t, got, []float64{0, 0.5, 1, 0.5}, 1e-12)
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	sym := Generate(TypeHann, 16)
	per := Generate(TypeHann, 16, WithPeriodic())
	if almostEqual(sym[15], per[15], 1e-12) {
		t.Fatal("periodic and symmetric windows should differ at the last sample")
	}
}

func TestSingleSampleWindowIsUnity(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman} {
		w := Generate(typ, 1)
		if len(w) != 1 || !almostEqual(w[0], 1, 1e-12) {
			t.Fatalf("%v: Generate(1) = %v, want [1]", typ, w)
		}
	}
}

func TestApplyInPlace(t *testing.T) {
	buf := []float64{2, 2, 2, 2, 2}
	Apply(TypeHann, buf)
	checkGolden(t, buf, []float64{0, 1, 2, 1, 0}, 1e-12)
}

func TestSums(t *testing.T) {
	w := Generate(TypeHann, 256, WithPeriodic())
	if got := CoherentSum(w); !almostEqual(got, 128, 1e-9) {
		t.Fatalf("CoherentSum = %v, want 128", got)
	}
	if got := PowerSum(w); !almostEqual(got, 96, 1e-9) {
		t.Fatalf("PowerSum = %v, want 96", got)
	}
	enbw, err := EquivalentNoiseBandwidth(w)
	if err != nil {
		t.Fatalf("EquivalentNoiseBandwidth() error = %v", err)
	}
	if !almostEqual(enbw, 1.5, 1e-9) {
		t.Fatalf("ENBW = %v, want 1.5", enbw)
	}
}

func TestParse(t *testing.T) {
	typ, err := Parse(" Hann ")
	if err != nil || typ != TypeHann {
		t.Fatalf("Parse(hann) = %v, %v", typ, err)
	}
	if _, err := Parse("kaiser"); !errors.Is(err, errUnknownType) {
		t.Fatalf("Parse(kaiser) error = %v, want errUnknownType", err)
	}
	if TypeBlackman.String() != "blackman" {
		t.Fatalf("String() = %q", TypeBlackman.String())
	}
}

func TestValidationAndEdgeCases(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("Generate(0) = %v, want nil", w)
	}
	if _, err := EquivalentNoiseBandwidth(nil); !errors.Is(err, errEmptyCoeffs) {
		t.Fatalf("ENBW(nil) error = %v", err)
	}
	if _, err := EquivalentNoiseBandwidth([]float64{0, 0}); !errors.Is(err, errZeroCoherentGain) {
		t.Fatalf("ENBW(zeros) error = %v", err)
	}
}

func checkGolden(t *testing.T, got, want []float64, tol float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if !almostEqual(got[i], want[i], tol) {
			t.Fatalf("index %d: got %.15f, want %.15f", i, got[i], want[i])
		}
	}
}

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestTypesRoundTripNames(t *testing.T) {
	types := Types()
	if len(types) != len(typeNames) {
		t.Fatalf("Types() has %d entries, want %d", len(types), len(typeNames))
	}

	for _, typ := range types {
		got, err := Parse(typ.String())
		if err != nil || got != typ {
			t.Fatalf("Parse(%q) = %v, %v", typ.String(), got, err)
		}
	}
}
