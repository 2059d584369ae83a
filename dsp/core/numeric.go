package core

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// DefaultEpsilon is the floor applied to ratio denominators that can vanish
// on silent input.
const DefaultEpsilon = 1e-10

const nearlyEqualEpsilon = 1e-12

// Clamp limits value to the inclusive range [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}

	if value < lo {
		return lo
	}

	if value > hi {
		return hi
	}

	return value
}

// NearlyEqual reports whether a and b are equal within eps, using a relative
// tolerance for large magnitudes.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = nearlyEqualEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return false
	}

	return diff/largest <= eps
}

// SafeRatio returns num/den with the denominator floored at eps.
// A non-positive eps selects [DefaultEpsilon].
func SafeRatio(num, den, eps float64) float64 {
	if eps <= 0 {
		eps = DefaultEpsilon
	}

	if den < eps {
		den = eps
	}

	return num / den
}

// Peak returns the maximum absolute sample value.
func Peak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return vecmath.MaxAbs(x)
}

// PeakNormalize returns a copy of x scaled so that its peak magnitude is 1.
// Silent input is returned as an all-zero copy instead of dividing by zero.
func PeakNormalize(x []float64) []float64 {
	out := make([]float64, len(x))

	peak := Peak(x)
	if peak == 0 {
		return out
	}

	vecmath.ScaleBlock(out, x, 1/peak)
	return out
}

// Mean returns the arithmetic mean of x, or 0 for an empty slice.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return vecmath.Sum(x) / float64(len(x))
}
