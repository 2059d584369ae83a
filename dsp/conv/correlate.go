package conv

import "fmt"

// Correlate computes the full cross-correlation of a and b.
// The result has length len(a) + len(b) - 1 and index k holds lag
// k - (len(b) - 1), i.e. sum_n a[n+lag] * b[n].
func Correlate(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmptyInput
	}

	reversed := make([]float64, len(b))
	for i, v := range b {
		reversed[len(b)-1-i] = v
	}

	return Convolve(a, reversed)
}

// AutoCorrelate computes the full autocorrelation of a.
// The result has length 2*len(a) - 1; the zero lag sits at index len(a)-1
// and the sequence is symmetric about it.
func AutoCorrelate(a []float64) ([]float64, error) {
	return Correlate(a, a)
}

// AutoCorrelateLags returns the autocorrelation of a at lags 0..maxLag.
// Lags at or beyond len(a) are zero.
func AutoCorrelateLags(a []float64, maxLag int) ([]float64, error) {
	if maxLag < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLag, maxLag)
	}

	full, err := AutoCorrelate(a)
	if err != nil {
		return nil, err
	}

	mid := len(a) - 1
	lags := make([]float64, maxLag+1)
	copy(lags, full[mid:])

	return lags, nil
}
