package spectrum

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/cwbudde/algo-vecmath"
)

// InverseReal returns the length-n real sequence whose one-sided spectrum
// is bins, normalised by 1/n so that it inverts a forward transform.
//
// Only the first n/2+1 bins are used; missing bins are taken as zero. The
// imaginary parts of the DC bin (and of the Nyquist bin for even n) are
// ignored.
func InverseReal(bins []complex128, n int) ([]float64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: inverse length %d", ErrInvalidSize, n)
	}

	if len(bins) == 0 {
		return nil, ErrEmptyInput
	}

	half := make([]complex128, n/2+1)
	copy(half, bins)

	out := fourier.NewFFT(n).Sequence(nil, half)
	vecmath.ScaleBlockInPlace(out, 1/float64(n))

	return out, nil
}
