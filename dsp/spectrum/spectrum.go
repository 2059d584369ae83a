package spectrum

import (
	"errors"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by the estimators.
var (
	ErrEmptyInput        = errors.New("spectrum: empty input")
	ErrInvalidSampleRate = errors.New("spectrum: sample rate must be > 0")
	ErrInvalidSize       = errors.New("spectrum: invalid transform size")
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)

	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}

	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// Magnitude returns |X[k]| for each complex spectrum bin.
// Scratch buffers are pooled, so in steady state this allocates only the
// output slice.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	MagnitudeTo(out, in)

	return out
}

// MagnitudeTo writes |X[k]| into dst, which must have len(in) elements.
func MagnitudeTo(dst []float64, in []complex128) {
	re, im, buf := getScratch(len(in))
	defer putScratch(buf)

	split(re, im, in)
	vecmath.Magnitude(dst, re, im)
}

// Power returns |X[k]|^2 for each complex spectrum bin.
func Power(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	PowerTo(out, in)

	return out
}

// PowerTo writes |X[k]|^2 into dst, which must have len(in) elements.
func PowerTo(dst []float64, in []complex128) {
	re, im, buf := getScratch(len(in))
	defer putScratch(buf)

	split(re, im, in)
	vecmath.Power(dst, re, im)
}

func split(re, im []float64, in []complex128) {
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// BinFrequency returns the centre frequency in Hz of bin k of a
// size-point transform at sampleRate.
func BinFrequency(k, size int, sampleRate float64) float64 {
	return float64(k) * sampleRate / float64(size)
}

// BinFrequencies returns the centre frequencies of the size/2+1 one-sided
// bins of a size-point transform.
func BinFrequencies(size int, sampleRate float64) []float64 {
	freqs := make([]float64, size/2+1)
	for k := range freqs {
		freqs[k] = BinFrequency(k, size, sampleRate)
	}

	return freqs
}
