package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// OverlapAdd performs FFT-based convolution with a fixed kernel using the
// overlap-add method. The input is cut into blocks, each block is
// convolved in the frequency domain, and the block results are summed at
// their offsets.
//
// An OverlapAdd holds scratch buffers and is not safe for concurrent use.
type OverlapAdd struct {
	kernelFFT []complex128
	kernelLen int
	blockSize int
	fftSize   int

	plan *algofft.Plan[complex128]

	spec []complex128
	time []complex128
}

// NewOverlapAdd creates an overlap-add convolver for kernel.
// If blockSize <= 0 a block size is chosen from the kernel length.
func NewOverlapAdd(kernel []float64, blockSize int) (*OverlapAdd, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	kernelLen := len(kernel)

	if blockSize <= 0 {
		blockSize = max(nextPowerOf2(kernelLen), 256)
	}

	fftSize := nextPowerOf2(blockSize + kernelLen - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	oa := &OverlapAdd{
		kernelFFT: make([]complex128, fftSize),
		kernelLen: kernelLen,
		blockSize: blockSize,
		fftSize:   fftSize,
		plan:      plan,
		spec:      make([]complex128, fftSize),
		time:      make([]complex128, fftSize),
	}

	for i, v := range kernel {
		oa.time[i] = complex(v, 0)
	}

	if err := plan.Forward(oa.kernelFFT, oa.time); err != nil {
		return nil, fmt.Errorf("conv: failed to compute kernel FFT: %w", err)
	}

	return oa, nil
}

// BlockSize returns the input block size.
func (oa *OverlapAdd) BlockSize() int { return oa.blockSize }

// FFTSize returns the transform size used internally.
func (oa *OverlapAdd) FFTSize() int { return oa.fftSize }

// KernelLen returns the kernel length.
func (oa *OverlapAdd) KernelLen() int { return oa.kernelLen }

// Process returns the full linear convolution of input with the kernel.
func (oa *OverlapAdd) Process(input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	output := make([]float64, len(input)+oa.kernelLen-1)
	if err := oa.ProcessTo(output, input); err != nil {
		return nil, err
	}

	return output, nil
}

// ProcessTo convolves input into a pre-allocated output of length
// len(input) + KernelLen() - 1.
func (oa *OverlapAdd) ProcessTo(output, input []float64) error {
	if len(input) == 0 {
		return ErrEmptyInput
	}

	expected := len(input) + oa.kernelLen - 1
	if len(output) != expected {
		return fmt.Errorf("%w: expected %d, got %d", ErrLengthMismatch, expected, len(output))
	}

	clear(output)

	for start := 0; start < len(input); start += oa.blockSize {
		end := min(start+oa.blockSize, len(input))

		clear(oa.time)

		for i, v := range input[start:end] {
			oa.time[i] = complex(v, 0)
		}

		if err := oa.plan.Forward(oa.spec, oa.time); err != nil {
			return fmt.Errorf("conv: forward FFT failed: %w", err)
		}

		for i := range oa.spec {
			oa.spec[i] *= oa.kernelFFT[i]
		}

		if err := oa.plan.Inverse(oa.time, oa.spec); err != nil {
			return fmt.Errorf("conv: inverse FFT failed: %w", err)
		}

		n := min(end-start+oa.kernelLen-1, len(output)-start)
		for i := range n {
			output[start+i] += real(oa.time[i])
		}
	}

	return nil
}

// OverlapAddConvolve performs one-shot overlap-add convolution.
func OverlapAddConvolve(signal, kernel []float64) ([]float64, error) {
	oa, err := NewOverlapAdd(kernel, 0)
	if err != nil {
		return nil, err
	}

	return oa.Process(signal)
}
