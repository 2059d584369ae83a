package wiener

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-denoise/dsp/conv"
	"github.com/cwbudde/algo-denoise/dsp/core"
	"github.com/cwbudde/algo-denoise/dsp/spectrum"
)

// Solution is the result of an autocorrelation solve.
type Solution struct {
	// Taps holds order FIR coefficients.
	Taps []float64
	// Rank is the effective rank of the system matrix.
	Rank int
	// Cond is the 2-norm condition number; +Inf when singular.
	Cond float64
}

// System holds the least-squares problem R·h ≈ P.
type System struct {
	R *mat.Dense
	P []float64
}

// BuildSystem assembles the order×order system from the autocorrelation of
// x. Row i of R is the window of lags -(order-1)+i .. i, which makes R
// symmetric; P holds lags 0..order-1. Lags at or beyond len(x) read as 0.
func BuildSystem(x []float64, order int) (System, error) {
	if order < 1 {
		return System{}, fmt.Errorf("%w: %d", ErrInvalidOrder, order)
	}

	lags, err := conv.AutoCorrelateLags(x, order-1)
	if err != nil {
		return System{}, fmt.Errorf("wiener: %w", err)
	}

	// The centred window w has length 2·order−1 with w[order−1] at lag 0.
	lag := func(k int) float64 {
		if k < 0 {
			k = -k
		}

		return lags[k]
	}

	data := make([]float64, order*order)
	for i := range order {
		row := data[i*order : (i+1)*order]
		for j := range row {
			row[j] = lag(i + j - (order - 1))
		}
	}

	return System{
		R: mat.NewDense(order, order, data),
		P: append([]float64(nil), lags...),
	}, nil
}

// WhiteNoiseVariance estimates the variance of a white noise floor in x
// from the median of its Welch PSD. Tonal components occupy few bins and
// leave the median on the floor.
func WhiteNoiseVariance(x []float64) (float64, error) {
	// At unit sample rate white noise of variance σ² has density 2σ².
	psd, err := spectrum.Welch(x, 1)
	if err != nil {
		return 0, fmt.Errorf("wiener: %w", err)
	}

	sorted := append([]float64(nil), psd.Power...)
	sort.Float64s(sorted)

	return stat.Quantile(0.5, stat.Empirical, sorted, nil) / 2, nil
}

// SolveAutocorrelation designs order taps from the raw channel x.
//
// Unless WithoutNoiseCompensation is given, the zero-lag entry of P is
// reduced by len(x)·σ̂², the energy of the estimated white-noise floor,
// clamped to [0, r(0)]. The raw system has the trivial exact solution of a
// pure delay, which leaves the channel unchanged; the compensated target is
// the signal autocorrelation, so the taps are the time-reversed Wiener
// filter with the Wiener magnitude response.
//
// The system is solved for the minimum-norm least-squares solution by SVD
// with singular values below ε·order·σmax treated as zero. A silent channel
// (rank 0) yields all-zero taps.
func SolveAutocorrelation(x []float64, order int, opts ...Option) (Solution, error) {
	return applyOptions(opts).solve(x, order)
}

func (c config) solve(x []float64, order int) (Solution, error) {
	if len(x) == 0 {
		return Solution{}, ErrEmptyInput
	}

	sys, err := BuildSystem(x, order)
	if err != nil {
		return Solution{}, err
	}

	if c.compensate {
		variance, err := WhiteNoiseVariance(x)
		if err != nil {
			return Solution{}, err
		}

		sys.P[0] -= core.Clamp(float64(len(x))*variance, 0, sys.P[0])
	}

	var svd mat.SVD
	if ok := svd.Factorize(sys.R, mat.SVDThin); !ok {
		return Solution{}, fmt.Errorf("%w: order %d", ErrFactorization, order)
	}

	rank := svd.Rank(machineEpsilon * float64(order))

	sol := Solution{
		Taps: make([]float64, order),
		Rank: rank,
		Cond: math.Inf(1),
	}

	if rank == 0 {
		c.logger.Debug("autocorrelation system is zero, returning zero taps",
			zap.Int("order", order))

		return sol, nil
	}

	if s := svd.Values(nil); s[len(s)-1] > 0 {
		sol.Cond = s[0] / s[len(s)-1]
	}

	var h mat.VecDense
	svd.SolveVecTo(&h, mat.NewVecDense(order, sys.P), rank)

	for i := range sol.Taps {
		sol.Taps[i] = h.AtVec(i)
	}

	if rank < order {
		c.logger.Debug("rank-deficient autocorrelation system",
			zap.Int("order", order),
			zap.Int("rank", rank),
			zap.Float64("cond", sol.Cond))
	}

	return sol, nil
}

// machineEpsilon is the spacing of float64 values at 1.
var machineEpsilon = math.Nextafter(1, 2) - 1
