package core

// Clone returns an independent copy of x. A nil slice stays nil.
func Clone(x []float64) []float64 {
	if x == nil {
		return nil
	}
	out := make([]float64, len(x))
	copy(out, x)
	return out
}

// Fit returns a copy of x truncated or zero-padded to exactly n samples.
func Fit(x []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, x)
	return out
}
