package wiener

import (
	"fmt"
	"testing"

	"github.com/cwbudde/algo-denoise/internal/testutil"
)

func BenchmarkDenoiseChannel(b *testing.B) {
	x := testutil.NoisySine(440, 44100, 0.8, 10, 1, 44100)

	for _, tt := range methods {
		b.Run(tt.name, func(b *testing.B) {
			b.ReportAllocs()

			for range b.N {
				if _, err := DenoiseChannel(x, 44100, tt.method, tt.opts...); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkSolveAutocorrelation(b *testing.B) {
	x := testutil.NoisySine(440, 44100, 0.8, 10, 1, 8192)

	for _, order := range []int{ShortOrder, 128} {
		b.Run(fmt.Sprintf("order-%d", order), func(b *testing.B) {
			for range b.N {
				if _, err := SolveAutocorrelation(x, order); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

