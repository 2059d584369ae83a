package time_test

import (
	"fmt"

	timestats "github.com/cwbudde/algo-denoise/stats/time"
)

func ExampleMeasure() {
	l := timestats.Measure([]float64{1, -1, 1, -1})
	fmt.Printf("rms=%.1f zc=%d crest=%.1f dB\n", l.RMS, l.ZeroCrossings, l.CrestFactor_dB)

	// Output:
	// rms=1.0 zc=3 crest=0.0 dB
}

func ExampleSNR() {
	snr, err := timestats.SNR([]float64{1, 1, 1, 1}, []float64{1.1, 0.9, 1.1, 0.9})
	if err != nil {
		panic(err)
	}

	fmt.Printf("%.0f dB\n", snr)

	// Output:
	// 20 dB
}
