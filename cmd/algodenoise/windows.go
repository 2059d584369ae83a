package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/cwbudde/algo-denoise/dsp/window"
)

// WindowsCmd prints gain and bandwidth figures for the windows the
// spectral estimators can use.
type WindowsCmd struct {
	Size      int      `default:"256" help:"Window length in samples."`
	Symmetric bool     `help:"Use the symmetric form instead of the periodic one used for framing."`
	Names     []string `arg:"" optional:"" help:"Window names (default: all)."`
}

func (c *WindowsCmd) Run(a *app) error {
	if c.Size < 1 {
		return fmt.Errorf("window size must be >= 1, got %d", c.Size)
	}

	types := window.Types()
	if len(c.Names) > 0 {
		types = types[:0:0]

		for _, name := range c.Names {
			t, err := window.Parse(name)
			if err != nil {
				return err
			}

			types = append(types, t)
		}
	}

	var opts []window.Option
	if !c.Symmetric {
		opts = append(opts, window.WithPeriodic())
	}

	tw := tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Window\tSize\tCoherent Gain\tENBW [bins]\tPower Sum\n")
	fmt.Fprintf(tw, "------\t----\t-------------\t-----------\t---------\n")

	for _, t := range types {
		coeffs := window.Generate(t, c.Size, opts...)

		enbw, err := window.EquivalentNoiseBandwidth(coeffs)
		if err != nil {
			return fmt.Errorf("%s: %w", t, err)
		}

		fmt.Fprintf(tw, "%s\t%d\t%.6f\t%.4f\t%.4f\n",
			t, c.Size, window.CoherentSum(coeffs)/float64(c.Size), enbw, window.PowerSum(coeffs))
	}

	return tw.Flush()
}
