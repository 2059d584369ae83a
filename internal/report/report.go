// Package report runs directory-level comparisons and writes them as CSV
// or aligned text tables.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

// Comparison is one relative row: a candidate file against its reference.
type Comparison struct {
	File         string
	Label        string
	CentroidDiff float64
	MeanDiff     float64
}

// Absolute is one row of raw descriptors for a single file.
type Absolute struct {
	File         string
	Label        string
	MeanCentroid float64
	Flatness     float64
	RMSdB        float64
	CrestdB      float64
}

// Report holds the rows of one batch run. Only one of the slices is
// populated, depending on the batch mode.
type Report struct {
	Comparisons []Comparison
	Absolutes   []Absolute
}

// Len returns the number of rows.
func (r *Report) Len() int {
	return len(r.Comparisons) + len(r.Absolutes)
}

func (r *Report) header() []string {
	if r.Absolutes != nil {
		return []string{"file", "label", "mean_centroid_hz", "mean_flatness", "rms_db", "crest_db"}
	}

	return []string{"file", "label", "centroid_diff_pct", "mean_diff_pct"}
}

func (r *Report) rows(prec int) [][]string {
	format := func(v float64) string {
		return strconv.FormatFloat(v, 'f', prec, 64)
	}

	out := make([][]string, 0, r.Len())
	for _, c := range r.Comparisons {
		out = append(out, []string{c.File, c.Label, format(c.CentroidDiff), format(c.MeanDiff)})
	}

	for _, a := range r.Absolutes {
		out = append(out, []string{a.File, a.Label, format(a.MeanCentroid), format(a.Flatness), format(a.RMSdB), format(a.CrestdB)})
	}

	return out
}

// WriteCSV writes a header line followed by one record per row.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(r.header()); err != nil {
		return fmt.Errorf("report: write header: %w", err)
	}

	if err := cw.WriteAll(r.rows(-1)); err != nil {
		return fmt.Errorf("report: write rows: %w", err)
	}

	return nil
}

// WriteTable writes the rows as an aligned text table.
func (r *Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	lines := append([][]string{r.header()}, r.rows(4)...)
	for _, line := range lines {
		for i, cell := range line {
			sep := "\t"
			if i == len(line)-1 {
				sep = "\n"
			}

			if _, err := io.WriteString(tw, cell+sep); err != nil {
				return fmt.Errorf("report: write table: %w", err)
			}
		}
	}

	return tw.Flush()
}
