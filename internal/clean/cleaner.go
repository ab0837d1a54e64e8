// Package clean implements the missing-value policy: sparse columns are
// dropped, surviving columns are imputed (mode for categorical, mean for
// numeric) so the cleaned table contains no missing entries.
package clean

import (
	"math"

	"tbscope/domain/table"
	apperrors "tbscope/internal/errors"

	"github.com/montanaflynn/stats"
)

// Cleaner drops sparse columns and imputes the rest.
type Cleaner struct {
	// DropThreshold is the missing-fraction at or above which a column is
	// removed before any imputation.
	DropThreshold float64
}

// Report records what cleaning did, for the console null-count summary.
type Report struct {
	NullsBefore    map[string]int
	NullsAfter     map[string]int
	DroppedColumns []string
}

// Clean returns a cleaned copy of the raw table. The input is not modified.
func (c *Cleaner) Clean(raw *table.Table) (*table.Table, *Report, error) {
	tbl := raw.Clone()
	report := &Report{
		NullsBefore: raw.MissingCounts(),
		NullsAfter:  make(map[string]int),
	}

	for _, name := range tbl.Columns() {
		if tbl.MissingFraction(name) >= c.DropThreshold {
			if err := tbl.Drop(name); err != nil {
				return nil, nil, err
			}
			report.DroppedColumns = append(report.DroppedColumns, name)
		}
	}

	for _, name := range tbl.Columns() {
		switch tbl.Kind(name) {
		case table.KindCategorical:
			vals, _ := tbl.Categorical(name)
			if err := tbl.SetCategorical(name, modeFill(vals)); err != nil {
				return nil, nil, err
			}
		case table.KindNumeric:
			vals, _ := tbl.Numeric(name)
			filled, err := meanFill(name, vals)
			if err != nil {
				return nil, nil, err
			}
			if err := tbl.SetNumeric(name, filled); err != nil {
				return nil, nil, err
			}
		}
		report.NullsAfter[name] = tbl.MissingCount(name)
	}

	return tbl, report, nil
}

// modeFill replaces missing entries with the most frequent value. Ties break
// toward the value first encountered in column order. A column that is all
// missing survives only below the drop threshold, which cannot happen for
// thresholds <= 1; the guard keeps the function total anyway.
func modeFill(vals []string) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, v := range vals {
		if v == "" {
			continue
		}
		if _, ok := firstSeen[v]; !ok {
			firstSeen[v] = i
		}
		counts[v]++
	}

	mode := ""
	best := 0
	for v, n := range counts {
		if n > best || (n == best && firstSeen[v] < firstSeen[mode]) {
			mode = v
			best = n
		}
	}

	out := make([]string, len(vals))
	for i, v := range vals {
		if v == "" {
			out[i] = mode
		} else {
			out[i] = v
		}
	}
	return out
}

// meanFill replaces NaN entries with the arithmetic mean of present values.
func meanFill(name string, vals []float64) ([]float64, error) {
	present := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	if len(present) == 0 {
		return nil, apperrors.EmptyColumn(name)
	}
	mean, err := stats.Mean(present)
	if err != nil {
		return nil, apperrors.Wrap(err, "mean imputation failed for column "+name)
	}

	out := make([]float64, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) {
			out[i] = mean
		} else {
			out[i] = v
		}
	}
	return out, nil
}
