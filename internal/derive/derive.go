// Package derive computes the per-100k rate columns from raw counts.
package derive

import (
	"math"

	"tbscope/domain/table"
	apperrors "tbscope/internal/errors"
)

// Per100k is the scale factor for the derived rate columns.
const Per100k = 100000.0

// rateSpec ties a derived column to its raw count column.
var rateSpecs = []struct {
	derived string
	count   string
}{
	{table.ColIncidenceRateCalc, table.ColIncidentCases},
	{table.ColMortalityRateCalc, table.ColDeathsTB},
	{table.ColPrevalenceRateCalc, table.ColPrevalentCasesTB},
}

// Result reports derivation side facts.
type Result struct {
	// ZeroPopulationRows counts rows whose TotalPopulation is zero. The
	// derived rates for those rows are NaN and every downstream consumer
	// treats NaN as missing.
	ZeroPopulationRows int
}

// AddRateColumns appends IncidenceRateCalc, MortalityRateCalc and
// PrevalenceRateCalc to the cleaned table, each count/population*100000
// row-wise. Rows with zero population yield NaN.
func AddRateColumns(tbl *table.Table) (*Result, error) {
	pop, ok := tbl.Numeric(table.ColTotalPopulation)
	if !ok {
		return nil, apperrors.MissingColumn("derive", table.ColTotalPopulation)
	}

	res := &Result{}
	for i := range pop {
		if pop[i] == 0 {
			res.ZeroPopulationRows++
		}
	}

	for _, spec := range rateSpecs {
		counts, ok := tbl.Numeric(spec.count)
		if !ok {
			return nil, apperrors.MissingColumn("derive", spec.count)
		}
		rates := make([]float64, len(counts))
		for i, c := range counts {
			if pop[i] == 0 {
				rates[i] = math.NaN()
				continue
			}
			rates[i] = c / pop[i] * Per100k
		}
		if err := tbl.AddNumeric(spec.derived, rates); err != nil {
			return nil, apperrors.Wrap(err, "failed to add derived column "+spec.derived)
		}
	}

	return res, nil
}
