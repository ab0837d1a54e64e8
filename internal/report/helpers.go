package report

import (
	"math"
	"sort"

	"tbscope/domain/table"
	apperrors "tbscope/internal/errors"
	"tbscope/internal/stats"
)

// RankedCountry is one row of the latest-year prevalence ranking.
type RankedCountry struct {
	Country string
	Rate    float64
}

// TopPrevalence returns the top-n countries by PrevalenceRateCalc among rows
// of the latest year. Ties keep original row order; rows whose rate is
// missing (NaN) are excluded.
func TopPrevalence(tbl *table.Table, n int) (ranking []RankedCountry, latestYear int, err error) {
	years, ok := tbl.Numeric(table.ColYear)
	if !ok {
		return nil, 0, apperrors.MissingColumn("top_prevalence", table.ColYear)
	}
	rates, ok := tbl.Numeric(table.ColPrevalenceRateCalc)
	if !ok {
		return nil, 0, apperrors.MissingColumn("top_prevalence", table.ColPrevalenceRateCalc)
	}
	countries, ok := tbl.Categorical(table.ColCountryName)
	if !ok {
		return nil, 0, apperrors.MissingColumn("top_prevalence", table.ColCountryName)
	}

	latest := math.Inf(-1)
	for _, y := range years {
		if !math.IsNaN(y) && y > latest {
			latest = y
		}
	}
	if math.IsInf(latest, -1) {
		return nil, 0, apperrors.New(apperrors.CodeInternalError, "no year values present")
	}

	var indices []int
	for i, y := range years {
		if y == latest && !math.IsNaN(rates[i]) {
			indices = append(indices, i)
		}
	}
	// Stable sort keeps original row order on ties.
	sort.SliceStable(indices, func(a, b int) bool {
		return rates[indices[a]] > rates[indices[b]]
	})
	if len(indices) > n {
		indices = indices[:n]
	}

	ranking = make([]RankedCountry, 0, len(indices))
	for _, i := range indices {
		ranking = append(ranking, RankedCountry{Country: countries[i], Rate: rates[i]})
	}
	return ranking, int(latest), nil
}

// OutlierRow is one flagged row of the incidence outlier scan.
type OutlierRow struct {
	Country string
	Year    int
	Rate    float64
}

// OutlierSummary carries the IQR fences and the flagged rows.
type OutlierSummary struct {
	Q1, Q3, IQR  float64
	Lower, Upper float64
	Rows         []OutlierRow
}

// IncidenceOutliers flags rows whose IncidenceRateCalc lies outside the
// 1.5*IQR fences computed over the full column.
func IncidenceOutliers(tbl *table.Table) (*OutlierSummary, error) {
	rates, ok := tbl.Numeric(table.ColIncidenceRateCalc)
	if !ok {
		return nil, apperrors.MissingColumn("incidence_distribution", table.ColIncidenceRateCalc)
	}
	countries, ok := tbl.Categorical(table.ColCountryName)
	if !ok {
		return nil, apperrors.MissingColumn("incidence_distribution", table.ColCountryName)
	}
	years, ok := tbl.Numeric(table.ColYear)
	if !ok {
		return nil, apperrors.MissingColumn("incidence_distribution", table.ColYear)
	}

	q1, q3, err := stats.Quartiles(rates)
	if err != nil {
		return nil, err
	}
	lower, upper, indices, err := stats.IQROutliers(rates)
	if err != nil {
		return nil, err
	}

	summary := &OutlierSummary{Q1: q1, Q3: q3, IQR: q3 - q1, Lower: lower, Upper: upper}
	for _, i := range indices {
		summary.Rows = append(summary.Rows, OutlierRow{
			Country: countries[i],
			Year:    int(years[i]),
			Rate:    rates[i],
		})
	}
	return summary, nil
}

// RegionSummary carries per-region mortality means and the two-region test.
type RegionSummary struct {
	Regions []string
	Means   []float64
	Test    stats.TTestResult
	// Significant reports the fixed-threshold verdict p < alpha.
	Significant bool
	Alpha       float64
}

// RegionComparison computes mean MortalityRateCalc per region in
// first-encountered region order and an independent two-sample Student's
// t-test (equal variances assumed) between regions a and b, missing values
// dropped.
func RegionComparison(tbl *table.Table, a, b string, alpha float64) (*RegionSummary, error) {
	regions, ok := tbl.Categorical(table.ColRegion)
	if !ok {
		return nil, apperrors.MissingColumn("region_comparator", table.ColRegion)
	}
	rates, ok := tbl.Numeric(table.ColMortalityRateCalc)
	if !ok {
		return nil, apperrors.MissingColumn("region_comparator", table.ColMortalityRateCalc)
	}

	order, means := stats.GroupMeansByLabel(regions, rates)

	var sampleA, sampleB []float64
	for i, region := range regions {
		switch region {
		case a:
			sampleA = append(sampleA, rates[i])
		case b:
			sampleB = append(sampleB, rates[i])
		}
	}
	test, err := stats.StudentTTest(sampleA, sampleB)
	if err != nil {
		return nil, apperrors.Wrapf(err, "t-test %s vs %s failed", a, b)
	}

	return &RegionSummary{
		Regions:     order,
		Means:       means,
		Test:        test,
		Significant: test.P < alpha,
		Alpha:       alpha,
	}, nil
}
