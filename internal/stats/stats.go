// Package stats holds the numerical routines shared by the report stages:
// pairwise-complete Pearson correlation, the two-sample t-test, and
// IQR-based outlier detection.
package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DropMissing returns the non-NaN entries of vals, preserving order.
func DropMissing(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// Mean returns the arithmetic mean of the non-NaN entries, or NaN if none.
func Mean(vals []float64) float64 {
	present := DropMissing(vals)
	if len(present) == 0 {
		return math.NaN()
	}
	m, err := stats.Mean(present)
	if err != nil {
		return math.NaN()
	}
	return m
}

// PearsonMatrix computes the pairwise-complete Pearson correlation matrix of
// the given columns. For each pair, rows where either value is NaN are
// excluded. Diagonal entries are 1; pairs with fewer than two complete rows
// yield NaN.
func PearsonMatrix(columns [][]float64) [][]float64 {
	n := len(columns)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r := pairwisePearson(columns[i], columns[j])
			matrix[i][j] = r
			matrix[j][i] = r
		}
	}
	return matrix
}

func pairwisePearson(x, y []float64) float64 {
	xs := make([]float64, 0, len(x))
	ys := make([]float64, 0, len(y))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	return stat.Correlation(xs, ys, nil)
}

// TTestResult holds the outcome of a two-sample t-test.
type TTestResult struct {
	T       float64
	P       float64 // two-sided
	DF      float64
	N1, N2  int
	Mean1   float64
	Mean2   float64
	PooledS float64
}

// StudentTTest performs an independent two-sample Student's t-test with
// pooled variance (equal variances assumed). Missing values are dropped from
// both samples; the two-sided p-value comes from the Student's-t CDF with
// n1+n2-2 degrees of freedom.
func StudentTTest(sample1, sample2 []float64) (TTestResult, error) {
	g1 := DropMissing(sample1)
	g2 := DropMissing(sample2)
	n1 := float64(len(g1))
	n2 := float64(len(g2))
	if n1 < 2 || n2 < 2 {
		return TTestResult{}, fmt.Errorf("t-test requires at least 2 observations per group, got %d and %d", len(g1), len(g2))
	}

	mean1 := stat.Mean(g1, nil)
	mean2 := stat.Mean(g2, nil)
	var1 := stat.Variance(g1, nil)
	var2 := stat.Variance(g2, nil)

	df := n1 + n2 - 2
	pooled := ((n1-1)*var1 + (n2-1)*var2) / df
	se := math.Sqrt(pooled * (1/n1 + 1/n2))
	if se == 0 {
		return TTestResult{}, fmt.Errorf("t-test undefined: zero pooled standard error")
	}
	t := (mean1 - mean2) / se

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	p := 2 * dist.CDF(-math.Abs(t))

	return TTestResult{
		T:       t,
		P:       p,
		DF:      df,
		N1:      len(g1),
		N2:      len(g2),
		Mean1:   mean1,
		Mean2:   mean2,
		PooledS: math.Sqrt(pooled),
	}, nil
}

// Quartiles returns Q1 and Q3 (25th and 75th percentile) of the non-NaN
// entries.
func Quartiles(vals []float64) (q1, q3 float64, err error) {
	present := DropMissing(vals)
	if len(present) == 0 {
		return 0, 0, fmt.Errorf("quartiles undefined for empty data")
	}
	q1, err = stats.Percentile(present, 25)
	if err != nil {
		return 0, 0, err
	}
	q3, err = stats.Percentile(present, 75)
	if err != nil {
		return 0, 0, err
	}
	return q1, q3, nil
}

// IQROutliers flags indices whose value lies outside the 1.5*IQR fences
// computed over the full column. NaN entries are never flagged.
func IQROutliers(vals []float64) (lower, upper float64, indices []int, err error) {
	q1, q3, err := Quartiles(vals)
	if err != nil {
		return 0, 0, nil, err
	}
	iqr := q3 - q1
	lower = q1 - 1.5*iqr
	upper = q3 + 1.5*iqr
	for i, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		if v < lower || v > upper {
			indices = append(indices, i)
		}
	}
	return lower, upper, indices, nil
}

// GroupMeansByLabel returns per-group means of vals keyed by label, in
// first-encountered label order. NaN values are excluded from group means.
func GroupMeansByLabel(labels []string, vals []float64) (order []string, means []float64) {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i, label := range labels {
		if _, seen := counts[label]; !seen {
			order = append(order, label)
			counts[label] = 0
		}
		if i < len(vals) && !math.IsNaN(vals[i]) {
			sums[label] += vals[i]
			counts[label]++
		}
	}
	means = make([]float64, len(order))
	for i, label := range order {
		if counts[label] == 0 {
			means[i] = math.NaN()
			continue
		}
		means[i] = sums[label] / float64(counts[label])
	}
	return order, means
}

// GroupMeansByValue returns per-group means of vals keyed by the numeric key
// column, ordered by ascending key. NaN values are excluded from group means;
// rows with a NaN key are skipped entirely.
func GroupMeansByValue(keys, vals []float64) (order []float64, means []float64) {
	sums := make(map[float64]float64)
	counts := make(map[float64]int)
	for i, k := range keys {
		if math.IsNaN(k) {
			continue
		}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
			counts[k] = 0
		}
		if i < len(vals) && !math.IsNaN(vals[i]) {
			sums[k] += vals[i]
			counts[k]++
		}
	}
	sort.Float64s(order)
	means = make([]float64, len(order))
	for i, k := range order {
		if counts[k] == 0 {
			means[i] = math.NaN()
			continue
		}
		means[i] = sums[k] / float64(counts[k])
	}
	return order, means
}
