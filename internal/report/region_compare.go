package report

import (
	"fmt"
	"io"

	"tbscope/domain/table"
	"tbscope/ports"
)

// RegionComparatorStage charts mean mortality per WHO region and runs an
// independent two-sample t-test between two chosen regions.
type RegionComparatorStage struct {
	RegionA string
	RegionB string
	Alpha   float64
}

func (s *RegionComparatorStage) Name() string { return "region_comparator" }

func (s *RegionComparatorStage) RequiredColumns() []string {
	return []string{table.ColRegion, table.ColMortalityRateCalc}
}

func (s *RegionComparatorStage) Run(tbl *table.Table, renderer ports.ChartRenderer, out io.Writer) error {
	summary, err := RegionComparison(tbl, s.RegionA, s.RegionB, s.Alpha)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "\nMean mortality rate per 100k by region:")
	for i, region := range summary.Regions {
		fmt.Fprintf(out, "  %-6s %8.2f\n", region, summary.Means[i])
	}

	t := summary.Test
	fmt.Fprintf(out, "\nStudent's t-test, %s (n=%d, mean=%.2f) vs %s (n=%d, mean=%.2f):\n",
		s.RegionA, t.N1, t.Mean1, s.RegionB, t.N2, t.Mean2)
	fmt.Fprintf(out, "  t = %.4f, df = %.0f, p = %.4g\n", t.T, t.DF, t.P)
	if summary.Significant {
		fmt.Fprintf(out, "  p < %.2f: the regional difference in mortality is statistically significant\n", s.Alpha)
	} else {
		fmt.Fprintf(out, "  p >= %.2f: no statistically significant regional difference in mortality\n", s.Alpha)
	}

	return renderer.Render(ports.Chart{
		Kind:   ports.ChartBar,
		Name:   "region_mortality",
		Title:  "Mean TB mortality rate by WHO region",
		XLabel: "Region",
		YLabel: "Mean mortality per 100k",
		Labels: summary.Regions,
		Values: summary.Means,
	})
}
