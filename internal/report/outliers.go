package report

import (
	"fmt"
	"io"

	"tbscope/domain/table"
	"tbscope/internal/stats"
	"tbscope/ports"
)

// IncidenceDistributionStage renders the incidence rate histogram and box
// plot and reports rows outside the 1.5*IQR fences.
type IncidenceDistributionStage struct {
	Bins int
}

func (s *IncidenceDistributionStage) Name() string { return "incidence_distribution" }

func (s *IncidenceDistributionStage) RequiredColumns() []string {
	return []string{table.ColCountryName, table.ColYear, table.ColIncidenceRateCalc}
}

func (s *IncidenceDistributionStage) Run(tbl *table.Table, renderer ports.ChartRenderer, out io.Writer) error {
	summary, err := IncidenceOutliers(tbl)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nIncidence rate spread: Q1=%.1f Q3=%.1f IQR=%.1f fences=[%.1f, %.1f]\n",
		summary.Q1, summary.Q3, summary.IQR, summary.Lower, summary.Upper)
	fmt.Fprintf(out, "Rows outside the fences: %d\n", len(summary.Rows))
	for _, r := range summary.Rows {
		fmt.Fprintf(out, "  %-32s %d %10.1f\n", r.Country, r.Year, r.Rate)
	}

	rates, _ := tbl.Numeric(table.ColIncidenceRateCalc)
	if err := renderer.Render(ports.Chart{
		Kind:   ports.ChartHistogram,
		Name:   "incidence_histogram",
		Title:  "Distribution of TB incidence rates",
		XLabel: "Incidence per 100k",
		YLabel: "Count",
		Values: rates,
		Bins:   s.Bins,
	}); err != nil {
		return err
	}

	return renderer.Render(ports.Chart{
		Kind:   ports.ChartBox,
		Name:   "incidence_box",
		Title:  "TB incidence rate, all rows",
		YLabel: "Incidence per 100k",
		Groups: []ports.BoxGroup{{Label: "All countries", Values: stats.DropMissing(rates)}},
	})
}
