package report

import (
	"fmt"
	"io"

	"tbscope/domain/table"
	"tbscope/ports"
)

// TopCountriesStage prints and charts the latest-year prevalence ranking.
type TopCountriesStage struct {
	N int
}

func (s *TopCountriesStage) Name() string { return "top_prevalence" }

func (s *TopCountriesStage) RequiredColumns() []string {
	return []string{table.ColCountryName, table.ColYear, table.ColPrevalenceRateCalc}
}

func (s *TopCountriesStage) Run(tbl *table.Table, renderer ports.ChartRenderer, out io.Writer) error {
	ranking, latestYear, err := TopPrevalence(tbl, s.N)
	if err != nil {
		return err
	}
	if len(ranking) == 0 {
		fmt.Fprintf(out, "\nNo prevalence observations in %d; ranking skipped.\n", latestYear)
		return nil
	}

	fmt.Fprintf(out, "\nTop %d countries by prevalence rate, %d:\n", len(ranking), latestYear)
	labels := make([]string, 0, len(ranking))
	values := make([]float64, 0, len(ranking))
	for i, r := range ranking {
		fmt.Fprintf(out, "  %2d. %-32s %10.1f\n", i+1, r.Country, r.Rate)
		labels = append(labels, r.Country)
		values = append(values, r.Rate)
	}

	return renderer.Render(ports.Chart{
		Kind:   ports.ChartBar,
		Name:   "top_prevalence",
		Title:  fmt.Sprintf("Top %d countries by TB prevalence rate, %d", len(ranking), latestYear),
		XLabel: "Country",
		YLabel: "Prevalence per 100k",
		Labels: labels,
		Values: values,
	})
}
