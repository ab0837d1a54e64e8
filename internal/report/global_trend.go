package report

import (
	"fmt"
	"io"

	"tbscope/domain/table"
	"tbscope/internal/stats"
	"tbscope/ports"
)

// GlobalTrendStage plots the mean incidence rate across all countries for
// each year.
type GlobalTrendStage struct{}

func (s *GlobalTrendStage) Name() string { return "global_trend" }

func (s *GlobalTrendStage) RequiredColumns() []string {
	return []string{table.ColYear, table.ColIncidenceRateCalc}
}

func (s *GlobalTrendStage) Run(tbl *table.Table, renderer ports.ChartRenderer, out io.Writer) error {
	years, _ := tbl.Numeric(table.ColYear)
	rates, _ := tbl.Numeric(table.ColIncidenceRateCalc)

	order, means := stats.GroupMeansByValue(years, rates)
	if len(order) == 0 {
		fmt.Fprintln(out, "\nNo year values present; global trend skipped.")
		return nil
	}

	fmt.Fprintf(out, "\nGlobal mean incidence per 100k, %d-%d: %.1f -> %.1f\n",
		int(order[0]), int(order[len(order)-1]), means[0], means[len(means)-1])

	return renderer.Render(ports.Chart{
		Kind:   ports.ChartLine,
		Name:   "global_incidence_trend",
		Title:  "Global mean TB incidence rate by year",
		XLabel: "Year",
		YLabel: "Mean incidence per 100k",
		Series: []ports.Series{{X: order, Y: means}},
	})
}
