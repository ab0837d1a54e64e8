package report

import (
	"fmt"
	"io"
	"math"
	"sort"

	"tbscope/domain/table"
	"tbscope/ports"
)

// PrevalenceByYearStage draws one box per year of the derived prevalence
// rate distribution across countries.
type PrevalenceByYearStage struct{}

func (s *PrevalenceByYearStage) Name() string { return "prevalence_by_year" }

func (s *PrevalenceByYearStage) RequiredColumns() []string {
	return []string{table.ColYear, table.ColPrevalenceRateCalc}
}

func (s *PrevalenceByYearStage) Run(tbl *table.Table, renderer ports.ChartRenderer, out io.Writer) error {
	years, _ := tbl.Numeric(table.ColYear)
	rates, _ := tbl.Numeric(table.ColPrevalenceRateCalc)

	byYear := make(map[int][]float64)
	for i, y := range years {
		if math.IsNaN(y) || math.IsNaN(rates[i]) {
			continue
		}
		byYear[int(y)] = append(byYear[int(y)], rates[i])
	}
	if len(byYear) == 0 {
		fmt.Fprintln(out, "\nNo prevalence observations; yearly box plot skipped.")
		return nil
	}

	order := make([]int, 0, len(byYear))
	for y := range byYear {
		order = append(order, y)
	}
	sort.Ints(order)

	groups := make([]ports.BoxGroup, 0, len(order))
	for _, y := range order {
		groups = append(groups, ports.BoxGroup{
			Label:  fmt.Sprintf("%d", y),
			Values: byYear[y],
		})
	}

	fmt.Fprintf(out, "\nPrevalence distribution boxes: %d years, %d-%d\n",
		len(order), order[0], order[len(order)-1])

	return renderer.Render(ports.Chart{
		Kind:   ports.ChartBox,
		Name:   "prevalence_by_year",
		Title:  "TB prevalence rate distribution by year",
		XLabel: "Year",
		YLabel: "Prevalence per 100k",
		Groups: groups,
	})
}
