package report

import (
	"fmt"
	"io"
	"math"
	"sort"

	"tbscope/domain/table"
	"tbscope/ports"
)

// CountryTrendStage plots the three derived per-100k rates of one country
// over time on a single line chart.
type CountryTrendStage struct {
	Country string
}

func (s *CountryTrendStage) Name() string { return "country_trend" }

func (s *CountryTrendStage) RequiredColumns() []string {
	return []string{
		table.ColCountryName,
		table.ColYear,
		table.ColIncidenceRateCalc,
		table.ColMortalityRateCalc,
		table.ColPrevalenceRateCalc,
	}
}

func (s *CountryTrendStage) Run(tbl *table.Table, renderer ports.ChartRenderer, out io.Writer) error {
	countries, _ := tbl.Categorical(table.ColCountryName)
	years, _ := tbl.Numeric(table.ColYear)

	var indices []int
	for i, c := range countries {
		if c == s.Country && !math.IsNaN(years[i]) {
			indices = append(indices, i)
		}
	}
	if len(indices) == 0 {
		fmt.Fprintf(out, "\nNo rows found for country %q; trend chart skipped.\n", s.Country)
		return nil
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return years[indices[a]] < years[indices[b]]
	})

	rateColumns := []struct {
		column string
		label  string
	}{
		{table.ColIncidenceRateCalc, "Incidence per 100k"},
		{table.ColMortalityRateCalc, "Mortality per 100k"},
		{table.ColPrevalenceRateCalc, "Prevalence per 100k"},
	}

	series := make([]ports.Series, 0, len(rateColumns))
	for _, rc := range rateColumns {
		rates, _ := tbl.Numeric(rc.column)
		x := make([]float64, 0, len(indices))
		y := make([]float64, 0, len(indices))
		for _, i := range indices {
			x = append(x, years[i])
			y = append(y, rates[i])
		}
		series = append(series, ports.Series{Name: rc.label, X: x, Y: y})
	}

	fmt.Fprintf(out, "\n%s: %d observations, %d-%d\n",
		s.Country, len(indices), int(years[indices[0]]), int(years[indices[len(indices)-1]]))

	return renderer.Render(ports.Chart{
		Kind:   ports.ChartLine,
		Name:   "country_trend",
		Title:  fmt.Sprintf("TB burden rates over time: %s", s.Country),
		XLabel: "Year",
		YLabel: "Rate per 100k population",
		Series: series,
	})
}
