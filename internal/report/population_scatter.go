package report

import (
	"io"

	"tbscope/domain/table"
	"tbscope/internal/stats"
	"tbscope/ports"
)

// PopulationIncidenceStage scatters population against incident case counts
// and renders the 2x2 correlation heatmap of the pair.
type PopulationIncidenceStage struct{}

func (s *PopulationIncidenceStage) Name() string { return "population_incidence" }

func (s *PopulationIncidenceStage) RequiredColumns() []string {
	return []string{table.ColTotalPopulation, table.ColIncidentCases}
}

func (s *PopulationIncidenceStage) Run(tbl *table.Table, renderer ports.ChartRenderer, out io.Writer) error {
	pop, _ := tbl.Numeric(table.ColTotalPopulation)
	cases, _ := tbl.Numeric(table.ColIncidentCases)

	if err := renderer.Render(ports.Chart{
		Kind:   ports.ChartScatter,
		Name:   "population_vs_incidence",
		Title:  "Population vs incident TB cases",
		XLabel: "Total population",
		YLabel: "Incident cases",
		Series: []ports.Series{{X: pop, Y: cases}},
	}); err != nil {
		return err
	}

	labels := []string{table.ColTotalPopulation, table.ColIncidentCases}
	matrix := stats.PearsonMatrix([][]float64{pop, cases})
	return renderer.Render(ports.Chart{
		Kind:         ports.ChartHeatmap,
		Name:         "population_incidence_matrix",
		Title:        "Correlation: population vs incident cases",
		Matrix:       matrix,
		MatrixLabels: labels,
	})
}
