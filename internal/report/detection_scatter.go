package report

import (
	"io"

	"tbscope/domain/table"
	"tbscope/ports"
)

// DetectionOutcomeStage scatters case detection rate against the derived
// mortality and prevalence rates on one chart.
type DetectionOutcomeStage struct{}

func (s *DetectionOutcomeStage) Name() string { return "detection_outcome" }

func (s *DetectionOutcomeStage) RequiredColumns() []string {
	return []string{
		table.ColCaseDetectionRatePercent,
		table.ColMortalityRateCalc,
		table.ColPrevalenceRateCalc,
	}
}

func (s *DetectionOutcomeStage) Run(tbl *table.Table, renderer ports.ChartRenderer, out io.Writer) error {
	detection, _ := tbl.Numeric(table.ColCaseDetectionRatePercent)
	mortality, _ := tbl.Numeric(table.ColMortalityRateCalc)
	prevalence, _ := tbl.Numeric(table.ColPrevalenceRateCalc)

	return renderer.Render(ports.Chart{
		Kind:   ports.ChartScatter,
		Name:   "detection_vs_outcome",
		Title:  "Case detection rate vs TB burden rates",
		XLabel: "Case detection rate (%)",
		YLabel: "Rate per 100k",
		Series: []ports.Series{
			{Name: "Mortality per 100k", X: detection, Y: mortality},
			{Name: "Prevalence per 100k", X: detection, Y: prevalence},
		},
	})
}
