package report

import (
	"fmt"
	"io"

	"tbscope/domain/table"
	"tbscope/internal/stats"
	"tbscope/ports"
)

// CorrelationStage renders an annotated pairwise-complete Pearson
// correlation heatmap over a fixed set of numeric columns.
type CorrelationStage struct {
	StageName string
	ChartName string
	Title     string
	Columns   []string
}

func (s *CorrelationStage) Name() string              { return s.StageName }
func (s *CorrelationStage) RequiredColumns() []string { return s.Columns }

func (s *CorrelationStage) Run(tbl *table.Table, renderer ports.ChartRenderer, out io.Writer) error {
	columns := make([][]float64, len(s.Columns))
	for i, name := range s.Columns {
		vals, _ := tbl.Numeric(name)
		columns[i] = vals
	}
	matrix := stats.PearsonMatrix(columns)

	fmt.Fprintf(out, "\nPearson correlation (%d columns, pairwise-complete):\n", len(s.Columns))
	for i, name := range s.Columns {
		fmt.Fprintf(out, "  %-26s", name)
		for j := range s.Columns {
			fmt.Fprintf(out, " %6.2f", matrix[i][j])
		}
		fmt.Fprintln(out)
	}

	return renderer.Render(ports.Chart{
		Kind:         ports.ChartHeatmap,
		Name:         s.ChartName,
		Title:        s.Title,
		Matrix:       matrix,
		MatrixLabels: s.Columns,
	})
}
