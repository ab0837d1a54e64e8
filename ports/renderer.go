// Package ports defines the boundaries between the pipeline and its adapters.
package ports

// ChartKind identifies the chart family a renderer must produce.
type ChartKind string

const (
	ChartLine      ChartKind = "line"
	ChartBar       ChartKind = "bar"
	ChartScatter   ChartKind = "scatter"
	ChartHistogram ChartKind = "histogram"
	ChartBox       ChartKind = "box"
	ChartHeatmap   ChartKind = "heatmap"
)

// Series is one named X/Y sequence within a chart.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// BoxGroup is one labeled distribution within a box plot.
type BoxGroup struct {
	Label  string
	Values []float64
}

// Chart is a renderer-agnostic chart description. Only the fields relevant
// to the Kind are populated.
type Chart struct {
	Kind   ChartKind
	Name   string // artifact stem, e.g. "correlation_matrix"
	Title  string
	XLabel string
	YLabel string

	Series []Series // line, scatter

	Labels []string  // bar: nominal x labels
	Values []float64 // bar heights or histogram input

	Bins int // histogram

	Groups []BoxGroup // box

	Matrix       [][]float64 // heatmap, row-major square matrix
	MatrixLabels []string    // heatmap axis labels
}

// ChartRenderer renders one chart artifact. The default adapter writes PNG
// files; tests substitute a capturing implementation.
type ChartRenderer interface {
	Render(chart Chart) error
}
