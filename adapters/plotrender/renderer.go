// Package plotrender renders chart descriptions to PNG files with gonum/plot.
package plotrender

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	apperrors "tbscope/internal/errors"
	"tbscope/ports"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// seriesColors cycles across multi-series charts.
var seriesColors = []color.RGBA{
	{R: 70, G: 130, B: 180, A: 255},
	{R: 178, G: 34, B: 34, A: 255},
	{R: 34, G: 139, B: 34, A: 255},
	{R: 255, G: 165, B: 0, A: 255},
}

// PNGRenderer writes every chart as a PNG file under Dir.
type PNGRenderer struct {
	Dir string
}

// NewPNGRenderer creates the output directory if needed.
func NewPNGRenderer(dir string) (*PNGRenderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create chart directory: %w", err)
	}
	return &PNGRenderer{Dir: dir}, nil
}

// Render dispatches on the chart kind and saves a PNG named after the
// chart's artifact stem.
func (r *PNGRenderer) Render(chart ports.Chart) error {
	p := plot.New()
	p.Title.Text = chart.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = chart.XLabel
	p.Y.Label.Text = chart.YLabel

	var err error
	switch chart.Kind {
	case ports.ChartLine:
		err = r.buildLine(p, chart)
	case ports.ChartBar:
		err = r.buildBar(p, chart)
	case ports.ChartScatter:
		err = r.buildScatter(p, chart)
	case ports.ChartHistogram:
		err = r.buildHistogram(p, chart)
	case ports.ChartBox:
		err = r.buildBox(p, chart)
	case ports.ChartHeatmap:
		err = r.buildHeatmap(p, chart)
	default:
		err = fmt.Errorf("unsupported chart kind %q", chart.Kind)
	}
	if err != nil {
		return apperrors.RenderError(chart.Name, err)
	}

	width, height := 10*vg.Inch, 7*vg.Inch
	if chart.Kind == ports.ChartHeatmap {
		width, height = 9*vg.Inch, 8*vg.Inch
	}
	if err := p.Save(width, height, filepath.Join(r.Dir, chart.Name+".png")); err != nil {
		return apperrors.RenderError(chart.Name, err)
	}
	return nil
}

func (r *PNGRenderer) buildLine(p *plot.Plot, chart ports.Chart) error {
	p.Add(plotter.NewGrid())
	for i, s := range chart.Series {
		points := toXYs(s.X, s.Y)
		line, err := plotter.NewLine(points)
		if err != nil {
			return err
		}
		line.Color = seriesColors[i%len(seriesColors)]
		line.Width = vg.Points(2)
		p.Add(line)
		if s.Name != "" {
			p.Legend.Add(s.Name, line)
		}
	}
	p.Legend.Top = true
	return nil
}

func (r *PNGRenderer) buildBar(p *plot.Plot, chart ports.Chart) error {
	bars, err := plotter.NewBarChart(plotter.Values(chart.Values), vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = seriesColors[0]
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(chart.Labels...)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight
	return nil
}

func (r *PNGRenderer) buildScatter(p *plot.Plot, chart ports.Chart) error {
	p.Add(plotter.NewGrid())
	shapes := []draw.GlyphDrawer{draw.CircleGlyph{}, draw.PyramidGlyph{}, draw.BoxGlyph{}}
	for i, s := range chart.Series {
		points := toXYs(s.X, s.Y)
		scatter, err := plotter.NewScatter(points)
		if err != nil {
			return err
		}
		scatter.GlyphStyle.Color = seriesColors[i%len(seriesColors)]
		scatter.GlyphStyle.Radius = vg.Points(3)
		scatter.GlyphStyle.Shape = shapes[i%len(shapes)]
		p.Add(scatter)
		if s.Name != "" {
			p.Legend.Add(s.Name, scatter)
		}
	}
	p.Legend.Top = true
	return nil
}

func (r *PNGRenderer) buildHistogram(p *plot.Plot, chart ports.Chart) error {
	vals := make(plotter.Values, 0, len(chart.Values))
	for _, v := range chart.Values {
		if !math.IsNaN(v) {
			vals = append(vals, v)
		}
	}
	hist, err := plotter.NewHist(vals, chart.Bins)
	if err != nil {
		return err
	}
	hist.FillColor = seriesColors[0]
	p.Add(hist)
	return nil
}

func (r *PNGRenderer) buildBox(p *plot.Plot, chart ports.Chart) error {
	labels := make([]string, 0, len(chart.Groups))
	for i, g := range chart.Groups {
		vals := make(plotter.Values, 0, len(g.Values))
		for _, v := range g.Values {
			if !math.IsNaN(v) {
				vals = append(vals, v)
			}
		}
		box, err := plotter.NewBoxPlot(vg.Points(18), float64(i), vals)
		if err != nil {
			return err
		}
		p.Add(box)
		labels = append(labels, g.Label)
	}
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight
	return nil
}

func (r *PNGRenderer) buildHeatmap(p *plot.Plot, chart ports.Chart) error {
	grid := &matrixGrid{matrix: chart.Matrix}
	cm := moreland.SmoothBlueRed()
	cm.SetMin(-1)
	cm.SetMax(1)
	heat := plotter.NewHeatMap(grid, cm.Palette(255))
	p.Add(heat)

	// Annotate each cell with its coefficient.
	n := len(chart.Matrix)
	labels := plotter.XYLabels{}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			labels.XYs = append(labels.XYs, plotter.XY{X: float64(col), Y: float64(row)})
			labels.Labels = append(labels.Labels, fmt.Sprintf("%.2f", chart.Matrix[row][col]))
		}
	}
	annot, err := plotter.NewLabels(labels)
	if err != nil {
		return err
	}
	p.Add(annot)

	ticks := make([]plot.Tick, n)
	for i, name := range chart.MatrixLabels {
		ticks[i] = plot.Tick{Value: float64(i), Label: name}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Tick.Label.Rotation = math.Pi / 3
	p.X.Tick.Label.YAlign = draw.YCenter
	p.X.Tick.Label.XAlign = draw.XRight
	return nil
}

func toXYs(x, y []float64) plotter.XYs {
	points := make(plotter.XYs, 0, len(x))
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		points = append(points, plotter.XY{X: x[i], Y: y[i]})
	}
	return points
}

// matrixGrid adapts a square row-major matrix to plotter.GridXYZ.
type matrixGrid struct {
	matrix [][]float64
}

func (g *matrixGrid) Dims() (c, r int) {
	if len(g.matrix) == 0 {
		return 0, 0
	}
	return len(g.matrix[0]), len(g.matrix)
}

func (g *matrixGrid) Z(c, r int) float64 {
	v := g.matrix[r][c]
	if math.IsNaN(v) {
		return 0
	}
	return v
}

func (g *matrixGrid) X(c int) float64 { return float64(c) }
func (g *matrixGrid) Y(r int) float64 { return float64(r) }
