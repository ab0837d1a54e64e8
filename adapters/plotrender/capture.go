package plotrender

import (
	"fmt"

	"tbscope/ports"
)

// CaptureRenderer records charts instead of drawing them. Tests use it to
// assert on chart content; FailOn simulates a renderer fault for a named
// artifact.
type CaptureRenderer struct {
	Charts []ports.Chart
	FailOn string
}

// Render appends the chart to Charts.
func (r *CaptureRenderer) Render(chart ports.Chart) error {
	if r.FailOn != "" && chart.Name == r.FailOn {
		return fmt.Errorf("simulated render failure for %q", chart.Name)
	}
	r.Charts = append(r.Charts, chart)
	return nil
}

// Chart returns the recorded chart with the given artifact stem.
func (r *CaptureRenderer) Chart(name string) (ports.Chart, bool) {
	for _, c := range r.Charts {
		if c.Name == name {
			return c, true
		}
	}
	return ports.Chart{}, false
}
