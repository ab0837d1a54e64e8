package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"tbscope/adapters/plotrender"
	"tbscope/domain/table"
	"tbscope/internal"
	"tbscope/internal/config"
	"tbscope/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, csvPath string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Input.CSVPath = csvPath
	cfg.Output.Dir = t.TempDir()
	cfg.Analysis.FocusCountry = "Atlantis"
	return cfg
}

func TestPipelineEndToEnd(t *testing.T) {
	csvPath := testkit.WriteCSV(t, t.TempDir(), testkit.DefaultRows())
	cfg := testConfig(t, csvPath)
	capture := &plotrender.CaptureRenderer{}
	var out bytes.Buffer

	p := &Pipeline{
		Config:   cfg,
		Renderer: capture,
		Out:      &out,
		Log:      internal.NewLogger(internal.LogLevelError),
	}
	res, err := p.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Table.Frozen())
	assert.True(t, res.Table.HasColumn(table.ColIncidenceRateCalc))
	assert.True(t, res.Table.HasColumn(table.ColPrevalenceRateCalc))

	require.Len(t, res.StageResults, 9)
	for _, r := range res.StageResults {
		assert.NoError(t, r.Err, "stage %s", r.Stage)
	}
	assert.Len(t, capture.Charts, 11)

	for _, name := range []string{"report.md", "report.html", "summary.xlsx"} {
		_, statErr := os.Stat(filepath.Join(cfg.Output.Dir, name))
		assert.NoError(t, statErr, "expected artifact %s", name)
	}

	console := out.String()
	assert.Contains(t, console, "First rows of the dataset:")
	assert.Contains(t, console, "Missing values before cleaning:")
	assert.Contains(t, console, "Student's t-test")
	assert.Contains(t, console, "Top 4 countries") // only 4 countries in the panel
}

func TestPipelineMissingInputIsFatal(t *testing.T) {
	cfg := testConfig(t, filepath.Join(t.TempDir(), "absent.csv"))
	p := &Pipeline{
		Config:   cfg,
		Renderer: &plotrender.CaptureRenderer{},
		Out:      &bytes.Buffer{},
		Log:      internal.NewLogger(internal.LogLevelError),
	}
	_, err := p.Run(context.Background())
	assert.Error(t, err)
}

func TestPipelineHonorsContextCancellation(t *testing.T) {
	csvPath := testkit.WriteCSV(t, t.TempDir(), testkit.DefaultRows())
	cfg := testConfig(t, csvPath)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := &Pipeline{
		Config:   cfg,
		Renderer: &plotrender.CaptureRenderer{},
		Out:      &bytes.Buffer{},
		Log:      internal.NewLogger(internal.LogLevelError),
	}
	_, err := p.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
