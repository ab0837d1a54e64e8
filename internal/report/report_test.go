package report_test

import (
	"bytes"
	"testing"

	"tbscope/adapters/plotrender"
	"tbscope/domain/table"
	"tbscope/internal"
	"tbscope/internal/config"
	"tbscope/internal/derive"
	apperrors "tbscope/internal/errors"
	"tbscope/internal/report"
	"tbscope/internal/testkit"
	"tbscope/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frozenTable(t *testing.T, rows []testkit.Row) *table.Table {
	t.Helper()
	tbl := testkit.BuildTable(t, rows)
	if _, err := derive.AddRateColumns(tbl); err != nil {
		t.Fatalf("derivation failed: %v", err)
	}
	tbl.Freeze()
	return tbl
}

func quietRunner() *report.Runner {
	return &report.Runner{Log: internal.NewLogger(internal.LogLevelError)}
}

func TestDefaultStagesProduceAllArtifacts(t *testing.T) {
	tbl := frozenTable(t, testkit.DefaultRows())
	capture := &plotrender.CaptureRenderer{}
	var out bytes.Buffer

	results := quietRunner().RunAll(tbl, capture, &out, report.DefaultStages(config.Default().Analysis))

	for _, r := range results {
		assert.NoError(t, r.Err, "stage %s", r.Stage)
	}

	want := map[string]ports.ChartKind{
		"correlation_matrix":          ports.ChartHeatmap,
		"country_trend":               ports.ChartLine,
		"global_incidence_trend":      ports.ChartLine,
		"prevalence_by_year":          ports.ChartBox,
		"region_mortality":            ports.ChartBar,
		"top_prevalence":              ports.ChartBar,
		"incidence_histogram":         ports.ChartHistogram,
		"incidence_box":               ports.ChartBox,
		"population_vs_incidence":     ports.ChartScatter,
		"population_incidence_matrix": ports.ChartHeatmap,
		"detection_vs_outcome":        ports.ChartScatter,
	}
	require.Len(t, capture.Charts, len(want))
	for name, kind := range want {
		chart, ok := capture.Chart(name)
		require.True(t, ok, "missing artifact %s", name)
		assert.Equal(t, kind, chart.Kind, "artifact %s", name)
	}
}

func TestCorrelationStageCoversDefaultColumns(t *testing.T) {
	tbl := frozenTable(t, testkit.DefaultRows())
	capture := &plotrender.CaptureRenderer{}
	var out bytes.Buffer

	cfg := config.Default().Analysis
	results := quietRunner().RunAll(tbl, capture, &out, report.DefaultStages(cfg)[:1])
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	chart, ok := capture.Chart("correlation_matrix")
	require.True(t, ok)
	assert.Equal(t, cfg.CorrelationColumns, chart.MatrixLabels)
	require.Len(t, chart.Matrix, len(cfg.CorrelationColumns))
	for _, row := range chart.Matrix {
		assert.Len(t, row, len(cfg.CorrelationColumns))
	}
}

func TestDetectionOutcomeSeries(t *testing.T) {
	tbl := frozenTable(t, testkit.DefaultRows())
	capture := &plotrender.CaptureRenderer{}
	var out bytes.Buffer

	results := quietRunner().RunAll(tbl, capture, &out, []report.Stage{&report.DetectionOutcomeStage{}})
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	chart, ok := capture.Chart("detection_vs_outcome")
	require.True(t, ok)
	require.Len(t, chart.Series, 2)
	assert.Equal(t, "Mortality per 100k", chart.Series[0].Name)
	assert.Equal(t, "Prevalence per 100k", chart.Series[1].Name)

	detection, _ := tbl.Numeric(table.ColCaseDetectionRatePercent)
	mortality, _ := tbl.Numeric(table.ColMortalityRateCalc)
	prevalence, _ := tbl.Numeric(table.ColPrevalenceRateCalc)
	assert.Equal(t, detection, chart.Series[0].X)
	assert.Equal(t, mortality, chart.Series[0].Y)
	assert.Equal(t, prevalence, chart.Series[1].Y)
}

func TestRunnerContinuesAfterMissingColumn(t *testing.T) {
	tbl := frozenTable(t, testkit.DefaultRows())
	capture := &plotrender.CaptureRenderer{}
	var out bytes.Buffer

	stages := []report.Stage{
		&report.CorrelationStage{
			StageName: "doomed",
			ChartName: "doomed",
			Columns:   []string{"NoSuchColumn"},
		},
		&report.GlobalTrendStage{},
	}
	results := quietRunner().RunAll(tbl, capture, &out, stages)

	require.Len(t, results, 2)
	assert.True(t, apperrors.HasCode(results[0].Err, apperrors.CodeMissingColumn))
	assert.NoError(t, results[1].Err, "later stages must still run")
	_, ok := capture.Chart("global_incidence_trend")
	assert.True(t, ok)
}

func TestRunnerRecordsRenderFailure(t *testing.T) {
	tbl := frozenTable(t, testkit.DefaultRows())
	capture := &plotrender.CaptureRenderer{FailOn: "global_incidence_trend"}
	var out bytes.Buffer

	results := quietRunner().RunAll(tbl, capture, &out, []report.Stage{&report.GlobalTrendStage{}})
	require.Len(t, results, 1)
	assert.Error(t, results[0].Err)
}

func TestTopPrevalenceRanking(t *testing.T) {
	rows := testkit.DefaultRows()
	tbl := frozenTable(t, rows)

	ranking, latestYear, err := report.TopPrevalence(tbl, 2)
	require.NoError(t, err)
	assert.Equal(t, 2020, latestYear)
	require.Len(t, ranking, 2)
	// Every country shares the same base prevalence rate (pop/500/pop*1e5 =
	// 200) plus a fixed 2020 offset that shrinks with population, so the
	// smallest country ranks first.
	assert.Equal(t, "Atlantis", ranking[0].Country)
	assert.Greater(t, ranking[0].Rate, ranking[1].Rate)
}

func TestTopPrevalenceTiesKeepRowOrder(t *testing.T) {
	rows := []testkit.Row{
		{Country: "First", Region: "AFR", Year: 2020, Population: 1000, Incident: 1, Deaths: 1, Prevalent: 10, Detection: 60},
		{Country: "Second", Region: "AFR", Year: 2020, Population: 2000, Incident: 2, Deaths: 2, Prevalent: 20, Detection: 60},
		{Country: "Third", Region: "EMR", Year: 2020, Population: 1000, Incident: 1, Deaths: 1, Prevalent: 5, Detection: 60},
	}
	tbl := frozenTable(t, rows)

	// First and Second tie at 1000 per 100k.
	ranking, _, err := report.TopPrevalence(tbl, 3)
	require.NoError(t, err)
	require.Len(t, ranking, 3)
	assert.Equal(t, "First", ranking[0].Country)
	assert.Equal(t, "Second", ranking[1].Country)
	assert.Equal(t, "Third", ranking[2].Country)
}

func TestIncidenceOutliersFlagsExtremeRows(t *testing.T) {
	rows := testkit.DefaultRows()
	// One implausible country dominates the spread.
	rows = append(rows, testkit.Row{
		Country: "Zembla", Region: "EMR", Year: 2020,
		Population: 1000, Incident: 900, Deaths: 10, Prevalent: 950, Detection: 60,
	})
	tbl := frozenTable(t, rows)

	summary, err := report.IncidenceOutliers(tbl)
	require.NoError(t, err)
	assert.Greater(t, summary.Upper, summary.Lower)
	require.NotEmpty(t, summary.Rows)
	assert.Equal(t, "Zembla", summary.Rows[0].Country)
	assert.Equal(t, 2020, summary.Rows[0].Year)
}

func TestRegionComparison(t *testing.T) {
	rows := []testkit.Row{
		{Country: "A1", Region: "AFR", Year: 2020, Population: 1000, Incident: 10, Deaths: 10, Prevalent: 20, Detection: 60},
		{Country: "A2", Region: "AFR", Year: 2020, Population: 1000, Incident: 10, Deaths: 20, Prevalent: 20, Detection: 60},
		{Country: "A3", Region: "AFR", Year: 2020, Population: 1000, Incident: 10, Deaths: 30, Prevalent: 20, Detection: 60},
		{Country: "E1", Region: "EMR", Year: 2020, Population: 1000, Incident: 10, Deaths: 11, Prevalent: 20, Detection: 60},
		{Country: "E2", Region: "EMR", Year: 2020, Population: 1000, Incident: 10, Deaths: 21, Prevalent: 20, Detection: 60},
		{Country: "E3", Region: "EMR", Year: 2020, Population: 1000, Incident: 10, Deaths: 31, Prevalent: 20, Detection: 60},
	}
	tbl := frozenTable(t, rows)

	summary, err := report.RegionComparison(tbl, "AFR", "EMR", 0.05)
	require.NoError(t, err)

	assert.Equal(t, []string{"AFR", "EMR"}, summary.Regions)
	assert.InDelta(t, 2000, summary.Means[0], 1e-9)
	assert.InDelta(t, 2100, summary.Means[1], 1e-9)
	assert.Equal(t, 3, summary.Test.N1)
	// Deaths differ by a constant 1 per 1000 population against a spread of
	// 10; nowhere near significance.
	assert.False(t, summary.Significant)
}
