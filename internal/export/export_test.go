package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"tbscope/domain/core"
	"tbscope/domain/table"
	"tbscope/internal"
	"tbscope/internal/report"
	"tbscope/internal/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleSummary() *Summary {
	return &Summary{
		RunID:       core.NewRunID(),
		GeneratedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		SourcePath:  "data/tb_burden_country.csv",
		Rows:        12,
		LatestYear:  2020,
		Ranking: []report.RankedCountry{
			{Country: "Atlantis", Rate: 216},
			{Country: "Borduria", Rate: 208},
		},
		Outliers: &report.OutlierSummary{
			Q1: 100, Q3: 105, IQR: 5, Lower: 92.5, Upper: 112.5,
			Rows: []report.OutlierRow{{Country: "Zembla", Year: 2020, Rate: 90000}},
		},
		Regions: &report.RegionSummary{
			Regions: []string{"AFR", "EMR"},
			Means:   []float64{2000, 2100},
			Test:    stats.TTestResult{T: -0.11, P: 0.92, DF: 4, N1: 3, N2: 3},
			Alpha:   0.05,
		},
		RegionA: "AFR",
		RegionB: "EMR",
		StageResults: []report.StageResult{
			{Stage: "top_prevalence", Duration: 5 * time.Millisecond},
		},
	}
}

func TestBuildSummaryOmitsFailedSections(t *testing.T) {
	// A table with none of the section inputs: every section computation
	// fails, yet the summary still carries the run facts and the report
	// renders without those sections.
	tbl := table.New(2)
	require.NoError(t, tbl.AddNumeric("Unrelated", []float64{1, 2}))
	tbl.Freeze()

	s := BuildSummary(internal.NewLogger(internal.LogLevelError), tbl,
		"data.csv", 10, "AFR", "EMR", 0.05, nil, nil)

	assert.Empty(t, s.Ranking)
	assert.Nil(t, s.Outliers)
	assert.Nil(t, s.Regions)
	assert.Equal(t, 2, s.Rows)

	doc := BuildMarkdown(s)
	assert.NotContains(t, doc, "Top countries by prevalence rate")
	assert.NotContains(t, doc, "Regional mortality comparison")
}

func TestBuildMarkdownSections(t *testing.T) {
	doc := BuildMarkdown(sampleSummary())

	assert.Contains(t, doc, "# TB burden report")
	assert.Contains(t, doc, "Top countries by prevalence rate, 2020")
	assert.Contains(t, doc, "| 1 | Atlantis | 216.0 |")
	assert.Contains(t, doc, "| Zembla | 2020 | 90000.0 |")
	assert.Contains(t, doc, "not statistically significant")
	assert.Contains(t, doc, "| top_prevalence | ok |")
}

func TestWriteMarkdownAndHTML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteMarkdown(dir, sampleSummary(), true))

	md, err := os.ReadFile(filepath.Join(dir, "report.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(md), "# TB burden report"))

	html, err := os.ReadFile(filepath.Join(dir, "report.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "<table>")
	assert.Contains(t, string(html), "Atlantis")
}

func TestWriteWorkbookSheets(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteWorkbook(dir, sampleSummary()))

	f, err := excelize.OpenFile(filepath.Join(dir, "summary.xlsx"))
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Ranking")
	assert.Contains(t, sheets, "Outliers")
	assert.Contains(t, sheets, "RegionMeans")

	country, err := f.GetCellValue("Ranking", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Atlantis", country)

	outlier, err := f.GetCellValue("Outliers", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Zembla", outlier)
}
