// Package export writes the run artifacts that survive the console: the
// markdown/HTML summary report and the Excel workbook.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"tbscope/domain/core"
	"tbscope/domain/table"
	"tbscope/internal"
	apperrors "tbscope/internal/errors"
	"tbscope/internal/report"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// Summary aggregates the pieces of the run that the exported report shows.
type Summary struct {
	RunID          core.RunID
	GeneratedAt    time.Time
	SourcePath     string
	Rows           int
	DroppedColumns []string
	LatestYear     int
	Ranking        []report.RankedCountry
	Outliers       *report.OutlierSummary
	Regions        *report.RegionSummary
	RegionA        string
	RegionB        string
	StageResults   []report.StageResult
}

// BuildMarkdown renders the summary as a markdown document.
func BuildMarkdown(s *Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# TB burden report\n\n")
	fmt.Fprintf(&b, "- Run: `%s`\n", s.RunID)
	fmt.Fprintf(&b, "- Generated: %s\n", s.GeneratedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "- Source: `%s`\n", s.SourcePath)
	fmt.Fprintf(&b, "- Rows analyzed: %d\n", s.Rows)
	if len(s.DroppedColumns) > 0 {
		fmt.Fprintf(&b, "- Columns dropped for missingness: %s\n", strings.Join(s.DroppedColumns, ", "))
	}

	if len(s.Ranking) > 0 {
		fmt.Fprintf(&b, "\n## Top countries by prevalence rate, %d\n\n", s.LatestYear)
		fmt.Fprintf(&b, "| Rank | Country | Prevalence per 100k |\n")
		fmt.Fprintf(&b, "|---:|---|---:|\n")
		for i, r := range s.Ranking {
			fmt.Fprintf(&b, "| %d | %s | %.1f |\n", i+1, r.Country, r.Rate)
		}
	}

	if s.Outliers != nil {
		fmt.Fprintf(&b, "\n## Incidence rate outliers\n\n")
		fmt.Fprintf(&b, "Q1 = %.1f, Q3 = %.1f, IQR = %.1f; fences [%.1f, %.1f].\n\n",
			s.Outliers.Q1, s.Outliers.Q3, s.Outliers.IQR, s.Outliers.Lower, s.Outliers.Upper)
		if len(s.Outliers.Rows) == 0 {
			fmt.Fprintf(&b, "No rows fall outside the fences.\n")
		} else {
			fmt.Fprintf(&b, "| Country | Year | Incidence per 100k |\n")
			fmt.Fprintf(&b, "|---|---:|---:|\n")
			for _, r := range s.Outliers.Rows {
				fmt.Fprintf(&b, "| %s | %d | %.1f |\n", r.Country, r.Year, r.Rate)
			}
		}
	}

	if s.Regions != nil {
		t := s.Regions.Test
		fmt.Fprintf(&b, "\n## Regional mortality comparison\n\n")
		fmt.Fprintf(&b, "| Region | Mean mortality per 100k |\n")
		fmt.Fprintf(&b, "|---|---:|\n")
		for i, region := range s.Regions.Regions {
			fmt.Fprintf(&b, "| %s | %.2f |\n", region, s.Regions.Means[i])
		}
		fmt.Fprintf(&b, "\nStudent's t-test %s vs %s: t = %.4f, df = %.0f, p = %.4g.\n",
			s.RegionA, s.RegionB, t.T, t.DF, t.P)
		if s.Regions.Significant {
			fmt.Fprintf(&b, "The difference is statistically significant at alpha = %.2f.\n", s.Regions.Alpha)
		} else {
			fmt.Fprintf(&b, "The difference is not statistically significant at alpha = %.2f.\n", s.Regions.Alpha)
		}
	}

	if len(s.StageResults) > 0 {
		fmt.Fprintf(&b, "\n## Stage outcomes\n\n")
		fmt.Fprintf(&b, "| Stage | Status | Duration |\n")
		fmt.Fprintf(&b, "|---|---|---:|\n")
		for _, r := range s.StageResults {
			status := "ok"
			if r.Err != nil {
				status = fmt.Sprintf("failed: %v", r.Err)
			}
			fmt.Fprintf(&b, "| %s | %s | %v |\n", r.Stage, status, r.Duration.Round(time.Millisecond))
		}
	}

	return b.String()
}

// WriteMarkdown writes report.md (and report.html when withHTML is set) under
// dir.
func WriteMarkdown(dir string, s *Summary, withHTML bool) error {
	doc := BuildMarkdown(s)
	mdPath := filepath.Join(dir, "report.md")
	if err := os.WriteFile(mdPath, []byte(doc), 0o644); err != nil {
		return apperrors.ExportError("report.md", err)
	}
	if !withHTML {
		return nil
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{
		Title: "TB burden report",
		Flags: html.CommonFlags | html.CompletePage,
	})
	rendered := markdown.ToHTML([]byte(doc), p, renderer)

	htmlPath := filepath.Join(dir, "report.html")
	if err := os.WriteFile(htmlPath, rendered, 0o644); err != nil {
		return apperrors.ExportError("report.html", err)
	}
	return nil
}

// BuildSummary assembles the exportable summary from the frozen table. A
// section whose computation fails is omitted from the report and logged.
func BuildSummary(log *internal.Logger, tbl *table.Table, sourcePath string, topN int, regionA, regionB string, alpha float64, dropped []string, results []report.StageResult) *Summary {
	s := &Summary{
		RunID:          core.NewRunID(),
		GeneratedAt:    time.Now().UTC(),
		SourcePath:     sourcePath,
		Rows:           tbl.NumRows(),
		DroppedColumns: dropped,
		RegionA:        regionA,
		RegionB:        regionB,
		StageResults:   results,
	}
	if ranking, year, err := report.TopPrevalence(tbl, topN); err == nil {
		s.Ranking = ranking
		s.LatestYear = year
	} else {
		log.Warn("ranking section omitted from report: %v", err)
	}
	if outliers, err := report.IncidenceOutliers(tbl); err == nil {
		s.Outliers = outliers
	} else {
		log.Warn("outlier section omitted from report: %v", err)
	}
	if regions, err := report.RegionComparison(tbl, regionA, regionB, alpha); err == nil {
		s.Regions = regions
	} else {
		log.Warn("region comparison section omitted from report: %v", err)
	}
	return s
}
