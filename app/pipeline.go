// Package app wires the analysis pipeline end to end: load, clean, derive,
// freeze, report, export.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"tbscope/adapters/tabular"
	"tbscope/domain/table"
	"tbscope/internal"
	"tbscope/internal/clean"
	"tbscope/internal/config"
	"tbscope/internal/derive"
	"tbscope/internal/export"
	"tbscope/internal/report"
	"tbscope/ports"
)

// Pipeline runs the whole analysis against one input file.
type Pipeline struct {
	Config   *config.Config
	Renderer ports.ChartRenderer
	Out      io.Writer
	Log      *internal.Logger
}

// Result carries what the run produced, for callers and tests.
type Result struct {
	Table        *table.Table
	CleanReport  *clean.Report
	StageResults []report.StageResult
	Summary      *export.Summary
}

// Run executes the pipeline. Load, clean and derive failures are fatal;
// report stages log and continue.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	reader := tabular.NewDataReader(p.Config.Input.CSVPath)
	raw, err := reader.ReadTable()
	if err != nil {
		return nil, err
	}
	p.Log.Info("loaded %d rows, %d columns from %s", raw.NumRows(), len(raw.Columns()), p.Config.Input.CSVPath)

	fmt.Fprintln(p.Out, "First rows of the dataset:")
	fmt.Fprintln(p.Out, raw.Head(5))
	printNullCounts(p.Out, "Missing values before cleaning:", raw)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaner := &clean.Cleaner{DropThreshold: p.Config.Analysis.MissingDropThreshold}
	cleaned, cleanReport, err := cleaner.Clean(raw)
	if err != nil {
		return nil, err
	}
	if len(cleanReport.DroppedColumns) > 0 {
		p.Log.Warn("dropped sparse columns: %s", strings.Join(cleanReport.DroppedColumns, ", "))
	}
	printNullCounts(p.Out, "\nMissing values after cleaning:", cleaned)

	deriveResult, err := derive.AddRateColumns(cleaned)
	if err != nil {
		return nil, err
	}
	if deriveResult.ZeroPopulationRows > 0 {
		p.Log.Warn("%d rows have zero population; their derived rates are treated as missing", deriveResult.ZeroPopulationRows)
	}
	cleaned.Freeze()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runner := &report.Runner{Log: p.Log}
	stages := report.DefaultStages(p.Config.Analysis)
	stageResults := runner.RunAll(cleaned, p.Renderer, p.Out, stages)

	summary := export.BuildSummary(p.Log, cleaned, p.Config.Input.CSVPath,
		p.Config.Analysis.TopN, p.Config.Analysis.RegionA, p.Config.Analysis.RegionB,
		p.Config.Analysis.Alpha, cleanReport.DroppedColumns, stageResults)

	if err := export.WriteMarkdown(p.Config.Output.Dir, summary, p.Config.Output.WriteHTML); err != nil {
		return nil, err
	}
	if p.Config.Output.WriteWorkbook {
		if err := export.WriteWorkbook(p.Config.Output.Dir, summary); err != nil {
			return nil, err
		}
	}
	p.Log.Info("run %s complete: %d stages, artifacts in %s", summary.RunID, len(stageResults), p.Config.Output.Dir)

	return &Result{
		Table:        cleaned,
		CleanReport:  cleanReport,
		StageResults: stageResults,
		Summary:      summary,
	}, nil
}

func printNullCounts(out io.Writer, heading string, tbl *table.Table) {
	fmt.Fprintln(out, heading)
	counts := tbl.MissingCounts()
	for _, name := range tbl.Columns() {
		fmt.Fprintf(out, "  %-28s %d\n", name, counts[name])
	}
}
