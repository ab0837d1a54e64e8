// Package report implements the reporting stages of the analysis. Every
// stage reads the frozen cleaned+derived table and either renders a chart
// artifact or prints a statistic; stages never depend on each other's output.
package report

import (
	"io"
	"time"

	"tbscope/domain/table"
	"tbscope/internal"
	apperrors "tbscope/internal/errors"
	"tbscope/ports"
)

// Stage is one independent reporting step.
type Stage interface {
	Name() string
	// RequiredColumns lists the columns the stage reads. The runner
	// validates presence before execution so a column dropped during
	// cleaning surfaces as MISSING_COLUMN naming the stage.
	RequiredColumns() []string
	Run(tbl *table.Table, renderer ports.ChartRenderer, out io.Writer) error
}

// StageResult records one stage execution.
type StageResult struct {
	Stage    string
	Err      error
	Duration time.Duration
}

// Runner executes stages sequentially with a log-and-continue policy: a
// failing stage never prevents later stages from running.
type Runner struct {
	Log *internal.Logger
}

// RunAll validates and runs every stage in order.
func (r *Runner) RunAll(tbl *table.Table, renderer ports.ChartRenderer, out io.Writer, stages []Stage) []StageResult {
	results := make([]StageResult, 0, len(stages))
	for _, stage := range stages {
		start := time.Now()
		err := r.runOne(stage, tbl, renderer, out)
		elapsed := time.Since(start)
		if err != nil {
			r.Log.Error("stage %s failed after %v: %v", stage.Name(), elapsed.Round(time.Millisecond), err)
		} else {
			r.Log.Info("stage %s completed in %v", stage.Name(), elapsed.Round(time.Millisecond))
		}
		results = append(results, StageResult{Stage: stage.Name(), Err: err, Duration: elapsed})
	}
	return results
}

func (r *Runner) runOne(stage Stage, tbl *table.Table, renderer ports.ChartRenderer, out io.Writer) error {
	for _, col := range stage.RequiredColumns() {
		if !tbl.HasColumn(col) {
			return apperrors.MissingColumn(stage.Name(), col)
		}
	}
	return stage.Run(tbl, renderer, out)
}
