package clean

import (
	"math"
	"testing"

	"tbscope/domain/table"
	apperrors "tbscope/internal/errors"
)

func TestCleanDropsSparseColumns(t *testing.T) {
	tbl := table.New(4)
	_ = tbl.AddNumeric("dense", []float64{1, 2, math.NaN(), 4})
	_ = tbl.AddNumeric("sparse", []float64{1, math.NaN(), math.NaN(), math.NaN()})
	_ = tbl.AddNumeric("boundary", []float64{1, 2, math.NaN(), math.NaN()})

	cleaner := &Cleaner{DropThreshold: 0.5}
	cleaned, report, err := cleaner.Clean(tbl)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	if cleaned.HasColumn("sparse") {
		t.Error("sparse column should be dropped")
	}
	// Exactly at the threshold drops too.
	if cleaned.HasColumn("boundary") {
		t.Error("column at the drop threshold should be dropped")
	}
	if !cleaned.HasColumn("dense") {
		t.Error("dense column should survive")
	}
	if len(report.DroppedColumns) != 2 {
		t.Errorf("unexpected dropped columns: %v", report.DroppedColumns)
	}
}

func TestCleanMeanImputation(t *testing.T) {
	tbl := table.New(4)
	_ = tbl.AddNumeric("vals", []float64{1, 2, 3, math.NaN()})

	cleaner := &Cleaner{DropThreshold: 0.5}
	cleaned, report, err := cleaner.Clean(tbl)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	vals, _ := cleaned.Numeric("vals")
	if vals[3] != 2 {
		t.Errorf("expected mean fill 2, got %f", vals[3])
	}
	if report.NullsBefore["vals"] != 1 || report.NullsAfter["vals"] != 0 {
		t.Errorf("unexpected null counts: before=%v after=%v", report.NullsBefore, report.NullsAfter)
	}
}

func TestCleanModeImputationTieBreak(t *testing.T) {
	tbl := table.New(5)
	_ = tbl.AddCategorical("region", []string{"A", "B", "A", "B", ""})

	cleaner := &Cleaner{DropThreshold: 0.5}
	cleaned, _, err := cleaner.Clean(tbl)
	if err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	vals, _ := cleaned.Categorical("region")
	// A and B tie at 2; the value seen first wins.
	if vals[4] != "A" {
		t.Errorf("expected tie to break toward first-seen value A, got %q", vals[4])
	}
}

func TestCleanLeavesInputUntouched(t *testing.T) {
	tbl := table.New(2)
	_ = tbl.AddNumeric("vals", []float64{1, math.NaN()})

	cleaner := &Cleaner{DropThreshold: 0.9}
	if _, _, err := cleaner.Clean(tbl); err != nil {
		t.Fatalf("Clean failed: %v", err)
	}

	orig, _ := tbl.Numeric("vals")
	if !math.IsNaN(orig[1]) {
		t.Error("cleaning must not modify the raw table")
	}
}

func TestCleanEmptyNumericColumn(t *testing.T) {
	tbl := table.New(2)
	_ = tbl.AddNumeric("empty", []float64{math.NaN(), math.NaN()})

	// Threshold above 1 keeps the all-missing column alive into imputation.
	cleaner := &Cleaner{DropThreshold: 1.1}
	_, _, err := cleaner.Clean(tbl)
	if err == nil {
		t.Fatal("expected error for all-missing numeric column")
	}
	if !apperrors.HasCode(err, apperrors.CodeEmptyColumn) {
		t.Errorf("expected EMPTY_COLUMN code, got %v", err)
	}
}
