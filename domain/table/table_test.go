package table

import (
	"math"
	"strings"
	"testing"
)

func TestAddAndRead(t *testing.T) {
	tbl := New(3)
	if err := tbl.AddNumeric(ColYear, []float64{2018, 2019, 2020}); err != nil {
		t.Fatalf("AddNumeric failed: %v", err)
	}
	if err := tbl.AddCategorical(ColRegion, []string{"AFR", "EMR", "AFR"}); err != nil {
		t.Fatalf("AddCategorical failed: %v", err)
	}

	if got := tbl.Columns(); len(got) != 2 || got[0] != ColYear || got[1] != ColRegion {
		t.Errorf("unexpected column order: %v", got)
	}
	if tbl.Kind(ColYear) != KindNumeric {
		t.Errorf("expected %s to be numeric", ColYear)
	}
	vals, ok := tbl.Numeric(ColYear)
	if !ok || vals[2] != 2020 {
		t.Errorf("unexpected numeric values: %v", vals)
	}
}

func TestAddRejectsDuplicateAndWrongLength(t *testing.T) {
	tbl := New(2)
	if err := tbl.AddNumeric(ColYear, []float64{2018, 2019}); err != nil {
		t.Fatalf("AddNumeric failed: %v", err)
	}
	if err := tbl.AddNumeric(ColYear, []float64{1, 2}); err == nil {
		t.Error("expected error for duplicate column")
	}
	if err := tbl.AddNumeric(ColTotalPopulation, []float64{1}); err == nil {
		t.Error("expected error for wrong length")
	}
}

func TestFreezeBlocksMutation(t *testing.T) {
	tbl := New(1)
	if err := tbl.AddNumeric(ColYear, []float64{2020}); err != nil {
		t.Fatalf("AddNumeric failed: %v", err)
	}
	tbl.Freeze()

	if err := tbl.AddNumeric(ColTotalPopulation, []float64{1}); err == nil {
		t.Error("expected add to fail on frozen table")
	}
	if err := tbl.SetNumeric(ColYear, []float64{2021}); err == nil {
		t.Error("expected set to fail on frozen table")
	}
	if err := tbl.Drop(ColYear); err == nil {
		t.Error("expected drop to fail on frozen table")
	}
}

func TestMissingCounts(t *testing.T) {
	tbl := New(4)
	_ = tbl.AddNumeric(ColIncidentCases, []float64{1, math.NaN(), 3, math.NaN()})
	_ = tbl.AddCategorical(ColRegion, []string{"AFR", "", "EMR", "EMR"})

	if got := tbl.MissingCount(ColIncidentCases); got != 2 {
		t.Errorf("expected 2 missing numeric, got %d", got)
	}
	if got := tbl.MissingFraction(ColRegion); got != 0.25 {
		t.Errorf("expected 0.25 missing fraction, got %f", got)
	}
	counts := tbl.MissingCounts()
	if counts[ColIncidentCases] != 2 || counts[ColRegion] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestCloneIsDeepAndUnfrozen(t *testing.T) {
	tbl := New(2)
	_ = tbl.AddNumeric(ColYear, []float64{2018, 2019})
	tbl.Freeze()

	clone := tbl.Clone()
	if clone.Frozen() {
		t.Error("clone should not be frozen")
	}
	if err := clone.SetNumeric(ColYear, []float64{1, 2}); err != nil {
		t.Fatalf("SetNumeric on clone failed: %v", err)
	}
	orig, _ := tbl.Numeric(ColYear)
	if orig[0] != 2018 {
		t.Error("mutating clone leaked into original")
	}
}

func TestHeadPreview(t *testing.T) {
	tbl := New(3)
	_ = tbl.AddCategorical(ColCountryName, []string{"Atlantis", "Borduria", "Carpathia"})
	_ = tbl.AddNumeric(ColYear, []float64{2018, 2019, math.NaN()})

	head := tbl.Head(2)
	if !strings.Contains(head, "Atlantis") || strings.Contains(head, "Carpathia") {
		t.Errorf("head should show exactly the first 2 rows:\n%s", head)
	}
	if !strings.Contains(head, ColCountryName) {
		t.Errorf("head should include the header row:\n%s", head)
	}
}
