package config

import (
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := validate(cfg); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if len(cfg.Analysis.CorrelationColumns) != 7 {
		t.Errorf("expected 7 correlation columns, got %d", len(cfg.Analysis.CorrelationColumns))
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TBSCOPE_CSV", "/tmp/other.csv")
	t.Setenv("TBSCOPE_OUTPUT_DIR", "/tmp/out")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Input.CSVPath != "/tmp/other.csv" {
		t.Errorf("CSV path override not applied: %s", cfg.Input.CSVPath)
	}
	if cfg.Output.Dir != "/tmp/out" {
		t.Errorf("output dir override not applied: %s", cfg.Output.Dir)
	}
}

func TestValidateRejectsBadThreshold(t *testing.T) {
	cfg := Default()
	cfg.Analysis.MissingDropThreshold = 0
	if err := validate(cfg); err == nil {
		t.Error("expected error for zero drop threshold")
	}
	cfg.Analysis.MissingDropThreshold = 1.5
	if err := validate(cfg); err == nil {
		t.Error("expected error for threshold above 1")
	}
}
