package config

import (
	"os"

	"tbscope/domain/table"
	"tbscope/internal/errors"
)

// Config carries every parameter the pipeline reads. The analysis parameters
// are fixed literals of the study (tests vary them directly); only the file
// locations honor environment overrides.
type Config struct {
	Input    InputConfig
	Analysis AnalysisConfig
	Output   OutputConfig
}

// InputConfig holds input file settings
type InputConfig struct {
	CSVPath string
}

// AnalysisConfig holds the fixed analysis parameters
type AnalysisConfig struct {
	// MissingDropThreshold is the missing-fraction at or above which a
	// column is removed before imputation.
	MissingDropThreshold float64
	// FocusCountry drives the single-country time-series stage.
	FocusCountry string
	// RegionA and RegionB are the two WHO regions compared by the t-test.
	RegionA string
	RegionB string
	// Alpha is the fixed significance threshold for the t-test verdict.
	Alpha float64
	// TopN is the size of the latest-year prevalence ranking.
	TopN int
	// HistogramBins is the fixed bin count of the incidence histogram.
	HistogramBins int
	// CorrelationColumns are the seven numeric columns of the pairwise
	// correlation heatmap.
	CorrelationColumns []string
}

// OutputConfig holds output artifact settings
type OutputConfig struct {
	Dir           string
	WriteWorkbook bool
	WriteHTML     bool
}

// Default returns the configuration with the study's literal parameters.
func Default() *Config {
	return &Config{
		Input: InputConfig{
			CSVPath: "data/tb_burden_country.csv",
		},
		Analysis: AnalysisConfig{
			MissingDropThreshold: 0.5,
			FocusCountry:         "India",
			RegionA:              "AFR",
			RegionB:              "EMR",
			Alpha:                0.05,
			TopN:                 10,
			HistogramBins:        30,
			CorrelationColumns: []string{
				table.ColTotalPopulation,
				table.ColIncidentCases,
				table.ColDeathsTB,
				table.ColPrevalentCasesTB,
				table.ColIncidenceRatePer100k,
				table.ColMortalityRatePer100k,
				table.ColPrevalenceRatePer100k,
			},
		},
		Output: OutputConfig{
			Dir:           "output",
			WriteWorkbook: true,
			WriteHTML:     true,
		},
	}
}

// Load returns the default configuration with file-location overrides from
// the environment applied.
func Load() (*Config, error) {
	cfg := Default()
	cfg.Input.CSVPath = getEnvOrDefault("TBSCOPE_CSV", cfg.Input.CSVPath)
	cfg.Output.Dir = getEnvOrDefault("TBSCOPE_OUTPUT_DIR", cfg.Output.Dir)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Input.CSVPath == "" {
		return errors.ConfigInvalid("input CSV path is required")
	}
	if cfg.Output.Dir == "" {
		return errors.ConfigInvalid("output directory is required")
	}
	if cfg.Analysis.MissingDropThreshold <= 0 || cfg.Analysis.MissingDropThreshold > 1 {
		return errors.ConfigInvalid("missing-drop threshold must be in (0, 1]")
	}
	if cfg.Analysis.TopN <= 0 {
		return errors.ConfigInvalid("top-N must be positive")
	}
	if cfg.Analysis.HistogramBins <= 0 {
		return errors.ConfigInvalid("histogram bin count must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
