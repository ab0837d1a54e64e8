package report

import (
	"tbscope/internal/config"
)

// DefaultStages returns the full report in its fixed execution order.
func DefaultStages(cfg config.AnalysisConfig) []Stage {
	return []Stage{
		&CorrelationStage{
			StageName: "correlation_matrix",
			ChartName: "correlation_matrix",
			Title:     "Pairwise correlation of TB burden indicators",
			Columns:   cfg.CorrelationColumns,
		},
		&CountryTrendStage{Country: cfg.FocusCountry},
		&GlobalTrendStage{},
		&PrevalenceByYearStage{},
		&RegionComparatorStage{RegionA: cfg.RegionA, RegionB: cfg.RegionB, Alpha: cfg.Alpha},
		&TopCountriesStage{N: cfg.TopN},
		&IncidenceDistributionStage{Bins: cfg.HistogramBins},
		&PopulationIncidenceStage{},
		&DetectionOutcomeStage{},
	}
}
