package export

import (
	"path/filepath"

	apperrors "tbscope/internal/errors"

	"github.com/xuri/excelize/v2"
)

// WriteWorkbook writes summary.xlsx under dir with one sheet per tabular
// section of the summary.
func WriteWorkbook(dir string, s *Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeRankingSheet(f, s); err != nil {
		return apperrors.ExportError("summary.xlsx", err)
	}
	if err := writeOutlierSheet(f, s); err != nil {
		return apperrors.ExportError("summary.xlsx", err)
	}
	if err := writeRegionSheet(f, s); err != nil {
		return apperrors.ExportError("summary.xlsx", err)
	}
	f.DeleteSheet("Sheet1")

	path := filepath.Join(dir, "summary.xlsx")
	if err := f.SaveAs(path); err != nil {
		return apperrors.ExportError("summary.xlsx", err)
	}
	return nil
}

func writeRankingSheet(f *excelize.File, s *Summary) error {
	const sheet = "Ranking"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, "Rank", "Country", "Prevalence per 100k"); err != nil {
		return err
	}
	for i, r := range s.Ranking {
		if err := setRow(f, sheet, i+2, i+1, r.Country, r.Rate); err != nil {
			return err
		}
	}
	return nil
}

func writeOutlierSheet(f *excelize.File, s *Summary) error {
	const sheet = "Outliers"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, "Country", "Year", "Incidence per 100k"); err != nil {
		return err
	}
	if s.Outliers == nil {
		return nil
	}
	for i, r := range s.Outliers.Rows {
		if err := setRow(f, sheet, i+2, r.Country, r.Year, r.Rate); err != nil {
			return err
		}
	}
	return nil
}

func writeRegionSheet(f *excelize.File, s *Summary) error {
	const sheet = "RegionMeans"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := setRow(f, sheet, 1, "Region", "Mean mortality per 100k"); err != nil {
		return err
	}
	if s.Regions == nil {
		return nil
	}
	for i, region := range s.Regions.Regions {
		if err := setRow(f, sheet, i+2, region, s.Regions.Means[i]); err != nil {
			return err
		}
	}
	t := s.Regions.Test
	base := len(s.Regions.Regions) + 3
	if err := setRow(f, sheet, base, "t", t.T); err != nil {
		return err
	}
	if err := setRow(f, sheet, base+1, "df", t.DF); err != nil {
		return err
	}
	if err := setRow(f, sheet, base+2, "p", t.P); err != nil {
		return err
	}
	return setRow(f, sheet, base+3, "significant", s.Regions.Significant)
}

func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
