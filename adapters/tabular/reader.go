// Package tabular reads delimited and spreadsheet files into observation tables.
package tabular

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"tbscope/domain/table"
	apperrors "tbscope/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading CSV and Excel files into a raw observation table.
type DataReader struct {
	filePath string
	fileType string // "csv" or "xlsx"
}

// NewDataReader creates a reader that handles both CSV and Excel files.
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" {
		fileType = "xlsx"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadTable reads the input file into a raw table. Headers are trimmed and
// mapped to canonical column names; blank and sentinel cells become missing
// markers (NaN / empty string).
func (r *DataReader) ReadTable() (*table.Table, error) {
	if _, err := os.Stat(r.filePath); err != nil {
		return nil, apperrors.DataLoad("input file not found: "+r.filePath, err)
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		rows, err = r.readCSVRows()
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, apperrors.DataLoad("input file must have a header row and at least one data row", nil)
	}
	return r.buildTable(rows)
}

func (r *DataReader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, apperrors.DataLoad("failed to open CSV file", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged rows are padded during build
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.DataLoad("failed to parse CSV file", err)
	}
	return rows, nil
}

func (r *DataReader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, apperrors.DataLoad("failed to open Excel file", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, apperrors.DataLoad("failed to read Sheet1", err)
	}
	return rows, nil
}

// buildTable converts raw string rows into a typed table. Known columns take
// their schema kind; unknown columns are numeric when every present value
// parses as a float, categorical otherwise.
func (r *DataReader) buildTable(rows [][]string) (*table.Table, error) {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	seen := make(map[string]bool, len(headerRow))
	for i, header := range headerRow {
		name := table.CanonicalName(strings.TrimSpace(header))
		if name == "" || seen[name] {
			return nil, apperrors.DataLoad("malformed header: blank or duplicate column "+strconv.Quote(header), nil)
		}
		seen[name] = true
		headers[i] = name
	}

	dataRows := rows[1:]
	tbl := table.New(len(dataRows))

	for col, name := range headers {
		raw := make([]string, len(dataRows))
		for i, row := range dataRows {
			if col < len(row) {
				raw[i] = strings.TrimSpace(row[col])
			}
		}

		kind, known := table.SchemaKinds[name]
		if !known {
			kind = inferKind(raw)
		}

		switch kind {
		case table.KindNumeric:
			vals := make([]float64, len(raw))
			for i, cell := range raw {
				vals[i] = parseCell(cell)
			}
			if err := tbl.AddNumeric(name, vals); err != nil {
				return nil, apperrors.DataLoad("failed to build table", err)
			}
		default:
			vals := make([]string, len(raw))
			for i, cell := range raw {
				if isMissing(cell) {
					continue
				}
				vals[i] = cell
			}
			if err := tbl.AddCategorical(name, vals); err != nil {
				return nil, apperrors.DataLoad("failed to build table", err)
			}
		}
	}

	return tbl, nil
}

func inferKind(raw []string) table.Kind {
	present := 0
	for _, cell := range raw {
		if isMissing(cell) {
			continue
		}
		present++
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return table.KindCategorical
		}
	}
	if present == 0 {
		return table.KindCategorical
	}
	return table.KindNumeric
}

func parseCell(cell string) float64 {
	if isMissing(cell) {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

func isMissing(cell string) bool {
	switch cell {
	case "", "NA", "N/A", "NaN", "null":
		return true
	}
	return false
}
