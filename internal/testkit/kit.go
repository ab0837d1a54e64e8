// Package testkit builds small deterministic burden tables for tests.
package testkit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tbscope/domain/table"
)

// Row is one synthetic country-year observation.
type Row struct {
	Country    string
	Region     string
	Year       float64
	Population float64
	Incident   float64
	Deaths     float64
	Prevalent  float64
	// Reported per-100k rates as the source file carries them.
	IncidenceRate  float64
	MortalityRate  float64
	PrevalenceRate float64
	Detection      float64
}

// BuildTable assembles a raw table from rows, using the canonical column
// names the reader would produce.
func BuildTable(t *testing.T, rows []Row) *table.Table {
	t.Helper()

	n := len(rows)
	countries := make([]string, n)
	regions := make([]string, n)
	years := make([]float64, n)
	pops := make([]float64, n)
	incidents := make([]float64, n)
	deaths := make([]float64, n)
	prevalents := make([]float64, n)
	incidenceRates := make([]float64, n)
	mortalityRates := make([]float64, n)
	prevalenceRates := make([]float64, n)
	detections := make([]float64, n)
	for i, r := range rows {
		countries[i] = r.Country
		regions[i] = r.Region
		years[i] = r.Year
		pops[i] = r.Population
		incidents[i] = r.Incident
		deaths[i] = r.Deaths
		prevalents[i] = r.Prevalent
		incidenceRates[i] = r.IncidenceRate
		mortalityRates[i] = r.MortalityRate
		prevalenceRates[i] = r.PrevalenceRate
		detections[i] = r.Detection
	}

	tbl := table.New(n)
	mustAdd(t, tbl.AddCategorical(table.ColCountryName, countries))
	mustAdd(t, tbl.AddCategorical(table.ColRegion, regions))
	mustAdd(t, tbl.AddNumeric(table.ColYear, years))
	mustAdd(t, tbl.AddNumeric(table.ColTotalPopulation, pops))
	mustAdd(t, tbl.AddNumeric(table.ColIncidentCases, incidents))
	mustAdd(t, tbl.AddNumeric(table.ColDeathsTB, deaths))
	mustAdd(t, tbl.AddNumeric(table.ColPrevalentCasesTB, prevalents))
	mustAdd(t, tbl.AddNumeric(table.ColIncidenceRatePer100k, incidenceRates))
	mustAdd(t, tbl.AddNumeric(table.ColMortalityRatePer100k, mortalityRates))
	mustAdd(t, tbl.AddNumeric(table.ColPrevalenceRatePer100k, prevalenceRates))
	mustAdd(t, tbl.AddNumeric(table.ColCaseDetectionRatePercent, detections))
	return tbl
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("failed to build test table: %v", err)
	}
}

// DefaultRows returns a small two-region, four-country panel over three
// years with no missing values.
func DefaultRows() []Row {
	var rows []Row
	countries := []struct {
		name   string
		region string
		pop    float64
	}{
		{"Atlantis", "AFR", 1_000_000},
		{"Borduria", "AFR", 2_000_000},
		{"Carpathia", "EMR", 3_000_000},
		{"Dorne", "EMR", 4_000_000},
	}
	for _, c := range countries {
		for year := 2018; year <= 2020; year++ {
			offset := float64(year - 2018)
			incident := c.pop/1000 + 50*offset
			deaths := c.pop/10000 + 5*offset
			prevalent := c.pop/500 + 80*offset
			rows = append(rows, Row{
				Country:        c.name,
				Region:         c.region,
				Year:           float64(year),
				Population:     c.pop,
				Incident:       incident,
				Deaths:         deaths,
				Prevalent:      prevalent,
				IncidenceRate:  incident / c.pop * 100000,
				MortalityRate:  deaths / c.pop * 100000,
				PrevalenceRate: prevalent / c.pop * 100000,
				Detection:      60 + 5*offset,
			})
		}
	}
	return rows
}

// WriteCSV writes rows as a CSV file with the verbose source headers, so
// reader tests exercise header canonicalization. Returns the file path.
func WriteCSV(t *testing.T, dir string, rows []Row) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("Country or territory name,Region,Year,Estimated total population number,")
	b.WriteString("Estimated number of incident cases (all forms),")
	b.WriteString(`"Estimated number of deaths from TB (all forms, excluding HIV)",`)
	b.WriteString("Estimated prevalence of TB (all forms),")
	b.WriteString("Estimated incidence (all forms) per 100 000 population,")
	b.WriteString(`"Estimated mortality of TB cases (all forms, excluding HIV), per 100 000 population",`)
	b.WriteString("Estimated prevalence of TB (all forms) per 100 000 population,")
	b.WriteString(`"Case detection rate (all forms), percent"` + "\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s,%s,%.0f,%.0f,%.0f,%.0f,%.0f,%.2f,%.2f,%.2f,%.0f\n",
			r.Country, r.Region, r.Year, r.Population, r.Incident, r.Deaths, r.Prevalent,
			r.IncidenceRate, r.MortalityRate, r.PrevalenceRate, r.Detection)
	}

	path := filepath.Join(dir, "tb_burden.csv")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("failed to write test CSV: %v", err)
	}
	return path
}
