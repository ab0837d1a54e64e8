package table

// Canonical column names for the TB burden dataset. Raw files may carry the
// WHO export headers; the reader maps those onto these names so every
// downstream stage can address columns by a single spelling.
const (
	ColCountryName              = "CountryName"
	ColRegion                   = "Region"
	ColYear                     = "Year"
	ColTotalPopulation          = "TotalPopulation"
	ColIncidentCases            = "IncidentCases"
	ColDeathsTB                 = "DeathsTB"
	ColPrevalentCasesTB         = "PrevalentCasesTB"
	ColIncidenceRatePer100k     = "IncidenceRatePer100k"
	ColMortalityRatePer100k     = "MortalityRatePer100k"
	ColPrevalenceRatePer100k    = "PrevalenceRatePer100k"
	ColCaseDetectionRatePercent = "CaseDetectionRatePercent"

	// Derived by the pipeline after cleaning.
	ColIncidenceRateCalc  = "IncidenceRateCalc"
	ColMortalityRateCalc  = "MortalityRateCalc"
	ColPrevalenceRateCalc = "PrevalenceRateCalc"
)

// HeaderAliases maps verbose WHO export headers to canonical names.
// Canonical names map to themselves implicitly.
var HeaderAliases = map[string]string{
	"Country or territory name":                                                          ColCountryName,
	"Region":                                                                             ColRegion,
	"Year":                                                                               ColYear,
	"Estimated total population number":                                                  ColTotalPopulation,
	"Estimated number of incident cases (all forms)":                                     ColIncidentCases,
	"Estimated number of deaths from TB (all forms, excluding HIV)":                      ColDeathsTB,
	"Estimated prevalence of TB (all forms)":                                             ColPrevalentCasesTB,
	"Estimated incidence (all forms) per 100 000 population":                             ColIncidenceRatePer100k,
	"Estimated mortality of TB cases (all forms, excluding HIV), per 100 000 population": ColMortalityRatePer100k,
	"Estimated prevalence of TB (all forms) per 100 000 population":                      ColPrevalenceRatePer100k,
	"Case detection rate (all forms), percent":                                           ColCaseDetectionRatePercent,
}

// SchemaKinds fixes the kind of every known column. Columns absent from this
// map have their kind inferred from the data by the reader.
var SchemaKinds = map[string]Kind{
	ColCountryName:              KindCategorical,
	ColRegion:                   KindCategorical,
	ColYear:                     KindNumeric,
	ColTotalPopulation:          KindNumeric,
	ColIncidentCases:            KindNumeric,
	ColDeathsTB:                 KindNumeric,
	ColPrevalentCasesTB:         KindNumeric,
	ColIncidenceRatePer100k:     KindNumeric,
	ColMortalityRatePer100k:     KindNumeric,
	ColPrevalenceRatePer100k:    KindNumeric,
	ColCaseDetectionRatePercent: KindNumeric,
}

// CanonicalName resolves a raw header to its canonical column name.
func CanonicalName(header string) string {
	if canonical, ok := HeaderAliases[header]; ok {
		return canonical
	}
	return header
}
