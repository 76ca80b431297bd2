package risk

import "github.com/cybercell/domainintel/internal/core"

// confidenceFields is the set of record fields whose presence drives the
// confidence tier. Values are never inspected, only presence.
const confidenceFieldCount = 5

// Completeness returns the fraction of confidence-relevant fields present
// on the record.
func Completeness(rec *core.NormalizedDomainRecord) float64 {
	present := 0
	if rec.DomainAgeDays != nil {
		present++
	}
	if rec.Registrar != nil {
		present++
	}
	if rec.CountryCode != nil {
		present++
	}
	if rec.HTTPSEnabled != nil {
		present++
	}
	if rec.IPAddress != nil {
		present++
	}
	return float64(present) / confidenceFieldCount
}

// ConfidenceFor derives the qualitative confidence tier from field
// completeness: >= 0.8 high, >= 0.5 medium, otherwise low.
func ConfidenceFor(rec *core.NormalizedDomainRecord) core.ConfidenceLevel {
	switch completeness := Completeness(rec); {
	case completeness >= 0.8:
		return core.ConfidenceHigh
	case completeness >= 0.5:
		return core.ConfidenceMedium
	default:
		return core.ConfidenceLow
	}
}
