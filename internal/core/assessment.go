package core

// RiskLevel is the tier derived from the safety score.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"    // score 7.0 - 10.0, safe
	RiskMedium RiskLevel = "MEDIUM" // score 4.0 - 6.9, suspicious
	RiskHigh   RiskLevel = "HIGH"   // score 1.0 - 3.9, dangerous
)

// ConfidenceLevel reflects how complete the underlying data was,
// independent of the score itself.
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// RiskAssessment is the immutable result of one domain analysis.
//
// RiskScore is a safety score on a 1.0-10.0 scale, higher = safer,
// rounded to one decimal. Reasons are ordered by rule evaluation order
// and name the penalty each rule applied. Explanation is always
// non-empty; when AI enhancement is enabled and passes the guardrail
// it holds the enhanced text, otherwise the deterministic one.
type RiskAssessment struct {
	Domain      string          `json:"domain"`
	RiskScore   float64         `json:"risk_score"`
	RiskLevel   RiskLevel       `json:"risk_level"`
	Confidence  ConfidenceLevel `json:"confidence"`
	Reasons     []string        `json:"reasons"`
	Explanation string          `json:"explanation"`
}
