package risk

import (
	"fmt"
	"strings"

	"github.com/cybercell/domainintel/internal/core"
)

// recommendations is the fixed per-level closing clause.
var recommendations = map[core.RiskLevel]string{
	core.RiskHigh:   " Immediate investigation strongly recommended.",
	core.RiskMedium: " Further verification may be warranted.",
	core.RiskLow:    " Standard monitoring procedures apply.",
}

// Explain builds the deterministic explanation paragraph from the level,
// the ordered reasons and the fixed recommendation. It needs no network
// and always returns a non-empty string; it is the fallback of record
// when AI enhancement is disabled, fails or is rejected.
func Explain(domain string, score float64, level core.RiskLevel, reasons []string) string {
	if domain == "" {
		domain = "this domain"
	}

	var opening string
	switch level {
	case core.RiskHigh:
		opening = fmt.Sprintf(
			"DANGER: Safety score is critically low (%.1f/10). The domain '%s' shows multiple high-risk indicators.",
			score, domain)
	case core.RiskMedium:
		opening = fmt.Sprintf(
			"CAUTION: Safety score is moderate (%.1f/10). The domain '%s' has some suspicious characteristics.",
			score, domain)
	default:
		opening = fmt.Sprintf(
			"SAFE: Safety score is good (%.1f/10). The domain '%s' appears trustworthy.",
			score, domain)
	}

	factors := " No risk factors detected."
	if len(reasons) > 0 {
		factors = fmt.Sprintf(" Factors: %s.", strings.Join(reasons, " | "))
	}

	return opening + factors + recommendations[level]
}
