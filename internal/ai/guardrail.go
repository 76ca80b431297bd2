package ai

import (
	"fmt"
	"strings"

	"github.com/cybercell/domainintel/internal/core"
)

// GuardrailConfig holds the denylists and disclaimers the validator
// enforces. Immutable after construction.
type GuardrailConfig struct {
	// ForbiddenPhrases reject the text outright on a case-insensitive
	// substring match.
	ForbiddenPhrases []string
	// AccusatoryWords reject unless the text also contains "indicator".
	AccusatoryWords []string
	// Disclaimers are appended to accepted text, selected by risk level.
	Disclaimers map[core.RiskLevel]string
}

// DefaultGuardrailConfig returns the stock denylists. Generated text must
// never assert guilt or certainty; it may only restate what the rules
// already determined.
func DefaultGuardrailConfig() GuardrailConfig {
	return GuardrailConfig{
		ForbiddenPhrases: []string{
			"this is fraud",
			"this is malicious",
			"this is phishing",
			"ai predicts",
			"ai detected",
			"guilty",
			"criminal",
			"will cause",
			"definitely",
		},
		AccusatoryWords: []string{"guilty", "criminal", "fraud", "scam", "fake"},
		Disclaimers: map[core.RiskLevel]string{
			core.RiskHigh:   "Based on the factors analyzed, this domain requires immediate verification and investigation.",
			core.RiskMedium: "Based on the factors analyzed, further investigation may be warranted.",
			core.RiskLow:    "Based on the factors analyzed, standard monitoring procedures apply.",
		},
	}
}

// Guardrail validates externally generated text before it may reach a
// report. A rejection is never fatal; callers fall back to the
// deterministic explanation.
type Guardrail struct {
	cfg GuardrailConfig
}

func NewGuardrail(cfg GuardrailConfig) *Guardrail {
	return &Guardrail{cfg: cfg}
}

// Validate returns a non-nil error naming the triggering phrase when the
// text violates a denylist.
//
// NOTE: the "indicator" escape valve below is deliberately preserved
// as-is. It lets an accusatory word through whenever the word "indicator"
// appears anywhere in the text, which a determined prompt could exploit.
// Flagged for security review; do not tighten or loosen silently.
func (g *Guardrail) Validate(text string) error {
	lower := strings.ToLower(text)

	for _, phrase := range g.cfg.ForbiddenPhrases {
		if strings.Contains(lower, strings.ToLower(phrase)) {
			return fmt.Errorf("forbidden phrase: %q", phrase)
		}
	}

	if !strings.Contains(lower, "indicator") {
		for _, word := range g.cfg.AccusatoryWords {
			if strings.Contains(lower, strings.ToLower(word)) {
				return fmt.Errorf("accusatory language: %q", word)
			}
		}
	}

	return nil
}

// Disclaimer returns the fixed closing clause for the given risk level.
func (g *Guardrail) Disclaimer(level core.RiskLevel) string {
	return g.cfg.Disclaimers[level]
}
