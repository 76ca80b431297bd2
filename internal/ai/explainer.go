package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cybercell/domainintel/internal/core"
)

// Enhancement outcomes reported to the observer.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
	OutcomeDisabled = "disabled"
)

// Observer receives one event per enhancement attempt. Implemented by the
// metrics collector; may be nil.
type Observer interface {
	RecordEnhancement(outcome string)
}

// Explainer rewords a finalized assessment's explanation through an
// external text generator, gated by the guardrail. It is strictly
// non-authoritative: any failure, timeout or guardrail rejection falls
// back silently to the deterministic explanation it was given, and no
// error ever reaches the caller.
type Explainer struct {
	generator TextGenerator
	guardrail *Guardrail
	maxTokens int
	timeout   time.Duration
	observer  Observer
	logger    *zap.Logger
}

func NewExplainer(generator TextGenerator, guardrail *Guardrail, maxTokens int, timeout time.Duration, observer Observer, logger *zap.Logger) *Explainer {
	if generator == nil {
		generator = Disabled{}
	}
	return &Explainer{
		generator: generator,
		guardrail: guardrail,
		maxTokens: maxTokens,
		timeout:   timeout,
		observer:  observer,
		logger:    logger,
	}
}

// Enhance performs exactly one bounded generation attempt. No retries:
// the fallback path is always safe and cheap.
func (e *Explainer) Enhance(ctx context.Context, a core.RiskAssessment) string {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	text, err := e.generator.Generate(ctx, e.buildPrompt(a), e.maxTokens)
	if err != nil {
		if errors.Is(err, ErrDisabled) {
			e.record(OutcomeDisabled)
		} else {
			e.record(OutcomeError)
			e.logger.Warn("AI explanation failed, using deterministic text",
				zap.String("domain", a.Domain),
				zap.Error(err))
		}
		return a.Explanation
	}

	text = strings.TrimSpace(text)
	if text == "" {
		e.record(OutcomeError)
		e.logger.Warn("AI returned empty explanation, using deterministic text",
			zap.String("domain", a.Domain))
		return a.Explanation
	}

	if err := e.guardrail.Validate(text); err != nil {
		// Discard entirely; the rejection reason goes to the audit log.
		e.record(OutcomeRejected)
		e.logger.Warn("AI explanation rejected by guardrail",
			zap.String("domain", a.Domain),
			zap.Error(err))
		return a.Explanation
	}

	e.record(OutcomeAccepted)
	return text + " " + e.guardrail.Disclaimer(a.RiskLevel)
}

// buildPrompt exposes only the finalized verdict to the generator: the
// domain name, level, score, reasons and confidence. Raw provider data
// never crosses this boundary.
func (e *Explainer) buildPrompt(a core.RiskAssessment) string {
	var b strings.Builder
	b.WriteString("You are explaining a completed, rule-based domain risk assessment to a police officer.\n\n")
	b.WriteString("STRICT RULES:\n")
	b.WriteString("- NEVER say \"this is fraud\" or \"this is malicious\"\n")
	b.WriteString("- ONLY explain what the data shows\n")
	b.WriteString("- Use phrases like \"indicates\", \"suggests\", \"associated with\"\n")
	b.WriteString("- Base the explanation ONLY on the provided factors\n\n")
	fmt.Fprintf(&b, "Domain: %s\n", a.Domain)
	fmt.Fprintf(&b, "Risk Level: %s\n", a.RiskLevel)
	fmt.Fprintf(&b, "Safety Score: %.1f/10\n", a.RiskScore)
	fmt.Fprintf(&b, "Confidence: %s\n", a.Confidence)
	fmt.Fprintf(&b, "Factors: %s\n\n", strings.Join(a.Reasons, ", "))
	b.WriteString("Write a 2-3 sentence explanation that summarizes the technical findings in plain language, ")
	b.WriteString("connects the factors to the risk level, and ends with appropriate next steps. ")
	b.WriteString("You are explaining what was found, not predicting what will happen.")
	return b.String()
}

func (e *Explainer) record(outcome string) {
	if e.observer != nil {
		e.observer.RecordEnhancement(outcome)
	}
}
