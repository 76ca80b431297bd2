package risk

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cybercell/domainintel/internal/core"
	"github.com/cybercell/domainintel/internal/normalize"
)

// Enhancer rewrites the wording of a finalized assessment's explanation.
// It receives the assessment after score, level, confidence and reasons
// are fixed and must return a usable explanation no matter what: on any
// internal failure it returns the deterministic text it was given.
// It has no authority over the score or the tier.
type Enhancer interface {
	Enhance(ctx context.Context, a core.RiskAssessment) string
}

// NopEnhancer keeps the deterministic explanation untouched. It is the
// permanent stand-in when no generation credential is configured, so the
// engine itself never branches on credential presence.
type NopEnhancer struct{}

func (NopEnhancer) Enhance(_ context.Context, a core.RiskAssessment) string {
	return a.Explanation
}

// Engine composes normalization, scoring, classification, confidence and
// explanation into one assessment call. It holds no mutable state; one
// engine serves concurrent assessments.
type Engine struct {
	normalizer *normalize.Normalizer
	rules      *Rules
	enhancer   Enhancer
	logger     *zap.Logger
}

func NewEngine(normalizer *normalize.Normalizer, rules *Rules, enhancer Enhancer, logger *zap.Logger) *Engine {
	if enhancer == nil {
		enhancer = NopEnhancer{}
	}
	return &Engine{
		normalizer: normalizer,
		rules:      rules,
		enhancer:   enhancer,
		logger:     logger,
	}
}

// Assess runs the full pipeline on raw provider data. It either returns a
// complete assessment or an error for the whole analysis; there is no
// partial-success path.
func (e *Engine) Assess(ctx context.Context, domain string, raw core.RawDomainData) (*core.RiskAssessment, error) {
	rec := e.normalizer.Record(domain, raw)
	return e.AssessRecord(ctx, rec)
}

// AssessRecord scores an already-normalized record.
func (e *Engine) AssessRecord(ctx context.Context, rec *core.NormalizedDomainRecord) (*core.RiskAssessment, error) {
	if rec == nil {
		return nil, errors.New("risk: nil record")
	}

	score, reasons := e.rules.Calculate(rec)
	level := LevelForScore(score)
	confidence := ConfidenceFor(rec)

	assessment := core.RiskAssessment{
		Domain:      rec.Domain,
		RiskScore:   score,
		RiskLevel:   level,
		Confidence:  confidence,
		Reasons:     reasons,
		Explanation: Explain(rec.Domain, score, level, reasons),
	}

	// Non-authoritative rewording only; score and level are already final.
	assessment.Explanation = e.enhancer.Enhance(ctx, assessment)

	if assessment.Explanation == "" {
		// A silently empty explanation would ship an incomplete verdict.
		return nil, fmt.Errorf("risk: empty explanation for %q", rec.Domain)
	}

	e.logger.Info("safety assessment complete",
		zap.String("domain", rec.Domain),
		zap.Float64("score", score),
		zap.String("risk_level", string(level)),
		zap.String("confidence", string(confidence)),
		zap.Int("penalties", len(reasons)),
	)

	return &assessment, nil
}
