package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cybercell/domainintel/internal/core"
)

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, _ int) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.text, f.err
}

type countingObserver struct {
	outcomes []string
}

func (c *countingObserver) RecordEnhancement(outcome string) {
	c.outcomes = append(c.outcomes, outcome)
}

func testAssessment() core.RiskAssessment {
	return core.RiskAssessment{
		Domain:      "example.xyz",
		RiskScore:   3.5,
		RiskLevel:   core.RiskHigh,
		Confidence:  core.ConfidenceMedium,
		Reasons:     []string{"No HTTPS encryption (-2.0)", "Suspicious TLD: .xyz (-1.0)"},
		Explanation: "DANGER: deterministic fallback text.",
	}
}

func newTestExplainer(gen TextGenerator, obs Observer) *Explainer {
	return NewExplainer(gen, NewGuardrail(DefaultGuardrailConfig()), 500, time.Second, obs, zap.NewNop())
}

func TestEnhanceAppendsDisclaimerOnAccept(t *testing.T) {
	gen := &fakeGenerator{text: "The recent registration and missing HTTPS suggest elevated risk."}
	obs := &countingObserver{}
	e := newTestExplainer(gen, obs)

	a := testAssessment()
	got := e.Enhance(context.Background(), a)

	assert.True(t, strings.HasPrefix(got, gen.text))
	assert.Contains(t, got, "immediate verification and investigation")
	assert.Equal(t, []string{OutcomeAccepted}, obs.outcomes)
}

func TestEnhanceFallsBackOnGuardrailRejection(t *testing.T) {
	gen := &fakeGenerator{text: "This is fraud and the operator is guilty."}
	obs := &countingObserver{}
	e := newTestExplainer(gen, obs)

	a := testAssessment()
	got := e.Enhance(context.Background(), a)

	assert.Equal(t, a.Explanation, got)
	assert.Equal(t, []string{OutcomeRejected}, obs.outcomes)
}

func TestEnhanceFallsBackOnGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("transport error")}
	obs := &countingObserver{}
	e := newTestExplainer(gen, obs)

	a := testAssessment()
	assert.Equal(t, a.Explanation, e.Enhance(context.Background(), a))
	assert.Equal(t, []string{OutcomeError}, obs.outcomes)
}

func TestEnhanceFallsBackOnEmptyOutput(t *testing.T) {
	gen := &fakeGenerator{text: "   \n"}
	e := newTestExplainer(gen, nil)

	a := testAssessment()
	assert.Equal(t, a.Explanation, e.Enhance(context.Background(), a))
}

func TestEnhanceDisabledGeneratorKeepsDeterministicText(t *testing.T) {
	obs := &countingObserver{}
	e := newTestExplainer(Disabled{}, obs)

	a := testAssessment()
	assert.Equal(t, a.Explanation, e.Enhance(context.Background(), a))
	assert.Equal(t, []string{OutcomeDisabled}, obs.outcomes)
}

func TestPromptContainsOnlyFinalizedVerdict(t *testing.T) {
	gen := &fakeGenerator{text: "Neutral explanation of the findings."}
	e := newTestExplainer(gen, nil)

	e.Enhance(context.Background(), testAssessment())
	require.Len(t, gen.prompts, 1)

	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "example.xyz")
	assert.Contains(t, prompt, "HIGH")
	assert.Contains(t, prompt, "3.5/10")
	assert.Contains(t, prompt, "No HTTPS encryption (-2.0)")
	assert.Contains(t, prompt, "medium")
}
