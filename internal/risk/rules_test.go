package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cybercell/domainintel/internal/core"
)

func ptr[T any](v T) *T { return &v }

func newTestRules(t *testing.T) *Rules {
	t.Helper()
	return NewRules(DefaultRuleConfig())
}

func TestCalculateCleanRecord(t *testing.T) {
	rules := newTestRules(t)

	// Aged domain, valid TLS, safe country, nothing flagged.
	rec := &core.NormalizedDomainRecord{
		Domain:        "example.com",
		DomainAgeDays: ptr(400),
		HTTPSEnabled:  ptr(true),
		SSLValid:      ptr(true),
		CountryCode:   ptr("US"),
		HostingType:   core.HostingCloud,
	}

	score, reasons := rules.Calculate(rec)
	assert.Equal(t, 10.0, score)
	assert.Empty(t, reasons)
	assert.Equal(t, core.RiskLow, LevelForScore(score))
}

func TestCalculateHighRiskStack(t *testing.T) {
	rules := newTestRules(t)

	// 10.0 - 3.0 (age) - 2.0 (no HTTPS) - 2.0 (geo) - 1.0 (TLD) = 2.0
	rec := &core.NormalizedDomainRecord{
		Domain:        "badsite.xyz",
		DomainAgeDays: ptr(3),
		HTTPSEnabled:  ptr(false),
		CountryCode:   ptr("RU"),
	}

	score, reasons := rules.Calculate(rec)
	assert.Equal(t, 2.0, score)
	assert.Equal(t, core.RiskHigh, LevelForScore(score))
	require.Len(t, reasons, 4)
	assert.Contains(t, reasons[0], "3 days old")
	assert.Contains(t, reasons[1], "No HTTPS")
	assert.Contains(t, reasons[2], "RU")
	assert.Contains(t, reasons[3], ".xyz")
}

func TestCalculateBlacklistOnly(t *testing.T) {
	rules := newTestRules(t)

	rec := &core.NormalizedDomainRecord{
		Domain:           "example.com",
		DomainAgeDays:    ptr(400),
		HTTPSEnabled:     ptr(true),
		SSLValid:         ptr(true),
		Blacklisted:      ptr(true),
		BlacklistSources: []string{"PhishTank"},
	}

	score, reasons := rules.Calculate(rec)
	assert.Equal(t, 5.0, score)
	assert.Equal(t, []string{"Blacklisted in PhishTank (-5.0)"}, reasons)
	// 5.0 sits exactly on the MEDIUM lower boundary.
	assert.Equal(t, core.RiskMedium, LevelForScore(score))
}

func TestCalculateBlacklistWithoutSources(t *testing.T) {
	rules := newTestRules(t)

	rec := &core.NormalizedDomainRecord{
		Domain:      "example.com",
		Blacklisted: ptr(true),
	}

	_, reasons := rules.Calculate(rec)
	require.Len(t, reasons, 1)
	assert.Equal(t, "Blacklisted in security databases (-5.0)", reasons[0])
}

func TestBlacklistPenaltyIsExactDelta(t *testing.T) {
	rules := newTestRules(t)

	base := &core.NormalizedDomainRecord{
		Domain:        "example.com",
		DomainAgeDays: ptr(45),
		HTTPSEnabled:  ptr(false),
	}
	flagged := *base
	flagged.Blacklisted = ptr(true)

	baseScore, _ := rules.Calculate(base)
	flaggedScore, _ := rules.Calculate(&flagged)
	assert.InDelta(t, 5.0, baseScore-flaggedScore, 0.001)
}

func TestAgeBracketsAreMutuallyExclusive(t *testing.T) {
	rules := newTestRules(t)

	tests := []struct {
		age     int
		penalty float64
	}{
		{0, 3.0},
		{5, 3.0},
		{6, 3.0},
		{7, 2.0},
		{29, 2.0},
		{30, 1.0},
		{89, 1.0},
		{90, 0.0},
		{4000, 0.0},
	}

	for _, tt := range tests {
		rec := &core.NormalizedDomainRecord{
			Domain:        "example.com",
			DomainAgeDays: ptr(tt.age),
		}
		score, reasons := rules.Calculate(rec)
		assert.InDelta(t, 10.0-tt.penalty, score, 0.001, "age %d", tt.age)

		if tt.penalty == 0 {
			assert.Empty(t, reasons, "age %d", tt.age)
		} else {
			assert.Len(t, reasons, 1, "age %d must apply exactly one bracket", tt.age)
		}
	}
}

func TestTLSPostureReasons(t *testing.T) {
	rules := newTestRules(t)

	noHTTPS := &core.NormalizedDomainRecord{Domain: "example.com", HTTPSEnabled: ptr(false)}
	_, reasons := rules.Calculate(noHTTPS)
	require.Len(t, reasons, 1)
	assert.Equal(t, "No HTTPS encryption (-2.0)", reasons[0])

	badCert := &core.NormalizedDomainRecord{
		Domain:       "example.com",
		HTTPSEnabled: ptr(true),
		SSLValid:     ptr(false),
	}
	_, reasons = rules.Calculate(badCert)
	require.Len(t, reasons, 1)
	assert.Equal(t, "SSL certificate invalid or expired (-2.0)", reasons[0])

	// HTTPS on, certificate validity unknown: absence is not a penalty.
	unknownCert := &core.NormalizedDomainRecord{
		Domain:       "example.com",
		HTTPSEnabled: ptr(true),
	}
	score, reasons := rules.Calculate(unknownCert)
	assert.Equal(t, 10.0, score)
	assert.Empty(t, reasons)
}

func TestFraudKeywordFirstMatchOnly(t *testing.T) {
	rules := newTestRules(t)

	rec := &core.NormalizedDomainRecord{Domain: "login-verify-bank.com"}
	score, reasons := rules.Calculate(rec)
	assert.Equal(t, 9.5, score)
	require.Len(t, reasons, 1)
	assert.Equal(t, "Contains fraud keyword: 'login' (-0.5)", reasons[0])
}

func TestFraudKeywordIgnoresTLD(t *testing.T) {
	rules := NewRules(RuleConfig{FraudKeywords: []string{"zip"}})

	// The keyword only exists in the TLD, which is excluded from the scan.
	rec := &core.NormalizedDomainRecord{Domain: "example.zip"}
	score, reasons := rules.Calculate(rec)
	assert.Equal(t, 10.0, score)
	assert.Empty(t, reasons)
}

func TestSharedHostingPenalty(t *testing.T) {
	rules := newTestRules(t)

	rec := &core.NormalizedDomainRecord{
		Domain:      "example.com",
		HostingType: core.HostingShared,
	}
	score, reasons := rules.Calculate(rec)
	assert.Equal(t, 9.0, score)
	require.Len(t, reasons, 1)
	assert.Equal(t, "Uses shared hosting infrastructure (-1.0)", reasons[0])
}

func TestScoreClampedToMinimum(t *testing.T) {
	rules := newTestRules(t)

	// Every rule fires; raw total would fall below 1.0.
	rec := &core.NormalizedDomainRecord{
		Domain:           "login-trap.xyz",
		DomainAgeDays:    ptr(2),
		HTTPSEnabled:     ptr(false),
		CountryCode:      ptr("KP"),
		HostingType:      core.HostingShared,
		Blacklisted:      ptr(true),
		BlacklistSources: []string{"OpenPhish", "PhishTank"},
	}

	score, reasons := rules.Calculate(rec)
	assert.Equal(t, 1.0, score)
	assert.Len(t, reasons, 7)
	assert.Contains(t, reasons[0], "OpenPhish, PhishTank")
}

func TestEmptyRecordScoresPerfect(t *testing.T) {
	rules := newTestRules(t)

	score, reasons := rules.Calculate(&core.NormalizedDomainRecord{
		Domain:      "example.com",
		HostingType: core.HostingUnknown,
	})
	assert.Equal(t, 10.0, score)
	assert.Empty(t, reasons)
}

func TestCalculateIsIdempotent(t *testing.T) {
	rules := newTestRules(t)

	rec := &core.NormalizedDomainRecord{
		Domain:        "secure-update.top",
		DomainAgeDays: ptr(12),
		HTTPSEnabled:  ptr(false),
		CountryCode:   ptr("CN"),
		HostingType:   core.HostingShared,
	}

	firstScore, firstReasons := rules.Calculate(rec)
	for i := 0; i < 10; i++ {
		score, reasons := rules.Calculate(rec)
		assert.Equal(t, firstScore, score)
		assert.Equal(t, firstReasons, reasons)
	}
}

func TestLevelForScoreBoundaries(t *testing.T) {
	tests := []struct {
		score float64
		level core.RiskLevel
	}{
		{10.0, core.RiskLow},
		{7.0, core.RiskLow},
		{6.9, core.RiskMedium},
		{4.0, core.RiskMedium},
		{3.9, core.RiskHigh},
		{1.0, core.RiskHigh},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, LevelForScore(tt.score), "score %.1f", tt.score)
	}
}
