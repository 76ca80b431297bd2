package risk

import (
	"fmt"
	"math"
	"strings"

	"github.com/cybercell/domainintel/internal/core"
)

// Safety score scale. Every domain starts at a perfect 10.0 and loses
// fixed penalties; the result is clamped to [1.0, 10.0]. Higher = safer.
const (
	MaxScore = 10.0
	MinScore = 1.0

	lowRiskThreshold    = 7.0 // >= 7.0 is LOW risk
	mediumRiskThreshold = 4.0 // >= 4.0 but < 7.0 is MEDIUM risk
)

// Fixed penalties, in rule evaluation order.
const (
	penaltyBlacklisted   = 5.0 // known malicious, heaviest single penalty
	penaltyNewDomain     = 3.0 // age < 7 days
	penaltyRecentDomain  = 2.0 // age < 30 days
	penaltyYoungDomain   = 1.0 // age < 90 days
	penaltyNoHTTPS       = 2.0 // HTTPS missing or certificate invalid
	penaltyHighRiskGeo   = 2.0 // hosted in a high-risk country
	penaltySuspiciousTLD = 1.0 // abuse-prone TLD
	penaltyFraudKeyword  = 0.5 // phishing keyword in the domain label
	penaltySharedHosting = 1.0 // shared hosting infrastructure
)

// RuleConfig holds the externally configured sets the rule battery matches
// against. It is immutable after construction and safe to share across
// concurrent assessments.
type RuleConfig struct {
	HighRiskCountries []string
	SuspiciousTLDs    []string
	FraudKeywords     []string
}

// DefaultRuleConfig returns the stock rule sets used when the deployment
// does not override them.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		HighRiskCountries: []string{"CN", "RU", "VN", "UA", "KP", "IR"},
		SuspiciousTLDs: []string{
			".xyz", ".top", ".club", ".loan", ".zip", ".gq",
			".win", ".review", ".cricket", ".work", ".science",
		},
		FraudKeywords: []string{
			"login", "verify", "bank", "secure", "update", "wallet",
			"signin", "account", "password", "confirm", "suspend",
		},
	}
}

// Rules is the deterministic safety score calculator. Calculate is a pure
// function of the record and the injected configuration; no rule ever
// fires on an absent field.
type Rules struct {
	highRiskCountries map[string]struct{}
	suspiciousTLDs    map[string]struct{}
	fraudKeywords     []string
}

func NewRules(cfg RuleConfig) *Rules {
	r := &Rules{
		highRiskCountries: make(map[string]struct{}, len(cfg.HighRiskCountries)),
		suspiciousTLDs:    make(map[string]struct{}, len(cfg.SuspiciousTLDs)),
		fraudKeywords:     make([]string, 0, len(cfg.FraudKeywords)),
	}
	for _, cc := range cfg.HighRiskCountries {
		r.highRiskCountries[strings.ToUpper(cc)] = struct{}{}
	}
	for _, tld := range cfg.SuspiciousTLDs {
		if !strings.HasPrefix(tld, ".") {
			tld = "." + tld
		}
		r.suspiciousTLDs[strings.ToLower(tld)] = struct{}{}
	}
	for _, kw := range cfg.FraudKeywords {
		r.fraudKeywords = append(r.fraudKeywords, strings.ToLower(kw))
	}
	return r
}

// Calculate applies the rule battery in its fixed order and returns the
// clamped, one-decimal safety score plus one reason per penalty applied,
// in evaluation order.
func (r *Rules) Calculate(rec *core.NormalizedDomainRecord) (float64, []string) {
	score := MaxScore
	reasons := []string{}

	// Rule 1: blacklist membership.
	if rec.Blacklisted != nil && *rec.Blacklisted {
		score -= penaltyBlacklisted
		sources := "security databases"
		if len(rec.BlacklistSources) > 0 {
			sources = strings.Join(rec.BlacklistSources, ", ")
		}
		reasons = append(reasons, fmt.Sprintf("Blacklisted in %s (-%.1f)", sources, penaltyBlacklisted))
	}

	// Rule 2: domain age. Brackets are mutually exclusive; exactly one
	// fires, the most specific matching one.
	if rec.DomainAgeDays != nil {
		age := *rec.DomainAgeDays
		switch {
		case age < 7:
			score -= penaltyNewDomain
			reasons = append(reasons, fmt.Sprintf("Domain is only %d days old (-%.1f)", age, penaltyNewDomain))
		case age < 30:
			score -= penaltyRecentDomain
			reasons = append(reasons, fmt.Sprintf("Domain is only %d days old (-%.1f)", age, penaltyRecentDomain))
		case age < 90:
			score -= penaltyYoungDomain
			reasons = append(reasons, fmt.Sprintf("Domain is only %d days old (-%.1f)", age, penaltyYoungDomain))
		}
	}

	// Rule 3: TLS posture. Missing HTTPS and an invalid certificate carry
	// the same penalty but distinct reasons.
	if rec.HTTPSEnabled != nil {
		if !*rec.HTTPSEnabled {
			score -= penaltyNoHTTPS
			reasons = append(reasons, fmt.Sprintf("No HTTPS encryption (-%.1f)", penaltyNoHTTPS))
		} else if rec.SSLValid != nil && !*rec.SSLValid {
			score -= penaltyNoHTTPS
			reasons = append(reasons, fmt.Sprintf("SSL certificate invalid or expired (-%.1f)", penaltyNoHTTPS))
		}
	}

	// Rule 4: hosting jurisdiction.
	if rec.CountryCode != nil {
		cc := strings.ToUpper(*rec.CountryCode)
		if _, ok := r.highRiskCountries[cc]; ok {
			score -= penaltyHighRiskGeo
			reasons = append(reasons, fmt.Sprintf("Hosted in high-risk region: %s (-%.1f)", cc, penaltyHighRiskGeo))
		}
	}

	// Rule 5: suspicious TLD.
	if tld := domainTLD(rec.Domain); tld != "" {
		if _, ok := r.suspiciousTLDs[tld]; ok {
			score -= penaltySuspiciousTLD
			reasons = append(reasons, fmt.Sprintf("Suspicious TLD: %s (-%.1f)", tld, penaltySuspiciousTLD))
		}
	}

	// Rule 6: fraud keywords in the domain label. Only the first match
	// counts; multiple keywords do not stack.
	if label := domainLabel(rec.Domain); label != "" {
		for _, kw := range r.fraudKeywords {
			if strings.Contains(label, kw) {
				score -= penaltyFraudKeyword
				reasons = append(reasons, fmt.Sprintf("Contains fraud keyword: '%s' (-%.1f)", kw, penaltyFraudKeyword))
				break
			}
		}
	}

	// Rule 7: shared hosting.
	if rec.HostingType == core.HostingShared {
		score -= penaltySharedHosting
		reasons = append(reasons, fmt.Sprintf("Uses shared hosting infrastructure (-%.1f)", penaltySharedHosting))
	}

	score = math.Max(MinScore, math.Min(MaxScore, score))
	score = math.Round(score*10) / 10

	return score, reasons
}

// LevelForScore maps a safety score to its risk tier.
func LevelForScore(score float64) core.RiskLevel {
	switch {
	case score >= lowRiskThreshold:
		return core.RiskLow
	case score >= mediumRiskThreshold:
		return core.RiskMedium
	default:
		return core.RiskHigh
	}
}

// domainTLD returns the lowercased trailing label with a leading dot,
// or "" when the domain has no dot.
func domainTLD(domain string) string {
	idx := strings.LastIndex(domain, ".")
	if idx < 0 || idx == len(domain)-1 {
		return ""
	}
	return strings.ToLower(domain[idx:])
}

// domainLabel returns the lowercased domain with its TLD stripped, so a
// suspicious TLD never doubles as a keyword match.
func domainLabel(domain string) string {
	idx := strings.LastIndex(domain, ".")
	if idx < 0 {
		return strings.ToLower(domain)
	}
	return strings.ToLower(domain[:idx])
}
