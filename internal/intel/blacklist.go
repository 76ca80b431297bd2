package intel

import (
	"context"
	"fmt"
)

// ThreatSource answers which feeds list a domain. Backed by the
// threat_intel table kept current by the ingestor.
type ThreatSource interface {
	BlacklistSources(ctx context.Context, domain string) ([]string, error)
}

// BlacklistChecker turns a threat source lookup into a provider payload.
type BlacklistChecker struct {
	source ThreatSource
}

func NewBlacklistChecker(source ThreatSource) *BlacklistChecker {
	return &BlacklistChecker{source: source}
}

func (b *BlacklistChecker) Fetch(ctx context.Context, domain string) (map[string]any, error) {
	sources, err := b.source.BlacklistSources(ctx, domain)
	if err != nil {
		return nil, fmt.Errorf("blacklist lookup failed: %w", err)
	}

	return map[string]any{
		"blacklisted": len(sources) > 0,
		"sources":     sources,
	}, nil
}
