package intel

import (
	"fmt"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
)

// WHOISClient fetches registration facts for a domain. The payload keys
// match what the normalizer expects; values keep whatever shape the
// registry gave us, the normalizer sorts it out.
type WHOISClient struct{}

func NewWHOISClient() *WHOISClient {
	return &WHOISClient{}
}

func (w *WHOISClient) Fetch(domain string) (map[string]any, error) {
	raw, err := whois.Whois(domain)
	if err != nil {
		return nil, fmt.Errorf("whois lookup failed: %w", err)
	}

	result, err := whoisparser.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("whois parse failed: %w", err)
	}

	payload := map[string]any{}

	if result.Registrar != nil && result.Registrar.Name != "" {
		payload["registrar"] = result.Registrar.Name
	}
	if result.Domain == nil {
		return payload, nil
	}

	if result.Domain.CreatedDate != "" {
		payload["creation_date"] = result.Domain.CreatedDate
	}
	if result.Domain.ExpirationDate != "" {
		payload["expiration_date"] = result.Domain.ExpirationDate
	}
	if len(result.Domain.NameServers) > 0 {
		payload["nameservers"] = result.Domain.NameServers
	}
	if len(result.Domain.Status) > 0 {
		payload["status"] = result.Domain.Status
	}

	return payload, nil
}
