package intel

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

// Resolver resolves a domain to its primary IPv4 address. It prefers the
// Go resolver and falls back to a direct query against a public resolver
// when the system one is unavailable or filtered.
type Resolver struct {
	resolver *net.Resolver
	client   *dns.Client
	fallback string
}

func NewResolver(timeout time.Duration) *Resolver {
	return &Resolver{
		resolver: &net.Resolver{
			PreferGo: true,
			Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
				d := net.Dialer{Timeout: timeout}
				return d.DialContext(ctx, network, address)
			},
		},
		client:   &dns.Client{Timeout: timeout},
		fallback: "8.8.8.8:53",
	}
}

// Resolve returns the first IPv4 address for domain. A domain that does
// not resolve anywhere is a hard error; there is nothing to analyze.
func (r *Resolver) Resolve(ctx context.Context, domain string) (string, error) {
	ips, err := r.resolver.LookupHost(ctx, domain)
	if err == nil {
		for _, ip := range ips {
			if parsed := net.ParseIP(ip); parsed != nil && parsed.To4() != nil {
				return ip, nil
			}
		}
	}

	if ip, ferr := r.resolveDirect(domain); ferr == nil {
		return ip, nil
	}

	if err != nil {
		return "", fmt.Errorf("dns resolution failed for %s: %w", domain, err)
	}
	return "", fmt.Errorf("no A record found for %s", domain)
}

// resolveDirect asks the fallback resolver for an A record.
func (r *Resolver) resolveDirect(domain string) (string, error) {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), dns.TypeA)

	resp, _, err := r.client.Exchange(m, r.fallback)
	if err != nil {
		return "", err
	}

	for _, rr := range resp.Answer {
		if a, ok := rr.(*dns.A); ok {
			return a.A.String(), nil
		}
	}
	return "", fmt.Errorf("no A record in response for %s", domain)
}
