package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cybercell/domainintel/internal/core"
)

func newTestNormalizer(now time.Time) *Normalizer {
	n := New(zap.NewNop())
	n.now = func() time.Time { return now }
	return n
}

func TestRecordEmptyInput(t *testing.T) {
	n := newTestNormalizer(time.Now())

	rec := n.Record("Example.COM", core.RawDomainData{})

	assert.Equal(t, "example.com", rec.Domain)
	assert.Nil(t, rec.CreationDate)
	assert.Nil(t, rec.DomainAgeDays)
	assert.Nil(t, rec.Registrar)
	assert.Nil(t, rec.CountryCode)
	assert.Nil(t, rec.HTTPSEnabled)
	assert.Nil(t, rec.SSLValid)
	assert.Nil(t, rec.Blacklisted)
	assert.Nil(t, rec.IPAddress)
	assert.Equal(t, core.HostingUnknown, rec.HostingType)
}

func TestRecordWHOISFields(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	n := newTestNormalizer(now)

	rec := n.Record("example.com", core.RawDomainData{
		WHOIS: map[string]any{
			"registrar":       "NameCheap, Inc.",
			"creation_date":   "2025-06-01T09:30:00Z",
			"expiration_date": "2026-06-01",
			"nameservers":     []any{"NS1.Example.COM", "NS2.Example.COM"},
			"status":          []any{"clientTransferProhibited"},
		},
	})

	require.NotNil(t, rec.Registrar)
	assert.Equal(t, "NameCheap, Inc.", *rec.Registrar)
	require.NotNil(t, rec.CreationDate)
	assert.Equal(t, "2025-06-01", *rec.CreationDate)
	require.NotNil(t, rec.DomainAgeDays)
	assert.Equal(t, 9, *rec.DomainAgeDays)
	require.NotNil(t, rec.ExpiryDate)
	assert.Equal(t, "2026-06-01", *rec.ExpiryDate)
	assert.Equal(t, []string{"ns1.example.com", "ns2.example.com"}, rec.Nameservers)
	assert.Equal(t, []string{"clientTransferProhibited"}, rec.Status)
}

func TestRecordFutureCreationDateClampsAge(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	n := newTestNormalizer(now)

	rec := n.Record("example.com", core.RawDomainData{
		WHOIS: map[string]any{"creation_date": "2030-01-01"},
	})

	require.NotNil(t, rec.DomainAgeDays)
	assert.Equal(t, 0, *rec.DomainAgeDays)
}

func TestRecordMalformedDateDropsField(t *testing.T) {
	n := newTestNormalizer(time.Now())

	rec := n.Record("example.com", core.RawDomainData{
		WHOIS: map[string]any{
			"registrar":     "GoDaddy",
			"creation_date": "not a date",
		},
	})

	assert.Nil(t, rec.CreationDate)
	assert.Nil(t, rec.DomainAgeDays)
	require.NotNil(t, rec.Registrar)
}

func TestRecordDateShapes(t *testing.T) {
	now := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	n := newTestNormalizer(now)

	shapes := []any{
		"2025-01-01",
		"2025-01-01T00:00:00Z",
		"2025-01-01 00:00:00",
		"01-Jan-2025",
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		[]any{"2025-01-01", "1999-01-01"},
	}

	for _, shape := range shapes {
		rec := n.Record("example.com", core.RawDomainData{
			WHOIS: map[string]any{"creation_date": shape},
		})
		require.NotNil(t, rec.DomainAgeDays, "shape %v", shape)
		assert.Equal(t, 30, *rec.DomainAgeDays, "shape %v", shape)
	}
}

func TestRecordIPFields(t *testing.T) {
	n := newTestNormalizer(time.Now())

	rec := n.Record("example.com", core.RawDomainData{
		IPAddress: "93.184.216.34",
		IP: map[string]any{
			"country":      "United States",
			"country_code": "us",
			"city":         "Norwell",
			"region":       "Massachusetts",
			"isp":          "EdgeCast Networks",
			"asn":          float64(15133),
			"organization": "Verizon Business",
		},
	})

	require.NotNil(t, rec.IPAddress)
	assert.Equal(t, "93.184.216.34", *rec.IPAddress)
	require.NotNil(t, rec.CountryCode)
	assert.Equal(t, "US", *rec.CountryCode)
	require.NotNil(t, rec.ASN)
	assert.Equal(t, "AS15133", *rec.ASN)
	assert.Equal(t, core.HostingShared, rec.HostingType)
}

func TestRecordInvalidCountryCodeDropped(t *testing.T) {
	n := newTestNormalizer(time.Now())

	rec := n.Record("example.com", core.RawDomainData{
		IP: map[string]any{"country_code": "USA"},
	})
	assert.Nil(t, rec.CountryCode)
}

func TestHostingTypeHeuristic(t *testing.T) {
	tests := []struct {
		isp  string
		want core.HostingType
	}{
		{"Amazon Technologies Inc.", core.HostingCloud},
		{"Google Cloud Platform", core.HostingCloud},
		{"DigitalOcean LLC", core.HostingCloud},
		{"Contoso Dedicated Servers", core.HostingDedicated},
		{"Some Regional ISP", core.HostingShared},
		{"", core.HostingUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, inferHostingType(tt.isp), "isp %q", tt.isp)
	}
}

func TestRecordSSLFields(t *testing.T) {
	n := newTestNormalizer(time.Now())

	rec := n.Record("example.com", core.RawDomainData{
		SSL: map[string]any{
			"https_enabled": true,
			"ssl_valid":     false,
			"ssl_issuer":    "Let's Encrypt",
			"ssl_expiry":    "2025-09-01T00:00:00Z",
		},
	})

	require.NotNil(t, rec.HTTPSEnabled)
	assert.True(t, *rec.HTTPSEnabled)
	require.NotNil(t, rec.SSLValid)
	assert.False(t, *rec.SSLValid)
	require.NotNil(t, rec.SSLIssuer)
	require.NotNil(t, rec.SSLExpiry)
	assert.Equal(t, "2025-09-01", *rec.SSLExpiry)
}

func TestRecordBlacklistFields(t *testing.T) {
	n := newTestNormalizer(time.Now())

	rec := n.Record("example.com", core.RawDomainData{
		Blacklist: map[string]any{
			"blacklisted": true,
			"sources":     []any{"OpenPhish", "PhishTank"},
		},
	})

	require.NotNil(t, rec.Blacklisted)
	assert.True(t, *rec.Blacklisted)
	assert.Equal(t, []string{"OpenPhish", "PhishTank"}, rec.BlacklistSources)
}

func TestRecordIgnoresWrongTypes(t *testing.T) {
	n := newTestNormalizer(time.Now())

	// Providers occasionally send numbers for strings and strings for
	// bools; none of it may escalate.
	rec := n.Record("example.com", core.RawDomainData{
		WHOIS:     map[string]any{"registrar": 42, "nameservers": "ns1.example.com"},
		IP:        map[string]any{"country_code": 7, "asn": true},
		SSL:       map[string]any{"https_enabled": "yes"},
		Blacklist: map[string]any{"blacklisted": "true"},
	})

	assert.Nil(t, rec.Registrar)
	assert.Equal(t, []string{"ns1.example.com"}, rec.Nameservers)
	assert.Nil(t, rec.CountryCode)
	assert.Nil(t, rec.ASN)
	assert.Nil(t, rec.HTTPSEnabled)
	assert.Nil(t, rec.Blacklisted)
}
