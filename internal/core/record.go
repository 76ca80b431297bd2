package core

// HostingType classifies the infrastructure a domain is served from.
// Inference is heuristic and best-effort; Unknown means no signal at all.
type HostingType string

const (
	HostingShared    HostingType = "shared"
	HostingDedicated HostingType = "dedicated"
	HostingCloud     HostingType = "cloud"
	HostingUnknown   HostingType = "unknown"
)

// RawDomainData bundles the per-source provider payloads for one domain,
// exactly as fetched. Payloads are loosely typed maps because providers
// disagree on field names, types and even date encodings; the normalizer
// is the only consumer and tolerates any shape, including nil maps.
type RawDomainData struct {
	IPAddress string         `json:"ip_address,omitempty"`
	WHOIS     map[string]any `json:"whois,omitempty"`
	IP        map[string]any `json:"ip,omitempty"`
	SSL       map[string]any `json:"ssl,omitempty"`
	Blacklist map[string]any `json:"blacklist,omitempty"`
}

// NormalizedDomainRecord is the canonical, null-tolerant view of everything
// known about one domain. Pointer fields distinguish "absent" from the zero
// value; a rule must never treat absence as a penalty trigger.
//
// Records are built fresh per analysis and never mutated afterwards.
type NormalizedDomainRecord struct {
	Domain string `json:"domain"`

	// Registration
	CreationDate  *string  `json:"creation_date,omitempty"`
	ExpiryDate    *string  `json:"expiry_date,omitempty"`
	DomainAgeDays *int     `json:"domain_age_days,omitempty"`
	Registrar     *string  `json:"registrar,omitempty"`
	Nameservers   []string `json:"nameservers,omitempty"`
	Status        []string `json:"status,omitempty"`

	// Network / hosting
	IPAddress    *string     `json:"ip_address,omitempty"`
	Country      *string     `json:"country,omitempty"`
	CountryCode  *string     `json:"country_code,omitempty"`
	City         *string     `json:"city,omitempty"`
	Region       *string     `json:"region,omitempty"`
	ISP          *string     `json:"isp,omitempty"`
	ASN          *string     `json:"asn,omitempty"`
	Organization *string     `json:"organization,omitempty"`
	HostingType  HostingType `json:"hosting_type"`

	// Security
	HTTPSEnabled *bool   `json:"https_enabled,omitempty"`
	SSLValid     *bool   `json:"ssl_valid,omitempty"`
	SSLIssuer    *string `json:"ssl_issuer,omitempty"`
	SSLExpiry    *string `json:"ssl_expiry,omitempty"`

	Blacklisted      *bool    `json:"blacklisted,omitempty"`
	BlacklistSources []string `json:"blacklist_sources,omitempty"`
}
