package normalize

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cybercell/domainintel/internal/core"
)

// cloud provider names looked for in the ISP string. Matching any of them
// classifies the hosting as cloud. Best-effort only.
var cloudProviders = []string{
	"aws", "amazon", "azure", "google cloud", "digitalocean",
	"cloudflare", "hetzner", "ovh", "linode",
}

// Normalizer converts messy provider payloads into one canonical record.
// It never fails: any field it cannot parse is dropped to absent and
// logged, so the record is always safe to score.
type Normalizer struct {
	logger *zap.Logger
	now    func() time.Time
}

func New(logger *zap.Logger) *Normalizer {
	return &Normalizer{
		logger: logger,
		now:    time.Now,
	}
}

// Record merges all provider payloads for domain into a fresh canonical
// record. Nil or empty payloads simply leave their fields absent.
func (n *Normalizer) Record(domain string, raw core.RawDomainData) *core.NormalizedDomainRecord {
	rec := &core.NormalizedDomainRecord{
		Domain:      strings.ToLower(strings.TrimSpace(domain)),
		HostingType: core.HostingUnknown,
	}

	if raw.IPAddress != "" {
		ip := raw.IPAddress
		rec.IPAddress = &ip
	}

	n.applyWHOIS(rec, raw.WHOIS)
	n.applyIP(rec, raw.IP)
	n.applySSL(rec, raw.SSL)
	n.applyBlacklist(rec, raw.Blacklist)

	return rec
}

func (n *Normalizer) applyWHOIS(rec *core.NormalizedDomainRecord, raw map[string]any) {
	if len(raw) == 0 {
		return
	}

	if registrar := stringField(raw, "registrar"); registrar != "" {
		rec.Registrar = &registrar
	}

	if created, ok := n.parseDate(raw["creation_date"]); ok {
		iso := created.Format("2006-01-02")
		rec.CreationDate = &iso
		age := n.ageDays(created)
		rec.DomainAgeDays = &age
	} else if raw["creation_date"] != nil {
		n.logger.Warn("unparseable creation date dropped",
			zap.String("domain", rec.Domain),
			zap.Any("value", raw["creation_date"]))
	}

	if expiry, ok := n.parseDate(raw["expiration_date"]); ok {
		iso := expiry.Format("2006-01-02")
		rec.ExpiryDate = &iso
	}

	for _, ns := range stringList(raw, "nameservers") {
		rec.Nameservers = append(rec.Nameservers, strings.ToLower(ns))
	}
	rec.Status = stringList(raw, "status")
}

func (n *Normalizer) applyIP(rec *core.NormalizedDomainRecord, raw map[string]any) {
	if len(raw) == 0 {
		return
	}

	if ip := stringField(raw, "ip"); ip != "" && rec.IPAddress == nil {
		rec.IPAddress = &ip
	}
	if country := stringField(raw, "country"); country != "" {
		rec.Country = &country
	}
	if cc := strings.ToUpper(stringField(raw, "country_code")); len(cc) == 2 {
		rec.CountryCode = &cc
	}
	if city := stringField(raw, "city"); city != "" {
		rec.City = &city
	}
	if region := stringField(raw, "region"); region != "" {
		rec.Region = &region
	}

	isp := stringField(raw, "isp")
	if isp == "" {
		isp = stringField(raw, "org")
	}
	if isp != "" {
		rec.ISP = &isp
	}

	if asn := normalizeASN(raw["asn"]); asn != "" {
		rec.ASN = &asn
	}

	org := stringField(raw, "organization")
	if org == "" {
		org = stringField(raw, "org")
	}
	if org != "" {
		rec.Organization = &org
	}

	rec.HostingType = inferHostingType(isp)
}

func (n *Normalizer) applySSL(rec *core.NormalizedDomainRecord, raw map[string]any) {
	if len(raw) == 0 {
		return
	}

	if enabled, ok := boolField(raw, "https_enabled"); ok {
		rec.HTTPSEnabled = &enabled
	}
	if valid, ok := boolField(raw, "ssl_valid"); ok {
		rec.SSLValid = &valid
	}
	if issuer := stringField(raw, "ssl_issuer"); issuer != "" {
		rec.SSLIssuer = &issuer
	}
	if expiry, ok := n.parseDate(raw["ssl_expiry"]); ok {
		iso := expiry.Format("2006-01-02")
		rec.SSLExpiry = &iso
	}
}

func (n *Normalizer) applyBlacklist(rec *core.NormalizedDomainRecord, raw map[string]any) {
	if len(raw) == 0 {
		return
	}

	if listed, ok := boolField(raw, "blacklisted"); ok {
		rec.Blacklisted = &listed
	}
	rec.BlacklistSources = stringList(raw, "sources")
}

// ageDays is floor(now - created) in whole days, clamped at zero to guard
// against clock skew and registrars reporting future creation dates.
func (n *Normalizer) ageDays(created time.Time) int {
	days := int(n.now().Sub(created).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// parseDate accepts the date shapes providers actually send: time.Time,
// an ISO-8601 / RFC3339 string (with or without time component), or a
// list whose first element is one of those.
func (n *Normalizer) parseDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		return d, true
	case *time.Time:
		if d == nil {
			return time.Time{}, false
		}
		return *d, true
	case string:
		s := strings.TrimSpace(d)
		for _, layout := range []string{
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02",
			"02-Jan-2006",
			"2006.01.02 15:04:05",
			"2006/01/02",
		} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case []any:
		if len(d) == 0 {
			return time.Time{}, false
		}
		return n.parseDate(d[0])
	default:
		return time.Time{}, false
	}
}

// inferHostingType guesses the hosting class from the ISP string.
// Coarse by design: a known cloud name wins, an explicit "dedicated"
// marker is next, any other known ISP is assumed shared, and with no
// ISP at all nothing can be said.
func inferHostingType(isp string) core.HostingType {
	lower := strings.ToLower(isp)
	if lower == "" {
		return core.HostingUnknown
	}
	for _, provider := range cloudProviders {
		if strings.Contains(lower, provider) {
			return core.HostingCloud
		}
	}
	if strings.Contains(lower, "dedicated") {
		return core.HostingDedicated
	}
	return core.HostingShared
}

func normalizeASN(v any) string {
	switch asn := v.(type) {
	case nil:
		return ""
	case string:
		s := strings.TrimSpace(asn)
		if s == "" {
			return ""
		}
		if strings.HasPrefix(strings.ToUpper(s), "AS") {
			return s
		}
		return "AS" + s
	case float64:
		return "AS" + strconv.Itoa(int(asn))
	case int:
		return "AS" + strconv.Itoa(asn)
	default:
		return ""
	}
}

func stringField(raw map[string]any, key string) string {
	if s, ok := raw[key].(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func boolField(raw map[string]any, key string) (bool, bool) {
	b, ok := raw[key].(bool)
	return b, ok
}

func stringList(raw map[string]any, key string) []string {
	switch v := raw[key].(type) {
	case nil:
		return nil
	case []string:
		return append([]string(nil), v...)
	case []any:
		var out []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}
