package intel

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/cybercell/domainintel/internal/core"
)

// Cache stores collected provider payloads between analyses of the same
// domain. Optional; a nil cache disables it.
type Cache interface {
	CacheRawData(ctx context.Context, domain string, raw core.RawDomainData) error
	GetCachedRawData(ctx context.Context, domain string) (core.RawDomainData, bool)
}

// Observer counts provider fetch failures. Optional; a nil observer
// disables it.
type Observer interface {
	RecordCollectorError(provider string)
}

// Collector gathers raw facts about a domain from every provider,
// concurrently. Individual provider failures are logged and leave their
// payload nil; only an unresolvable domain aborts the collection, since
// without an IP there is nothing downstream to assess against.
type Collector struct {
	resolver  *Resolver
	whois     *WHOISClient
	ssl       *SSLProbe
	geoip     *GeoIPClient
	blacklist *BlacklistChecker
	cache     Cache
	observer  Observer
	logger    *zap.Logger
}

func NewCollector(resolver *Resolver, whois *WHOISClient, ssl *SSLProbe, geoip *GeoIPClient, blacklist *BlacklistChecker, cache Cache, observer Observer, logger *zap.Logger) *Collector {
	return &Collector{
		resolver:  resolver,
		whois:     whois,
		ssl:       ssl,
		geoip:     geoip,
		blacklist: blacklist,
		cache:     cache,
		observer:  observer,
		logger:    logger,
	}
}

func (c *Collector) Collect(ctx context.Context, domain string) (core.RawDomainData, error) {
	if c.cache != nil {
		if raw, ok := c.cache.GetCachedRawData(ctx, domain); ok {
			c.logger.Debug("serving provider data from cache", zap.String("domain", domain))
			return raw, nil
		}
	}

	ip, err := c.resolver.Resolve(ctx, domain)
	if err != nil {
		return core.RawDomainData{}, err
	}

	raw := core.RawDomainData{IPAddress: ip}

	var wg sync.WaitGroup
	var mu sync.Mutex

	wg.Add(4)
	go c.fetch(domain, "whois", &wg, &mu,
		func() (map[string]any, error) { return c.whois.Fetch(domain) },
		func(p map[string]any) { raw.WHOIS = p })
	go c.fetch(domain, "geoip", &wg, &mu,
		func() (map[string]any, error) { return c.geoip.Fetch(ctx, ip) },
		func(p map[string]any) { raw.IP = p })
	go c.fetch(domain, "ssl", &wg, &mu,
		func() (map[string]any, error) { return c.ssl.Fetch(domain) },
		func(p map[string]any) { raw.SSL = p })
	go c.fetch(domain, "blacklist", &wg, &mu,
		func() (map[string]any, error) { return c.blacklist.Fetch(ctx, domain) },
		func(p map[string]any) { raw.Blacklist = p })
	wg.Wait()

	if c.cache != nil {
		if err := c.cache.CacheRawData(ctx, domain, raw); err != nil {
			c.logger.Debug("failed to cache provider data",
				zap.String("domain", domain),
				zap.Error(err))
		}
	}

	return raw, nil
}

func (c *Collector) fetch(domain, name string, wg *sync.WaitGroup, mu *sync.Mutex, fn func() (map[string]any, error), assign func(map[string]any)) {
	defer wg.Done()
	payload, err := fn()
	if err != nil {
		c.logger.Warn("provider fetch failed",
			zap.String("domain", domain),
			zap.String("provider", name),
			zap.Error(err))
		if c.observer != nil {
			c.observer.RecordCollectorError(name)
		}
		return
	}
	mu.Lock()
	assign(payload)
	mu.Unlock()
}
