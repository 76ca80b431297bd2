package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cybercell/domainintel/internal/core"
)

type Client struct {
	*redis.Client
	ttl time.Duration
}

func NewClient(redisURL string, ttl time.Duration) *Client {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{
			Addr: redisURL,
		}
	}

	return &Client{Client: redis.NewClient(opt), ttl: ttl}
}

func (c *Client) SetJSON(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.Set(ctx, key, data, expiration).Err()
}

func (c *Client) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := c.Get(ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), dest)
}

// CacheRawData stores the collected provider payloads for a domain so a
// repeated analysis inside the TTL skips the slow upstream calls.
func (c *Client) CacheRawData(ctx context.Context, domain string, raw core.RawDomainData) error {
	return c.SetJSON(ctx, rawDataKey(domain), raw, c.ttl)
}

// GetCachedRawData returns the cached payloads and whether they existed.
func (c *Client) GetCachedRawData(ctx context.Context, domain string) (core.RawDomainData, bool) {
	var raw core.RawDomainData
	if err := c.GetJSON(ctx, rawDataKey(domain), &raw); err != nil {
		return core.RawDomainData{}, false
	}
	return raw, true
}

func rawDataKey(domain string) string {
	return fmt.Sprintf("domain:rawdata:%s", domain)
}
