package intel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GeoIPClient looks up geolocation and network ownership for an IP via
// the ipwho.is API.
type GeoIPClient struct {
	endpoint string
	client   *http.Client
}

func NewGeoIPClient(endpoint string, timeout time.Duration) *GeoIPClient {
	return &GeoIPClient{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

func (g *GeoIPClient) Fetch(ctx context.Context, ip string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", g.endpoint, ip), nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geoip lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geoip lookup returned status %d", resp.StatusCode)
	}

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("geoip decode failed: %w", err)
	}
	if success, ok := body["success"].(bool); ok && !success {
		return nil, fmt.Errorf("geoip lookup unsuccessful for %s", ip)
	}

	payload := map[string]any{
		"ip":           ip,
		"country":      body["country"],
		"country_code": body["country_code"],
		"city":         body["city"],
		"region":       body["region"],
	}

	// ipwho.is nests network ownership under "connection".
	if conn, ok := body["connection"].(map[string]any); ok {
		payload["isp"] = conn["isp"]
		payload["org"] = conn["org"]
		payload["organization"] = conn["org"]
		payload["asn"] = conn["asn"]
	}

	return payload, nil
}
