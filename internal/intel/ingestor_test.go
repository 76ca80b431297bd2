package intel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFetchFeedParsesAndLimits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(
			"http://suspicious-bank-login.com/verify\n" +
				"\n" +
				"not a url at all\n" +
				"https://free-crypto-giveaway.net/claim\n" +
				"http://secure-update-apple.com\n" +
				"http://one-past-the-limit.com\n"))
	}))
	defer srv.Close()

	i := &Ingestor{
		client:  srv.Client(),
		feedURL: srv.URL,
		limit:   3,
		logger:  zap.NewNop(),
	}

	entries, err := i.fetchFeed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"http://suspicious-bank-login.com/verify",
		"https://free-crypto-giveaway.net/claim",
		"http://secure-update-apple.com",
	}, entries)
}

func TestFetchFeedNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	i := &Ingestor{
		client:  srv.Client(),
		feedURL: srv.URL,
		limit:   10,
		logger:  zap.NewNop(),
	}

	_, err := i.fetchFeed(context.Background())
	assert.Error(t, err)
}

func TestGeoIPClientFlattensConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
            "success": true,
            "country": "Netherlands",
            "country_code": "NL",
            "city": "Amsterdam",
            "region": "North Holland",
            "connection": {"asn": 14061, "isp": "DigitalOcean LLC", "org": "DigitalOcean"}
        }`))
	}))
	defer srv.Close()

	g := NewGeoIPClient(srv.URL, time.Second)
	payload, err := g.Fetch(context.Background(), "203.0.113.10")
	require.NoError(t, err)

	assert.Equal(t, "203.0.113.10", payload["ip"])
	assert.Equal(t, "NL", payload["country_code"])
	assert.Equal(t, "DigitalOcean LLC", payload["isp"])
	assert.Equal(t, float64(14061), payload["asn"])
}

func TestGeoIPClientUnsuccessfulLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success": false, "message": "reserved range"}`))
	}))
	defer srv.Close()

	g := NewGeoIPClient(srv.URL, time.Second)
	_, err := g.Fetch(context.Background(), "10.0.0.1")
	assert.Error(t, err)
}
