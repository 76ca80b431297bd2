package intel

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cybercell/domainintel/internal/storage/postgres"
)

// Ingestor pulls the OpenPhish feed into the threat_intel table on a
// fixed interval. The blacklist rule only ever reads that table, so a
// feed outage degrades freshness, never availability.
type Ingestor struct {
	db       *postgres.DB
	client   *http.Client
	feedURL  string
	limit    int
	interval time.Duration
	logger   *zap.Logger
}

func NewIngestor(db *postgres.DB, feedURL string, limit int, interval time.Duration, logger *zap.Logger) *Ingestor {
	return &Ingestor{
		db:       db,
		client:   &http.Client{Timeout: 30 * time.Second},
		feedURL:  feedURL,
		limit:    limit,
		interval: interval,
		logger:   logger,
	}
}

// Run ingests immediately, then on every tick until the context ends.
func (i *Ingestor) Run(ctx context.Context) {
	if err := i.IngestOnce(ctx); err != nil {
		i.logger.Error("initial feed ingestion failed", zap.Error(err))
	}

	ticker := time.NewTicker(i.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := i.IngestOnce(ctx); err != nil {
				i.logger.Error("feed ingestion failed", zap.Error(err))
			}
		}
	}
}

func (i *Ingestor) IngestOnce(ctx context.Context) error {
	entries, err := i.fetchFeed(ctx)
	if err != nil {
		return err
	}

	added, skipped := 0, 0
	for _, entry := range entries {
		inserted, err := i.db.InsertIndicator(ctx, &postgres.ThreatIndicator{
			ID:         uuid.New(),
			Indicator:  entry,
			Source:     "OpenPhish",
			ThreatType: "Phishing",
			IngestedAt: time.Now().UTC(),
		})
		if err != nil {
			i.logger.Warn("failed to store indicator",
				zap.String("indicator", entry),
				zap.Error(err))
			continue
		}
		if inserted {
			added++
		} else {
			skipped++
		}
	}

	i.logger.Info("feed ingestion complete",
		zap.String("feed", i.feedURL),
		zap.Int("added", added),
		zap.Int("skipped", skipped),
	)
	return nil
}

// fetchFeed reads the plain-text feed, one URL per line, up to the
// configured limit. Lines that do not parse as URLs are dropped.
func (i *Ingestor) fetchFeed(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.feedURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed fetch returned status %d", resp.StatusCode)
	}

	var entries []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() && len(entries) < i.limit {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if _, err := url.ParseRequestURI(line); err != nil {
			continue
		}
		entries = append(entries, line)
	}
	return entries, scanner.Err()
}
