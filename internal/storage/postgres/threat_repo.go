package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ThreatIndicator is one entry from an external threat feed.
type ThreatIndicator struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Indicator  string    `json:"indicator" db:"indicator"`
	Source     string    `json:"source" db:"source"`
	ThreatType string    `json:"threat_type" db:"threat_type"`
	IngestedAt time.Time `json:"ingested_at" db:"ingested_at"`
}

// InsertIndicator stores one feed entry; duplicates by indicator are
// ignored so re-ingesting a feed is harmless.
func (db *DB) InsertIndicator(ctx context.Context, ind *ThreatIndicator) (bool, error) {
	query := `
        INSERT INTO threat_intel (id, indicator, source, threat_type, ingested_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (indicator) DO NOTHING`

	res, err := db.ExecContext(ctx, query,
		ind.ID, ind.Indicator, ind.Source, ind.ThreatType, ind.IngestedAt)
	if err != nil {
		return false, err
	}
	rows, _ := res.RowsAffected()
	return rows > 0, nil
}

// BlacklistSources returns the distinct feed sources whose indicators
// mention the domain. An empty slice means the domain is not listed.
func (db *DB) BlacklistSources(ctx context.Context, domain string) ([]string, error) {
	var sources []string
	query := `
        SELECT DISTINCT source FROM threat_intel
        WHERE indicator ILIKE '%' || $1 || '%'
        ORDER BY source`
	if err := db.SelectContext(ctx, &sources, query, domain); err != nil {
		return nil, err
	}
	return sources, nil
}

func (db *DB) CountIndicators(ctx context.Context) (int, error) {
	var count int
	err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM threat_intel`)
	return count, err
}
