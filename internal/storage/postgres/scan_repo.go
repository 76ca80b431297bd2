package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/cybercell/domainintel/internal/core"
)

// ScanRecord is one persisted assessment: the audit trail for an
// investigation. The full verdict is stored so a report can be
// reconstructed without re-running the pipeline.
type ScanRecord struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	Domain      string         `json:"domain" db:"domain"`
	RiskScore   float64        `json:"risk_score" db:"risk_score"`
	RiskLevel   string         `json:"risk_level" db:"risk_level"`
	Confidence  string         `json:"confidence" db:"confidence"`
	Reasons     pq.StringArray `json:"reasons" db:"reasons"`
	Explanation string         `json:"explanation" db:"explanation"`
	AnalystName *string        `json:"analyst_name,omitempty" db:"analyst_name"`
	CaseID      *string        `json:"case_id,omitempty" db:"case_id"`
	IPAddress   *string        `json:"ip_address,omitempty" db:"ip_address"`
	CountryCode *string        `json:"country_code,omitempty" db:"country_code"`
	ScannedAt   time.Time      `json:"scanned_at" db:"scanned_at"`
}

// NewScanRecord builds a record from a finished assessment plus the
// request metadata the analyst supplied.
func NewScanRecord(a *core.RiskAssessment, rec *core.NormalizedDomainRecord, analystName, caseID string) *ScanRecord {
	sr := &ScanRecord{
		ID:          uuid.New(),
		Domain:      a.Domain,
		RiskScore:   a.RiskScore,
		RiskLevel:   string(a.RiskLevel),
		Confidence:  string(a.Confidence),
		Reasons:     pq.StringArray(a.Reasons),
		Explanation: a.Explanation,
		IPAddress:   rec.IPAddress,
		CountryCode: rec.CountryCode,
		ScannedAt:   time.Now().UTC(),
	}
	if analystName != "" {
		sr.AnalystName = &analystName
	}
	if caseID != "" {
		sr.CaseID = &caseID
	}
	return sr
}

func (db *DB) SaveScan(ctx context.Context, scan *ScanRecord) error {
	query := `
        INSERT INTO scan_history (
            id, domain, risk_score, risk_level, confidence, reasons,
            explanation, analyst_name, case_id, ip_address, country_code, scanned_at
        ) VALUES (
            :id, :domain, :risk_score, :risk_level, :confidence, :reasons,
            :explanation, :analyst_name, :case_id, :ip_address, :country_code, :scanned_at
        )`

	_, err := db.NamedExecContext(ctx, query, scan)
	return err
}

func (db *DB) GetScan(ctx context.Context, id string) (*ScanRecord, error) {
	var scan ScanRecord
	query := `SELECT * FROM scan_history WHERE id = $1`
	if err := db.GetContext(ctx, &scan, query, id); err != nil {
		return nil, err
	}
	return &scan, nil
}

// ListScans returns the most recent scans, optionally filtered to one
// domain, newest first.
func (db *DB) ListScans(ctx context.Context, domain string, limit, offset int) ([]*ScanRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var scans []*ScanRecord
	var err error
	if domain != "" {
		query := `
            SELECT * FROM scan_history
            WHERE domain = $1
            ORDER BY scanned_at DESC
            LIMIT $2 OFFSET $3`
		err = db.SelectContext(ctx, &scans, query, domain, limit, offset)
	} else {
		query := `
            SELECT * FROM scan_history
            ORDER BY scanned_at DESC
            LIMIT $1 OFFSET $2`
		err = db.SelectContext(ctx, &scans, query, limit, offset)
	}
	return scans, err
}

func (db *DB) CountScans(ctx context.Context) (int, error) {
	var count int
	err := db.GetContext(ctx, &count, `SELECT COUNT(*) FROM scan_history`)
	return count, err
}
