package handlers

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cybercell/domainintel/internal/core"
	"github.com/cybercell/domainintel/internal/storage/postgres"
)

var domainPattern = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

type AnalyzeRequest struct {
	Domain      string `json:"domain" binding:"required"`
	AnalystName string `json:"analyst_name,omitempty"`
	CaseID      string `json:"case_id,omitempty"`
}

type AnalyzeResponse struct {
	Domain      string                       `json:"domain"`
	AnalystName string                       `json:"analyst_name,omitempty"`
	CaseID      string                       `json:"case_id,omitempty"`
	ScanID      string                       `json:"scan_id,omitempty"`
	Record      *core.NormalizedDomainRecord `json:"record"`
	Assessment  *core.RiskAssessment         `json:"assessment"`
	AnalyzedAt  time.Time                    `json:"analyzed_at"`
}

// Analyze runs the full pipeline for one domain: collect raw facts,
// normalize, score, persist the scan. A persistence failure is logged
// but does not fail the analysis; a scoring failure fails the whole
// request, never a partial verdict.
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	domain, ok := sanitizeDomain(req.Domain)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid domain format"})
		return
	}

	start := time.Now()
	ctx := c.Request.Context()

	raw, err := h.collector.Collect(ctx, domain)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Domain could not be resolved. It may not exist or DNS is unavailable.",
		})
		return
	}

	rec := h.normalizer.Record(domain, raw)

	assessment, err := h.engine.AssessRecord(ctx, rec)
	if err != nil {
		h.logger.Error("risk assessment failed",
			zap.String("domain", domain),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Risk assessment failed"})
		return
	}

	h.metrics.RecordAssessment(string(assessment.RiskLevel), time.Since(start))

	resp := AnalyzeResponse{
		Domain:      domain,
		AnalystName: req.AnalystName,
		CaseID:      req.CaseID,
		Record:      rec,
		Assessment:  assessment,
		AnalyzedAt:  time.Now().UTC(),
	}

	scan := postgres.NewScanRecord(assessment, rec, req.AnalystName, req.CaseID)
	if err := h.db.SaveScan(ctx, scan); err != nil {
		// The verdict is already complete; losing the audit row is bad
		// but not worth failing the investigation over.
		h.logger.Error("failed to persist scan history",
			zap.String("domain", domain),
			zap.Error(err))
	} else {
		h.metrics.RecordScanPersisted()
		resp.ScanID = scan.ID.String()
	}

	c.JSON(http.StatusOK, resp)
}

// sanitizeDomain strips scheme, www prefix and path, lowercases, and
// validates the remaining hostname.
func sanitizeDomain(input string) (string, bool) {
	domain := strings.TrimSpace(strings.ToLower(input))
	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "www.")
	if idx := strings.IndexAny(domain, "/?#"); idx >= 0 {
		domain = domain[:idx]
	}

	if !domainPattern.MatchString(domain) {
		return "", false
	}
	return domain, true
}
