package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) HealthCheck(c *gin.Context) {
	status := http.StatusOK
	dbState := "up"
	if err := h.db.Ping(); err != nil {
		status = http.StatusServiceUnavailable
		dbState = "down"
	}

	c.JSON(status, gin.H{
		"status":     "ok",
		"database":   dbState,
		"ai_enabled": h.config.AIEnabled(),
	})
}

// IntelStats reports the size of the threat intel table, mostly so an
// operator can tell whether the ingestor is actually feeding it.
func (h *Handler) IntelStats(c *gin.Context) {
	indicators, err := h.db.CountIndicators(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count indicators"})
		return
	}
	scans, err := h.db.CountScans(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count scans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"threat_indicators": indicators,
		"total_scans":       scans,
	})
}
