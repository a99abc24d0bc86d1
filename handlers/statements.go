package handlers

import (
	"net/http"

	"financial-analyzer/analysis"
	"financial-analyzer/models"

	"github.com/gin-gonic/gin"
)

// GetStatements returns the raw statements and the ratios derived from
// them without calling the completion API.
func (h *Handler) GetStatements(c *gin.Context) {
	ticker := models.NormalizeTicker(c.Param("ticker"))
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticker is required"})
		return
	}

	statements, err := h.fetcher.Fetch(c.Request.Context(), ticker)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	ratios, missing := analysis.Compute(statements)

	c.JSON(http.StatusOK, gin.H{
		"ticker":     ticker,
		"fetched_at": statements.FetchedAt,
		"statements": statements.Tables(),
		"ratios":     ratios,
		"missing":    missing,
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
