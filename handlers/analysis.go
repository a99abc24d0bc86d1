package handlers

import (
	"net/http"

	"financial-analyzer/analysis"
	"financial-analyzer/models"
	"financial-analyzer/report"

	"github.com/gin-gonic/gin"
)

type AnalysisRequest struct {
	Ticker  string `json:"ticker"`
	ShowRaw bool   `json:"show_raw"`
}

type AnalysisResponse struct {
	ID         string                  `json:"id"`
	Ticker     string                  `json:"ticker"`
	State      analysis.State          `json:"state"`
	Trail      []analysis.State        `json:"trail"`
	Messages   []analysis.Message      `json:"messages"`
	Ratios     models.Ratios           `json:"ratios"`
	Missing    []string                `json:"missing"`
	Mode       models.ReportMode       `json:"mode,omitempty"`
	Report     *models.Report          `json:"report,omitempty"`
	Download   *report.Download        `json:"download,omitempty"`
	Statements []models.StatementTable `json:"statements,omitempty"`
}

// GenerateAnalysis runs the same analysis as the page and returns it as
// JSON. Failed fetches and failed reports answer 502 with the full result.
func (h *Handler) GenerateAnalysis(c *gin.Context) {
	var request AnalysisRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if models.NormalizeTicker(request.Ticker) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ticker is required"})
		return
	}

	res := h.runner.Run(c.Request.Context(), request.Ticker)

	resp := AnalysisResponse{
		ID:       res.ID,
		Ticker:   res.Ticker,
		State:    res.State,
		Trail:    res.Trail,
		Messages: res.Messages,
		Ratios:   res.Ratios,
		Missing:  res.Missing,
		Mode:     res.Mode,
		Report:   res.Report,
	}
	if res.Report != nil {
		d := report.DownloadLink(res.Report)
		resp.Download = &d
	}
	if request.ShowRaw && res.Statements != nil {
		resp.Statements = res.Statements.Tables()
	}

	status := http.StatusOK
	if res.Failed() {
		status = http.StatusBadGateway
	}
	c.JSON(status, resp)
}
