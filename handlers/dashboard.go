package handlers

import (
	"html/template"
	"log"
	"net/http"

	"financial-analyzer/analysis"
	"financial-analyzer/models"
	"financial-analyzer/report"

	"github.com/gin-gonic/gin"
)

type DashboardData struct {
	Ticker     string
	ShowRaw    bool
	State      analysis.State
	Messages   []analysis.Message
	Tables     []models.StatementTable
	Ratios     models.Ratios
	Report     *models.Report
	ReportHTML template.HTML
	Download   *report.Download
}

// Dashboard renders the page. Each request is one full analysis; an absent
// ticker parameter means the configured default, an empty one means idle.
func (h *Handler) Dashboard(c *gin.Context) {
	ticker, ok := c.GetQuery("ticker")
	if !ok {
		ticker = h.cfg.DefaultTicker
	}
	showRaw := c.Query("show_raw") != ""

	res := h.runner.Run(c.Request.Context(), ticker)

	c.HTML(http.StatusOK, "index.html", newDashboardData(res, showRaw))
}

func newDashboardData(res *analysis.Result, showRaw bool) DashboardData {
	data := DashboardData{
		Ticker:   res.Ticker,
		ShowRaw:  showRaw,
		State:    res.State,
		Messages: res.Messages,
		Ratios:   res.Ratios,
		Report:   res.Report,
	}

	if showRaw && res.Statements != nil {
		data.Tables = res.Statements.Tables()
	}

	if res.Report != nil {
		html, err := report.RenderHTML(res.Report.Text)
		if err != nil {
			log.Printf("[%s] render report: %v", res.ID, err)
			html = template.HTML(template.HTMLEscapeString(res.Report.Text))
		}
		data.ReportHTML = html
		d := report.DownloadLink(res.Report)
		data.Download = &d
	}

	return data
}
