package handlers

import (
	"context"

	"financial-analyzer/analysis"
	"financial-analyzer/config"
	"financial-analyzer/templates"

	"github.com/gin-gonic/gin"
)

// Runner runs one analysis for a ticker.
type Runner interface {
	Run(ctx context.Context, ticker string) *analysis.Result
}

type Handler struct {
	cfg     *config.Config
	runner  Runner
	fetcher analysis.Fetcher
}

func New(cfg *config.Config, runner Runner, fetcher analysis.Fetcher) *Handler {
	return &Handler{cfg: cfg, runner: runner, fetcher: fetcher}
}

// NewRouter wires the page, the JSON API and the health check.
func NewRouter(h *Handler) (*gin.Engine, error) {
	tmpl, err := templates.Parse()
	if err != nil {
		return nil, err
	}

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)

	r.GET("/", h.Dashboard)
	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	{
		api.POST("/analysis", h.GenerateAnalysis)
		api.GET("/statements/:ticker", h.GetStatements)
	}

	return r, nil
}
