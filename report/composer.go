// Package report turns computed ratios into an LLM-written analysis and
// prepares it for display and export.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"financial-analyzer/config"
	"financial-analyzer/llm"
	"financial-analyzer/models"
)

var ErrGeneration = errors.New("report generation failed")

const systemPrompt = "You are a financial analyst."

// Settings are the sampling parameters for one report mode.
type Settings struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

type Composer struct {
	client   llm.Client
	grounded Settings
	fallback Settings
}

// NewComposer uses the basic model tier for ratio-grounded reports and the
// advanced tier for the fallback report.
func NewComposer(client llm.Client, cfg config.LLMConfig) *Composer {
	return &Composer{
		client:   client,
		grounded: Settings{Model: cfg.BasicModel, MaxTokens: 500, Temperature: 0.7},
		fallback: Settings{Model: cfg.AdvancedModel, MaxTokens: 2048, Temperature: 1.0},
	}
}

// SelectMode picks the ratio-grounded path when at least one ratio exists.
func SelectMode(ratios models.Ratios) models.ReportMode {
	if len(ratios) > 0 {
		return models.ModeRatioGrounded
	}
	return models.ModeFallback
}

func RatioPrompt(ticker string, ratios models.Ratios) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Provide a detailed analysis of %s's financial health based on the following financial ratios:\n\n", ticker)
	for _, r := range ratios {
		fmt.Fprintf(&b, "%s: %.2f\n", r.Name, r.Value)
	}
	b.WriteString("\nDiscuss what each available ratio means for the company's financial stability and performance.")
	return b.String()
}

func FallbackPrompt(ticker string) string {
	return fmt.Sprintf(`Provide a detailed analysis of %s's financial health based on the available financial statements.

Discuss the company's performance, financial stability, and any notable trends or observations.`, ticker)
}

func (c *Composer) Settings(mode models.ReportMode) Settings {
	if mode == models.ModeRatioGrounded {
		return c.grounded
	}
	return c.fallback
}

// Compose makes exactly one completion call. On any failure it returns no
// report and an error wrapping ErrGeneration.
func (c *Composer) Compose(ctx context.Context, ticker string, ratios models.Ratios) (*models.Report, error) {
	mode := SelectMode(ratios)
	settings := c.Settings(mode)

	prompt := FallbackPrompt(ticker)
	if mode == models.ModeRatioGrounded {
		prompt = RatioPrompt(ticker, ratios)
	}

	resp, err := c.client.Complete(ctx, &llm.Request{
		Model: settings.Model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: prompt},
		},
		MaxTokens:   settings.MaxTokens,
		Temperature: settings.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, err)
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, fmt.Errorf("%w: %w", ErrGeneration, llm.ErrEmptyCompletion)
	}

	model := resp.Model
	if model == "" {
		model = settings.Model
	}
	return &models.Report{
		Ticker:      ticker,
		Text:        text,
		Mode:        mode,
		Model:       model,
		GeneratedAt: time.Now(),
	}, nil
}
