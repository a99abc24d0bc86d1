package report

import (
	"context"
	"errors"
	"strings"
	"testing"

	"financial-analyzer/config"
	"financial-analyzer/llm"
	"financial-analyzer/models"
)

type fakeClient struct {
	requests []*llm.Request
	resp     *llm.Response
	err      error
}

func (f *fakeClient) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

var testLLMConfig = config.LLMConfig{BasicModel: "gpt-3.5-turbo", AdvancedModel: "gpt-4o"}

func TestSelectMode(t *testing.T) {
	if SelectMode(nil) != models.ModeFallback {
		t.Error("no ratios should select fallback")
	}
	if SelectMode(models.Ratios{{Name: models.CurrentRatio, Value: 1}}) != models.ModeRatioGrounded {
		t.Error("one ratio should select ratio-grounded")
	}
}

func TestComposeRatioGrounded(t *testing.T) {
	fc := &fakeClient{resp: &llm.Response{Text: "  Solid margins.\n", Model: "gpt-3.5-turbo-0125"}}
	c := NewComposer(fc, testLLMConfig)

	ratios := models.Ratios{
		{Name: models.GrossMargin, Value: 0.433096},
		{Name: models.DebtToEquity, Value: 5.9615},
	}
	r, err := c.Compose(context.Background(), "AAPL", ratios)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if len(fc.requests) != 1 {
		t.Fatalf("expected exactly one completion call, got %d", len(fc.requests))
	}
	req := fc.requests[0]
	if req.Model != "gpt-3.5-turbo" || req.MaxTokens != 500 || req.Temperature != 0.7 {
		t.Errorf("unexpected settings %+v", req)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != llm.RoleSystem || req.Messages[0].Content != "You are a financial analyst." {
		t.Fatalf("unexpected messages %+v", req.Messages)
	}
	prompt := req.Messages[1].Content
	for _, want := range []string{"AAPL's financial health", "Gross Margin: 0.43\n", "Debt-to-Equity Ratio: 5.96\n"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if strings.Contains(prompt, models.CurrentRatio) {
		t.Error("prompt should only list available ratios")
	}

	if r.Text != "Solid margins." {
		t.Errorf("expected trimmed text, got %q", r.Text)
	}
	if r.Mode != models.ModeRatioGrounded || r.Ticker != "AAPL" || r.Model != "gpt-3.5-turbo-0125" {
		t.Errorf("unexpected report %+v", r)
	}
}

func TestComposeFallback(t *testing.T) {
	fc := &fakeClient{resp: &llm.Response{Text: "General view."}}
	c := NewComposer(fc, testLLMConfig)

	r, err := c.Compose(context.Background(), "XYZ", nil)
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	req := fc.requests[0]
	if req.Model != "gpt-4o" || req.MaxTokens != 2048 || req.Temperature != 1.0 {
		t.Errorf("unexpected settings %+v", req)
	}
	if req.Messages[1].Content != FallbackPrompt("XYZ") {
		t.Errorf("unexpected prompt %q", req.Messages[1].Content)
	}
	if r.Mode != models.ModeFallback || r.Model != "gpt-4o" {
		t.Errorf("unexpected report %+v", r)
	}
}

func TestComposeFailure(t *testing.T) {
	fc := &fakeClient{err: errors.New("context deadline exceeded")}
	c := NewComposer(fc, testLLMConfig)

	r, err := c.Compose(context.Background(), "AAPL", models.Ratios{{Name: models.GrossMargin, Value: 0.4}})
	if r != nil {
		t.Errorf("expected no report, got %+v", r)
	}
	if !errors.Is(err, ErrGeneration) {
		t.Fatalf("expected ErrGeneration, got %v", err)
	}
}

func TestComposeBlankCompletion(t *testing.T) {
	fc := &fakeClient{resp: &llm.Response{Text: "   "}}
	c := NewComposer(fc, testLLMConfig)

	_, err := c.Compose(context.Background(), "AAPL", nil)
	if !errors.Is(err, ErrGeneration) || !errors.Is(err, llm.ErrEmptyCompletion) {
		t.Fatalf("expected ErrGeneration wrapping ErrEmptyCompletion, got %v", err)
	}
}

func TestFallbackPromptReferencesOnlyTicker(t *testing.T) {
	p := FallbackPrompt("MSFT")
	if !strings.Contains(p, "MSFT's financial health") {
		t.Errorf("unexpected prompt %q", p)
	}
	if strings.Contains(p, "ratio") {
		t.Errorf("fallback prompt should not mention ratios: %q", p)
	}
}
