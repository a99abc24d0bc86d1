// Package llm sends single, non-streaming completion requests to a
// text-generation API.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"financial-analyzer/config"
)

var ErrEmptyCompletion = errors.New("llm: empty completion")

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response carries the first completion's text and its metadata.
type Response struct {
	Text         string
	Model        string
	FinishReason string
	Usage        Usage
}

// Client performs one completion call. Implementations do not retry.
type Client interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// New builds the client for the configured provider.
func New(ctx context.Context, cfg config.LLMConfig, timeout time.Duration) (Client, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.APIKey, cfg.BaseURL, timeout), nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.APIKey, timeout)
	}
	return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
}
