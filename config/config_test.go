package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv isolates a test from the developer's environment.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"OPENAI_API_KEY", "GEMINI_API_KEY", "OPENAI_BASE_URL",
		"ANALYZER_ADDR", "ANALYZER_DEFAULT_TICKER", "ANALYZER_LLM_PROVIDER",
		"ANALYZER_BASIC_MODEL", "ANALYZER_ADVANCED_MODEL", "ANALYZER_HTTP_TIMEOUT",
		"ANALYZER_MARKET_BASE_URL", "ANALYZER_MARKET_USER_AGENT", "GIN_MODE",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("ANALYZER_SECRETS_FILE", filepath.Join(t.TempDir(), "missing.toml"))
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test-1234567890")
	t.Setenv("ANALYZER_DEFAULT_TICKER", " msft ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "sk-test-1234567890" || cfg.LLM.KeySource != KeySourceEnv {
		t.Errorf("unexpected key %q from %q", cfg.LLM.APIKey, cfg.LLM.KeySource)
	}
	if cfg.DefaultTicker != "MSFT" {
		t.Errorf("expected default ticker MSFT, got %q", cfg.DefaultTicker)
	}
	if cfg.Addr != ":8090" {
		t.Errorf("expected default addr :8090, got %q", cfg.Addr)
	}
	if cfg.HTTPTimeout != 120*time.Second {
		t.Errorf("expected 120s timeout, got %s", cfg.HTTPTimeout)
	}
	if cfg.LLM.Provider != ProviderOpenAI {
		t.Errorf("expected openai provider, got %q", cfg.LLM.Provider)
	}
	if cfg.LLM.BasicModel != "gpt-3.5-turbo" || cfg.LLM.AdvancedModel != "gpt-4o" {
		t.Errorf("unexpected models %q / %q", cfg.LLM.BasicModel, cfg.LLM.AdvancedModel)
	}
	if cfg.Market.BaseURL != "https://query1.finance.yahoo.com" {
		t.Errorf("unexpected market base url %q", cfg.Market.BaseURL)
	}
}

func TestLoadFallsBackToSecretsFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "secrets.toml")
	if err := os.WriteFile(path, []byte("OPENAI_API_KEY = \"sk-from-secrets\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ANALYZER_SECRETS_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "sk-from-secrets" {
		t.Errorf("expected key from secrets file, got %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.KeySource != KeySourceSecrets {
		t.Errorf("expected secrets source, got %q", cfg.LLM.KeySource)
	}
}

func TestLoadEnvironmentWinsOverSecrets(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "secrets.toml")
	if err := os.WriteFile(path, []byte("OPENAI_API_KEY = \"sk-from-secrets\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ANALYZER_SECRETS_FILE", path)
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "sk-from-env" {
		t.Errorf("expected env key to win, got %q", cfg.LLM.APIKey)
	}
}

func TestLoadMissingKey(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	if !errors.Is(err, ErrNoAPIKey) {
		t.Fatalf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestLoadGeminiProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANALYZER_LLM_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "gm-key-0123456789")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.Provider != ProviderGemini {
		t.Errorf("expected gemini provider, got %q", cfg.LLM.Provider)
	}
	if cfg.LLM.APIKey != "gm-key-0123456789" {
		t.Errorf("unexpected key %q", cfg.LLM.APIKey)
	}
	if cfg.LLM.BasicModel != "gemini-2.0-flash-lite" || cfg.LLM.AdvancedModel != "gemini-2.5-pro" {
		t.Errorf("unexpected models %q / %q", cfg.LLM.BasicModel, cfg.LLM.AdvancedModel)
	}
}

func TestLoadUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("ANALYZER_LLM_PROVIDER", "parrot")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for an unknown provider")
	}
}

func TestMaskKey(t *testing.T) {
	if got := MaskKey("short"); got != "***" {
		t.Errorf("expected *** for short key, got %q", got)
	}
	if got := MaskKey("sk-abcdefghijxyz"); got != "sk-...xyz" {
		t.Errorf("unexpected mask %q", got)
	}
}
