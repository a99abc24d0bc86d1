// Package config loads process configuration once at startup. The result
// is read-only and passed explicitly to the components that need it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var ErrNoAPIKey = errors.New("API key not found")

// KeySource records where the completion API key came from.
type KeySource string

const (
	KeySourceEnv     KeySource = "env"
	KeySourceSecrets KeySource = "secrets"
)

type Config struct {
	Addr          string
	DefaultTicker string
	GinMode       string
	HTTPTimeout   time.Duration
	Market        MarketConfig
	LLM           LLMConfig
}

type MarketConfig struct {
	BaseURL   string
	UserAgent string
}

type LLMConfig struct {
	Provider      string
	APIKey        string
	KeySource     KeySource
	BaseURL       string
	BasicModel    string
	AdvancedModel string
}

// Load reads .env (if present), the environment and the secrets file.
// Environment variables win over the secrets file. A missing API key is an
// error wrapping ErrNoAPIKey.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		Addr:          v.GetString("analyzer_addr"),
		DefaultTicker: strings.ToUpper(strings.TrimSpace(v.GetString("analyzer_default_ticker"))),
		GinMode:       v.GetString("gin_mode"),
		HTTPTimeout:   v.GetDuration("analyzer_http_timeout"),
		Market: MarketConfig{
			BaseURL:   strings.TrimRight(v.GetString("analyzer_market_base_url"), "/"),
			UserAgent: v.GetString("analyzer_market_user_agent"),
		},
		LLM: LLMConfig{
			Provider:      strings.ToLower(v.GetString("analyzer_llm_provider")),
			BaseURL:       strings.TrimRight(v.GetString("openai_base_url"), "/"),
			BasicModel:    v.GetString("analyzer_basic_model"),
			AdvancedModel: v.GetString("analyzer_advanced_model"),
		},
	}

	keyName := "openai_api_key"
	switch cfg.LLM.Provider {
	case ProviderOpenAI:
	case ProviderGemini:
		keyName = "gemini_api_key"
		if cfg.LLM.BasicModel == "" {
			cfg.LLM.BasicModel = "gemini-2.0-flash-lite"
		}
		if cfg.LLM.AdvancedModel == "" {
			cfg.LLM.AdvancedModel = "gemini-2.5-pro"
		}
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLM.Provider)
	}
	if cfg.LLM.BasicModel == "" {
		cfg.LLM.BasicModel = "gpt-3.5-turbo"
	}
	if cfg.LLM.AdvancedModel == "" {
		cfg.LLM.AdvancedModel = "gpt-4o"
	}

	if key := v.GetString(keyName); key != "" {
		cfg.LLM.APIKey = key
		cfg.LLM.KeySource = KeySourceEnv
	} else {
		secretsFile := v.GetString("analyzer_secrets_file")
		key, err := readSecret(secretsFile, keyName)
		if err != nil {
			return nil, err
		}
		if key == "" {
			return nil, fmt.Errorf("%w: set %s in the .env file or in %s",
				ErrNoAPIKey, strings.ToUpper(keyName), secretsFile)
		}
		cfg.LLM.APIKey = key
		cfg.LLM.KeySource = KeySourceSecrets
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("analyzer_addr", ":8090")
	v.SetDefault("analyzer_default_ticker", "AAPL")
	v.SetDefault("gin_mode", "release")
	v.SetDefault("analyzer_http_timeout", "120s")
	v.SetDefault("analyzer_market_base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("analyzer_market_user_agent", "Mozilla/5.0 (compatible; financial-analyzer)")
	v.SetDefault("analyzer_llm_provider", ProviderOpenAI)
	v.SetDefault("openai_base_url", "https://api.openai.com/v1")
	v.SetDefault("analyzer_secrets_file", ".streamlit/secrets.toml")
}

// readSecret looks key up in a TOML secrets file. A file that does not
// exist yields "" without error.
func readSecret(path, key string) (string, error) {
	if path == "" {
		return "", nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("error reading secrets file %s: %w", path, err)
	}

	s := viper.New()
	s.SetConfigFile(path)
	s.SetConfigType("toml")
	if err := s.ReadInConfig(); err != nil {
		return "", fmt.Errorf("error reading secrets file %s: %w", path, err)
	}
	return s.GetString(key), nil
}

// MaskKey shows only the first and last 3 characters of a key.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "***"
	}
	return key[:3] + "..." + key[len(key)-3:]
}
