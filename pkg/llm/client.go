package llm

import (
	"context"
	"fmt"
)

const (
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"

	DefaultTemperature = 0.7
)

var defaultModels = map[string]string{
	ProviderOllama:    "llama3",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-haiku-4-5",
}

// Completer turns a natural-language prompt into the model's raw text reply.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Model() string
}

type Config struct {
	Provider    string
	Model       string
	BaseURL     string
	APIKey      string
	Temperature float64
}

// New builds the Completer selected by cfg.Provider. An empty provider means Ollama.
func New(cfg Config) (Completer, error) {
	if cfg.Provider == "" {
		cfg.Provider = ProviderOllama
	}
	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Provider]
	}

	switch cfg.Provider {
	case ProviderOllama:
		c, err := NewOllamaClient(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderOpenAI:
		return NewOpenAIClient(cfg), nil
	case ProviderAnthropic:
		return NewAnthropicClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}
}
