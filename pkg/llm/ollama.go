package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaClient talks to a local Ollama server.
type OllamaClient struct {
	llm         *ollama.LLM
	modelName   string
	temperature float64
}

func NewOllamaClient(cfg Config) (*OllamaClient, error) {
	opts := []ollama.Option{
		ollama.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
	}

	model, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create ollama client: %w", err)
	}

	return &OllamaClient{
		llm:         model,
		modelName:   cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

func (c *OllamaClient) Model() string {
	return c.modelName
}

func (c *OllamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	content, err := llms.GenerateFromSinglePrompt(ctx, c.llm, prompt, llms.WithTemperature(c.temperature))
	if err != nil {
		return "", fmt.Errorf("ollama API error: %w", err)
	}
	return content, nil
}
