package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"newsresearch/pkg/llm"
)

const (
	newsAPIKeyEnv       = "NEWSAPI_KEY"
	newsAPIURLEnv       = "NEWSAPI_URL"
	llmProviderEnv      = "LLM_PROVIDER"
	llmModelEnv         = "LLM_MODEL"
	llmTemperatureEnv   = "LLM_TEMPERATURE"
	ollamaURLEnv        = "OLLAMA_URL"
	openAIKeyEnv        = "OPENAI_API_KEY"
	openAIURLEnv        = "OPENAI_BASE_URL"
	anthropicKeyEnv     = "ANTHROPIC_API_KEY"
	anthropicURLEnv     = "ANTHROPIC_BASE_URL"
	apiAddrEnv          = "API_ADDR"
	uiAddrEnv           = "UI_ADDR"
	apiURLEnv           = "API_URL"
	frontendURLEnv      = "FRONTEND_URL"
	stageTimeoutEnv     = "STAGE_TIMEOUT"
	graphConcurrencyEnv = "GRAPH_CONCURRENCY"

	defaultAPIAddr          = ":8000"
	defaultUIAddr           = ":8501"
	defaultAPIURL           = "http://localhost:8000/fetch_news"
	defaultStageTimeout     = 2 * time.Minute
	defaultGraphConcurrency = 3
)

type Config struct {
	NewsAPIKey string
	NewsAPIURL string

	LLM llm.Config

	APIAddr     string
	UIAddr      string
	APIURL      string
	FrontendURL string

	StageTimeout     time.Duration
	GraphConcurrency int
}

// Load reads .env (if present) and then the process environment.
func Load() (Config, error) {
	godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		NewsAPIKey:       getenv(newsAPIKeyEnv),
		NewsAPIURL:       getenv(newsAPIURLEnv),
		APIAddr:          withDefault(getenv(apiAddrEnv), defaultAPIAddr),
		UIAddr:           withDefault(getenv(uiAddrEnv), defaultUIAddr),
		APIURL:           withDefault(getenv(apiURLEnv), defaultAPIURL),
		FrontendURL:      getenv(frontendURLEnv),
		StageTimeout:     defaultStageTimeout,
		GraphConcurrency: defaultGraphConcurrency,
		LLM: llm.Config{
			Provider:    withDefault(getenv(llmProviderEnv), llm.ProviderOllama),
			Model:       getenv(llmModelEnv),
			Temperature: llm.DefaultTemperature,
		},
	}

	switch cfg.LLM.Provider {
	case llm.ProviderOllama:
		cfg.LLM.BaseURL = getenv(ollamaURLEnv)
	case llm.ProviderOpenAI:
		cfg.LLM.APIKey = getenv(openAIKeyEnv)
		cfg.LLM.BaseURL = getenv(openAIURLEnv)
	case llm.ProviderAnthropic:
		cfg.LLM.APIKey = getenv(anthropicKeyEnv)
		cfg.LLM.BaseURL = getenv(anthropicURLEnv)
	default:
		return Config{}, fmt.Errorf("%s: unsupported provider %q", llmProviderEnv, cfg.LLM.Provider)
	}

	if v := getenv(llmTemperatureEnv); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", llmTemperatureEnv, err)
		}
		cfg.LLM.Temperature = t
	}

	if v := getenv(stageTimeoutEnv); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", stageTimeoutEnv, err)
		}
		cfg.StageTimeout = d
	}

	if v := getenv(graphConcurrencyEnv); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", graphConcurrencyEnv, err)
		}
		cfg.GraphConcurrency = n
	}

	return cfg, nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
