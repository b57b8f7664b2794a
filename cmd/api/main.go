package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"newsresearch/internal/config"
	"newsresearch/internal/handler"
	"newsresearch/internal/research"
	"newsresearch/pkg/llm"
	"newsresearch/pkg/news"
)

func main() {

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	if cfg.NewsAPIKey == "" {
		slog.Warn("NEWSAPI_KEY is not set, news requests will fail")
	}

	completer, err := llm.New(cfg.LLM)
	if err != nil {
		log.Fatalf("error creating llm client: %v", err)
	}

	fetcher := news.NewFetcher(news.NewNewsAPIClient(cfg.NewsAPIKey).WithBaseURL(cfg.NewsAPIURL))

	assistant, err := research.NewAssistant(fetcher, completer, research.Options{
		Concurrency:  cfg.GraphConcurrency,
		StageTimeout: cfg.StageTimeout,
	})
	if err != nil {
		log.Fatalf("error building research assistant: %v", err)
	}

	researchHandler := handler.NewResearchHandler(assistant, assistant.Graph())

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:8501"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/fetch_news", researchHandler.FetchNews)
	r.POST("/research", researchHandler.Research)
	r.GET("/graph", researchHandler.GetGraph)
	r.GET("/health", researchHandler.GetHealth)

	slog.Info("starting research api", "addr", cfg.APIAddr, "llm_provider", cfg.LLM.Provider, "model", completer.Model())

	err = r.Run(cfg.APIAddr)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
