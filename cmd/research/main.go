package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"newsresearch/internal/config"
	"newsresearch/internal/graph"
	"newsresearch/internal/model"
	"newsresearch/internal/research"
	"newsresearch/pkg/llm"
	"newsresearch/pkg/news"
)

func main() {
	topic := flag.String("topic", "SpaceX", "topic to research")
	showGraph := flag.Bool("graph", true, "print the graph nodes and edges before running")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
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

	if *showGraph {
		printGraph(assistant.Graph())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	state, err := assistant.Invoke(ctx, *topic)
	if err != nil {
		log.Fatalf("error running research: %v", err)
	}

	fmt.Println("Research Output:", valueOr(state, model.FieldArticle, "No article found"))
	fmt.Println("Summary Output:", valueOr(state, model.FieldSummary, "No summary generated"))
	fmt.Println("Sentiment Analysis:", valueOr(state, model.FieldSentiment, "No sentiment detected"))
	fmt.Println("Fact-Check:", valueOr(state, model.FieldFactCheck, "No fact-check performed"))
	fmt.Println("Final Report:", valueOr(state, model.FieldFinalReport, "No report generated"))
}

func printGraph(g *graph.Graph) {
	fmt.Println("Nodes in the Graph:")
	for _, n := range g.Nodes() {
		fmt.Printf("  %s\n", n)
	}

	fmt.Println("Edges in the Graph:")
	for _, e := range g.Edges() {
		fmt.Printf("  %s -> %s\n", e.From, e.To)
	}
	fmt.Println()
}

func valueOr(s *model.ResearchState, f model.Field, placeholder string) string {
	if v, ok := s.Get(f); ok {
		return v
	}
	return placeholder
}
