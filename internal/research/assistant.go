// Package research wires the news fetcher and the language model into the
// five-stage research graph.
package research

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"newsresearch/internal/graph"
	"newsresearch/internal/model"
	"newsresearch/pkg/llm"
	"newsresearch/pkg/news"
)

const (
	StageResearch  = "research"
	StageSummarize = "summarize_article"
	StageSentiment = "analyze_sentiment"
	StageFactCheck = "fact_checker"
	StageReport    = "generate_report"
)

// ArticleFetcher returns one article for a topic. news.Fetcher implements it.
type ArticleFetcher interface {
	Fetch(ctx context.Context, topic string) (news.Article, error)
}

type Options struct {
	// Concurrency caps the middle stages running at once; <= 0 means no cap.
	Concurrency  int
	StageTimeout time.Duration
	Logger       *slog.Logger
}

type Assistant struct {
	graph     *graph.Graph
	fetcher   ArticleFetcher
	completer llm.Completer
	opts      Options
}

func NewAssistant(fetcher ArticleFetcher, completer llm.Completer, opts Options) (*Assistant, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("nil article fetcher")
	}
	if completer == nil {
		return nil, fmt.Errorf("nil completer")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	a := &Assistant{fetcher: fetcher, completer: completer, opts: opts}

	g, err := a.build()
	if err != nil {
		return nil, fmt.Errorf("build research graph: %w", err)
	}
	a.graph = g
	return a, nil
}

func (a *Assistant) Graph() *graph.Graph {
	return a.graph
}

// Invoke runs the whole graph for topic and returns the final state.
func (a *Assistant) Invoke(ctx context.Context, topic string) (*model.ResearchState, error) {
	state, err := model.NewResearchState(topic)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := a.graph.Run(ctx, state,
		graph.WithConcurrency(a.opts.Concurrency),
		graph.WithStageTimeout(a.opts.StageTimeout),
		graph.WithObserver(graph.NewLogObserver(a.opts.Logger, "topic", topic)),
	)
	if err != nil {
		return nil, err
	}

	a.opts.Logger.Info("research complete", "topic", topic, "stages", res.Order, "duration", time.Since(start), "model", a.completer.Model())
	return res.State, nil
}

func (a *Assistant) build() (*graph.Graph, error) {
	article := model.NewFields(model.FieldArticle)

	return graph.NewBuilder(model.FieldTopic).
		AddStage(graph.Stage{
			Name:     StageResearch,
			Needs:    model.NewFields(model.FieldTopic),
			Produces: model.NewFields(model.FieldArticle, model.FieldArticleTitle, model.FieldArticleURL),
			Run:      a.research,
		}).
		AddStage(a.promptStage(StageSummarize, article, model.FieldSummary, func(s *model.ResearchState) string {
			return summarizePrompt(s.Article)
		})).
		AddStage(a.promptStage(StageSentiment, article, model.FieldSentiment, func(s *model.ResearchState) string {
			return sentimentPrompt(s.Article)
		})).
		AddStage(a.promptStage(StageFactCheck, article, model.FieldFactCheck, func(s *model.ResearchState) string {
			return factCheckPrompt(s.Article)
		})).
		AddStage(a.promptStage(StageReport,
			model.NewFields(model.FieldTopic, model.FieldSummary, model.FieldSentiment, model.FieldFactCheck),
			model.FieldFinalReport,
			func(s *model.ResearchState) string {
				return reportPrompt(s.Topic, s.Summary, s.Sentiment, s.FactCheck)
			})).
		AddEdge(graph.Start, StageResearch).
		AddEdge(StageResearch, StageSummarize).
		AddEdge(StageResearch, StageSentiment).
		AddEdge(StageResearch, StageFactCheck).
		AddEdge(StageSummarize, StageReport).
		AddEdge(StageSentiment, StageReport).
		AddEdge(StageFactCheck, StageReport).
		AddEdge(StageReport, graph.End).
		Compile()
}

func (a *Assistant) research(ctx context.Context, s *model.ResearchState) (model.Update, error) {
	article, err := a.fetcher.Fetch(ctx, s.Topic)
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}

	return model.Update{
		model.FieldArticle:      article.Content,
		model.FieldArticleTitle: article.Title,
		model.FieldArticleURL:   article.URL,
	}, nil
}

// promptStage builds a stage that sends one prompt and stores the reply verbatim.
func (a *Assistant) promptStage(name string, needs model.Fields, out model.Field, prompt func(*model.ResearchState) string) graph.Stage {
	return graph.Stage{
		Name:     name,
		Needs:    needs,
		Produces: model.NewFields(out),
		Run: func(ctx context.Context, s *model.ResearchState) (model.Update, error) {
			content, err := a.completer.Complete(ctx, prompt(s))
			if err != nil {
				return nil, fmt.Errorf("complete %s: %w", out, err)
			}
			return model.Update{out: content}, nil
		},
	}
}
