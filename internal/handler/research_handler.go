package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"newsresearch/internal/graph"
	"newsresearch/internal/model"
)

type Researcher interface {
	Invoke(ctx context.Context, topic string) (*model.ResearchState, error)
}

type GraphDescriber interface {
	Nodes() []string
	Edges() []graph.Edge
}

type ResearchHandler struct {
	researcher Researcher
	graph      GraphDescriber
}

func NewResearchHandler(researcher Researcher, describer GraphDescriber) *ResearchHandler {
	return &ResearchHandler{researcher: researcher, graph: describer}
}

// FetchNews runs the research graph and returns the topic, article and summary.
func (h *ResearchHandler) FetchNews(c *gin.Context) {
	var req NewsRequest
	state, ok := h.invoke(c, &req)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, toNewsResponse(req.Topic, state))
}

// Research returns every field of the final state.
func (h *ResearchHandler) Research(c *gin.Context) {
	var req NewsRequest
	state, ok := h.invoke(c, &req)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, toResearchResponse(req.Topic, state))
}

func (h *ResearchHandler) GetGraph(c *gin.Context) {
	edges := h.graph.Edges()
	res := GraphResponse{
		Nodes: h.graph.Nodes(),
		Edges: make([]EdgeResponse, 0, len(edges)),
	}
	for _, e := range edges {
		res.Edges = append(res.Edges, EdgeResponse{From: e.From, To: e.To})
	}

	c.JSON(http.StatusOK, res)
}

func (h *ResearchHandler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *ResearchHandler) invoke(c *gin.Context, req *NewsRequest) (*model.ResearchState, bool) {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return nil, false
	}

	state, err := h.researcher.Invoke(c.Request.Context(), req.Topic)
	if errors.Is(err, model.ErrEmptyTopic) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Topic must not be empty"})
		return nil, false
	}
	if err != nil {
		slog.Error("error running research", "topic", req.Topic, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Research failed"})
		return nil, false
	}

	return state, true
}

func toNewsResponse(topic string, s *model.ResearchState) NewsResponse {
	return NewsResponse{
		Topic:   topic,
		Article: valueOr(s, model.FieldArticle, NoArticle),
		Summary: valueOr(s, model.FieldSummary, NoSummary),
	}
}

func toResearchResponse(topic string, s *model.ResearchState) ResearchResponse {
	return ResearchResponse{
		Topic:        topic,
		Article:      valueOr(s, model.FieldArticle, NoArticle),
		ArticleTitle: valueOr(s, model.FieldArticleTitle, ""),
		ArticleURL:   valueOr(s, model.FieldArticleURL, ""),
		Summary:      valueOr(s, model.FieldSummary, NoSummary),
		Sentiment:    valueOr(s, model.FieldSentiment, NoSentiment),
		FactCheck:    valueOr(s, model.FieldFactCheck, NoFactCheck),
		FinalReport:  valueOr(s, model.FieldFinalReport, NoReport),
	}
}

func valueOr(s *model.ResearchState, f model.Field, placeholder string) string {
	if s == nil {
		return placeholder
	}
	if v, ok := s.Get(f); ok {
		return v
	}
	return placeholder
}
