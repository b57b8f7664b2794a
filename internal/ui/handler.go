// Package ui serves the single-page form that sends a topic to the research API.
package ui

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"newsresearch/internal/handler"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	msgEmptyTopic = "Please enter a topic before fetching news."
	msgFailed     = "Failed to fetch news. Try again!"
	msgSuccess    = "News fetched successfully!"
)

type NewsFetcher interface {
	FetchNews(ctx context.Context, topic string) (*handler.NewsResponse, error)
}

type Handler struct {
	api NewsFetcher
}

func NewHandler(api NewsFetcher) *Handler {
	return &Handler{api: api}
}

type page struct {
	Topic   string
	Warning string
	Error   string
	Success string
	Result  *handler.NewsResponse
}

// Register installs the page template and the form routes on r.
func (h *Handler) Register(r *gin.Engine) {
	r.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))
	r.GET("/", h.Index)
	r.POST("/", h.Submit)
}

func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", page{})
}

func (h *Handler) Submit(c *gin.Context) {
	topic := strings.TrimSpace(c.PostForm("topic"))
	if topic == "" {
		c.HTML(http.StatusOK, "index.html", page{Warning: msgEmptyTopic})
		return
	}

	res, err := h.api.FetchNews(c.Request.Context(), topic)
	if err != nil {
		slog.Error("error fetching news", "topic", topic, "error", err)
		c.HTML(http.StatusOK, "index.html", page{Topic: topic, Error: msgFailed})
		return
	}

	c.HTML(http.StatusOK, "index.html", page{Topic: topic, Success: msgSuccess, Result: res})
}
