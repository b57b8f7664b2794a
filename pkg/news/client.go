package news

import (
	"context"
	"time"
)

type Article struct {
	Title       string
	Content     string
	URL         string
	Source      string
	Publisher   string
	PublishedAt time.Time
}

// Searcher looks up articles for a free-text topic, most recent first.
type Searcher interface {
	Search(ctx context.Context, topic string) ([]Article, error)
	Name() string
}
