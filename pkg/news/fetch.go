package news

import (
	"context"
	"fmt"
)

// NoNewsFound stands in for an article when the provider has nothing for a topic.
// Downstream stages consume its content as ordinary article text.
var NoNewsFound = Article{
	Title:   "No news found",
	Content: "Try another topic.",
	URL:     "",
}

type Fetcher struct {
	searcher Searcher
}

func NewFetcher(searcher Searcher) *Fetcher {
	return &Fetcher{searcher: searcher}
}

// Fetch returns the most recent article for topic, or NoNewsFound when there is none.
func (f *Fetcher) Fetch(ctx context.Context, topic string) (Article, error) {
	articles, err := f.searcher.Search(ctx, topic)
	if err != nil {
		return Article{}, fmt.Errorf("search %s: %w", f.searcher.Name(), err)
	}

	if len(articles) == 0 {
		return NoNewsFound, nil
	}

	return articles[0], nil
}
