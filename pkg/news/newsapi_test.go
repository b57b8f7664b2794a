package news

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

func TestNewsAPISearch(t *testing.T) {
	payload := map[string]interface{}{
		"status":       "ok",
		"totalResults": 2,
		"articles": []map[string]interface{}{
			{
				"source":      map[string]interface{}{"id": nil, "name": "Space News"},
				"title":       "Starship completes orbital test",
				"description": "A short description.",
				"url":         "https://example.com/starship",
				"publishedAt": "2026-02-26T11:02:00Z",
				"content":     "SpaceX flew Starship again on Thursday.",
			},
			{
				"source":      map[string]interface{}{"id": "reuters", "name": "Reuters"},
				"title":       "Older story",
				"url":         "https://example.com/older",
				"publishedAt": "2026-02-25T09:00:00Z",
				"content":     "Older content.",
			},
		},
	}

	var gotPath string
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(payload)
	}))
	defer srv.Close()

	client := NewNewsAPIClient("test-key")
	client.httpClient.Transport = &rewriteTransport{base: srv.URL, inner: http.DefaultTransport}

	articles, err := client.Search(context.Background(), "SpaceX launch")

	assert.Equal(t, nil, err)
	assert.Equal(t, "/v2/everything", gotPath)
	assert.Equal(t, []string{"SpaceX launch"}, gotQuery["q"])
	assert.Equal(t, []string{"publishedAt"}, gotQuery["sortBy"])
	assert.Equal(t, []string{"test-key"}, gotQuery["apiKey"])
	assert.Equal(t, 2, len(articles))

	a := articles[0]
	assert.Equal(t, "Starship completes orbital test", a.Title)
	assert.Equal(t, "SpaceX flew Starship again on Thursday.", a.Content)
	assert.Equal(t, "https://example.com/starship", a.URL)
	assert.Equal(t, "Space News", a.Publisher)
	assert.Equal(t, "NewsAPI", a.Source)
	assert.Equal(t, 2026, a.PublishedAt.Year())
	assert.Equal(t, time.February, a.PublishedAt.Month())
}

func TestNewsAPISearchNullContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok","totalResults":1,"articles":[{"source":{"name":"X"},"title":"T","url":"U","publishedAt":"bad","content":null}]}`))
	}))
	defer srv.Close()

	client := NewNewsAPIClient("k").WithBaseURL(srv.URL)
	articles, err := client.Search(context.Background(), "anything")

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(articles))
	assert.Equal(t, "", articles[0].Content)
	assert.Equal(t, time.Time{}, articles[0].PublishedAt)
}

func TestNewsAPISearchProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status":"error","code":"apiKeyMissing","message":"Your API key is missing."}`))
	}))
	defer srv.Close()

	client := NewNewsAPIClient("").WithBaseURL(srv.URL)
	articles, err := client.Search(context.Background(), "SpaceX")

	assert.Equal(t, 0, len(articles))

	var apiErr *APIError
	assert.Equal(t, true, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "apiKeyMissing", apiErr.Code)
	assert.Equal(t, "Your API key is missing.", apiErr.Message)
}

func TestNewsAPISearchNonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewNewsAPIClient("k").WithBaseURL(srv.URL)
	_, err := client.Search(context.Background(), "SpaceX")

	var apiErr *APIError
	assert.Equal(t, true, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "bad gateway", apiErr.Message)
}

func TestNewsAPISearchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"articles": [`))
	}))
	defer srv.Close()

	client := NewNewsAPIClient("k").WithBaseURL(srv.URL)
	_, err := client.Search(context.Background(), "SpaceX")

	assert.NotEqual(t, nil, err)

	var apiErr *APIError
	assert.Equal(t, false, errors.As(err, &apiErr))
}

// rewriteTransport redirects all requests to a fixed base URL (test server).
type rewriteTransport struct {
	base  string
	inner http.RoundTripper
}

func (rt *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req2 := req.Clone(req.Context())
	parsed, _ := http.NewRequest("GET", rt.base, nil)
	req2.URL.Host = parsed.URL.Host
	req2.URL.Scheme = parsed.URL.Scheme
	return rt.inner.RoundTrip(req2)
}
