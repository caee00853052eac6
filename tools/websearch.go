package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/korulabs/koru/kernel/provider"
)

const defaultSearchLimit = 5

// SearchClient performs web searches. With a SerpAPI key it queries the
// Google engine through SerpAPI; otherwise it falls back to the DuckDuckGo
// Instant Answer API (limited coverage, no key needed).
type SearchClient struct {
	apiKey string
	http   *resty.Client
}

// SearchOption configures the client.
type SearchOption func(*SearchClient)

// WithSerpAPIKey sets the SerpAPI key explicitly. Defaults to the
// SERPAPI_API_KEY environment variable.
func WithSerpAPIKey(key string) SearchOption {
	return func(c *SearchClient) {
		c.apiKey = key
	}
}

// NewSearchClient creates a search client.
func NewSearchClient(opts ...SearchOption) *SearchClient {
	httpClient := resty.New()
	httpClient.SetTimeout(20 * time.Second)
	httpClient.SetHeader("User-Agent", "koru/0.1")

	c := &SearchClient{
		apiKey: os.Getenv("SERPAPI_API_KEY"),
		http:   httpClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type searchResult struct {
	Title   string
	Link    string
	Snippet string
}

// Search runs a query and returns a concise numbered list of results.
func (c *SearchClient) Search(ctx context.Context, query string, limit int) (string, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if c.apiKey != "" {
		return c.searchSerpAPI(ctx, query, limit)
	}
	return c.searchDuckDuckGo(ctx, query, limit)
}

func (c *SearchClient) searchSerpAPI(ctx context.Context, query string, limit int) (string, error) {
	num := limit
	if num > 10 {
		num = 10
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"engine":  "google",
			"q":       query,
			"num":     fmt.Sprintf("%d", num),
			"api_key": c.apiKey,
		}).
		Get("https://serpapi.com/search.json")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", &provider.APIError{Provider: "serpapi", Status: resp.StatusCode(), Body: resp.String()}
	}

	var payload struct {
		OrganicResults []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic_results"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return "", err
	}

	var items []searchResult
	for _, r := range payload.OrganicResults {
		items = append(items, searchResult{Title: r.Title, Link: r.Link, Snippet: r.Snippet})
	}
	return formatSearchResults(items, limit), nil
}

func (c *SearchClient) searchDuckDuckGo(ctx context.Context, query string, limit int) (string, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":           query,
			"format":      "json",
			"no_html":     "1",
			"no_redirect": "1",
		}).
		Get("https://api.duckduckgo.com/")
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != http.StatusOK {
		return "", &provider.APIError{Provider: "duckduckgo", Status: resp.StatusCode(), Body: resp.String()}
	}

	var payload struct {
		AbstractText  string          `json:"AbstractText"`
		Abstract      string          `json:"Abstract"`
		AbstractURL   string          `json:"AbstractURL"`
		RelatedTopics json.RawMessage `json:"RelatedTopics"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return "", err
	}

	var items []searchResult
	abstract := payload.AbstractText
	if abstract == "" {
		abstract = payload.Abstract
	}
	if abstract != "" {
		items = append(items, searchResult{Title: "Summary", Snippet: abstract, Link: payload.AbstractURL})
	}
	items = append(items, collectTopics(payload.RelatedTopics)...)

	return formatSearchResults(items, limit), nil
}

// collectTopics flattens DuckDuckGo's related topics, which nest one level
// under group headings.
func collectTopics(raw json.RawMessage) []searchResult {
	if len(raw) == 0 {
		return nil
	}

	var topics []struct {
		Text     string          `json:"Text"`
		FirstURL string          `json:"FirstURL"`
		Topics   json.RawMessage `json:"Topics"`
	}
	if err := json.Unmarshal(raw, &topics); err != nil {
		return nil
	}

	var items []searchResult
	for _, t := range topics {
		if len(t.Topics) > 0 {
			items = append(items, collectTopics(t.Topics)...)
			continue
		}
		if t.Text != "" || t.FirstURL != "" {
			items = append(items, searchResult{Title: t.Text, Link: t.FirstURL})
		}
	}
	return items
}

func formatSearchResults(items []searchResult, limit int) string {
	if len(items) > limit {
		items = items[:limit]
	}

	var lines []string
	for i, item := range items {
		title := item.Title
		if title == "" {
			title = "(no title)"
		}
		if item.Link != "" {
			lines = append(lines, fmt.Sprintf("%d. %s\n   %s\n   %s", i+1, title, item.Link, item.Snippet))
		} else {
			lines = append(lines, fmt.Sprintf("%d. %s\n   %s", i+1, title, item.Snippet))
		}
	}
	if len(lines) == 0 {
		return "No results."
	}
	return strings.Join(lines, "\n")
}
