// Package openai implements provider.Provider against any endpoint that
// speaks the OpenAI Chat Completions protocol.
package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/korulabs/koru/core"
	"github.com/korulabs/koru/kernel/provider"
)

const defaultBaseURL = "https://api.openai.com"

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	model   string
	apiKey  string
	baseURL string
	http    *resty.Client
}

// Option configures the client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (default https://api.openai.com,
// or the OPENAI_BASE_URL environment variable when set).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// New creates a client for the given model. The API key falls back to the
// OPENAI_API_KEY environment variable when empty.
func New(model, apiKey string, opts ...Option) *Client {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	baseURL := defaultBaseURL
	if env := os.Getenv("OPENAI_BASE_URL"); env != "" {
		baseURL = env
	}

	httpClient := resty.New()
	httpClient.SetTimeout(60 * time.Second)
	httpClient.SetRetryCount(3)
	httpClient.SetRetryWaitTime(1 * time.Second)
	httpClient.SetRetryMaxWaitTime(5 * time.Second)

	c := &Client{
		model:   model,
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    httpClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ provider.Provider = (*Client)(nil)

// Generate sends the messages to /v1/chat/completions and returns the
// first choice's content.
func (c *Client) Generate(ctx context.Context, messages []core.ChatMessage, opts core.GenerateOptions) (*core.GenerateResult, error) {
	request := map[string]any{
		"model":       c.model,
		"messages":    messages,
		"temperature": opts.Temperature,
	}
	if opts.MaxTokens > 0 {
		request["max_tokens"] = opts.MaxTokens
	}
	for k, v := range opts.Extra {
		request[k] = v
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+c.apiKey).
		SetBody(request).
		Post(c.baseURL + "/v1/chat/completions")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &provider.APIError{Provider: "openai", Status: resp.StatusCode(), Body: resp.String()}
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}

	var text string
	if len(result.Choices) > 0 {
		text = result.Choices[0].Message.Content
	}

	var raw map[string]any
	_ = json.Unmarshal(resp.Body(), &raw)

	return &core.GenerateResult{Text: text, Raw: raw}, nil
}
