// Package openai implements memory.Embedder against the OpenAI
// embeddings API (or any compatible endpoint).
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/korulabs/koru/kernel/provider"
)

const (
	defaultBaseURL = "https://api.openai.com"
	defaultModel   = "text-embedding-3-small"
	defaultDims    = 1536
)

// Embedder calls /v1/embeddings. Defaults to text-embedding-3-small.
type Embedder struct {
	model   string
	apiKey  string
	baseURL string
	dims    int
	http    *resty.Client
}

// Option configures the embedder.
type Option func(*Embedder)

// WithModel selects an embedding model and its output dimension.
func WithModel(model string, dims int) Option {
	return func(e *Embedder) {
		e.model = model
		e.dims = dims
	}
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(url string) Option {
	return func(e *Embedder) {
		e.baseURL = url
	}
}

// New creates an embedder. The API key falls back to the OPENAI_API_KEY
// environment variable when empty.
func New(apiKey string, opts ...Option) *Embedder {
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

	e := &Embedder{
		model:   defaultModel,
		apiKey:  apiKey,
		baseURL: baseURL,
		dims:    defaultDims,
		http:    httpClient,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Embed returns one vector per input text, same order as input.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+e.apiKey).
		SetBody(map[string]any{
			"model": e.model,
			"input": texts,
		}).
		Post(e.baseURL + "/v1/embeddings")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &provider.APIError{Provider: "openai-embeddings", Status: resp.StatusCode(), Body: resp.String()}
	}

	var result struct {
		Data []struct {
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, err
	}
	if len(result.Data) != len(texts) {
		return nil, fmt.Errorf("openai-embeddings: got %d vectors for %d texts", len(result.Data), len(texts))
	}

	// The API echoes each input's position; place by index rather than
	// trusting response order.
	out := make([][]float32, len(texts))
	for _, item := range result.Data {
		if item.Index < 0 || item.Index >= len(out) {
			return nil, fmt.Errorf("openai-embeddings: index %d out of range", item.Index)
		}
		out[item.Index] = item.Embedding
	}
	return out, nil
}

// Dimensions returns the embedding size.
func (e *Embedder) Dimensions() int {
	return e.dims
}
