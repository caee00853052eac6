package memory

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dgraph-io/ristretto"
	"github.com/sirupsen/logrus"
)

// ErrNoEmbedder is returned by operations that need an embedder when none
// is configured.
var ErrNoEmbedder = errors.New("memory: embeddings provider not configured")

// DimensionError reports an embedding whose length does not match the
// configured dimension. The offending record is never stored.
type DimensionError struct {
	Got  int
	Want int
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("memory: embedding dimension %d != expected %d", e.Got, e.Want)
}

// Record is a stored (vector, text, metadata) triple. Records are
// immutable once stored except for deletion by id.
type Record struct {
	ID       string
	Vector   []float32
	Metadata map[string]any
	Text     string
}

// Result is one retrieval hit, ranked by cosine similarity.
type Result struct {
	ID         string
	Similarity float64
	Metadata   map[string]any
	Text       string
}

// Store is the vector storage backend interface.
// Implementations: vectordb.Store (exact in-memory), chromem.Store
// (embedded chromem-go database).
type Store interface {
	// Add appends a record and returns its fresh id.
	Add(ctx context.Context, vector []float32, metadata map[string]any, text string) (string, error)

	// Search returns up to topK records ranked by descending cosine
	// similarity, ties broken by insertion order.
	Search(ctx context.Context, query []float32, topK int) ([]Result, error)

	// Get returns a record by id.
	Get(ctx context.Context, id string) (*Record, bool)

	// Delete removes a record, reporting whether it existed.
	Delete(ctx context.Context, id string) bool
}

// Embedder converts text to vector embeddings, one vector per input text,
// same order as input.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	Dimensions() int
}

// Memory is the high-level retrieval memory built on an Embedder and a
// Store. The embedder is optional: StoreVector works without one, StoreText
// and Retrieve require it.
type Memory struct {
	store    Store
	embedder Embedder
	dim      int
	cache    *ristretto.Cache
	logger   *logrus.Logger
}

// Option configures a Memory.
type Option func(*Memory)

// WithEmbedder sets the embeddings provider.
func WithEmbedder(e Embedder) Option {
	return func(m *Memory) {
		m.embedder = e
	}
}

// WithLogger sets a structured logger. Nil means no logging.
func WithLogger(l *logrus.Logger) Option {
	return func(m *Memory) {
		if l != nil {
			m.logger = l
		}
	}
}

// New creates a Memory over the given store expecting vectors of the given
// dimension. An embedding cache (text -> vector) fronts the embedder so
// repeated stores and queries of the same text skip the API round trip.
func New(store Store, dim int, opts ...Option) *Memory {
	m := &Memory{
		store:  store,
		dim:    dim,
		logger: discardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}

	// Cache failure just disables caching.
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     4 << 20,
		BufferItems: 64,
	})
	if err == nil {
		m.cache = cache
	}
	return m
}

// SetEmbedder installs or replaces the embeddings provider.
func (m *Memory) SetEmbedder(e Embedder) {
	m.embedder = e
}

// HasEmbedder reports whether an embeddings provider is configured.
func (m *Memory) HasEmbedder() bool {
	return m.embedder != nil
}

// Dimensions returns the expected vector dimension.
func (m *Memory) Dimensions() int {
	return m.dim
}

// StoreVector stores a pre-embedded memory. The text is saved as the
// record's document for later recall. Rejects vectors whose length does
// not match the configured dimension without mutating stored state.
func (m *Memory) StoreVector(ctx context.Context, text string, vector []float32, metadata map[string]any) (string, error) {
	if len(vector) != m.dim {
		return "", &DimensionError{Got: len(vector), Want: m.dim}
	}
	if metadata == nil {
		metadata = map[string]any{}
	}
	return m.store.Add(ctx, vector, metadata, text)
}

// StoreText embeds text via the configured embedder and stores it.
func (m *Memory) StoreText(ctx context.Context, text string, metadata map[string]any) (string, error) {
	vector, err := m.embed(ctx, text)
	if err != nil {
		return "", err
	}
	return m.StoreVector(ctx, text, vector, metadata)
}

// Retrieve embeds the query and returns the topK most similar records,
// most similar first.
func (m *Memory) Retrieve(ctx context.Context, query string, topK int) ([]Result, error) {
	vector, err := m.embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return m.store.Search(ctx, vector, topK)
}

// Delete removes a record by id, reporting whether it existed.
func (m *Memory) Delete(ctx context.Context, id string) bool {
	return m.store.Delete(ctx, id)
}

// Get returns a record by id.
func (m *Memory) Get(ctx context.Context, id string) (*Record, bool) {
	return m.store.Get(ctx, id)
}

func (m *Memory) embed(ctx context.Context, text string) ([]float32, error) {
	if m.embedder == nil {
		return nil, ErrNoEmbedder
	}

	if m.cache != nil {
		if cached, ok := m.cache.Get(text); ok {
			if vector, ok := cached.([]float32); ok {
				return vector, nil
			}
		}
	}

	vectors, err := m.embedder.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("memory: embedder returned %d vectors for 1 text", len(vectors))
	}

	if m.cache != nil {
		m.cache.Set(text, vectors[0], int64(4*len(vectors[0])))
	}
	return vectors[0], nil
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}
