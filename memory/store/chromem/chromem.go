// Package chromem adapts chromem-go, an embedded pure-Go vector database,
// to the memory.Store interface.
package chromem

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	chromem "github.com/philippgille/chromem-go"
	"github.com/sirupsen/logrus"

	"github.com/korulabs/koru/memory"
)

// Store implements memory.Store on a single chromem-go collection.
//
// Limitations of the underlying API: Get and Delete by id are not
// supported; Get reports not-found and Delete reports false. Use the
// vectordb store when deletion matters.
type Store struct {
	col    *chromem.Collection
	logger *logrus.Logger

	mu  sync.Mutex
	seq int
}

// Option configures the store.
type Option func(*Store)

// WithLogger sets a structured logger.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a store backed by a fresh in-memory chromem database.
func New(opts ...Option) (*Store, error) {
	db := chromem.NewDB()

	// Embeddings are always provided by the caller, so no embedding func.
	col, err := db.CreateCollection("memories", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	s := &Store{col: col, logger: logrus.New()}
	s.logger.SetLevel(logrus.PanicLevel)
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

var _ memory.Store = (*Store)(nil)

// Add stores a document with the given embedding. Metadata values are
// stringified (JSON for non-strings) since chromem metadata is string-only.
func (s *Store) Add(ctx context.Context, vector []float32, metadata map[string]any, text string) (string, error) {
	s.mu.Lock()
	s.seq++
	id := fmt.Sprintf("vec_%d", s.seq)
	s.mu.Unlock()

	doc := chromem.Document{
		ID:        id,
		Content:   text,
		Embedding: vector,
		Metadata:  flattenMetadata(metadata),
	}
	if err := s.col.AddDocument(ctx, doc); err != nil {
		return "", fmt.Errorf("add document: %w", err)
	}
	return id, nil
}

// Search queries the collection by embedding. chromem rejects nResults
// larger than the collection, so the requested topK is clamped first.
func (s *Store) Search(ctx context.Context, query []float32, topK int) ([]memory.Result, error) {
	count := s.col.Count()
	if count == 0 || topK <= 0 {
		return nil, nil
	}
	if topK > count {
		topK = count
	}

	raw, err := s.col.QueryEmbedding(ctx, query, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("chromem query: %w", err)
	}

	results := make([]memory.Result, 0, len(raw))
	for _, r := range raw {
		results = append(results, memory.Result{
			ID:         r.ID,
			Similarity: float64(r.Similarity),
			Metadata:   expandMetadata(r.Metadata),
			Text:       r.Content,
		})
	}
	return results, nil
}

// Get is not supported by the chromem backend.
func (s *Store) Get(ctx context.Context, id string) (*memory.Record, bool) {
	s.logger.WithField("id", id).Debug("chromem: get by id not supported")
	return nil, false
}

// Delete is not supported by the chromem backend.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.logger.WithField("id", id).Debug("chromem: delete by id not supported")
	return false
}

func flattenMetadata(metadata map[string]any) map[string]string {
	if len(metadata) == 0 {
		return nil
	}
	out := make(map[string]string, len(metadata))
	for k, v := range metadata {
		if str, ok := v.(string); ok {
			out[k] = str
			continue
		}
		if encoded, err := json.Marshal(v); err == nil {
			out[k] = string(encoded)
		}
	}
	return out
}

func expandMetadata(metadata map[string]string) map[string]any {
	out := make(map[string]any, len(metadata))
	for k, v := range metadata {
		out[k] = v
	}
	return out
}
