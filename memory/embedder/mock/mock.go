// Package mock provides a deterministic embedder for tests.
package mock

import (
	"context"
	"hash/fnv"
	"math"
)

// Embedder generates deterministic embeddings from a text hash. Identical
// texts always embed identically, which is enough to test storage and
// ranking without model files or network access.
type Embedder struct {
	dims int
}

// New creates a mock embedder with 384 dimensions (matching
// all-MiniLM-L6-v2, the usual small local model).
func New() *Embedder {
	return &Embedder{dims: 384}
}

// NewWithDimensions creates a mock embedder with the given dimension.
func NewWithDimensions(dims int) *Embedder {
	return &Embedder{dims: dims}
}

// Embed returns one unit vector per text, derived from an FNV hash fed
// through a linear congruential generator.
func (m *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = m.embedOne(text)
	}
	return out, nil
}

// Dimensions returns the embedding size.
func (m *Embedder) Dimensions() int {
	return m.dims
}

func (m *Embedder) embedOne(text string) []float32 {
	h := fnv.New64a()
	h.Write([]byte(text))
	seed := h.Sum64()

	embedding := make([]float32, m.dims)
	for i := 0; i < m.dims; i++ {
		seed = seed*6364136223846793005 + 1442695040888963407
		embedding[i] = float32(int64(seed)) / float32(math.MaxInt64)
	}
	return normalize(embedding)
}

func normalize(vec []float32) []float32 {
	var norm float32
	for _, v := range vec {
		norm += v * v
	}
	if norm == 0 {
		return vec
	}

	norm = float32(math.Sqrt(float64(norm)))
	normalized := make([]float32, len(vec))
	for i, v := range vec {
		normalized[i] = v / norm
	}
	return normalized
}
