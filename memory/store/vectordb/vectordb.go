// Package vectordb is an exact, in-memory vector store. Every search
// scans all records with cosine similarity; no approximate index.
package vectordb

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/korulabs/koru/memory"
)

// Store holds records in insertion order and assigns sequential ids.
type Store struct {
	mu      sync.RWMutex
	dim     int
	seq     int
	records []memory.Record
}

// New creates a store expecting vectors of the given dimension.
func New(dim int) *Store {
	return &Store{dim: dim}
}

var _ memory.Store = (*Store)(nil)

// Add appends a record. Ids are monotonically assigned ("vec_1", "vec_2",
// ...) and never reused after deletion.
func (s *Store) Add(ctx context.Context, vector []float32, metadata map[string]any, text string) (string, error) {
	if len(vector) != s.dim {
		return "", &memory.DimensionError{Got: len(vector), Want: s.dim}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := fmt.Sprintf("vec_%d", s.seq)

	stored := make([]float32, len(vector))
	copy(stored, vector)

	s.records = append(s.records, memory.Record{
		ID:       id,
		Vector:   stored,
		Metadata: metadata,
		Text:     text,
	})
	return id, nil
}

// Search ranks every record by cosine similarity to the query, descending,
// with ties preserving insertion order, and returns the first topK.
func (s *Store) Search(ctx context.Context, query []float32, topK int) ([]memory.Result, error) {
	if len(query) != s.dim {
		return nil, &memory.DimensionError{Got: len(query), Want: s.dim}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]memory.Result, 0, len(s.records))
	for _, rec := range s.records {
		results = append(results, memory.Result{
			ID:         rec.ID,
			Similarity: cosine(query, rec.Vector),
			Metadata:   rec.Metadata,
			Text:       rec.Text,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if topK < 0 {
		topK = 0
	}
	if topK < len(results) {
		results = results[:topK]
	}
	return results, nil
}

// Get returns a record by id.
func (s *Store) Get(ctx context.Context, id string) (*memory.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.records {
		if s.records[i].ID == id {
			rec := s.records[i]
			return &rec, true
		}
	}
	return nil, false
}

// Delete removes a record by id, reporting whether it existed.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// cosine is the normalized dot product of a and b. Records with a
// zero-norm vector rank as similarity 0 rather than NaN.
func cosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
