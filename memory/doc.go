// Package memory provides embedding-backed retrieval memory for agents.
//
// Text is embedded through a pluggable Embedder and stored as
// (vector, text, metadata) records in a Store. Retrieval is exact cosine
// similarity over every stored vector: the target corpus is small
// in-process agent memory, so correctness and simplicity win over
// asymptotic search cost. Approximate indexing is explicitly out of scope.
//
// Components:
//   - Store: vector storage backend (vectordb for exact in-memory search,
//     chromem for the embedded chromem-go database)
//   - Embedder: text-to-vector conversion (OpenAI API, or mock for tests)
//   - Memory: orchestrates embedding, storage and retrieval, with a
//     best-effort ristretto cache in front of the embedder
package memory
