package retriever

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"rag-chat-be/pkg/embedding"
	"rag-chat-be/pkg/store"
)

type memoryEntry struct {
	chunk  store.DocumentChunk
	vector []float32
}

// MemoryRetriever holds embeddings in process memory, keyed by user. It backs
// cold starts and deployments without a vector database; everything in it is
// rebuilt from scratch on restart.
type MemoryRetriever struct {
	embeddingProvider embedding.EmbeddingProvider

	mu      sync.RWMutex
	entries map[string][]memoryEntry
}

func NewMemoryRetriever(embeddingProvider embedding.EmbeddingProvider) *MemoryRetriever {
	return &MemoryRetriever{
		embeddingProvider: embeddingProvider,
		entries:           make(map[string][]memoryEntry),
	}
}

// Index embeds each chunk and appends it to the user's in-memory corpus.
func (r *MemoryRetriever) Index(ctx context.Context, scope Scope, chunks []store.DocumentChunk) error {
	batch := make([]memoryEntry, 0, len(chunks))
	for _, chunk := range chunks {
		res, err := r.embeddingProvider.Generate(chunk.Text, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return fmt.Errorf("embedding generation failed for %s#%d: %w", chunk.Name, chunk.Ordinal, err)
		}
		batch = append(batch, memoryEntry{
			chunk:  chunk,
			vector: embedding.NormalizeVector(res.Embedding.Values),
		})
	}

	r.mu.Lock()
	r.entries[scope.UserID] = append(r.entries[scope.UserID], batch...)
	r.mu.Unlock()
	return nil
}

// Search embeds the query and ranks the user's chunks by cosine similarity.
// Ties break on insertion order so repeated queries return a stable top-k.
func (r *MemoryRetriever) Search(ctx context.Context, scope Scope, query string, topK int) ([]store.DocumentChunk, error) {
	res, err := r.embeddingProvider.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embedding generation failed: %w", err)
	}
	queryVec := embedding.NormalizeVector(res.Embedding.Values)

	r.mu.RLock()
	entries := r.entries[scope.UserID]
	scored := make([]store.DocumentChunk, 0, len(entries))
	for _, e := range entries {
		chunk := e.chunk
		chunk.Score = cosineSimilarity(queryVec, e.vector)
		scored = append(scored, chunk)
	}
	r.mu.RUnlock()

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	if topK < len(scored) {
		scored = scored[:topK]
	}
	return scored, nil
}

// Ready reports whether the user has any indexed chunks.
func (r *MemoryRetriever) Ready(ctx context.Context, scope Scope) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries[scope.UserID]) > 0
}

// Volatile is true: the index lives and dies with the process.
func (r *MemoryRetriever) Volatile() bool {
	return true
}

func cosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) {
		return 0
	}
	var dot float32
	for i := range a {
		dot += a[i] * b[i]
	}
	// Both vectors are normalized, dot product is the cosine.
	return dot
}
