package retriever

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rag-chat-be/pkg/embedding"
	"rag-chat-be/pkg/store"
)

// keywordEmbedder maps a few known keywords to fixed axes so similarity is
// deterministic without a model.
type keywordEmbedder struct{}

func (keywordEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	vec := make([]float32, 3)
	lower := strings.ToLower(text)
	if strings.Contains(lower, "apple") {
		vec[0] = 1
	}
	if strings.Contains(lower, "banana") {
		vec[1] = 1
	}
	if strings.Contains(lower, "cherry") {
		vec[2] = 1
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: vec},
	}, nil
}

func TestMemoryRetriever_ReadyFlipsAfterIndex(t *testing.T) {
	r := NewMemoryRetriever(keywordEmbedder{})
	scope := Scope{UserID: "user-1"}

	assert.True(t, r.Volatile())
	assert.False(t, r.Ready(context.Background(), scope))

	err := r.Index(context.Background(), scope, []store.DocumentChunk{
		{Name: "fruit.pdf", Ordinal: 1, Text: "all about apple"},
	})
	require.NoError(t, err)

	assert.True(t, r.Ready(context.Background(), scope))
	assert.False(t, r.Ready(context.Background(), Scope{UserID: "user-2"}))
}

func TestMemoryRetriever_SearchRanksByCosine(t *testing.T) {
	r := NewMemoryRetriever(keywordEmbedder{})
	scope := Scope{UserID: "user-1"}

	err := r.Index(context.Background(), scope, []store.DocumentChunk{
		{Name: "fruit.pdf", Ordinal: 1, Text: "banana facts"},
		{Name: "fruit.pdf", Ordinal: 2, Text: "apple facts"},
		{Name: "fruit.pdf", Ordinal: 3, Text: "cherry facts"},
	})
	require.NoError(t, err)

	got, err := r.Search(context.Background(), scope, "tell me about apple", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 2, got[0].Ordinal)
	assert.Greater(t, got[0].Score, got[1].Score)
}

func TestMemoryRetriever_SearchIsScopedByUser(t *testing.T) {
	r := NewMemoryRetriever(keywordEmbedder{})

	err := r.Index(context.Background(), Scope{UserID: "user-1"}, []store.DocumentChunk{
		{Name: "a.pdf", Ordinal: 1, Text: "apple"},
	})
	require.NoError(t, err)

	got, err := r.Search(context.Background(), Scope{UserID: "user-2"}, "apple", 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMemoryRetriever_StableOrderOnTies(t *testing.T) {
	r := NewMemoryRetriever(keywordEmbedder{})
	scope := Scope{UserID: "user-1"}

	err := r.Index(context.Background(), scope, []store.DocumentChunk{
		{Name: "a.pdf", Ordinal: 1, Text: "apple one"},
		{Name: "a.pdf", Ordinal: 2, Text: "apple two"},
	})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		got, err := r.Search(context.Background(), scope, "apple", 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 1, got[0].Ordinal)
		assert.Equal(t, 2, got[1].Ordinal)
	}
}
