package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrine-labs/techmatch/internal/core/domain"
)

func unitVec(leading ...float32) []float32 {
	v := make([]float32, domain.EmbeddingDimensions)
	copy(v, leading)
	return v
}

func TestTechnologyLifecycle(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	tech := &domain.Technology{ID: "t1", Title: "Título"}
	require.NoError(t, store.SaveTechnology(ctx, tech))
	assert.False(t, tech.CreatedAt.IsZero())

	got, err := store.GetTechnology(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "Título", got.Title)

	techs, err := store.ListTechnologies(ctx)
	require.NoError(t, err)
	assert.Len(t, techs, 1)

	require.NoError(t, store.DeleteTechnology(ctx, "t1"))
	_, err = store.GetTechnology(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplaceEmbeddings_SwapsRowSet(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.ReplaceEmbeddings(ctx, "t1", []domain.ChunkEmbedding{
		{ChunkContent: "antigo", Embedding: unitVec(1)},
		{ChunkContent: "antigo two", Embedding: unitVec(1)},
	}))
	require.NoError(t, store.ReplaceEmbeddings(ctx, "t1", []domain.ChunkEmbedding{
		{ChunkContent: "novo", Embedding: unitVec(1)},
	}))

	entries, err := store.GetEmbeddings(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "novo", entries[0].ChunkContent)
}

func TestReplaceEmbeddings_Idempotent(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	entries := []domain.ChunkEmbedding{
		{ChunkContent: "chunk um", Embedding: unitVec(0.1)},
		{ChunkContent: "chunk dois", Embedding: unitVec(0.2)},
	}
	require.NoError(t, store.ReplaceEmbeddings(ctx, "t1", entries))
	once, err := store.GetEmbeddings(ctx, "t1")
	require.NoError(t, err)

	require.NoError(t, store.ReplaceEmbeddings(ctx, "t1", entries))
	twice, err := store.GetEmbeddings(ctx, "t1")
	require.NoError(t, err)

	require.Len(t, twice, 2)
	assert.Equal(t, once, twice)
}

func TestDeleteTechnology_RemovesEmbeddings(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.SaveTechnology(ctx, &domain.Technology{ID: "t1", Title: "X"}))
	require.NoError(t, store.ReplaceEmbeddings(ctx, "t1", []domain.ChunkEmbedding{
		{ChunkContent: "chunk", Embedding: unitVec(1)},
	}))

	require.NoError(t, store.DeleteTechnology(ctx, "t1"))

	entries, err := store.GetEmbeddings(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSearchSimilar_MatchesSQLiteSemantics(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.SaveTechnology(ctx, &domain.Technology{ID: "a", Title: "Alta"}))
	require.NoError(t, store.SaveTechnology(ctx, &domain.Technology{ID: "b", Title: "No corte"}))
	require.NoError(t, store.ReplaceEmbeddings(ctx, "a", []domain.ChunkEmbedding{
		{ChunkContent: "chunk a", Embedding: unitVec(4, 3)},
	}))
	// 3-4-5 triangle: exactly the cutoff, so excluded by the strict compare.
	require.NoError(t, store.ReplaceEmbeddings(ctx, "b", []domain.ChunkEmbedding{
		{ChunkContent: "chunk b", Embedding: unitVec(3, 4)},
	}))

	results, err := store.SearchSimilar(ctx, unitVec(1), "", 10, 0.6)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Alta", results[0].Title)

	results, err = store.SearchSimilar(ctx, unitVec(1), "Alta", 10, 0.0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "No corte", results[0].Title)
}

func TestSearchSimilar_InvalidQuery(t *testing.T) {
	store := NewStore()

	_, err := store.SearchSimilar(context.Background(), make([]float32, 2), "", 10, 0.0)
	assert.ErrorIs(t, err, domain.ErrInvalidEmbedding)
}
