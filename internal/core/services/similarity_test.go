package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitrine-labs/techmatch/internal/adapters/driven/storage/memory"
	"github.com/vitrine-labs/techmatch/internal/core/domain"
	"github.com/vitrine-labs/techmatch/internal/core/ports/driving"
)

func cutoffAt(v float64) *float64 { return &v }

// simVec builds a unit vector whose cosine similarity against queryVec()
// is the given score.
func simVec(score float64) []float32 {
	v := make([]float32, domain.EmbeddingDimensions)
	v[0] = float32(score)
	v[1] = float32(math.Sqrt(1 - score*score))
	return v
}

// queryVec is the unit basis vector simVec scores are measured against.
func queryVec() []float32 {
	v := make([]float32, domain.EmbeddingDimensions)
	v[0] = 1
	return v
}

func seedTechnology(t *testing.T, store *memory.Store, id, title string, vec []float32) {
	t.Helper()
	require.NoError(t, store.SaveTechnology(context.Background(), &domain.Technology{
		ID:    id,
		Title: title,
	}))
	require.NoError(t, store.ReplaceEmbeddings(context.Background(), id, []domain.ChunkEmbedding{
		{ChunkContent: "chunk for " + title, Embedding: vec},
	}))
}

func TestFindSimilarTechnologies_RankingAndLimit(t *testing.T) {
	store := memory.NewStore()
	seedTechnology(t, store, "a", "Biossensor A", simVec(0.9))
	seedTechnology(t, store, "b", "Catalisador B", simVec(0.5))
	seedTechnology(t, store, "c", "Membrana C", simVec(0.7))

	embedder := &mockEmbeddingService{embedding: queryVec()}
	svc := NewSimilarityService(store, embedder)

	results, err := svc.FindSimilarTechnologies(context.Background(), "Nanofiltro",
		driving.SimilarityOptions{Limit: 2, Cutoff: cutoffAt(0.6)})

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Biossensor A", results[0].Title)
	assert.Equal(t, "Membrana C", results[1].Title)
	assert.Greater(t, results[0].Similarity, results[1].Similarity)
}

func TestFindSimilarTechnologies_CutoffIsExclusive(t *testing.T) {
	store := memory.NewStore()

	// 3-4-5 triangle: scores against the basis query are exactly 0.6 and 0.8.
	atCutoff := make([]float32, domain.EmbeddingDimensions)
	atCutoff[0], atCutoff[1] = 3, 4
	above := make([]float32, domain.EmbeddingDimensions)
	above[0], above[1] = 4, 3

	seedTechnology(t, store, "at", "Exatamente no corte", atCutoff)
	seedTechnology(t, store, "above", "Acima do corte", above)

	embedder := &mockEmbeddingService{embedding: queryVec()}
	svc := NewSimilarityService(store, embedder)

	results, err := svc.FindSimilarTechnologies(context.Background(), "Consulta",
		driving.SimilarityOptions{Limit: 10, Cutoff: cutoffAt(0.6)})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Acima do corte", results[0].Title)
}

func TestFindSimilarTechnologies_ExcludesOwnTitle(t *testing.T) {
	store := memory.NewStore()
	seedTechnology(t, store, "self", "Grafeno funcionalizado", simVec(0.99))
	seedTechnology(t, store, "other", "Outro material", simVec(0.8))

	embedder := &mockEmbeddingService{embedding: queryVec()}
	svc := NewSimilarityService(store, embedder)

	results, err := svc.FindSimilarTechnologies(context.Background(), "Grafeno funcionalizado",
		driving.SimilarityOptions{Limit: 10, Cutoff: cutoffAt(0.5)})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Outro material", results[0].Title)
}

func TestFindSimilarTechnologies_Defaults(t *testing.T) {
	store := memory.NewStore()
	seedTechnology(t, store, "1", "T1", simVec(0.9))
	seedTechnology(t, store, "2", "T2", simVec(0.8))
	seedTechnology(t, store, "3", "T3", simVec(0.7))
	seedTechnology(t, store, "4", "T4", simVec(0.6))
	seedTechnology(t, store, "5", "T5", simVec(0.4)) // below the default cutoff

	embedder := &mockEmbeddingService{embedding: queryVec()}
	svc := NewSimilarityService(store, embedder)

	results, err := svc.FindSimilarTechnologies(context.Background(), "Consulta",
		driving.SimilarityOptions{})

	require.NoError(t, err)
	require.Len(t, results, DefaultSimilarityLimit)
	assert.Equal(t, "T1", results[0].Title)
	assert.Equal(t, "T2", results[1].Title)
	assert.Equal(t, "T3", results[2].Title)
}

func TestFindSimilarTechnologies_ExplicitZeroCutoff(t *testing.T) {
	store := memory.NewStore()
	seedTechnology(t, store, "weak", "Correlação fraca", simVec(0.2))
	seedTechnology(t, store, "neg", "Correlação negativa", simVec(-0.3))

	embedder := &mockEmbeddingService{embedding: queryVec()}
	svc := NewSimilarityService(store, embedder)

	// Zero is a real cutoff, not a request for the 0.45 default: positive
	// scores pass, negative scores do not.
	results, err := svc.FindSimilarTechnologies(context.Background(), "Consulta",
		driving.SimilarityOptions{Limit: 10, Cutoff: cutoffAt(0)})

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Correlação fraca", results[0].Title)
}

func TestFindSimilarTechnologies_EmptyResultIsNotError(t *testing.T) {
	store := memory.NewStore()
	embedder := &mockEmbeddingService{embedding: queryVec()}
	svc := NewSimilarityService(store, embedder)

	results, err := svc.FindSimilarTechnologies(context.Background(), "Consulta",
		driving.SimilarityOptions{})

	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFindSimilarTechnologies_EmptyTitle(t *testing.T) {
	svc := NewSimilarityService(memory.NewStore(), &mockEmbeddingService{embedding: queryVec()})

	for _, title := range []string{"", "   ", "\n\t"} {
		_, err := svc.FindSimilarTechnologies(context.Background(), title, driving.SimilarityOptions{})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestFindSimilarTechnologies_NoEmbeddingService(t *testing.T) {
	svc := NewSimilarityService(memory.NewStore(), nil)

	_, err := svc.FindSimilarTechnologies(context.Background(), "Consulta", driving.SimilarityOptions{})
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestFindSimilarTechnologies_UpstreamErrorPropagates(t *testing.T) {
	embedder := &mockEmbeddingService{embedErr: domain.ErrEmbeddingUpstream}
	svc := NewSimilarityService(memory.NewStore(), embedder)

	_, err := svc.FindSimilarTechnologies(context.Background(), "Consulta", driving.SimilarityOptions{})
	assert.ErrorIs(t, err, domain.ErrEmbeddingUpstream)
}

func TestFindSimilarTechnologies_StoreErrorPropagates(t *testing.T) {
	embStore := &mockEmbeddingStore{searchErr: domain.ErrPersistence}
	svc := NewSimilarityService(embStore, &mockEmbeddingService{embedding: queryVec()})

	_, err := svc.FindSimilarTechnologies(context.Background(), "Consulta", driving.SimilarityOptions{})
	assert.ErrorIs(t, err, domain.ErrPersistence)
}

func TestFindSimilarTechnologies_InvalidQueryVector(t *testing.T) {
	embedder := &mockEmbeddingService{embedding: make([]float32, 12)}
	svc := NewSimilarityService(memory.NewStore(), embedder)

	_, err := svc.FindSimilarTechnologies(context.Background(), "Consulta", driving.SimilarityOptions{})
	assert.ErrorIs(t, err, domain.ErrInvalidEmbedding)
}
