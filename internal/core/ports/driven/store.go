package driven

import (
	"context"

	"github.com/vitrine-labs/techmatch/internal/core/domain"
)

// TechnologyStore persists technology records. Backed by SQLite.
type TechnologyStore interface {
	// SaveTechnology stores or updates a technology.
	SaveTechnology(ctx context.Context, tech *domain.Technology) error

	// GetTechnology retrieves a technology by ID.
	GetTechnology(ctx context.Context, id string) (*domain.Technology, error)

	// ListTechnologies returns all stored technologies.
	ListTechnologies(ctx context.Context) ([]domain.Technology, error)

	// DeleteTechnology removes a technology and, by cascade, its
	// embedding rows.
	DeleteTechnology(ctx context.Context, id string) error
}

// EmbeddingStore persists chunk-to-vector mappings per technology and answers
// similarity queries over them. The store exclusively owns persisted rows;
// callers hold no cache across calls.
type EmbeddingStore interface {
	// ReplaceEmbeddings atomically replaces all embedding rows for a
	// technology: delete-then-insert inside a single transaction. On any
	// failure the transaction rolls back, leaving the previous complete
	// row set intact. An empty entries slice is a valid replace that
	// leaves zero rows. Idempotent at the technology level.
	ReplaceEmbeddings(ctx context.Context, technologyID string, entries []domain.ChunkEmbedding) error

	// GetEmbeddings returns the stored rows for a technology in
	// position order.
	GetEmbeddings(ctx context.Context, technologyID string) ([]domain.ChunkEmbedding, error)

	// SearchSimilar scores every stored row against the query vector with
	// cosine similarity, skips rows owned by a technology titled
	// excludeTitle, keeps rows scoring strictly above cutoff, and returns
	// at most limit rows ordered by descending score (ties stable in
	// insertion order), each joined to its owning technology.
	// An empty result is not an error.
	SearchSimilar(ctx context.Context, query []float32, excludeTitle string, limit int, cutoff float64) ([]domain.SimilarTechnology, error)
}
