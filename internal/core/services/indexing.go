package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vitrine-labs/techmatch/internal/chunker"
	"github.com/vitrine-labs/techmatch/internal/core/domain"
	"github.com/vitrine-labs/techmatch/internal/core/ports/driven"
	"github.com/vitrine-labs/techmatch/internal/core/ports/driving"
	"github.com/vitrine-labs/techmatch/internal/logger"
)

// Ensure IndexingService implements the interface.
var _ driving.IndexingService = (*IndexingService)(nil)

// IndexingService converts technology records into stored embedding rows:
// compose, chunk, embed, validate, then transactionally replace.
type IndexingService struct {
	embeddingStore   driven.EmbeddingStore
	embeddingService driven.EmbeddingService
	chunker          *chunker.Chunker
}

// NewIndexingService creates a new indexing service. A nil chunker falls
// back to the default chunk geometry.
func NewIndexingService(
	embeddingStore driven.EmbeddingStore,
	embeddingService driven.EmbeddingService,
	c *chunker.Chunker,
) *IndexingService {
	if c == nil {
		c = chunker.New()
	}
	return &IndexingService{
		embeddingStore:   embeddingStore,
		embeddingService: embeddingService,
		chunker:          c,
	}
}

// StoreTechnologyEmbeddings composes, chunks, embeds and persists the
// embedding rows for a technology, replacing any previous set in one
// transaction. Failures are logged and reported as false rather than
// returned: the record simply stays out of similarity results until a
// background re-index retries it. Embedding completes for every chunk before
// the storage transaction begins, so an upstream failure never leaves
// partial rows behind.
func (s *IndexingService) StoreTechnologyEmbeddings(
	ctx context.Context, technologyID string, input domain.TechnologyInput,
) bool {
	logger.Section("Embedding Index")

	if strings.TrimSpace(technologyID) == "" {
		logger.Error("Indexing rejected: empty technology ID")
		return false
	}
	if err := input.Validate(); err != nil {
		logger.Error("Indexing rejected for %s: %v", technologyID, err)
		return false
	}
	if s.embeddingService == nil {
		logger.Error("Indexing failed for %s: %v", technologyID, domain.ErrEmbeddingUnavailable)
		return false
	}

	document := ComposeDocument(input)
	chunks := s.chunker.Chunk(document)
	if len(chunks) == 0 {
		logger.Error("Indexing rejected for %s: composed document is empty", technologyID)
		return false
	}
	logger.Debug("Composed document: %d chars, %d chunks", len(document), len(chunks))

	vectors, err := s.embeddingService.EmbedBatch(ctx, chunks)
	if err != nil {
		logger.Error("Indexing failed for %s: %v", technologyID, err)
		return false
	}
	if len(vectors) != len(chunks) {
		logger.Error("Indexing failed for %s: %v: got %d vectors for %d chunks",
			technologyID, domain.ErrEmbeddingUpstream, len(vectors), len(chunks))
		return false
	}

	entries := make([]domain.ChunkEmbedding, len(chunks))
	for i, vec := range vectors {
		if err := domain.ValidateEmbedding(vec); err != nil {
			logger.Error("Indexing failed for %s: chunk %d: %v", technologyID, i, err)
			return false
		}
		entries[i] = domain.ChunkEmbedding{
			ChunkContent: chunks[i],
			Embedding:    vec,
		}
	}

	if err := s.embeddingStore.ReplaceEmbeddings(ctx, technologyID, entries); err != nil {
		logger.Error("Indexing failed for %s: %v", technologyID, err)
		return false
	}

	logger.Info("Indexed technology %s: %d chunks", technologyID, len(entries))
	return true
}

// RemoveTechnologyEmbeddings drops all embedding rows for a technology.
// An empty replace commits a delete with no inserts.
func (s *IndexingService) RemoveTechnologyEmbeddings(ctx context.Context, technologyID string) error {
	if strings.TrimSpace(technologyID) == "" {
		return fmt.Errorf("%w: empty technology ID", domain.ErrInvalidInput)
	}
	if err := s.embeddingStore.ReplaceEmbeddings(ctx, technologyID, nil); err != nil {
		return fmt.Errorf("remove embeddings for %s: %w", technologyID, err)
	}
	return nil
}
