package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/vitrine-labs/techmatch/internal/core/domain"
	"github.com/vitrine-labs/techmatch/internal/core/ports/driven"
	"github.com/vitrine-labs/techmatch/internal/core/ports/driving"
	"github.com/vitrine-labs/techmatch/internal/logger"
)

// Ensure SimilarityService implements the interface.
var _ driving.SimilarityService = (*SimilarityService)(nil)

// Default query parameters. The cutoff keeps spurious low-confidence matches
// out of results; comparison is strictly greater-than.
const (
	DefaultSimilarityLimit  = 3
	DefaultSimilarityCutoff = 0.45
)

// SimilarityService answers nearest-neighbour queries over stored embeddings.
type SimilarityService struct {
	embeddingStore   driven.EmbeddingStore
	embeddingService driven.EmbeddingService
}

// NewSimilarityService creates a new similarity service.
func NewSimilarityService(
	embeddingStore driven.EmbeddingStore,
	embeddingService driven.EmbeddingService,
) *SimilarityService {
	return &SimilarityService{
		embeddingStore:   embeddingStore,
		embeddingService: embeddingService,
	}
}

// FindSimilarTechnologies embeds the given title and returns stored chunks
// ranked by cosine similarity, excluding the technology carrying that exact
// title so a record never matches itself. Unlike indexing, upstream
// embedding failures surface to the caller; only an empty result set is
// silent.
func (s *SimilarityService) FindSimilarTechnologies(
	ctx context.Context, title string, opts driving.SimilarityOptions,
) ([]domain.SimilarTechnology, error) {
	logger.Section("Similarity Search")

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: empty title", domain.ErrInvalidInput)
	}
	if s.embeddingService == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSimilarityLimit
	}
	cutoff := DefaultSimilarityCutoff
	if opts.Cutoff != nil {
		cutoff = *opts.Cutoff
	}
	logger.Debug("Query: %q, limit=%d, cutoff=%.2f", title, limit, cutoff)

	query, err := s.embeddingService.Embed(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if err := domain.ValidateEmbedding(query); err != nil {
		return nil, fmt.Errorf("query embedding: %w", err)
	}

	results, err := s.embeddingStore.SearchSimilar(ctx, query, title, limit, cutoff)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	logger.Info("Similarity search for %q: %d results", title, len(results))
	return results, nil
}
