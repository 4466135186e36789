// Package memory provides in-memory implementations of the storage ports,
// used by tests and by ephemeral environments where persistence across
// restarts is not needed.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vitrine-labs/techmatch/internal/core/domain"
	"github.com/vitrine-labs/techmatch/internal/core/ports/driven"
)

// Ensure Store implements both interfaces.
var (
	_ driven.TechnologyStore = (*Store)(nil)
	_ driven.EmbeddingStore  = (*Store)(nil)
)

// embeddingRow is one stored chunk with its insertion sequence.
type embeddingRow struct {
	technologyID string
	entry        domain.ChunkEmbedding
	seq          int
}

// Store keeps technologies and embedding rows in memory behind a mutex.
type Store struct {
	mu           sync.RWMutex
	technologies map[string]domain.Technology
	rows         []embeddingRow
	nextSeq      int
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		technologies: make(map[string]domain.Technology),
	}
}

// SaveTechnology stores or updates a technology.
func (s *Store) SaveTechnology(_ context.Context, tech *domain.Technology) error {
	if tech.ID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if tech.CreatedAt.IsZero() {
		tech.CreatedAt = now
	}
	tech.UpdatedAt = now
	s.technologies[tech.ID] = *tech
	return nil
}

// GetTechnology retrieves a technology by ID.
func (s *Store) GetTechnology(_ context.Context, id string) (*domain.Technology, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tech, ok := s.technologies[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &tech, nil
}

// ListTechnologies returns all stored technologies ordered by creation time.
func (s *Store) ListTechnologies(_ context.Context) ([]domain.Technology, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	techs := make([]domain.Technology, 0, len(s.technologies))
	for _, tech := range s.technologies {
		techs = append(techs, tech)
	}
	sort.Slice(techs, func(i, j int) bool {
		return techs[i].CreatedAt.Before(techs[j].CreatedAt)
	})
	return techs, nil
}

// DeleteTechnology removes a technology and its embedding rows.
func (s *Store) DeleteTechnology(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.technologies, id)
	kept := s.rows[:0]
	for _, row := range s.rows {
		if row.technologyID != id {
			kept = append(kept, row)
		}
	}
	s.rows = kept
	return nil
}

// ReplaceEmbeddings swaps the full row set for a technology under the lock,
// mirroring the transactional replace of the SQLite store.
func (s *Store) ReplaceEmbeddings(_ context.Context, technologyID string, entries []domain.ChunkEmbedding) error {
	if technologyID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.rows[:0]
	for _, row := range s.rows {
		if row.technologyID != technologyID {
			kept = append(kept, row)
		}
	}
	s.rows = kept

	for _, entry := range entries {
		s.rows = append(s.rows, embeddingRow{
			technologyID: technologyID,
			entry:        entry,
			seq:          s.nextSeq,
		})
		s.nextSeq++
	}
	return nil
}

// GetEmbeddings returns the stored rows for a technology in insertion order.
func (s *Store) GetEmbeddings(_ context.Context, technologyID string) ([]domain.ChunkEmbedding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var entries []domain.ChunkEmbedding
	for _, row := range s.rows {
		if row.technologyID == technologyID {
			entries = append(entries, row.entry)
		}
	}
	return entries, nil
}

// SearchSimilar scores every row against the query vector, skipping rows
// owned by a technology with the excluded title, and returns rows strictly
// above the cutoff ordered by descending score with insertion-order ties.
func (s *Store) SearchSimilar(
	_ context.Context, query []float32, excludeTitle string, limit int, cutoff float64,
) ([]domain.SimilarTechnology, error) {
	if err := domain.ValidateEmbedding(query); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []domain.SimilarTechnology
	for _, row := range s.rows {
		tech, ok := s.technologies[row.technologyID]
		if !ok || tech.Title == excludeTitle {
			continue
		}

		score, err := domain.CosineSimilarity(query, row.entry.Embedding)
		if err != nil {
			continue
		}
		if score > cutoff {
			results = append(results, domain.SimilarTechnology{
				ID:           tech.ID,
				Title:        tech.Title,
				Description:  tech.Description,
				Excerpt:      tech.Excerpt,
				TRL:          tech.TRL,
				ChunkContent: row.entry.ChunkContent,
				Similarity:   score,
			})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}
