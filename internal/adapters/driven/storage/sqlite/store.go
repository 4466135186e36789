// Package sqlite implements the technology and embedding stores on SQLite.
// Embedding vectors are stored as little-endian float32 blobs; similarity
// queries scan the joined rows and score them with cosine similarity.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/vitrine-labs/techmatch/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/vitrine-labs/techmatch/internal/core/domain"
	"github.com/vitrine-labs/techmatch/internal/core/ports/driven"
)

// Store is a SQLite-backed storage that provides access to the technology
// and embedding store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.techmatch/data/techmatch.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".techmatch", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "techmatch.db")

	// WAL for concurrent readers; foreign keys on every pooled connection
	// so technology deletes cascade to embedding rows.
	db, err := sql.Open("sqlite",
		dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// TechnologyStore returns a TechnologyStore interface backed by this store.
func (s *Store) TechnologyStore() driven.TechnologyStore {
	return &technologyStore{store: s}
}

// EmbeddingStore returns an EmbeddingStore interface backed by this store.
func (s *Store) EmbeddingStore() driven.EmbeddingStore {
	return &embeddingStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Technology Store ====================

// technologyStore implements driven.TechnologyStore.
type technologyStore struct {
	store *Store
}

var _ driven.TechnologyStore = (*technologyStore)(nil)

// SaveTechnology stores or updates a technology.
func (s *technologyStore) SaveTechnology(ctx context.Context, tech *domain.Technology) error {
	if tech.ID == "" {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	if tech.CreatedAt.IsZero() {
		tech.CreatedAt = now
	}
	tech.UpdatedAt = now

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO technologies (id, title, description, excerpt, trl, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			excerpt = excluded.excerpt,
			trl = excluded.trl,
			updated_at = excluded.updated_at
	`, tech.ID, tech.Title, tech.Description, tech.Excerpt, tech.TRL,
		tech.CreatedAt, tech.UpdatedAt)

	if err != nil {
		return fmt.Errorf("%w: saving technology: %w", domain.ErrPersistence, err)
	}
	return nil
}

// GetTechnology retrieves a technology by ID.
func (s *technologyStore) GetTechnology(ctx context.Context, id string) (*domain.Technology, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, title, description, excerpt, trl, created_at, updated_at
		FROM technologies WHERE id = ?
	`, id)

	return scanTechnology(row)
}

// ListTechnologies returns all stored technologies.
func (s *technologyStore) ListTechnologies(ctx context.Context) ([]domain.Technology, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, title, description, excerpt, trl, created_at, updated_at
		FROM technologies ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("querying technologies: %w", err)
	}
	defer rows.Close()

	var techs []domain.Technology //nolint:prealloc // size unknown from query
	for rows.Next() {
		var tech domain.Technology
		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&tech.ID, &tech.Title, &tech.Description, &tech.Excerpt,
			&tech.TRL, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning technology: %w", err)
		}
		if createdAt.Valid {
			tech.CreatedAt = createdAt.Time
		}
		if updatedAt.Valid {
			tech.UpdatedAt = updatedAt.Time
		}
		techs = append(techs, tech)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating technologies: %w", err)
	}

	return techs, nil
}

// DeleteTechnology removes a technology; its embedding rows go with it via
// the foreign key cascade.
func (s *technologyStore) DeleteTechnology(ctx context.Context, id string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM technologies WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: deleting technology: %w", domain.ErrPersistence, err)
	}
	return nil
}

// ==================== Embedding Store ====================

// embeddingStore implements driven.EmbeddingStore.
type embeddingStore struct {
	store *Store
}

var _ driven.EmbeddingStore = (*embeddingStore)(nil)

// ReplaceEmbeddings atomically replaces all embedding rows for a technology.
// Delete and inserts share one transaction: any insert failure rolls the
// whole replace back and the previous row set survives untouched. The
// entries arrive fully embedded, so no network call ever runs inside the
// transaction.
func (s *embeddingStore) ReplaceEmbeddings(
	ctx context.Context, technologyID string, entries []domain.ChunkEmbedding,
) error {
	if technologyID == "" {
		return domain.ErrInvalidInput
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %w", domain.ErrPersistence, err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM technology_embeddings WHERE technology_id = ?", technologyID); err != nil {
		return fmt.Errorf("%w: deleting previous embeddings: %w", domain.ErrPersistence, err)
	}

	if len(entries) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO technology_embeddings (id, technology_id, chunk_content, position, embedding, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("%w: preparing statement: %w", domain.ErrPersistence, err)
		}
		defer stmt.Close()

		now := time.Now().UTC()
		for position, entry := range entries {
			embeddingBlob := float32SliceToBytes(entry.Embedding)
			if _, err := stmt.ExecContext(ctx, uuid.New().String(), technologyID,
				entry.ChunkContent, position, embeddingBlob, now); err != nil {
				return fmt.Errorf("%w: inserting embedding %d: %w", domain.ErrPersistence, position, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %w", domain.ErrPersistence, err)
	}
	return nil
}

// GetEmbeddings returns the stored rows for a technology in position order.
func (s *embeddingStore) GetEmbeddings(ctx context.Context, technologyID string) ([]domain.ChunkEmbedding, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT chunk_content, embedding
		FROM technology_embeddings WHERE technology_id = ?
		ORDER BY position
	`, technologyID)
	if err != nil {
		return nil, fmt.Errorf("querying embeddings: %w", err)
	}
	defer rows.Close()

	var entries []domain.ChunkEmbedding //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry domain.ChunkEmbedding
		var embeddingBlob []byte
		if err := rows.Scan(&entry.ChunkContent, &embeddingBlob); err != nil {
			return nil, fmt.Errorf("scanning embedding: %w", err)
		}
		entry.Embedding = bytesToFloat32Slice(embeddingBlob)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating embeddings: %w", err)
	}

	return entries, nil
}

// SearchSimilar scores every stored row against the query vector and returns
// the rows above the cutoff, best first. The scan follows insertion order
// (rowid) and the descending sort is stable, so equal scores keep that
// order. Rows whose owning technology carries the excluded title are never
// scored: a record must not match itself when probed by its own title.
func (s *embeddingStore) SearchSimilar(
	ctx context.Context, query []float32, excludeTitle string, limit int, cutoff float64,
) ([]domain.SimilarTechnology, error) {
	if err := domain.ValidateEmbedding(query); err != nil {
		return nil, err
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT t.id, t.title, t.description, t.excerpt, t.trl, e.chunk_content, e.embedding
		FROM technology_embeddings e
		JOIN technologies t ON t.id = e.technology_id
		WHERE t.title != ?
		ORDER BY e.rowid
	`, excludeTitle)
	if err != nil {
		return nil, fmt.Errorf("querying embeddings: %w", err)
	}
	defer rows.Close()

	var results []domain.SimilarTechnology
	for rows.Next() {
		var hit domain.SimilarTechnology
		var embeddingBlob []byte
		if err := rows.Scan(&hit.ID, &hit.Title, &hit.Description, &hit.Excerpt,
			&hit.TRL, &hit.ChunkContent, &embeddingBlob); err != nil {
			return nil, fmt.Errorf("scanning embedding row: %w", err)
		}

		score, err := domain.CosineSimilarity(query, bytesToFloat32Slice(embeddingBlob))
		if err != nil {
			// Shape drift from an older schema; such rows cannot rank.
			continue
		}
		if score > cutoff {
			hit.Similarity = score
			results = append(results, hit)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating embedding rows: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

// ==================== Helper Functions ====================

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}

// scanTechnology scans a single technology row.
func scanTechnology(row *sql.Row) (*domain.Technology, error) {
	var tech domain.Technology
	var createdAt, updatedAt sql.NullTime

	if err := row.Scan(&tech.ID, &tech.Title, &tech.Description, &tech.Excerpt,
		&tech.TRL, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning technology: %w", err)
	}

	if createdAt.Valid {
		tech.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		tech.UpdatedAt = updatedAt.Time
	}

	return &tech, nil
}
