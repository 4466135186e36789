package domain

import (
	"fmt"
	"strings"
	"time"
)

// Technology is the marketplace record whose text is embedded and searched.
// The marketplace owns its lifecycle; the pipeline reads it and maintains the
// embedding rows derived from it.
type Technology struct {
	// ID is the unique identifier for the technology.
	ID string

	// Title is the human-readable title.
	Title string

	// Description is the long-form description. Optional.
	Description string

	// Excerpt is a short summary. Optional.
	Excerpt string

	// TRL is the maturity level. Free-form to tolerate non-numeric labels
	// such as "TRL 4-5" or "prototype". Optional.
	TRL string

	// CreatedAt is when the technology was first stored.
	CreatedAt time.Time

	// UpdatedAt is when the technology was last updated.
	UpdatedAt time.Time
}

// TechnologyInput carries the fields submitted for indexing. All fields are
// optional individually, but at least one must carry content.
type TechnologyInput struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Excerpt     string `json:"excerpt,omitempty"`
	TRL         string `json:"trl,omitempty"`
}

// Validate rejects inputs that would compose into an empty document.
// Checked before any embedding call or database round-trip.
func (in TechnologyInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" &&
		strings.TrimSpace(in.Description) == "" &&
		strings.TrimSpace(in.Excerpt) == "" &&
		strings.TrimSpace(in.TRL) == "" {
		return fmt.Errorf("%w: technology has no content to embed", ErrInvalidInput)
	}
	return nil
}

// ChunkEmbedding pairs one chunk of a technology's composed document with its
// embedding vector. Chunks have no identity beyond their position.
type ChunkEmbedding struct {
	// ChunkContent is the chunk text.
	ChunkContent string

	// Embedding is the vector representation of ChunkContent.
	Embedding []float32
}

// SimilarTechnology is a single ranked similarity hit: the matched chunk
// joined back to its owning technology.
type SimilarTechnology struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Excerpt      string  `json:"excerpt"`
	TRL          string  `json:"trl"`
	ChunkContent string  `json:"chunk_content"`
	Similarity   float64 `json:"similarity_score"`
}
