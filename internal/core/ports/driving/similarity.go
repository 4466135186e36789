package driving

import (
	"context"

	"github.com/vitrine-labs/techmatch/internal/core/domain"
)

// SimilarityOptions configures a similarity query.
type SimilarityOptions struct {
	// Limit is the maximum number of results. Defaults to 3 when <= 0.
	Limit int

	// Cutoff is the minimum similarity score; rows must score strictly
	// above it to be returned. Nil selects the default of 0.45. An
	// explicit zero or negative cutoff is honoured, since cosine scores
	// can be negative.
	Cutoff *float64
}

// SimilarityService answers "which technologies resemble this one" queries.
type SimilarityService interface {
	// FindSimilarTechnologies embeds the given title and returns the
	// stored chunks nearest to it, excluding the technology that carries
	// the title itself. Upstream embedding failures surface as errors;
	// an empty result set does not.
	FindSimilarTechnologies(ctx context.Context, title string, opts SimilarityOptions) ([]domain.SimilarTechnology, error)
}
