package driving

import (
	"context"

	"github.com/vitrine-labs/techmatch/internal/core/domain"
)

// IndexingService converts technology records into stored embedding rows.
type IndexingService interface {
	// StoreTechnologyEmbeddings composes, chunks, embeds and persists the
	// embedding rows for a technology, replacing any previous set.
	// It reports success or failure as a boolean: failures are logged
	// server-side and the record simply stays out of similarity results
	// until a background re-index retries it.
	StoreTechnologyEmbeddings(ctx context.Context, technologyID string, input domain.TechnologyInput) bool

	// RemoveTechnologyEmbeddings deletes all embedding rows for a
	// technology without touching the record itself.
	RemoveTechnologyEmbeddings(ctx context.Context, technologyID string) error
}
