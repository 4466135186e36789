package driven

import "context"

// EmbeddingService generates vector embeddings from text by calling a remote
// model. One outbound network call per invocation; no retries at this layer,
// retry policy belongs to the caller.
//
// Implementations:
//   - Gemini (text-embedding-004, the production model)
//   - OpenAI (text-embedding-3-small pinned to 768 dimensions)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	// More efficient than calling Embed in a loop for multi-chunk documents.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size the service is
	// configured for. Must equal domain.EmbeddingDimensions.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
