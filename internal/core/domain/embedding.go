package domain

import (
	"fmt"
	"math"
)

// EmbeddingDimensions is the required vector size. Both supported providers
// are configured to produce 768-dimensional vectors; rows of any other shape
// must never reach storage or a ranking computation.
const EmbeddingDimensions = 768

// ValidateEmbedding enforces the vector shape invariant: exactly
// EmbeddingDimensions elements, every one of them finite.
func ValidateEmbedding(v []float32) error {
	if len(v) != EmbeddingDimensions {
		return fmt.Errorf("%w: got %d dimensions, want %d", ErrInvalidEmbedding, len(v), EmbeddingDimensions)
	}
	for i, f := range v {
		f64 := float64(f)
		if math.IsNaN(f64) || math.IsInf(f64, 0) {
			return fmt.Errorf("%w: element %d is not finite", ErrInvalidEmbedding, i)
		}
	}
	return nil
}

// CosineSimilarity computes the cosine similarity between two vectors,
// equivalent to 1 - cosine_distance. It returns an error on dimension
// mismatch or when either vector has zero magnitude.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: dimension mismatch %d vs %d", ErrInvalidEmbedding, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("%w: empty vectors", ErrInvalidEmbedding)
	}
	var dot, na, nb float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])
		dot += va * vb
		na += va * va
		nb += vb * vb
	}
	if na == 0 || nb == 0 {
		return 0, fmt.Errorf("%w: zero-magnitude vector", ErrInvalidEmbedding)
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}
