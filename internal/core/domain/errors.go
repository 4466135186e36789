package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested technology does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or empty technology data.
	// Rejected before any embedding call or database round-trip.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidEmbedding indicates a vector violated the shape invariant
	// (wrong dimension count, or a NaN/Inf element). Deterministic;
	// never retried.
	ErrInvalidEmbedding = errors.New("invalid embedding")

	// ErrEmbeddingUpstream indicates the remote embedding call failed,
	// timed out, or returned a malformed body.
	ErrEmbeddingUpstream = errors.New("embedding provider failure")

	// ErrEmbeddingUnavailable indicates no embedding service is configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrPersistence indicates a storage transaction failed and was
	// rolled back.
	ErrPersistence = errors.New("persistence failure")
)
