// Package domain contains the core entities and invariants of the technology
// similarity pipeline: technology records, chunk embeddings, the embedding
// dimension rule and the similarity metric. It depends on nothing outside the
// standard library.
package domain
