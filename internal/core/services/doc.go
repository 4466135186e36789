// Package services implements the use cases of the similarity pipeline:
// composing technology records into documents, indexing them as embedding
// rows, and answering similarity queries.
package services
