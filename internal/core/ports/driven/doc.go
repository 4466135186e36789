// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports): embedding providers and the backing store.
package driven
