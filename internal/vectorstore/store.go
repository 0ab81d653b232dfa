// Package vectorstore defines the boundary to the external vector engine.
// Similarity ranking is delegated entirely to the engine; the core only
// shapes requests and responses.
package vectorstore

import (
	"context"
	"errors"
)

// ErrCollectionNotFound signals that the fixed collection does not exist
// yet. Ingestion treats it as a cue to initialize lazily, not as a failure.
var ErrCollectionNotFound = errors.New("collection not found")

// ErrUnavailable signals that the vector store cannot be reached.
var ErrUnavailable = errors.New("vector store unavailable")

// QueryResult mirrors the engine's single-query batch shape: parallel
// ids/documents/metadatas arrays, one inner slice per query. Callers use
// the first element.
type QueryResult struct {
	IDs       [][]string
	Documents [][]string
	Metadatas [][]map[string]any
}

// Store persists chunks and answers similarity queries.
type Store interface {
	// EnsureCollection creates the collection if it does not exist.
	EnsureCollection(ctx context.Context) error

	// Upsert inserts or replaces entries by id. One call covers a whole
	// ingestion batch; repeating it with identical inputs is a no-op in
	// effect.
	Upsert(ctx context.Context, ids, documents []string, metadatas []map[string]any) error

	// Query returns up to n entries ranked best-first for the query text.
	Query(ctx context.Context, text string, n int) (QueryResult, error)

	// Reset drops the collection so it can be rebuilt from scratch.
	Reset(ctx context.Context) error

	// Count reports the number of stored entries. Returns
	// ErrCollectionNotFound when the collection does not exist.
	Count(ctx context.Context) (int, error)
}
