// Package indexer assigns stable identifiers and metadata to chunks and
// upserts them into the vector store. It is the only writer to the store.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"docqa/internal/chunker"
	"docqa/internal/extract"
	"docqa/internal/logger"
	"docqa/internal/samples"
	"docqa/internal/vectorstore"
)

// ErrNoFiles is returned when an ingestion is requested with zero files.
var ErrNoFiles = errors.New("no files selected")

// Indexer chunks extracted text and writes the results to the store.
type Indexer struct {
	store     vectorstore.Store
	chunkSize int
	overlap   int
}

// New creates an indexer writing to the given store.
func New(store vectorstore.Store, chunkSize, overlap int) *Indexer {
	if chunkSize <= 0 {
		chunkSize = chunker.DefaultChunkSize
	}
	if overlap < 0 {
		overlap = chunker.DefaultOverlap
	}
	return &Indexer{store: store, chunkSize: chunkSize, overlap: overlap}
}

// Ingest chunks each file's extracted text and upserts the whole batch in
// one store call. Chunk ids derive deterministically from the batch id,
// source name and ordinal index, so re-ingesting an unchanged batch
// overwrites instead of duplicating. Files whose text trims to empty are
// skipped; if every file is skipped the count is zero without error.
func (ix *Indexer) Ingest(ctx context.Context, files map[string]string, baseID string) (int, error) {
	sources := make([]string, 0, len(files))
	for source := range files {
		sources = append(sources, source)
	}
	sort.Strings(sources)

	var ids, documents []string
	var metadatas []map[string]any
	for _, source := range sources {
		text := files[source]
		if strings.TrimSpace(text) == "" {
			logger.Warn("skipping %s: no extractable text", source)
			continue
		}
		pieces := chunker.SplitText(text, ix.chunkSize, ix.overlap)
		total := len(pieces)
		for i, piece := range pieces {
			if piece == "" {
				continue
			}
			ids = append(ids, fmt.Sprintf("%s_%s_%d", baseID, source, i))
			documents = append(documents, piece)
			metadatas = append(metadatas, map[string]any{
				"source":       source,
				"chunk_index":  i,
				"total_chunks": total,
				"file_type":    strings.ToLower(filepath.Ext(source)),
			})
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := ix.store.Upsert(ctx, ids, documents, metadatas); err != nil {
		return 0, fmt.Errorf("upsert batch %s: %w", baseID, err)
	}
	logger.Info("indexed %d chunks for batch %s", len(ids), baseID)
	return len(ids), nil
}

// IngestFiles extracts text from each path and ingests the results as one
// batch. A file that fails extraction is logged and skipped; the rest of
// the batch continues.
func (ix *Indexer) IngestFiles(ctx context.Context, paths []string, baseID string) (int, error) {
	if len(paths) == 0 {
		return 0, ErrNoFiles
	}
	files := make(map[string]string, len(paths))
	for _, path := range paths {
		text, err := extract.Text(path)
		if err != nil {
			logger.Warn("skipping %s: %v", path, err)
			continue
		}
		files[filepath.Base(path)] = text
	}
	return ix.Ingest(ctx, files, baseID)
}

// IngestSamples upserts the fixed sample corpus. Sample ids are stable, so
// seeding is idempotent too.
func (ix *Indexer) IngestSamples(ctx context.Context) (int, error) {
	docs := samples.Docs()
	ids := make([]string, len(docs))
	documents := make([]string, len(docs))
	metadatas := make([]map[string]any, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
		documents[i] = d.Text
		metadatas[i] = d.Metadata
	}
	if err := ix.store.Upsert(ctx, ids, documents, metadatas); err != nil {
		return 0, fmt.Errorf("upsert samples: %w", err)
	}
	return len(docs), nil
}

// Rebuild drops the collection and reindexes the sample corpus from
// scratch.
func (ix *Indexer) Rebuild(ctx context.Context) (int, error) {
	if err := ix.store.Reset(ctx); err != nil {
		return 0, fmt.Errorf("reset collection: %w", err)
	}
	if err := ix.store.EnsureCollection(ctx); err != nil {
		return 0, fmt.Errorf("recreate collection: %w", err)
	}
	return ix.IngestSamples(ctx)
}

// EnsureInitialized seeds the sample corpus when the collection does not
// exist yet. A missing collection is a cue to initialize lazily, not an
// error.
func (ix *Indexer) EnsureInitialized(ctx context.Context) error {
	_, err := ix.store.Count(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, vectorstore.ErrCollectionNotFound) {
		return err
	}
	if err := ix.store.EnsureCollection(ctx); err != nil {
		return err
	}
	_, err = ix.IngestSamples(ctx)
	return err
}
