// Package memory is an in-process vector store. It ranks entries with a
// TF-IDF vectorizer built over the stored documents, falling back to
// lexical token overlap for queries outside the vocabulary. It needs no
// server, which also makes it the test double for the store boundary.
package memory

import (
	"context"
	"sort"
	"sync"

	"docqa/internal/vectorstore"
)

type entry struct {
	id   string
	doc  string
	meta map[string]any
}

// Store keeps all entries in memory and re-vectorizes lazily after writes.
type Store struct {
	mu      sync.RWMutex
	created bool
	order   []string
	entries map[string]entry

	ranker  *tfidf
	vectors map[string][]float64
	dirty   bool
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{entries: make(map[string]entry)}
}

func (s *Store) EnsureCollection(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = true
	return nil
}

func (s *Store) Upsert(ctx context.Context, ids, documents []string, metadatas []map[string]any) error {
	if len(ids) != len(documents) || len(ids) != len(metadatas) {
		return errLengthMismatch
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = true
	for i, id := range ids {
		if _, exists := s.entries[id]; !exists {
			s.order = append(s.order, id)
		}
		s.entries[id] = entry{id: id, doc: documents[i], meta: metadatas[i]}
	}
	s.dirty = true
	return nil
}

func (s *Store) Query(ctx context.Context, text string, n int) (vectorstore.QueryResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.created {
		return vectorstore.QueryResult{}, vectorstore.ErrCollectionNotFound
	}
	if n <= 0 {
		n = 5
	}
	s.rebuildLocked()

	scores := make(map[string]float64, len(s.entries))
	qvec := s.ranker.embed(text)
	if isZero(qvec) {
		// Query shares no vocabulary with the corpus; fall back to raw
		// token overlap so unseen phrasings still rank something.
		qset := tokenSet(text)
		for id, e := range s.entries {
			scores[id] = overlapOchiai(qset, e.doc)
		}
	} else {
		for id := range s.entries {
			scores[id] = dot(s.vectors[id], qvec)
		}
	}

	ranked := make([]string, len(s.order))
	copy(ranked, s.order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	if n > len(ranked) {
		n = len(ranked)
	}

	res := vectorstore.QueryResult{
		IDs:       [][]string{make([]string, 0, n)},
		Documents: [][]string{make([]string, 0, n)},
		Metadatas: [][]map[string]any{make([]map[string]any, 0, n)},
	}
	for _, id := range ranked[:n] {
		e := s.entries[id]
		res.IDs[0] = append(res.IDs[0], e.id)
		res.Documents[0] = append(res.Documents[0], e.doc)
		res.Metadatas[0] = append(res.Metadatas[0], e.meta)
	}
	return res, nil
}

func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.created = false
	s.order = nil
	s.entries = make(map[string]entry)
	s.ranker = nil
	s.vectors = nil
	s.dirty = false
	return nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.created {
		return 0, vectorstore.ErrCollectionNotFound
	}
	return len(s.entries), nil
}

// rebuildLocked re-prepares the TF-IDF ranker after writes. Caller holds
// the write lock.
func (s *Store) rebuildLocked() {
	if !s.dirty && s.ranker != nil {
		return
	}
	corpus := make([]string, 0, len(s.order))
	for _, id := range s.order {
		corpus = append(corpus, s.entries[id].doc)
	}
	s.ranker = newTFIDF(corpus)
	s.vectors = make(map[string][]float64, len(s.order))
	for _, id := range s.order {
		s.vectors[id] = s.ranker.embed(s.entries[id].doc)
	}
	s.dirty = false
}

func isZero(vec []float64) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
