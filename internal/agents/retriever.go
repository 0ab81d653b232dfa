// Package agents implements the three pipeline stages: retrieve passages,
// reason over them, respond to the user.
package agents

import (
	"context"
	"fmt"

	"docqa/internal/domain"
	"docqa/internal/vectorstore"
)

var _ domain.Retriever = (*Retriever)(nil)

// DefaultTopK is the default number of passages fetched per question.
const DefaultTopK = 4

// Retriever shapes questions into store queries and store responses into
// passages. Ranking is entirely the store's business.
type Retriever struct {
	store vectorstore.Store
}

// NewRetriever creates a retriever over the given store.
func NewRetriever(store vectorstore.Store) *Retriever {
	return &Retriever{store: store}
}

// Retrieve returns up to topK passages ranked best-first. Fewer matches
// than topK is not an error.
func (r *Retriever) Retrieve(ctx context.Context, question string, topK int) ([]domain.Passage, error) {
	if topK <= 0 {
		return nil, domain.ErrInvalidTopK
	}
	res, err := r.store.Query(ctx, question, topK)
	if err != nil {
		return nil, fmt.Errorf("query store: %w", err)
	}
	return zipPassages(res), nil
}

// zipPassages zips the store's parallel arrays into passage records,
// preserving rank order. Only the first (single-query) batch element is
// used.
func zipPassages(res vectorstore.QueryResult) []domain.Passage {
	var ids []string
	var docs []string
	var metas []map[string]any
	if len(res.IDs) > 0 {
		ids = res.IDs[0]
	}
	if len(res.Documents) > 0 {
		docs = res.Documents[0]
	}
	if len(res.Metadatas) > 0 {
		metas = res.Metadatas[0]
	}

	n := len(ids)
	if len(docs) < n {
		n = len(docs)
	}
	passages := make([]domain.Passage, 0, n)
	for i := 0; i < n; i++ {
		p := domain.Passage{ID: ids[i], Text: docs[i]}
		if i < len(metas) {
			p.Metadata = metas[i]
		}
		passages = append(passages, p)
	}
	return passages
}
