// Package chroma is a minimal REST client to a ChromaDB server. The
// collection is identified by a fixed name and created on demand; embedding
// happens server-side, so only raw texts cross this boundary.
package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"docqa/internal/vectorstore"
)

// Config contains connection details for a Chroma vector store.
type Config struct {
	URL        string
	Collection string
	Timeout    time.Duration
}

// Store talks to Chroma over its v1 HTTP API.
type Store struct {
	url          string
	collection   string
	collectionID string
	client       *http.Client
}

// New creates a Chroma-backed store. The collection is resolved lazily on
// first use.
func New(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

func (s *Store) EnsureCollection(ctx context.Context) error {
	body := map[string]any{
		"name":          s.collection,
		"get_or_create": true,
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := s.postJSON(ctx, s.url+"/api/v1/collections", body, &resp); err != nil {
		return err
	}
	s.collectionID = resp.ID
	return nil
}

func (s *Store) Upsert(ctx context.Context, ids, documents []string, metadatas []map[string]any) error {
	if len(ids) != len(documents) || len(ids) != len(metadatas) {
		return errors.New("ids, documents and metadatas length mismatch")
	}
	id, err := s.resolveCollection(ctx)
	if err != nil {
		return err
	}
	body := map[string]any{
		"ids":       ids,
		"documents": documents,
		"metadatas": metadatas,
	}
	return s.postJSON(ctx, fmt.Sprintf("%s/api/v1/collections/%s/upsert", s.url, id), body, nil)
}

func (s *Store) Query(ctx context.Context, text string, n int) (vectorstore.QueryResult, error) {
	id, err := s.resolveCollection(ctx)
	if err != nil {
		return vectorstore.QueryResult{}, err
	}
	body := map[string]any{
		"query_texts": []string{text},
		"n_results":   n,
		"include":     []string{"documents", "metadatas"},
	}
	var resp struct {
		IDs       [][]string         `json:"ids"`
		Documents [][]string         `json:"documents"`
		Metadatas [][]map[string]any `json:"metadatas"`
	}
	if err := s.postJSON(ctx, fmt.Sprintf("%s/api/v1/collections/%s/query", s.url, id), body, &resp); err != nil {
		return vectorstore.QueryResult{}, err
	}
	return vectorstore.QueryResult{
		IDs:       resp.IDs,
		Documents: resp.Documents,
		Metadatas: resp.Metadatas,
	}, nil
}

func (s *Store) Reset(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/api/v1/collections/%s", s.url, s.collection), nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()
	s.collectionID = ""
	if resp.StatusCode == http.StatusNotFound {
		// Dropping a missing collection is fine for a rebuild.
		return nil
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("chroma DELETE collection failed: %s", resp.Status)
	}
	return nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var resp struct {
		ID string `json:"id"`
	}
	err := s.getJSON(ctx, fmt.Sprintf("%s/api/v1/collections/%s", s.url, s.collection), &resp)
	if err != nil {
		return 0, err
	}
	var count int
	if err := s.getJSON(ctx, fmt.Sprintf("%s/api/v1/collections/%s/count", s.url, resp.ID), &count); err != nil {
		return 0, err
	}
	return count, nil
}

// resolveCollection returns the collection UUID, creating the collection
// when it does not exist yet.
func (s *Store) resolveCollection(ctx context.Context) (string, error) {
	if s.collectionID != "" {
		return s.collectionID, nil
	}
	if err := s.EnsureCollection(ctx); err != nil {
		return "", err
	}
	return s.collectionID, nil
}

func (s *Store) postJSON(ctx context.Context, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return vectorstore.ErrCollectionNotFound
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("chroma POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (s *Store) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return vectorstore.ErrCollectionNotFound
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("chroma GET %s failed: %s", url, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// classifyTransport wraps connection-level failures in ErrUnavailable so
// callers can branch on kind instead of message text.
func classifyTransport(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", vectorstore.ErrUnavailable, err)
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%w: %v", vectorstore.ErrUnavailable, err)
	}
	return err
}
