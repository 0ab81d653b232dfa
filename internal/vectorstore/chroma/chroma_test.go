package chroma

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/vectorstore"
)

// fakeChroma serves just enough of the v1 API to exercise the client.
func fakeChroma(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var paths []string
	const collID = "11111111-2222-3333-4444-555555555555"
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/collections", func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["get_or_create"])
		json.NewEncoder(w).Encode(map[string]string{"id": collID, "name": body["name"].(string)})
	})
	mux.HandleFunc(fmt.Sprintf("/api/v1/collections/%s/upsert", collID), func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc(fmt.Sprintf("/api/v1/collections/%s/query", collID), func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		var body struct {
			QueryTexts []string `json:"query_texts"`
			NResults   int      `json:"n_results"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"how does it work"}, body.QueryTexts)
		assert.Equal(t, 2, body.NResults)
		json.NewEncoder(w).Encode(map[string]any{
			"ids":       [][]string{{"a", "b"}},
			"documents": [][]string{{"doc a", "doc b"}},
			"metadatas": [][]map[string]any{{{"source": "x"}, {"source": "y"}}},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &paths
}

func TestUpsertCreatesCollectionOnce(t *testing.T) {
	srv, paths := fakeChroma(t)
	s := New(Config{URL: srv.URL, Collection: "local_docs"})

	ids := []string{"id1"}
	docs := []string{"text"}
	metas := []map[string]any{{"source": "f.txt"}}
	require.NoError(t, s.Upsert(context.Background(), ids, docs, metas))
	require.NoError(t, s.Upsert(context.Background(), ids, docs, metas))

	created := 0
	for _, p := range *paths {
		if p == "POST /api/v1/collections" {
			created++
		}
	}
	assert.Equal(t, 1, created, "collection id should be cached after first resolve")
}

func TestUpsertLengthMismatch(t *testing.T) {
	s := New(Config{URL: "http://unused", Collection: "c"})
	err := s.Upsert(context.Background(), []string{"a"}, []string{"x", "y"}, nil)
	require.Error(t, err)
}

func TestQueryShapesResult(t *testing.T) {
	srv, _ := fakeChroma(t)
	s := New(Config{URL: srv.URL, Collection: "local_docs"})

	res, err := s.Query(context.Background(), "how does it work", 2)
	require.NoError(t, err)
	require.Len(t, res.IDs, 1)
	assert.Equal(t, []string{"a", "b"}, res.IDs[0])
	assert.Equal(t, []string{"doc a", "doc b"}, res.Documents[0])
	assert.Equal(t, "y", res.Metadatas[0][1]["source"])
}

func TestNotFoundIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()
	s := New(Config{URL: srv.URL, Collection: "missing"})

	_, err := s.Count(context.Background())
	assert.True(t, errors.Is(err, vectorstore.ErrCollectionNotFound), "got %v", err)
}

func TestUnreachableServerIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	s := New(Config{URL: srv.URL, Collection: "c", Timeout: 2 * time.Second})

	err := s.EnsureCollection(context.Background())
	assert.True(t, errors.Is(err, vectorstore.ErrUnavailable), "got %v", err)
}

func TestResetToleratesMissingCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		http.NotFound(w, r)
	}))
	defer srv.Close()
	s := New(Config{URL: srv.URL, Collection: "gone"})

	require.NoError(t, s.Reset(context.Background()))
}
