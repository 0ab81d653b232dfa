package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/llm"
)

func TestGenerate_Success(t *testing.T) {
	var gotPath string
	var gotReq map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": "grounded answer"},
			"done":    true,
		})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	out, err := c.Generate(context.Background(), "mistral", []llm.Message{{Role: "user", Content: "hi"}}, llm.Options{
		MaxTokens:     640,
		Temperature:   0.2,
		RepeatPenalty: 1.1,
	})
	require.NoError(t, err)
	assert.Equal(t, "grounded answer", out)
	assert.Equal(t, "/api/chat", gotPath)
	assert.Equal(t, "mistral", gotReq["model"])
	assert.Equal(t, false, gotReq["stream"])

	opts, ok := gotReq["options"].(map[string]any)
	require.True(t, ok, "options should be sent when set")
	assert.Equal(t, float64(640), opts["num_predict"])
	assert.InDelta(t, 0.2, opts["temperature"], 1e-9)
	assert.InDelta(t, 1.1, opts["repeat_penalty"], 1e-9)
}

func TestGenerate_ModelNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model 'nope' not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Generate(context.Background(), "nope", []llm.Message{{Role: "user", Content: "hi"}}, llm.Options{})
	assert.True(t, errors.Is(err, llm.ErrModelNotFound), "got %v", err)
}

func TestGenerate_ServiceUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from now on

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Generate(context.Background(), "mistral", []llm.Message{{Role: "user", Content: "hi"}}, llm.Options{})
	assert.True(t, errors.Is(err, llm.ErrUnavailable), "got %v", err)
}

func TestGenerate_NoOptionsOmitted(t *testing.T) {
	var gotReq map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]any{
			"message": map[string]string{"role": "assistant", "content": "ok"},
			"done":    true,
		})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	_, err := c.Generate(context.Background(), "mistral", []llm.Message{{Role: "user", Content: "hi"}}, llm.Options{})
	require.NoError(t, err)
	_, present := gotReq["options"]
	assert.False(t, present, "zero options should not be serialized")
}
