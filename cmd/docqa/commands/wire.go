package commands

import (
	"fmt"
	"time"

	"docqa/internal/agents"
	"docqa/internal/config"
	"docqa/internal/indexer"
	"docqa/internal/llm"
	"docqa/internal/llm/ollama"
	"docqa/internal/llm/openai"
	"docqa/internal/pipeline"
	"docqa/internal/vectorstore"
	"docqa/internal/vectorstore/chroma"
	"docqa/internal/vectorstore/memory"
)

// buildStore constructs the configured vector store backend.
func buildStore(cfg *config.AppConfig) (vectorstore.Store, error) {
	switch cfg.VectorStore.Type {
	case "chroma", "":
		return chroma.New(chroma.Config{
			URL:        cfg.VectorStore.Chroma.URL,
			Collection: cfg.VectorStore.Chroma.Collection,
			Timeout:    time.Duration(cfg.VectorStore.Chroma.TimeoutSecs) * time.Second,
		}), nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown vector store type %q", cfg.VectorStore.Type)
	}
}

// buildGenerator constructs the configured generation backend.
func buildGenerator(cfg *config.AppConfig) (llm.Generator, error) {
	switch cfg.LLM.Type {
	case "ollama", "":
		return ollama.New(ollama.Config{
			BaseURL: cfg.LLM.Ollama.BaseURL,
			Timeout: time.Duration(cfg.LLM.Ollama.TimeoutSecs) * time.Second,
		}), nil
	case "openai":
		oc := openai.Config{}
		if cfg.LLM.OpenAI != nil {
			oc.BaseURL = cfg.LLM.OpenAI.BaseURL
			oc.APIKeyEnv = cfg.LLM.OpenAI.APIKeyEnv
		}
		return openai.New(oc)
	default:
		return nil, fmt.Errorf("unknown llm type %q", cfg.LLM.Type)
	}
}

// buildPipeline wires the three stages around a store and a generator.
func buildPipeline(cfg *config.AppConfig, store vectorstore.Store, gen llm.Generator) *pipeline.Pipeline {
	retriever := agents.NewRetriever(store)
	reasoner := agents.NewReasoner(gen, cfg.Models.Reason)
	responder := agents.NewResponder(gen, cfg.Models.Respond)
	return pipeline.New(retriever, reasoner, responder, cfg.Retriever.TopK)
}

func buildIndexer(cfg *config.AppConfig, store vectorstore.Store) *indexer.Indexer {
	return indexer.New(store, cfg.Chunker.ChunkSize, cfg.Chunker.Overlap)
}
