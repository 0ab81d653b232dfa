// Package samples holds the fixed corpus used to seed an empty collection
// and to rebuild it from scratch.
package samples

// Doc is one pre-chunked sample record with a stable id.
type Doc struct {
	ID       string
	Text     string
	Metadata map[string]any
}

// Docs returns the sample corpus. IDs are stable so repeated seeding
// upserts in place instead of duplicating.
func Docs() []Doc {
	return []Doc{
		{
			ID: "doc_1",
			Text: "This repository demonstrates a local Retrieval-Augmented Generation (RAG) pipeline. " +
				"It uses a vector database for passage storage and a local inference service for generation.",
			Metadata: map[string]any{"source": "README", "topic": "project"},
		},
		{
			ID:       "doc_2",
			Text:     "The retriever queries the vector store to fetch semantically relevant passages based on the user question.",
			Metadata: map[string]any{"source": "design", "topic": "retriever"},
		},
		{
			ID:       "doc_3",
			Text:     "The reasoner analyzes the retrieved passages, filters noise, and synthesizes the key facts needed to answer.",
			Metadata: map[string]any{"source": "design", "topic": "reasoner"},
		},
		{
			ID:       "doc_4",
			Text:     "The responder crafts a concise, user-friendly answer grounded in the reasoned context.",
			Metadata: map[string]any{"source": "design", "topic": "responder"},
		},
	}
}
