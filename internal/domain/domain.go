package domain

import (
	"context"
	"errors"
)

// Passage is a chunk returned by a similarity search as relevant to a question.
type Passage struct {
	ID       string
	Text     string
	Metadata map[string]any
}

// PipelineResult holds everything produced while answering one question.
// It is owned by the pipeline call that produced it; the presentation layer
// may copy it into a conversation log but must not mutate it in place.
type PipelineResult struct {
	Question  string
	Retrieved []Passage
	Reasoned  string
	Answer    string
}

// Retriever fetches passages relevant to a question, best-first.
type Retriever interface {
	Retrieve(ctx context.Context, question string, topK int) ([]Passage, error)
}

// Reasoner condenses retrieved passages into grounded notes.
type Reasoner interface {
	Reason(ctx context.Context, question string, passages []Passage) (string, error)
}

// Responder turns reasoning notes into a final formatted answer.
type Responder interface {
	Respond(ctx context.Context, question, reasoningSummary string) (string, error)
}

// ErrEmptyQuestion is returned when a submission contains no question text.
// It is raised before any external call is made.
var ErrEmptyQuestion = errors.New("empty question")

// ErrInvalidTopK is returned when a retrieval is requested with a
// non-positive passage count.
var ErrInvalidTopK = errors.New("top_k must be positive")
