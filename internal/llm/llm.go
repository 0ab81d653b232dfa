// Package llm defines the boundary to the external generation service.
// Two logical model roles (reasoning, responding) share one client and are
// selected per call by model name.
package llm

import (
	"context"
	"errors"
)

// ErrUnavailable signals that the inference service cannot be reached.
var ErrUnavailable = errors.New("generation service unavailable")

// ErrModelNotFound signals that the requested model is not present on the
// inference service.
var ErrModelNotFound = errors.New("model not found")

// Message is one chat message sent to the generation service.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Options bounds and shapes one generation call. Zero values mean "use the
// backend default"; backends ignore options they cannot express.
type Options struct {
	MaxTokens     int
	Temperature   float64
	TopP          float64
	TopK          int
	RepeatPenalty float64
	NumCtx        int
}

// Generator produces text from a chat prompt, synchronously. Failures
// propagate to the caller uncaught; no backend retries.
type Generator interface {
	Generate(ctx context.Context, model string, messages []Message, opts Options) (string, error)
}
