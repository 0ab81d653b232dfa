package agents

import (
	"context"
	"fmt"
	"strings"

	"docqa/internal/domain"
	"docqa/internal/llm"
)

var _ domain.Responder = (*Responder)(nil)

// DefaultRespondMaxTokens bounds the responding stage's output length.
const DefaultRespondMaxTokens = 768

// The formatting contract is descriptive guidance embedded in the prompt,
// not enforced by code.
const responderInstruction = "You are a helpful assistant. Using the reasoning notes below, craft a clear, " +
	"well-structured answer for the user. Open with a short direct introduction, use short " +
	"paragraphs, put structured content in bulleted or numbered lists, add an illustrative " +
	"example where it helps, and close with a one-line takeaway. Keep the answer grounded in the notes."

// Responder turns reasoning notes into the final formatted answer. It is a
// separate stage from the Reasoner so presentation can run with its own
// sampling parameters.
type Responder struct {
	gen       llm.Generator
	model     string
	maxTokens int
}

// NewResponder creates a responder using the given generator and model.
func NewResponder(gen llm.Generator, model string) *Responder {
	return &Responder{gen: gen, model: model, maxTokens: DefaultRespondMaxTokens}
}

// Respond runs one synchronous generation call; failures propagate
// uncaught, same as the reasoning stage.
func (r *Responder) Respond(ctx context.Context, question, reasoningSummary string) (string, error) {
	prompt := buildRespondPrompt(question, reasoningSummary)
	out, err := r.gen.Generate(ctx, r.model, []llm.Message{{Role: "user", Content: prompt}}, llm.Options{
		MaxTokens:   r.maxTokens,
		Temperature: 0.6,
	})
	if err != nil {
		return "", fmt.Errorf("respond: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func buildRespondPrompt(question, reasoningSummary string) string {
	return fmt.Sprintf("%s\n\nQuestion: %s\n\nReasoning Notes:\n%s\n\nFinal Answer:",
		responderInstruction, question, reasoningSummary)
}
