package agents

import (
	"context"
	"fmt"
	"strings"

	"docqa/internal/domain"
	"docqa/internal/llm"
)

var _ domain.Reasoner = (*Reasoner)(nil)

// DefaultReasonMaxTokens bounds the reasoning stage's output length.
const DefaultReasonMaxTokens = 640

const reasonerInstruction = "You are a careful analyst. Given the user question and retrieved passages, " +
	"extract only the most relevant facts, remove redundancies, and produce a concise " +
	"bullet list of key points grounded in the passages. If information is missing, say so."

// Reasoner condenses retrieved passages into grounded, deduplicated notes
// with one low-temperature generation call.
type Reasoner struct {
	gen       llm.Generator
	model     string
	maxTokens int
}

// NewReasoner creates a reasoner using the given generator and model.
func NewReasoner(gen llm.Generator, model string) *Reasoner {
	return &Reasoner{gen: gen, model: model, maxTokens: DefaultReasonMaxTokens}
}

// Reason builds the grounding prompt and runs one synchronous generation
// call. The note text comes back trimmed but otherwise opaque; failures
// propagate uncaught.
func (r *Reasoner) Reason(ctx context.Context, question string, passages []domain.Passage) (string, error) {
	prompt := buildReasonPrompt(question, passages)
	out, err := r.gen.Generate(ctx, r.model, []llm.Message{{Role: "user", Content: prompt}}, llm.Options{
		MaxTokens:     r.maxTokens,
		Temperature:   0.2,
		RepeatPenalty: 1.1,
	})
	if err != nil {
		return "", fmt.Errorf("reason: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// buildReasonPrompt renders each passage as a numbered block in input
// order, then the question and the fixed instruction. Zero passages yield
// a valid prompt with no blocks.
func buildReasonPrompt(question string, passages []domain.Passage) string {
	var blocks []string
	for i, p := range passages {
		blocks = append(blocks, fmt.Sprintf("[Passage %d]\n%s\n", i+1, p.Text))
	}
	context := strings.Join(blocks, "\n")

	return fmt.Sprintf("%s\n\nQuestion: %s\n\nPassages:\n%s\n\nOutput:",
		reasonerInstruction, question, context)
}
