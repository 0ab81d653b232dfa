// Package pipeline sequences the three answer stages (retrieve, reason,
// respond) for one submission, fanned out over sub-questions when the
// input is compound.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"docqa/internal/domain"
	"docqa/internal/logger"
)

// Pipeline orchestrates one question-submission at a time. Collaborators
// are injected already constructed; the pipeline holds no state across
// submissions.
type Pipeline struct {
	retriever domain.Retriever
	reasoner  domain.Reasoner
	responder domain.Responder
	topK      int
}

// New creates a pipeline with the given collaborators. topK bounds how
// many passages each sub-question retrieves.
func New(retriever domain.Retriever, reasoner domain.Reasoner, responder domain.Responder, topK int) *Pipeline {
	if topK <= 0 {
		topK = 4
	}
	return &Pipeline{retriever: retriever, reasoner: reasoner, responder: responder, topK: topK}
}

// AnswerQuestion runs retrieve → reason → respond for a single question.
// Any stage failure aborts the submission; there are no retries.
func (p *Pipeline) AnswerQuestion(ctx context.Context, question string) (domain.PipelineResult, error) {
	if strings.TrimSpace(question) == "" {
		return domain.PipelineResult{}, domain.ErrEmptyQuestion
	}

	logger.Debug("retrieving passages for %q", question)
	retrieved, err := p.retriever.Retrieve(ctx, question, p.topK)
	if err != nil {
		return domain.PipelineResult{}, err
	}

	logger.Debug("reasoning over %d passages", len(retrieved))
	reasoned, err := p.reasoner.Reason(ctx, question, retrieved)
	if err != nil {
		return domain.PipelineResult{}, err
	}

	logger.Debug("composing final answer")
	answer, err := p.responder.Respond(ctx, question, reasoned)
	if err != nil {
		return domain.PipelineResult{}, err
	}

	return domain.PipelineResult{
		Question:  question,
		Retrieved: retrieved,
		Reasoned:  reasoned,
		Answer:    answer,
	}, nil
}

// Answer handles one full submission. A single sub-question returns its
// answer unmodified; a compound input runs the pipeline once per
// sub-question sequentially and merges the answers into one markdown
// document in input order. A failure on any sub-question discards the
// whole submission, including answers already computed.
func (p *Pipeline) Answer(ctx context.Context, input string) (string, error) {
	questions := Split(input)
	if len(questions) == 0 {
		return "", domain.ErrEmptyQuestion
	}

	if len(questions) == 1 {
		result, err := p.AnswerQuestion(ctx, questions[0])
		if err != nil {
			return "", err
		}
		return result.Answer, nil
	}

	var sb strings.Builder
	for i, q := range questions {
		result, err := p.AnswerQuestion(ctx, q)
		if err != nil {
			return "", fmt.Errorf("sub-question %d: %w", i+1, err)
		}
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "### Q%d: %s\n\n%s", i+1, q, result.Answer)
	}
	return sb.String(), nil
}
