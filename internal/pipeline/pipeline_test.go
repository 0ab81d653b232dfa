package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/domain"
	"docqa/internal/logger"
)

func TestMain(m *testing.M) {
	logger.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// stageRecorder implements all three stages and records the call order.
type stageRecorder struct {
	calls      []string
	respondErr map[string]error
}

func (s *stageRecorder) Retrieve(ctx context.Context, question string, topK int) ([]domain.Passage, error) {
	s.calls = append(s.calls, "retrieve:"+question)
	return []domain.Passage{{ID: "p1", Text: "passage for " + question}}, nil
}

func (s *stageRecorder) Reason(ctx context.Context, question string, passages []domain.Passage) (string, error) {
	s.calls = append(s.calls, "reason:"+question)
	return "notes for " + question, nil
}

func (s *stageRecorder) Respond(ctx context.Context, question, reasoningSummary string) (string, error) {
	s.calls = append(s.calls, "respond:"+question)
	if err := s.respondErr[question]; err != nil {
		return "", err
	}
	return "answer to " + question, nil
}

func newPipeline(rec *stageRecorder) *Pipeline {
	return New(rec, rec, rec, 4)
}

func TestAnswer_SingleQuestionUnmodified(t *testing.T) {
	rec := &stageRecorder{}
	p := newPipeline(rec)

	out, err := p.Answer(context.Background(), "what is alpha?")
	require.NoError(t, err)
	assert.Equal(t, "answer to what is alpha?", out, "single question answer must pass through unmodified")
	assert.Equal(t, []string{
		"retrieve:what is alpha?",
		"reason:what is alpha?",
		"respond:what is alpha?",
	}, rec.calls)
}

func TestAnswer_SequentialStageOrder(t *testing.T) {
	rec := &stageRecorder{}
	p := newPipeline(rec)

	out, err := p.Answer(context.Background(), "1. foo\n2. bar")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"retrieve:foo", "reason:foo", "respond:foo",
		"retrieve:bar", "reason:bar", "respond:bar",
	}, rec.calls, "stages must run per sub-question, sequentially, in input order")

	assert.Contains(t, out, "### Q1: foo")
	assert.Contains(t, out, "answer to foo")
	assert.Contains(t, out, "### Q2: bar")
	assert.Contains(t, out, "answer to bar")
}

func TestAnswer_FatalPropagationDiscardsPartial(t *testing.T) {
	boom := errors.New("inference exploded")
	rec := &stageRecorder{respondErr: map[string]error{"bar": boom}}
	p := newPipeline(rec)

	out, err := p.Answer(context.Background(), "1. foo\n2. bar")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, out, "no partial merged result may be returned")

	// Sub-question 1 completed before the failure and is discarded.
	assert.Contains(t, rec.calls, "respond:foo")
}

func TestAnswer_EmptyInputRejectedBeforeStages(t *testing.T) {
	rec := &stageRecorder{}
	p := newPipeline(rec)

	for _, input := range []string{"", "   ", "\n\t\n"} {
		_, err := p.Answer(context.Background(), input)
		assert.ErrorIs(t, err, domain.ErrEmptyQuestion)
	}
	assert.Empty(t, rec.calls, "validation failures must not reach any stage")
}

func TestAnswerQuestion_EmptyQuestion(t *testing.T) {
	rec := &stageRecorder{}
	p := newPipeline(rec)

	_, err := p.AnswerQuestion(context.Background(), "  ")
	assert.ErrorIs(t, err, domain.ErrEmptyQuestion)
	assert.Empty(t, rec.calls)
}

func TestAnswerQuestion_ResultFields(t *testing.T) {
	rec := &stageRecorder{}
	p := newPipeline(rec)

	result, err := p.AnswerQuestion(context.Background(), "what is alpha?")
	require.NoError(t, err)
	assert.Equal(t, "what is alpha?", result.Question)
	require.Len(t, result.Retrieved, 1)
	assert.Equal(t, "p1", result.Retrieved[0].ID)
	assert.Equal(t, "notes for what is alpha?", result.Reasoned)
	assert.Equal(t, "answer to what is alpha?", result.Answer)
}

func TestAnswer_MergeOrderForMany(t *testing.T) {
	rec := &stageRecorder{}
	p := newPipeline(rec)

	out, err := p.Answer(context.Background(), "1. a\n2. b\n3. c")
	require.NoError(t, err)
	for i, q := range []string{"a", "b", "c"} {
		heading := fmt.Sprintf("### Q%d: %s", i+1, q)
		assert.Contains(t, out, heading)
	}
	assert.Less(t, strings.Index(out, "### Q1"), strings.Index(out, "### Q2"))
	assert.Less(t, strings.Index(out, "### Q2"), strings.Index(out, "### Q3"))
}
