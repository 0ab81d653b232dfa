package commands

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"docqa/internal/agents"
	"docqa/internal/domain"
	"docqa/internal/llm"
	"docqa/internal/vectorstore"
)

var askTopK int

// NewAskCmd creates the ask command.
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a single question and exit",
		Long: `Answer one question against the indexed documents and print the
answer to stdout.

Compound questions written as a numbered list are split and answered
part by part:

  docqa ask "1. what is a vector database?
  2. how does similarity search work?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().IntVar(&askTopK, "top-k", 0, "passages to retrieve per question (default from config)")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if askTopK > 0 {
		cfg.Retriever.TopK = askTopK
	}

	store, err := buildStore(cfg)
	if err != nil {
		return err
	}
	gen, err := buildGenerator(cfg)
	if err != nil {
		return err
	}

	ix := buildIndexer(cfg, store)
	if err := ix.EnsureInitialized(cmd.Context()); err != nil {
		return withHint(err)
	}

	p := buildPipeline(cfg, store, gen)
	answer, err := p.Answer(cmd.Context(), args[0])
	if err != nil {
		return withHint(err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}

// withHint attaches an actionable suggestion to known failure modes.
func withHint(err error) error {
	switch {
	case errors.Is(err, llm.ErrModelNotFound):
		return fmt.Errorf("%w (pull it first, e.g. `ollama pull mistral`)", err)
	case errors.Is(err, llm.ErrUnavailable):
		return fmt.Errorf("%w (is the inference server running? try `ollama serve`)", err)
	case errors.Is(err, vectorstore.ErrUnavailable):
		return fmt.Errorf("%w (is the Chroma server running?)", err)
	case errors.Is(err, vectorstore.ErrCollectionNotFound):
		return fmt.Errorf("%w (run `docqa ingest --rebuild` first)", err)
	case errors.Is(err, domain.ErrEmptyQuestion):
		return errors.New("question is empty")
	case errors.Is(err, domain.ErrInvalidTopK):
		return fmt.Errorf("%w (top-k must be at least 1, default is %d)", err, agents.DefaultTopK)
	default:
		return err
	}
}
