package commands

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var ingestRebuild bool

// NewIngestCmd creates the ingest command.
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [files...]",
		Short: "Index documents into the vector store",
		Long: `Chunk the given files and upsert them into the vector store.
Supported formats: .txt, .pdf, .docx. Unreadable or unsupported files
are skipped with a warning.

With --rebuild the collection is dropped, recreated and seeded with
the built-in sample corpus before any files are added.`,
		Args: cobra.ArbitraryArgs,
		RunE: runIngest,
		Example: `  docqa ingest --rebuild
  docqa ingest notes.txt report.pdf spec.docx`,
	}

	cmd.Flags().BoolVar(&ingestRebuild, "rebuild", false, "drop the collection and reseed the sample corpus")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	if !ingestRebuild && len(args) == 0 {
		return fmt.Errorf("nothing to do: pass files to ingest or use --rebuild")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := buildStore(cfg)
	if err != nil {
		return err
	}
	ix := buildIndexer(cfg, store)
	ctx := cmd.Context()

	if ingestRebuild {
		n, err := ix.Rebuild(ctx)
		if err != nil {
			return withHint(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Rebuilt collection with %d sample chunks.\n", n)
	} else if err := ix.EnsureInitialized(ctx); err != nil {
		return withHint(err)
	}

	if len(args) == 0 {
		return nil
	}

	// Fresh base id per invocation so batches from different runs
	// never collide in the id space.
	batchID := uuid.New().String()
	n, err := ix.IngestFiles(ctx, args, batchID)
	if err != nil {
		return withHint(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d chunks from %d file(s).\n", n, len(args))
	return nil
}
