package commands

import (
	"github.com/spf13/cobra"

	"docqa/internal/config"
	"docqa/internal/logger"
)

var (
	cfgPath string
	verbose bool
)

// NewRootCmd creates the root command with global flags and all
// subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docqa",
		Short: "Ask questions about your local documents",
		Long: `docqa indexes local documents into a vector store and answers
questions about them with a staged retrieve / reason / respond
pipeline running against a local inference server.

Typical flow:
  docqa ingest --rebuild         seed the index with the sample corpus
  docqa ingest notes.txt a.pdf   add your own documents
  docqa ask "what is a vector database?"
  docqa chat                     interactive session`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetVerbose(verbose)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ./config.yaml, then ~/.config/docqa/config.yaml)")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")

	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewChatCmd())
	cmd.AddCommand(NewIngestCmd())

	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath != "" {
		logger.Debug("loading config from %s", cfgPath)
		return config.Load(cfgPath)
	}
	cfg, path, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}
	logger.Debug("using config at %s", path)
	return cfg, nil
}
