package commands

import (
	"bufio"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"docqa/internal/pipeline"
	"docqa/internal/session"
	"docqa/internal/tui"
)

var chatPlain bool

// NewChatCmd creates the chat command.
func NewChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Interactive question answering session",
		Long: `Start an interactive session against the indexed documents.

By default this opens a full-screen terminal UI. With --plain it
reads questions from stdin line by line, which suits pipes and
terminals without cursor addressing. Type "exit" or "quit" to leave.`,
		Args: cobra.NoArgs,
		RunE: runChat,
	}

	cmd.Flags().BoolVar(&chatPlain, "plain", false, "line-based stdin loop instead of the TUI")

	return cmd
}

func runChat(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		return err
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
	sess := session.New()

	if chatPlain {
		return plainLoop(cmd, p, sess)
	}

	program := tea.NewProgram(tui.New(p, sess), tea.WithAltScreen())
	_, err = program.Run()
	return err
}

// plainLoop reads questions from stdin until EOF or an exit word.
func plainLoop(cmd *cobra.Command, p *pipeline.Pipeline, sess *session.Session) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "docqa chat. Type a question, or \"exit\" to leave.")

	scanner := bufio.NewScanner(cmd.InOrStdin())
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch strings.ToLower(line) {
		case "exit", "quit":
			return nil
		}

		sess.Append(session.RoleUser, line)
		answer, err := p.Answer(cmd.Context(), line)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", withHint(err))
			continue
		}
		sess.Append(session.RoleAssistant, answer)
		fmt.Fprintf(out, "\n%s\n\n", answer)
	}
}
