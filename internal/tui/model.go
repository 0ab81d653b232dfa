package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docqa/internal/domain"
	"docqa/internal/llm"
	"docqa/internal/session"
	"docqa/internal/vectorstore"
)

// AnswerPort is the TUI-facing subset of the pipeline.
type AnswerPort interface {
	Answer(ctx context.Context, input string) (string, error)
}

type answerMsg struct{ answer string }
type answerErrMsg struct{ err error }

// Model is the Bubble Tea model for the interactive chat view. The session
// object is explicit state; pipeline results are copied into its log and
// never mutated.
type Model struct {
	pipeline AnswerPort
	sess     *session.Session
	input    textinput.Model
	viewport viewport.Model
	status   string
	thinking bool
	ready    bool
}

// New creates a new chat model around an already-constructed pipeline.
func New(pipeline AnswerPort, sess *session.Session) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		pipeline: pipeline,
		sess:     sess,
		input:    ti,
		viewport: vp,
		status:   "Ready. Type a question; Ctrl+C to quit.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := chatBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header + status + input frame + spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderTranscript())
		return m, nil

	case answerMsg:
		m.thinking = false
		m.sess.Append(session.RoleAssistant, msg.answer)
		m.status = "Ready."
		m.viewport.SetContent(m.renderTranscript())
		m.viewport.GotoBottom()
		return m, nil

	case answerErrMsg:
		m.thinking = false
		m.status = friendlyError(msg.err)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" && !m.thinking {
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				return m, nil
			}
			m.sess.Append(session.RoleUser, q)
			m.input.SetValue("")
			m.thinking = true
			m.status = "Thinking..."
			m.viewport.SetContent(m.renderTranscript())
			m.viewport.GotoBottom()
			pipeline := m.pipeline
			return m, func() tea.Msg {
				answer, err := pipeline.Answer(context.Background(), q)
				if err != nil {
					return answerErrMsg{err: err}
				}
				return answerMsg{answer: answer}
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("docqa: local document Q&A")
	chat := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + chat + "\n" + input + "\n" + status
}

func (m Model) renderTranscript() string {
	if len(m.sess.Messages) == 0 {
		return "No conversation yet. Ask a question to get started."
	}
	var sb strings.Builder
	for i, msg := range m.sess.Messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		switch msg.Role {
		case session.RoleUser:
			sb.WriteString(userStyle.Render("You: ") + msg.Content)
		default:
			sb.WriteString(assistantStyle.Render("docqa:\n") + msg.Content)
		}
	}
	return sb.String()
}

var (
	chatBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

// friendlyError translates the typed error taxonomy into actionable user
// messages.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, llm.ErrModelNotFound):
		return "Error: model missing. Pull it first, e.g. `ollama pull mistral`."
	case errors.Is(err, llm.ErrUnavailable):
		return "Error: cannot reach the inference service. Start it with `ollama serve`."
	case errors.Is(err, vectorstore.ErrUnavailable):
		return "Error: cannot reach the vector store. Is the Chroma server running?"
	case errors.Is(err, vectorstore.ErrCollectionNotFound):
		return "Error: collection missing. Run `docqa ingest --rebuild` first."
	case errors.Is(err, domain.ErrEmptyQuestion):
		return "Type a question first."
	default:
		return "Error: " + err.Error()
	}
}
