// Package session models a chat conversation as an explicit object passed
// into the presentation layer. The message log is append-only; the core
// treats a session as a sink for question/answer pairs.
package session

import "github.com/google/uuid"

// Roles used in the message log.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in a session's conversation log.
type Message struct {
	Role    string
	Content string
}

// Session is a named, ordered list of messages.
type Session struct {
	ID       string
	Messages []Message
}

// New creates an empty session with a fresh id.
func New() *Session {
	return &Session{ID: uuid.New().String()}
}

// Append adds one message to the end of the log.
func (s *Session) Append(role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
}

// History returns a copy of the message log so callers cannot mutate the
// session through it.
func (s *Session) History() []Message {
	out := make([]Message, len(s.Messages))
	copy(out, s.Messages)
	return out
}
