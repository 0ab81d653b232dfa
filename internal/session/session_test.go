package session

import "testing"

func TestNew(t *testing.T) {
	a := New()
	b := New()
	if a.ID == "" {
		t.Fatal("session id should not be empty")
	}
	if a.ID == b.ID {
		t.Error("sessions should get distinct ids")
	}
	if len(a.Messages) != 0 {
		t.Errorf("new session should start empty, got %d messages", len(a.Messages))
	}
}

func TestAppendPreservesOrder(t *testing.T) {
	s := New()
	s.Append(RoleUser, "question one")
	s.Append(RoleAssistant, "answer one")
	s.Append(RoleUser, "question two")

	if len(s.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(s.Messages))
	}
	if s.Messages[0].Role != RoleUser || s.Messages[0].Content != "question one" {
		t.Errorf("unexpected first message: %+v", s.Messages[0])
	}
	if s.Messages[1].Role != RoleAssistant {
		t.Errorf("unexpected second role: %s", s.Messages[1].Role)
	}
}

func TestHistoryIsACopy(t *testing.T) {
	s := New()
	s.Append(RoleUser, "original")

	h := s.History()
	h[0].Content = "mutated"

	if s.Messages[0].Content != "original" {
		t.Error("mutating the history copy must not touch the session log")
	}
}
