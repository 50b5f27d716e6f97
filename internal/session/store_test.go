package session

import (
	"testing"

	"github.com/havenchat/haven/internal/domain"
)

func TestStoreGetPutReset(t *testing.T) {
	s := NewMemoryStore()

	if got := s.Get("u1"); len(got) != 0 {
		t.Fatalf("expected empty history for unknown user, got %d", len(got))
	}

	history := []domain.Message{
		domain.NewMessage(domain.RoleUser, "hello"),
		domain.NewMessage(domain.RoleAssistant, "hi"),
	}
	s.Put("u1", history)

	got := s.Get("u1")
	if len(got) != 2 {
		t.Fatalf("unexpected history length: %d", len(got))
	}
	if got[0].Role != domain.RoleUser || got[0].Content != "hello" {
		t.Fatalf("unexpected first message: %+v", got[0])
	}

	// Appending to the returned slice must not alias the stored history
	_ = append(got, domain.NewMessage(domain.RoleUser, "extra"))
	got[0].Content = "mutated"
	if again := s.Get("u1"); again[0].Content != "hello" || len(again) != 2 {
		t.Fatalf("internal state mutated via returned slice: %+v", again)
	}

	s.Reset("u1")
	if len(s.Get("u1")) != 0 {
		t.Fatalf("reset did not clear history")
	}

	// Idempotent, and fine for users never seen
	s.Reset("u1")
	s.Reset("never-seen")
	if len(s.Get("u1")) != 0 || len(s.Get("never-seen")) != 0 {
		t.Fatalf("reset is not idempotent")
	}
}

func TestStoreUserIsolation(t *testing.T) {
	s := NewMemoryStore()
	s.Put("a", []domain.Message{domain.NewMessage(domain.RoleUser, "one")})
	s.Put("b", []domain.Message{domain.NewMessage(domain.RoleUser, "two")})

	s.Reset("a")

	if len(s.Get("a")) != 0 {
		t.Fatalf("reset did not clear user a")
	}
	if got := s.Get("b"); len(got) != 1 || got[0].Content != "two" {
		t.Fatalf("reset affected other user: %+v", got)
	}
}
