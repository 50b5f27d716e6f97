package session

import (
	"sync"

	"github.com/havenchat/haven/internal/domain"
)

// Store holds per-user ordered message history
type Store interface {
	// Get returns the user's history, empty for unknown users. The returned
	// slice is a copy; appending to it does not alias the stored history.
	Get(userID string) []domain.Message
	// Put replaces the user's history with the given sequence
	Put(userID string, history []domain.Message)
	// Reset clears the user's history. Idempotent; unknown users are a no-op.
	Reset(userID string)
}

// MemoryStore is an in-memory Store with process lifetime. No eviction, no
// size bound, no expiry.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]domain.Message
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]domain.Message)}
}

func (s *MemoryStore) Get(userID string) []domain.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.sessions[userID]
	out := make([]domain.Message, len(history))
	copy(out, history)
	return out
}

func (s *MemoryStore) Put(userID string, history []domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = history
}

func (s *MemoryStore) Reset(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
