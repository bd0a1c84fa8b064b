// Package session holds uploaded pitch-deck text keyed by session id.
// State is explicitly session-scoped with a create/get/clear lifecycle
// so concurrent API requests never share a deck.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Deck is one uploaded pitch deck within a session.
type Deck struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Text       string    `json:"text_content,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Store keeps active deck sessions in memory.
type Store struct {
	mu    sync.RWMutex
	decks map[string]Deck
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{decks: make(map[string]Deck)}
}

// Create registers a new deck session and returns it.
func (s *Store) Create(name, text string) Deck {
	deck := Deck{
		ID:         uuid.New().String(),
		Name:       name,
		Text:       text,
		UploadedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.decks[deck.ID] = deck
	s.mu.Unlock()
	return deck
}

// Get returns the deck for a session id.
func (s *Store) Get(id string) (Deck, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	deck, ok := s.decks[id]
	return deck, ok
}

// Clear removes a session when the caller is done with it.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	delete(s.decks, id)
	s.mu.Unlock()
}

// Len returns the number of active sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.decks)
}
