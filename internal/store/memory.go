package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/belatro/belatro-server/engine"
)

// MemoryStore keeps serialized games in a process-local map. The JSON
// round-trip on every Load/Save gives it the same copy semantics as a
// remote store, which keeps tests honest about what actually persists.
type MemoryStore struct {
	mu    sync.RWMutex
	games map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{games: make(map[string][]byte)}
}

// Load returns an independent copy of the stored game.
func (s *MemoryStore) Load(ctx context.Context, id string) (*engine.Game, error) {
	s.mu.RLock()
	raw, ok := s.games[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var g engine.Game
	if err := json.Unmarshal(raw, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Save serializes and stores the game under its ID.
func (s *MemoryStore) Save(ctx context.Context, g *engine.Game) error {
	raw, err := json.Marshal(g)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.games[g.ID] = raw
	s.mu.Unlock()
	return nil
}

// Delete removes the game. Deleting a missing ID is a no-op.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.games, id)
	s.mu.Unlock()
	return nil
}
