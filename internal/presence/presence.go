// Package presence tracks which players currently hold a live connection.
package presence

import "sync"

// Tracker answers whether a player is currently connected.
type Tracker interface {
	IsOnline(playerID string) bool
}

// Registry is a reference-counted in-memory Tracker. A player with
// multiple open connections stays online until the last one closes.
type Registry struct {
	mu     sync.RWMutex
	online map[string]int
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{online: make(map[string]int)}
}

// Connect records one live connection for the player.
func (r *Registry) Connect(playerID string) {
	r.mu.Lock()
	r.online[playerID]++
	r.mu.Unlock()
}

// Disconnect releases one connection for the player.
func (r *Registry) Disconnect(playerID string) {
	r.mu.Lock()
	if r.online[playerID] > 1 {
		r.online[playerID]--
	} else {
		delete(r.online, playerID)
	}
	r.mu.Unlock()
}

// IsOnline reports whether the player has at least one live connection.
func (r *Registry) IsOnline(playerID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.online[playerID] > 0
}

// AlwaysOnline is a Tracker that treats every player as connected. Used
// when no connection layer is wired in (tests, local tooling).
type AlwaysOnline struct{}

func (AlwaysOnline) IsOnline(string) bool { return true }
