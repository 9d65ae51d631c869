// Package events is a small in-process event bus connecting the game
// service to its observers (turn timers, websocket broadcasters). Publish
// is synchronous: handlers run on the publisher's goroutine, in
// subscription order, so observers see events in the order the service
// produced them.
package events

import (
	"sync"

	"github.com/belatro/belatro-server/engine"
)

// GameStarted is published when a match is created and dealt.
type GameStarted struct {
	GameID string
}

// TurnStarted is published whenever the player to act changes. TurnSeq is
// the game's turn counter at publication; a handler acting later can
// compare it against the live game to detect that the turn already passed.
type TurnStarted struct {
	GameID   string
	PlayerID string
	TurnSeq  uint64
}

// GameStateChanged is published on every lifecycle phase transition.
type GameStateChanged struct {
	GameID string
	State  engine.State
}

// HandFinished is published when a hand settles, before the next hand is
// dealt, carrying the settled result.
type HandFinished struct {
	GameID string
	Result engine.HandResult
}

// Bus fans events out to subscribers. Zero value is ready to use.
// Subscriptions are expected at wiring time; subscribing concurrently with
// publishing is safe but ordering relative to in-flight events is not
// defined.
type Bus struct {
	mu               sync.RWMutex
	gameStarted      []func(GameStarted)
	turnStarted      []func(TurnStarted)
	gameStateChanged []func(GameStateChanged)
	handFinished     []func(HandFinished)
}

// NewBus returns an empty bus.
func NewBus() *Bus { return &Bus{} }

// SubscribeGameStarted registers a handler for GameStarted events.
func (b *Bus) SubscribeGameStarted(fn func(GameStarted)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gameStarted = append(b.gameStarted, fn)
}

// SubscribeTurnStarted registers a handler for TurnStarted events.
func (b *Bus) SubscribeTurnStarted(fn func(TurnStarted)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.turnStarted = append(b.turnStarted, fn)
}

// SubscribeGameStateChanged registers a handler for GameStateChanged events.
func (b *Bus) SubscribeGameStateChanged(fn func(GameStateChanged)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gameStateChanged = append(b.gameStateChanged, fn)
}

// SubscribeHandFinished registers a handler for HandFinished events.
func (b *Bus) SubscribeHandFinished(fn func(HandFinished)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handFinished = append(b.handFinished, fn)
}

// PublishGameStarted delivers ev to all GameStarted subscribers.
func (b *Bus) PublishGameStarted(ev GameStarted) {
	b.mu.RLock()
	handlers := b.gameStarted
	b.mu.RUnlock()
	for _, fn := range handlers {
		fn(ev)
	}
}

// PublishTurnStarted delivers ev to all TurnStarted subscribers.
func (b *Bus) PublishTurnStarted(ev TurnStarted) {
	b.mu.RLock()
	handlers := b.turnStarted
	b.mu.RUnlock()
	for _, fn := range handlers {
		fn(ev)
	}
}

// PublishGameStateChanged delivers ev to all GameStateChanged subscribers.
func (b *Bus) PublishGameStateChanged(ev GameStateChanged) {
	b.mu.RLock()
	handlers := b.gameStateChanged
	b.mu.RUnlock()
	for _, fn := range handlers {
		fn(ev)
	}
}

// PublishHandFinished delivers ev to all HandFinished subscribers.
func (b *Bus) PublishHandFinished(ev HandFinished) {
	b.mu.RLock()
	handlers := b.handFinished
	b.mu.RUnlock()
	for _, fn := range handlers {
		fn(ev)
	}
}
