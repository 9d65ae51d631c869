// Package timer enforces the per-turn deadline. It listens on the event
// bus, arms one timer per match, and when a deadline expires it acts for
// the slow player through the same service entry points a client would
// use, so all the usual validation and persistence applies.
package timer

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/belatro/belatro-server/engine"
	"github.com/belatro/belatro-server/internal/events"
	"github.com/belatro/belatro-server/internal/presence"
	"github.com/belatro/belatro-server/internal/service"
)

// TurnTimerService schedules and fires turn deadlines.
type TurnTimerService struct {
	games    *service.GameService
	presence presence.Tracker
	log      *logrus.Logger
	timeout  time.Duration

	mu     sync.Mutex
	timers map[string]*armedTimer
}

// armedTimer is one pending deadline, tagged with the turn it guards so a
// late firing cannot evict a newer timer.
type armedTimer struct {
	timer *time.Timer
	seq   uint64
}

// New builds a timer service. timeout is the per-turn allowance.
func New(games *service.GameService, tracker presence.Tracker, log *logrus.Logger, timeout time.Duration) *TurnTimerService {
	if log == nil {
		log = logrus.New()
	}
	return &TurnTimerService{
		games:    games,
		presence: tracker,
		log:      log,
		timeout:  timeout,
		timers:   make(map[string]*armedTimer),
	}
}

// Bind subscribes the service to the bus. A new turn re-arms the match's
// timer; any state transition disarms it. Phases without a pending player
// action never publish TurnStarted, so nothing re-arms until play resumes.
func (s *TurnTimerService) Bind(bus *events.Bus) {
	bus.SubscribeTurnStarted(s.onTurnStarted)
	bus.SubscribeGameStateChanged(s.onGameStateChanged)
}

// Pending reports whether a timer is currently armed for the match.
func (s *TurnTimerService) Pending(gameID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[gameID]
	return ok
}

// Stop disarms every pending timer. Called on shutdown.
func (s *TurnTimerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, at := range s.timers {
		at.timer.Stop()
		delete(s.timers, id)
	}
}

// onTurnStarted arms the deadline for the new turn, displacing any timer
// still pending from the previous turn. At most one timer exists per
// match.
func (s *TurnTimerService) onTurnStarted(ev events.TurnStarted) {
	if s.timeout <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.timers[ev.GameID]; ok {
		prev.timer.Stop()
	}
	s.timers[ev.GameID] = &armedTimer{
		seq: ev.TurnSeq,
		timer: time.AfterFunc(s.timeout, func() {
			s.onTimeout(ev)
		}),
	}
}

// onGameStateChanged disarms the match's timer on every transition. The
// next TurnStarted re-arms it, so cancelling here is always safe even
// when play continues.
func (s *TurnTimerService) onGameStateChanged(ev events.GameStateChanged) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if at, ok := s.timers[ev.GameID]; ok {
		at.timer.Stop()
		delete(s.timers, ev.GameID)
	}
}

// onTimeout fires when a player overran the deadline. It re-checks
// against live state before acting: the timer may have lost a race with
// a real move or a state change.
func (s *TurnTimerService) onTimeout(ev events.TurnStarted) {
	s.mu.Lock()
	if at, ok := s.timers[ev.GameID]; ok && at.seq == ev.TurnSeq {
		delete(s.timers, ev.GameID)
	}
	s.mu.Unlock()

	log := s.log.WithFields(logrus.Fields{
		"match":  ev.GameID,
		"player": ev.PlayerID,
	})

	// Disconnected players are not auto-played; the match waits for
	// them to return.
	if !s.presence.IsOnline(ev.PlayerID) {
		log.Info("turn deadline passed for offline player, skipping")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	g, err := s.games.Match(ctx, ev.GameID)
	if err != nil {
		log.WithError(err).Warn("load match on timeout failed")
		return
	}
	if g.TurnSeq != ev.TurnSeq || g.CurrentPlayer() != ev.PlayerID {
		// Stale deadline: the turn already moved on.
		return
	}

	switch g.State {
	case engine.StateBidding:
		s.autoBid(ctx, log, g, ev.PlayerID)
	case engine.StatePlaying:
		s.autoPlay(ctx, log, g, ev.PlayerID)
	}
}

// autoBid passes for the slow bidder, or calls a random trump suit when
// the dealer is obligated to call.
func (s *TurnTimerService) autoBid(ctx context.Context, log *logrus.Entry, g *engine.Game, playerID string) {
	var bid engine.Bid
	if g.DealerForced() {
		suit := engine.Suits[rand.IntN(len(engine.Suits))]
		bid = engine.TrumpBid(playerID, suit)
		log.WithField("suit", suit.String()).Info("timeout: forced dealer calls random trump")
	} else {
		bid = engine.PassBid(playerID)
		log.Info("timeout: auto-passing bid")
	}
	if _, err := s.games.PlaceBid(ctx, g.ID, playerID, bid); err != nil {
		log.WithError(err).Warn("auto bid failed")
	}
}

// autoPlay plays a uniformly random legal card for the slow player. Bela
// is never claimed on the player's behalf.
func (s *TurnTimerService) autoPlay(ctx context.Context, log *logrus.Entry, g *engine.Game, playerID string) {
	legal := g.LegalMoves(playerID)
	if len(legal) == 0 {
		log.Warn("timeout with no legal moves, skipping")
		return
	}
	card := legal[rand.IntN(len(legal))]
	log.WithField("card", card.String()).Info("timeout: auto-playing card")
	if _, err := s.games.PlayCard(ctx, g.ID, playerID, card, false); err != nil {
		log.WithError(err).Warn("auto play failed")
	}
}
