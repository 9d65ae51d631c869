// Package service coordinates match state between the rules engine, the
// store and the event bus. It is the single writer for any given match:
// every mutating call runs load, mutate, save under a per-match mutex, so
// the engine itself never needs to know about concurrency.
package service

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/belatro/belatro-server/engine"
	"github.com/belatro/belatro-server/internal/database"
	"github.com/belatro/belatro-server/internal/events"
	"github.com/belatro/belatro-server/internal/models"
	"github.com/belatro/belatro-server/internal/store"
)

// GameService owns all match mutations.
type GameService struct {
	store store.MatchStore
	bus   *events.Bus
	log   *logrus.Logger

	// locks maps match ID to its mutex. Entries are never removed; a
	// finished match costs one idle mutex until process restart.
	locks sync.Map
}

// New builds a GameService over the given store and bus.
func New(st store.MatchStore, bus *events.Bus, log *logrus.Logger) *GameService {
	if log == nil {
		log = logrus.New()
	}
	return &GameService{store: st, bus: bus, log: log}
}

// lockFor returns the mutex guarding the given match, creating it on
// first use.
func (s *GameService) lockFor(id string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// CreateMatch creates and deals a new match for the two partnerships and
// persists it. The match goes straight into bidding.
func (s *GameService) CreateMatch(ctx context.Context, teamA, teamB [2]string) (*engine.Game, error) {
	id := uuid.NewString()
	seed := seedFromUUID()
	g := engine.NewGame(id, teamA, teamB, seed)
	if err := g.StartGame(); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("save new match: %w", err)
	}

	s.log.WithFields(logrus.Fields{
		"match":  id,
		"dealer": g.DealerID,
	}).Info("match created")

	s.bus.PublishGameStarted(events.GameStarted{GameID: id})
	s.publishTurn(g)
	return g, nil
}

// Match returns a copy of the match state. The copy is the caller's to
// mutate; only the service writes back.
func (s *GameService) Match(ctx context.Context, id string) (*engine.Game, error) {
	return s.store.Load(ctx, id)
}

// LegalMoves returns the cards the player may play right now, or nil when
// no play is expected from them.
func (s *GameService) LegalMoves(ctx context.Context, id, playerID string) ([]engine.Card, error) {
	g, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return g.LegalMoves(playerID), nil
}

// PlaceBid applies a bidding move. The boolean mirrors the engine: false
// means the move was rejected as illegal input, with no state change.
func (s *GameService) PlaceBid(ctx context.Context, id, playerID string, bid engine.Bid) (bool, error) {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	g, err := s.store.Load(ctx, id)
	if err != nil {
		return false, err
	}
	prevState := g.State

	ok, err := g.PlaceBid(playerID, bid)
	if err != nil {
		return false, err
	}
	if !ok {
		s.log.WithFields(logrus.Fields{
			"match":  id,
			"player": playerID,
			"action": bid.Action.String(),
		}).Warn("bid rejected")
		return false, nil
	}

	if err := s.store.Save(ctx, g); err != nil {
		return false, fmt.Errorf("save match: %w", err)
	}

	s.recordMove(id, playerID, models.MoveTypeBid, bid.Action.String()+" "+bid.Suit.String())
	s.publishTransitions(g, prevState)
	return true, nil
}

// PlayCard applies a card play, optionally claiming bela with it. When
// the play finishes the hand, the result is published and the next hand
// is dealt in the same critical section, unless the match is over.
func (s *GameService) PlayCard(ctx context.Context, id, playerID string, card engine.Card, declareBela bool) (bool, error) {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	g, err := s.store.Load(ctx, id)
	if err != nil {
		return false, err
	}
	prevState := g.State

	ok, err := g.PlayCard(playerID, card, declareBela)
	if err != nil {
		return false, err
	}
	if !ok {
		s.log.WithFields(logrus.Fields{
			"match":  id,
			"player": playerID,
			"card":   card.String(),
		}).Warn("play rejected")
		return false, nil
	}

	s.recordMove(id, playerID, models.MoveTypePlayCard, card.String())

	var finished *engine.HandResult
	if g.State == engine.StateRoundEnded {
		finished = g.LastHand
		s.recordMove(id, "", models.MoveTypeEndHand, fmt.Sprintf("A=%d B=%d", finished.TeamAScore, finished.TeamBScore))
		// The match keeps rolling; the settled result survives in the
		// published event and the move log.
		if err := g.StartNextHand(); err != nil {
			return false, err
		}
	}

	if err := s.store.Save(ctx, g); err != nil {
		return false, fmt.Errorf("save match: %w", err)
	}

	if finished != nil {
		s.bus.PublishGameStateChanged(events.GameStateChanged{GameID: id, State: engine.StateRoundEnded})
		s.bus.PublishHandFinished(events.HandFinished{GameID: id, Result: *finished})
		prevState = engine.StateRoundEnded
	}
	s.publishTransitions(g, prevState)

	if g.State == engine.StateCompleted {
		// The final hand skips RoundEnded, so its result goes out here.
		s.bus.PublishHandFinished(events.HandFinished{GameID: id, Result: *g.LastHand})
		s.finishMatch(g)
	}
	return true, nil
}

// CancelMatch abandons the match. Cancelling an already terminal match is
// a no-op.
func (s *GameService) CancelMatch(ctx context.Context, id string) error {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	g, err := s.store.Load(ctx, id)
	if err != nil {
		return err
	}
	if g.State.Terminal() {
		return nil
	}
	g.Cancel()
	if err := s.store.Save(ctx, g); err != nil {
		return fmt.Errorf("save match: %w", err)
	}
	s.log.WithField("match", id).Info("match cancelled")
	s.bus.PublishGameStateChanged(events.GameStateChanged{GameID: id, State: engine.StateCancelled})
	return nil
}

// publishTransitions emits the state-change and turn events implied by
// the mutation that just happened.
func (s *GameService) publishTransitions(g *engine.Game, prevState engine.State) {
	if g.State != prevState {
		s.bus.PublishGameStateChanged(events.GameStateChanged{GameID: g.ID, State: g.State})
	}
	s.publishTurn(g)
}

// publishTurn emits TurnStarted when a player is expected to act.
func (s *GameService) publishTurn(g *engine.Game) {
	current := g.CurrentPlayer()
	if current == "" {
		return
	}
	s.bus.PublishTurnStarted(events.TurnStarted{
		GameID:   g.ID,
		PlayerID: current,
		TurnSeq:  g.TurnSeq,
	})
}

// finishMatch logs and durably records a completed match.
func (s *GameService) finishMatch(g *engine.Game) {
	winner := ""
	if w := g.MatchWinner(); w != nil {
		winner = w.Name
	}
	s.log.WithFields(logrus.Fields{
		"match":  g.ID,
		"winner": winner,
		"teamA":  g.TeamA.MatchPoints,
		"teamB":  g.TeamB.MatchPoints,
	}).Info("match completed")

	if database.DB != nil {
		matchID, teamA, teamB := g.ID, g.TeamA.MatchPoints, g.TeamB.MatchPoints
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := database.RecordMatchResult(ctx, matchID, winner, teamA, teamB); err != nil {
				s.log.WithError(err).Warn("record match result failed")
			}
		}()
	}
}

// recordMove appends to the durable move log when a database is wired in.
func (s *GameService) recordMove(matchID, playerID string, moveType models.MoveType, detail string) {
	if database.DB == nil {
		return
	}
	move := models.MatchMove{
		MatchID:  matchID,
		PlayerID: playerID,
		Type:     moveType,
		Detail:   detail,
		PlayedAt: time.Now().UTC(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.RecordMatchMove(ctx, move); err != nil {
			s.log.WithError(err).Warn("record move failed")
		}
	}()
}

// seedFromUUID derives a nonzero engine seed from fresh UUID entropy.
func seedFromUUID() uint64 {
	u := uuid.New()
	seed := binary.BigEndian.Uint64(u[:8])
	if seed == 0 {
		seed = binary.BigEndian.Uint64(u[8:])
	}
	return seed
}
