// Package server exposes matches over HTTP and WebSockets. Clients join a
// match socket to receive state pushes and submit moves; a small REST
// surface handles match creation and inspection.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"

	"github.com/belatro/belatro-server/engine"
	"github.com/belatro/belatro-server/internal/events"
	"github.com/belatro/belatro-server/internal/presence"
	"github.com/belatro/belatro-server/internal/service"
	"github.com/belatro/belatro-server/internal/store"
)

const writeTimeout = 5 * time.Second

// Server ties the game service to connected clients.
type Server struct {
	games    *service.GameService
	presence *presence.Registry
	log      *logrus.Logger

	mu      sync.RWMutex
	clients map[string]map[*client]struct{} // match ID -> sockets
}

// client is one live WebSocket subscription to a match.
type client struct {
	conn     *websocket.Conn
	matchID  string
	playerID string // empty for spectators
}

// New builds a Server.
func New(games *service.GameService, reg *presence.Registry, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.New()
	}
	return &Server{
		games:    games,
		presence: reg,
		log:      log,
		clients:  make(map[string]map[*client]struct{}),
	}
}

// Bind subscribes the server's broadcast hooks to the bus.
func (s *Server) Bind(bus *events.Bus) {
	bus.SubscribeTurnStarted(func(ev events.TurnStarted) { s.broadcast(ev.GameID, "turn_started") })
	bus.SubscribeGameStateChanged(func(ev events.GameStateChanged) { s.broadcast(ev.GameID, "state_changed") })
	bus.SubscribeHandFinished(func(ev events.HandFinished) { s.broadcastHand(ev) })
}

// Handler returns the HTTP mux for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /matches", s.handleCreateMatch)
	mux.HandleFunc("GET /matches/{id}", s.handleGetMatch)
	mux.HandleFunc("DELETE /matches/{id}", s.handleCancelMatch)
	mux.HandleFunc("GET /matches/{id}/ws", s.handleWebSocket)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type createMatchRequest struct {
	TeamA [2]string `json:"teamA"`
	TeamB [2]string `json:"teamB"`
}

func (s *Server) handleCreateMatch(w http.ResponseWriter, r *http.Request) {
	var req createMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	for _, pid := range []string{req.TeamA[0], req.TeamA[1], req.TeamB[0], req.TeamB[1]} {
		if pid == "" {
			http.Error(w, "four player ids required", http.StatusBadRequest)
			return
		}
	}
	g, err := s.games.CreateMatch(r.Context(), req.TeamA, req.TeamB)
	if err != nil {
		s.log.WithError(err).Error("create match failed")
		http.Error(w, "create match failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, publicView(g))
}

func (s *Server) handleGetMatch(w http.ResponseWriter, r *http.Request) {
	g, err := s.games.Match(r.Context(), r.PathValue("id"))
	if err == store.ErrNotFound {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "load match failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, publicView(g))
}

func (s *Server) handleCancelMatch(w http.ResponseWriter, r *http.Request) {
	err := s.games.CancelMatch(r.Context(), r.PathValue("id"))
	if err == store.ErrNotFound {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "cancel match failed", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// clientCommand is one move submitted over the socket.
type clientCommand struct {
	Action      string       `json:"action"` // "pass", "call_trump", "play_card"
	Suit        string       `json:"suit,omitempty"`
	Card        *engine.Card `json:"card,omitempty"`
	DeclareBela bool         `json:"declareBela,omitempty"`
}

// serverMessage is one state push to the socket.
type serverMessage struct {
	Type   string             `json:"type"`
	State  *PrivateGameView   `json:"state,omitempty"`
	Result *engine.HandResult `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	playerID := r.URL.Query().Get("player")

	g, err := s.games.Match(r.Context(), matchID)
	if err == store.ErrNotFound {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "load match failed", http.StatusInternalServerError)
		return
	}
	if playerID != "" && g.FindPlayer(playerID) == nil {
		http.Error(w, "player not in match", http.StatusForbidden)
		return
	}

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket accept failed")
		return
	}

	c := &client{conn: conn, matchID: matchID, playerID: playerID}
	s.register(c)
	if playerID != "" {
		s.presence.Connect(playerID)
	}
	defer func() {
		s.unregister(c)
		if playerID != "" {
			s.presence.Disconnect(playerID)
		}
		conn.Close(websocket.StatusNormalClosure, "bye")
	}()

	// Initial sync so the client starts from the live state.
	s.push(c, serverMessage{Type: "sync", State: viewFor(g, playerID)})

	s.readLoop(r.Context(), c)
}

// readLoop consumes commands until the socket closes.
func (s *Server) readLoop(ctx context.Context, c *client) {
	for {
		var cmd clientCommand
		if err := wsjson.Read(ctx, c.conn, &cmd); err != nil {
			return
		}
		if c.playerID == "" {
			s.push(c, serverMessage{Type: "error", Error: "spectators cannot act"})
			continue
		}
		if err := s.dispatch(ctx, c, cmd); err != nil {
			s.push(c, serverMessage{Type: "error", Error: err.Error()})
		}
	}
}

// dispatch routes one command to the game service. Rejected moves come
// back to the sender as error pushes rather than closing the socket.
func (s *Server) dispatch(ctx context.Context, c *client, cmd clientCommand) error {
	switch cmd.Action {
	case "pass":
		ok, err := s.games.PlaceBid(ctx, c.matchID, c.playerID, engine.PassBid(c.playerID))
		return moveOutcome(ok, err)
	case "call_trump":
		suit, valid := parseSuit(cmd.Suit)
		if !valid {
			s.push(c, serverMessage{Type: "error", Error: "unknown suit"})
			return nil
		}
		ok, err := s.games.PlaceBid(ctx, c.matchID, c.playerID, engine.TrumpBid(c.playerID, suit))
		return moveOutcome(ok, err)
	case "play_card":
		if cmd.Card == nil {
			s.push(c, serverMessage{Type: "error", Error: "card required"})
			return nil
		}
		ok, err := s.games.PlayCard(ctx, c.matchID, c.playerID, *cmd.Card, cmd.DeclareBela)
		return moveOutcome(ok, err)
	}
	s.push(c, serverMessage{Type: "error", Error: "unknown action"})
	return nil
}

// moveOutcome folds the engine's (ok, err) pair into a single error for
// the socket.
func moveOutcome(ok bool, err error) error {
	if err != nil {
		return err
	}
	if !ok {
		return errIllegalMove
	}
	return nil
}

var errIllegalMove = &illegalMoveError{}

type illegalMoveError struct{}

func (*illegalMoveError) Error() string { return "illegal move" }

func parseSuit(raw string) (engine.Suit, bool) {
	for _, suit := range engine.Suits {
		if suit.String() == raw {
			return suit, true
		}
	}
	return engine.SuitNone, false
}

func (s *Server) register(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.clients[c.matchID]
	if !ok {
		set = make(map[*client]struct{})
		s.clients[c.matchID] = set
	}
	set[c] = struct{}{}
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if set, ok := s.clients[c.matchID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(s.clients, c.matchID)
		}
	}
}

// broadcast pushes a per-player view of the current state to every socket
// on the match.
func (s *Server) broadcast(matchID, msgType string) {
	targets := s.snapshot(matchID)
	if len(targets) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	g, err := s.games.Match(ctx, matchID)
	if err != nil {
		s.log.WithError(err).WithField("match", matchID).Warn("broadcast load failed")
		return
	}
	for _, c := range targets {
		s.push(c, serverMessage{Type: msgType, State: viewFor(g, c.playerID)})
	}
}

// broadcastHand pushes a settled hand result to every socket on the match.
func (s *Server) broadcastHand(ev events.HandFinished) {
	result := ev.Result
	for _, c := range s.snapshot(ev.GameID) {
		s.push(c, serverMessage{Type: "hand_finished", Result: &result})
	}
}

func (s *Server) snapshot(matchID string) []*client {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.clients[matchID]
	out := make([]*client, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}

// push writes one message to a socket, dropping it on write failure. The
// read loop notices the dead socket and cleans up.
func (s *Server) push(c *client, msg serverMessage) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, c.conn, msg); err != nil {
		s.log.WithField("match", c.matchID).Debug("socket write failed")
	}
}

func viewFor(g *engine.Game, playerID string) *PrivateGameView {
	view := privateView(g, playerID)
	return &view
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
