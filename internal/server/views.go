package server

import "github.com/belatro/belatro-server/engine"

// TeamView is the public slice of a team's state.
type TeamView struct {
	Name        string    `json:"name"`
	Players     [2]string `json:"players"`
	HandScore   int       `json:"handScore"`
	MatchPoints int       `json:"matchPoints"`
}

// PublicGameView is what every spectator and player may see: no hands,
// no deck, no talon.
type PublicGameView struct {
	ID            string        `json:"id"`
	State         string        `json:"state"`
	TeamA         TeamView      `json:"teamA"`
	TeamB         TeamView      `json:"teamB"`
	Dealer        string        `json:"dealer"`
	CurrentPlayer string        `json:"currentPlayer,omitempty"`
	Trump         string        `json:"trump,omitempty"`
	TrumpCaller   string        `json:"trumpCaller,omitempty"`
	CurrentTrick  []engine.Play `json:"currentTrick"`
	TricksPlayed  int           `json:"tricksPlayed"`
	HandSizes     map[string]int `json:"handSizes"`

	LastHand *engine.HandResult `json:"lastHand,omitempty"`
	Winner   string             `json:"winner,omitempty"`
}

// PrivateGameView extends the public view with the receiving player's own
// hand and current legal moves.
type PrivateGameView struct {
	PublicGameView
	Hand       []engine.Card `json:"hand"`
	LegalMoves []engine.Card `json:"legalMoves"`
}

// publicView projects a game into its spectator-safe form.
func publicView(g *engine.Game) PublicGameView {
	view := PublicGameView{
		ID:    g.ID,
		State: g.State.String(),
		TeamA: TeamView{
			Name:        g.TeamA.Name,
			Players:     g.TeamA.PlayerIDs,
			HandScore:   g.TeamA.Score,
			MatchPoints: g.TeamA.MatchPoints,
		},
		TeamB: TeamView{
			Name:        g.TeamB.Name,
			Players:     g.TeamB.PlayerIDs,
			HandScore:   g.TeamB.Score,
			MatchPoints: g.TeamB.MatchPoints,
		},
		Dealer:        g.DealerID,
		CurrentPlayer: g.CurrentPlayer(),
		CurrentTrick:  append([]engine.Play(nil), g.CurrentTrick.Plays...),
		TricksPlayed:  len(g.CompletedTricks),
		HandSizes:     make(map[string]int, len(g.Players)),
		LastHand:      g.LastHand,
	}
	if g.TrumpCalled {
		view.Trump = g.Trump.String()
		view.TrumpCaller = g.TrumpCaller
	}
	for i := range g.Players {
		view.HandSizes[g.Players[i].ID] = len(g.Players[i].Hand)
	}
	if w := g.MatchWinner(); w != nil {
		view.Winner = w.Name
	}
	return view
}

// privateView projects a game for one player's eyes.
func privateView(g *engine.Game, playerID string) PrivateGameView {
	view := PrivateGameView{PublicGameView: publicView(g)}
	if p := g.FindPlayer(playerID); p != nil {
		view.Hand = append([]engine.Card(nil), p.Hand...)
	}
	view.LegalMoves = g.LegalMoves(playerID)
	return view
}
