package engine

import "fmt"

// State is the lifecycle phase of a game.
type State uint8

const (
	// StateInitialized is the created-but-not-started phase.
	StateInitialized State = iota
	// StateBidding covers trump selection.
	StateBidding
	// StatePlaying covers the eight tricks of a hand.
	StatePlaying
	// StateRoundEnded sits between hands of a multi-hand match.
	StateRoundEnded
	// StateCompleted is terminal: one team reached the match target.
	StateCompleted
	// StateCancelled is terminal: the match was abandoned.
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "INITIALIZED"
	case StateBidding:
		return "BIDDING"
	case StatePlaying:
		return "PLAYING"
	case StateRoundEnded:
		return "ROUND_ENDED"
	case StateCompleted:
		return "COMPLETED"
	case StateCancelled:
		return "CANCELLED"
	}
	return "?"
}

// Terminal reports whether s is a final state.
func (s State) Terminal() bool { return s == StateCompleted || s == StateCancelled }

const (
	// TricksPerHand is the number of tricks in one hand.
	TricksPerHand = 8
	// initialDealSize is the per-player deal before bidding.
	initialDealSize = 6
	// fullHandSize is the per-player hand once trump is called.
	fullHandSize = 8
	// talonSize is the face-down reserve set aside before bidding.
	talonSize = 2
	// lastTrickBonus is awarded to the winner of the final trick.
	lastTrickBonus = 10
	// belaPoints is the value of declaring the trump king/queen pair.
	belaPoints = 20
	// capotBonus is awarded to a team that takes all eight tricks.
	capotBonus = 90
	// MatchTarget is the match score a team must reach to win.
	MatchTarget = 1001
)

// HandResult summarizes one finished hand.
type HandResult struct {
	TeamAScore  int    `json:"teamAScore"`
	TeamBScore  int    `json:"teamBScore"`
	TeamATricks int    `json:"teamATricks"`
	TeamBTricks int    `json:"teamBTricks"`
	TrumpCaller string `json:"trumpCaller"`
	CallersFell bool   `json:"callersFell"`
	CapotTeam   string `json:"capotTeam,omitempty"`
}

// Game is the complete state of one Belot match. It is a flat value: no
// interior pointers other than slices, so it serializes to JSON and back
// without loss. All mutating methods assume the caller serializes access.
type Game struct {
	ID    string `json:"id"`
	State State  `json:"state"`

	TeamA Team `json:"teamA"`
	TeamB Team `json:"teamB"`

	// Players holds the four seats. Seats is the fixed clockwise seating
	// order (teams alternating); TurnOrder is Seats re-rooted at the
	// current trick leader and rotates as tricks resolve.
	Players   []Player `json:"players"`
	Seats     []string `json:"seats"`
	TurnOrder []string `json:"turnOrder"`

	DealerID string `json:"dealerId"`

	Deck  *Deck  `json:"deck"`
	Talon []Card `json:"talon"`

	Trump       Suit   `json:"trump"`
	TrumpCalled bool   `json:"trumpCalled"`
	TrumpCaller string `json:"trumpCaller"`
	Bids        []Bid  `json:"bids"`

	CurrentTrick    Trick   `json:"currentTrick"`
	CompletedTricks []Trick `json:"completedTricks"`
	TeamATricks     int     `json:"teamATricks"`
	TeamBTricks     int     `json:"teamBTricks"`

	// Declaration points granted to each team at trump call, already
	// folded into the team Score. Kept separately for result reporting.
	TeamADeclarations int `json:"teamADeclarations"`
	TeamBDeclarations int `json:"teamBDeclarations"`

	// TurnSeq increments every time the player to act changes. External
	// schedulers use it to detect stale turn deadlines.
	TurnSeq uint64 `json:"turnSeq"`

	// LastHand is the result of the most recently finished hand, set when
	// the state moves to RoundEnded or Completed.
	LastHand *HandResult `json:"lastHand,omitempty"`

	// RNG is the xorshift64 state driving all randomness.
	RNG uint64 `json:"rng"`
}

// NewGame creates a game in the Initialized state. Seating alternates
// teams clockwise: teamA[0], teamB[0], teamA[1], teamB[1]. The seed must
// be nonzero; a given (players, seed) pair replays identically.
func NewGame(id string, teamA, teamB [2]string, seed uint64) *Game {
	if seed == 0 {
		seed = 0x9E3779B97F4A7C15
	}
	seats := []string{teamA[0], teamB[0], teamA[1], teamB[1]}
	players := make([]Player, NumPlayers)
	for i, pid := range seats {
		players[i] = Player{ID: pid}
	}
	return &Game{
		ID:      id,
		State:   StateInitialized,
		TeamA:   Team{Name: "A", PlayerIDs: teamA},
		TeamB:   Team{Name: "B", PlayerIDs: teamB},
		Players: players,
		Seats:   seats,
		Trump:   SuitNone,
		RNG:     seed,
	}
}

// nextRand advances the xorshift64 state and returns the next value.
func (g *Game) nextRand() uint64 {
	g.RNG ^= g.RNG << 13
	g.RNG ^= g.RNG >> 7
	g.RNG ^= g.RNG << 17
	return g.RNG
}

// randN returns a uniform-ish value in [0, n). n must be > 0.
func (g *Game) randN(n uint64) uint64 { return g.nextRand() % n }

// FindPlayer returns the player with the given ID, or nil.
func (g *Game) FindPlayer(playerID string) *Player {
	for i := range g.Players {
		if g.Players[i].ID == playerID {
			return &g.Players[i]
		}
	}
	return nil
}

// TeamOf returns the team the player belongs to, or nil.
func (g *Game) TeamOf(playerID string) *Team {
	if g.TeamA.HasPlayer(playerID) {
		return &g.TeamA
	}
	if g.TeamB.HasPlayer(playerID) {
		return &g.TeamB
	}
	return nil
}

// opposingTeam returns the other team.
func (g *Game) opposingTeam(t *Team) *Team {
	if t == &g.TeamA {
		return &g.TeamB
	}
	return &g.TeamA
}

// CurrentPlayer returns the ID of the player expected to act, or "" when
// no player action is pending (Initialized, RoundEnded, terminal states).
func (g *Game) CurrentPlayer() string {
	switch g.State {
	case StateBidding:
		// Bidding proceeds around the table; every recorded bid during
		// this phase is a pass, so the bid count indexes the next bidder.
		if len(g.Bids) < NumPlayers {
			return g.TurnOrder[len(g.Bids)]
		}
	case StatePlaying:
		if len(g.CurrentTrick.Plays) < NumPlayers {
			return g.TurnOrder[len(g.CurrentTrick.Plays)]
		}
	}
	return ""
}

// DealerForced reports whether bidding has reached the dealer with every
// other player having passed, leaving the dealer obligated to call trump.
func (g *Game) DealerForced() bool {
	return g.State == StateBidding && len(g.Bids) == NumPlayers-1
}

// StartGame selects a dealer, deals the opening hands and opens bidding.
// Returns ErrIllegalState unless the game is Initialized.
func (g *Game) StartGame() error {
	if g.State != StateInitialized {
		return fmt.Errorf("start game: %w", ErrIllegalState)
	}
	g.DealerID = g.Seats[g.randN(NumPlayers)]
	return g.beginHand()
}

// StartNextHand rotates the dealer clockwise and deals the next hand.
// Returns ErrIllegalState unless the previous hand just ended.
func (g *Game) StartNextHand() error {
	if g.State != StateRoundEnded {
		return fmt.Errorf("start next hand: %w", ErrIllegalState)
	}
	g.DealerID = g.Seats[(g.seatIndex(g.DealerID)+1)%NumPlayers]
	return g.beginHand()
}

// beginHand resets per-hand state, deals six cards to each seat and a
// two-card talon, and opens bidding with the player left of the dealer.
func (g *Game) beginHand() error {
	g.Deck = NewDeck()
	g.Deck.shuffle(g.randN)

	g.Trump = SuitNone
	g.TrumpCalled = false
	g.TrumpCaller = ""
	g.Bids = nil
	g.CurrentTrick = Trick{}
	g.CompletedTricks = nil
	g.TeamATricks = 0
	g.TeamBTricks = 0
	g.TeamADeclarations = 0
	g.TeamBDeclarations = 0
	g.TeamA.Score = 0
	g.TeamB.Score = 0
	g.LastHand = nil

	// Bidding and the first trick both start left of the dealer.
	first := (g.seatIndex(g.DealerID) + 1) % NumPlayers
	g.TurnOrder = rotate(g.Seats, first)

	for i := range g.Players {
		g.Players[i].DeclaredBela = false
		hand, err := g.Deck.Deal(initialDealSize)
		if err != nil {
			return err
		}
		g.Players[i].Hand = hand
	}
	talon, err := g.Deck.Deal(talonSize)
	if err != nil {
		return err
	}
	g.Talon = talon

	g.State = StateBidding
	g.TurnSeq++
	return nil
}

// seatIndex returns the seating position of a player ID.
func (g *Game) seatIndex(playerID string) int {
	for i, pid := range g.Seats {
		if pid == playerID {
			return i
		}
	}
	return 0
}

// rotate returns a copy of order re-rooted so order[start] comes first.
func rotate(order []string, start int) []string {
	n := len(order)
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = order[(start+i)%n]
	}
	return out
}

// PlaceBid applies a bidding move. Returns (false, nil) when the move is
// well-formed but illegal (not the player's turn, invalid suit); move
// rejection carries no error because it originates from untrusted input.
// A trump call arriving after trump is already set is accepted as a no-op.
// The dealer cannot pass once everyone else has; that returns
// ErrDealerMustCall.
func (g *Game) PlaceBid(playerID string, bid Bid) (bool, error) {
	// Late duplicate trump calls are absorbed silently even if the state
	// has already moved on to Playing.
	if g.TrumpCalled && bid.Action == BidCallTrump {
		return true, nil
	}
	if g.State != StateBidding {
		return false, fmt.Errorf("place bid: %w", ErrIllegalState)
	}
	if playerID != g.CurrentPlayer() {
		return false, nil
	}

	switch bid.Action {
	case BidPass:
		if g.DealerForced() {
			return false, ErrDealerMustCall
		}
		g.Bids = append(g.Bids, PassBid(playerID))
		g.TurnSeq++
		return true, nil
	case BidCallTrump:
		if !bid.Suit.Valid() {
			return false, nil
		}
		g.Bids = append(g.Bids, TrumpBid(playerID, bid.Suit))
		g.callTrump(playerID, bid.Suit)
		return true, nil
	}
	return false, nil
}

// callTrump fixes the trump suit, deals the remaining cards and resolves
// sequence and four-of-a-kind declarations, then opens play.
func (g *Game) callTrump(playerID string, suit Suit) {
	g.Trump = suit
	g.TrumpCalled = true
	g.TrumpCaller = playerID

	// The talon goes back on top of the deck; everyone is topped up to a
	// full hand of eight.
	g.Deck.PushFront(g.Talon)
	g.Talon = nil
	for i := range g.Players {
		extra, err := g.Deck.Deal(fullHandSize - len(g.Players[i].Hand))
		if err != nil {
			// Unreachable: 32 cards always cover four hands of eight.
			panic(err)
		}
		g.Players[i].Hand = append(g.Players[i].Hand, extra...)
	}

	g.resolveDeclarations()

	g.State = StatePlaying
	g.TurnSeq++
}

// resolveDeclarations runs the declaration competition: each player's hand
// value (best sequence plus fours of a kind) is summed per team, and the
// strictly higher team banks all of its players' points. An exact nonzero
// tie lets both teams bank theirs.
func (g *Game) resolveDeclarations() {
	var teamA, teamB int
	for i := range g.Players {
		pts := DeclarationPoints(g.Players[i].Hand)
		if g.TeamA.HasPlayer(g.Players[i].ID) {
			teamA += pts
		} else {
			teamB += pts
		}
	}
	switch {
	case teamA > teamB:
		g.TeamADeclarations = teamA
	case teamB > teamA:
		g.TeamBDeclarations = teamB
	case teamA > 0:
		g.TeamADeclarations = teamA
		g.TeamBDeclarations = teamB
	}
	g.TeamA.Score += g.TeamADeclarations
	g.TeamB.Score += g.TeamBDeclarations
}

// PlayCard applies a card play for the given player, optionally claiming
// bela alongside it. Returns (false, nil) for any well-formed but illegal
// move: wrong turn, card not held, or a card outside the legal set.
// Claiming bela with a card that does not support it invalidates the whole
// move rather than just the claim.
func (g *Game) PlayCard(playerID string, card Card, declareBela bool) (bool, error) {
	if g.State != StatePlaying {
		return false, fmt.Errorf("play card: %w", ErrIllegalState)
	}
	if playerID != g.CurrentPlayer() {
		return false, nil
	}
	player := g.FindPlayer(playerID)
	if player == nil || !player.HasCard(card) {
		return false, nil
	}
	if !containsCard(g.LegalMoves(playerID), card) {
		return false, nil
	}
	if declareBela {
		if player.DeclaredBela || !IsBelaCard(card, g.Trump) || !holdsBelaPartner(player.Hand, card, g.Trump) {
			return false, nil
		}
	}

	player.removeCard(card)
	if err := g.CurrentTrick.AddPlay(playerID, card); err != nil {
		return false, err
	}
	if declareBela {
		player.DeclaredBela = true
		g.TeamOf(playerID).Score += belaPoints
	}

	if g.CurrentTrick.IsComplete() {
		g.completeTrick()
	} else {
		g.TurnSeq++
	}
	return true, nil
}

// completeTrick scores the finished trick, hands the lead to its winner
// and, after the eighth trick, settles the hand.
func (g *Game) completeTrick() {
	winnerID := g.CurrentTrick.Winner(g.Trump)
	winners := g.TeamOf(winnerID)
	winners.Score += g.CurrentTrick.Points(g.Trump)
	if winners == &g.TeamA {
		g.TeamATricks++
	} else {
		g.TeamBTricks++
	}

	g.CompletedTricks = append(g.CompletedTricks, g.CurrentTrick)
	g.CurrentTrick = Trick{}

	if len(g.CompletedTricks) == TricksPerHand {
		winners.Score += lastTrickBonus
		g.finalizeHand()
		return
	}

	g.TurnOrder = rotate(g.TurnOrder, indexOf(g.TurnOrder, winnerID))
	g.TurnSeq++
}

// finalizeHand applies the capot bonus and the callers-fell rule, records
// the hand result, banks match points and either ends the match or parks
// the game between hands.
func (g *Game) finalizeHand() {
	// A team that took every trick earns the capot bonus; the shut-out
	// team forfeits whatever it had banked (declarations, bela), which
	// transfers to the winners.
	capotTeam := ""
	if g.TeamATricks == TricksPerHand {
		g.TeamA.Score += capotBonus + g.TeamB.Score
		g.TeamB.Score = 0
		capotTeam = g.TeamA.Name
	} else if g.TeamBTricks == TricksPerHand {
		g.TeamB.Score += capotBonus + g.TeamA.Score
		g.TeamA.Score = 0
		capotTeam = g.TeamB.Name
	}

	// Callers fall when they fail to out-score the defenders; the
	// defenders scoop every point of the hand.
	callers := g.TeamOf(g.TrumpCaller)
	defenders := g.opposingTeam(callers)
	fell := callers.Score <= defenders.Score
	if fell {
		defenders.Score += callers.Score
		callers.Score = 0
	}

	g.LastHand = &HandResult{
		TeamAScore:  g.TeamA.Score,
		TeamBScore:  g.TeamB.Score,
		TeamATricks: g.TeamATricks,
		TeamBTricks: g.TeamBTricks,
		TrumpCaller: g.TrumpCaller,
		CallersFell: fell,
		CapotTeam:   capotTeam,
	}

	g.TeamA.MatchPoints += g.TeamA.Score
	g.TeamB.MatchPoints += g.TeamB.Score

	// First team past the target wins; a tie at or past the target is
	// settled by further hands.
	if (g.TeamA.MatchPoints >= MatchTarget || g.TeamB.MatchPoints >= MatchTarget) &&
		g.TeamA.MatchPoints != g.TeamB.MatchPoints {
		g.State = StateCompleted
	} else {
		g.State = StateRoundEnded
	}
	g.TurnSeq++
}

// RoundWinner returns the team that out-scored the other in the most
// recently settled hand. Nil before any hand settles or on an exact tie.
func (g *Game) RoundWinner() *Team {
	if g.LastHand == nil {
		return nil
	}
	switch {
	case g.LastHand.TeamAScore > g.LastHand.TeamBScore:
		return &g.TeamA
	case g.LastHand.TeamBScore > g.LastHand.TeamAScore:
		return &g.TeamB
	}
	return nil
}

// MatchWinner returns the winning team once the game is Completed, else nil.
func (g *Game) MatchWinner() *Team {
	if g.State != StateCompleted {
		return nil
	}
	if g.TeamA.MatchPoints > g.TeamB.MatchPoints {
		return &g.TeamA
	}
	return &g.TeamB
}

// Cancel abandons the game. A no-op on an already terminal game.
func (g *Game) Cancel() {
	if g.State.Terminal() {
		return
	}
	g.State = StateCancelled
	g.TurnSeq++
}

func indexOf(order []string, playerID string) int {
	for i, pid := range order {
		if pid == playerID {
			return i
		}
	}
	return 0
}

func containsCard(cards []Card, card Card) bool {
	for _, c := range cards {
		if c == card {
			return true
		}
	}
	return false
}
