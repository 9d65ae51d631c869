package engine

import "testing"

func newStartedGame(t *testing.T, seed uint64) *Game {
	t.Helper()
	g := NewGame("test", [2]string{"a1", "a2"}, [2]string{"b1", "b2"}, seed)
	if err := g.StartGame(); err != nil {
		t.Fatalf("start game: %v", err)
	}
	return g
}

func TestStartGameDeals(t *testing.T) {
	g := newStartedGame(t, 42)
	if g.State != StateBidding {
		t.Fatalf("state = %v, want BIDDING", g.State)
	}
	for i := range g.Players {
		if len(g.Players[i].Hand) != 6 {
			t.Fatalf("player %s holds %d cards, want 6", g.Players[i].ID, len(g.Players[i].Hand))
		}
	}
	if len(g.Talon) != 2 {
		t.Fatalf("talon holds %d cards, want 2", len(g.Talon))
	}
	if g.Deck.Remaining() != 6 {
		t.Fatalf("deck retains %d cards, want 6", g.Deck.Remaining())
	}
	if g.TeamOf(g.DealerID) == nil {
		t.Fatalf("dealer %q is not seated", g.DealerID)
	}
	// The player left of the dealer opens the bidding.
	next := g.Seats[(g.seatIndex(g.DealerID)+1)%NumPlayers]
	if g.CurrentPlayer() != next {
		t.Fatalf("first bidder = %s, want %s", g.CurrentPlayer(), next)
	}
}

func TestStartGameTwiceFails(t *testing.T) {
	g := newStartedGame(t, 42)
	if err := g.StartGame(); err == nil {
		t.Fatal("expected error starting a started game")
	}
}

func TestDeterministicReplay(t *testing.T) {
	g1 := newStartedGame(t, 7)
	g2 := newStartedGame(t, 7)
	if g1.DealerID != g2.DealerID {
		t.Fatalf("dealers differ: %s vs %s", g1.DealerID, g2.DealerID)
	}
	for i := range g1.Players {
		for j := range g1.Players[i].Hand {
			if g1.Players[i].Hand[j] != g2.Players[i].Hand[j] {
				t.Fatal("hands differ under identical seed")
			}
		}
	}
}

func TestBiddingPassThenCall(t *testing.T) {
	g := newStartedGame(t, 42)
	first := g.CurrentPlayer()
	ok, err := g.PlaceBid(first, PassBid(first))
	if err != nil || !ok {
		t.Fatalf("pass: ok=%v err=%v", ok, err)
	}
	second := g.CurrentPlayer()
	if second == first {
		t.Fatal("turn did not advance after pass")
	}
	ok, err = g.PlaceBid(second, TrumpBid(second, SuitDiamonds))
	if err != nil || !ok {
		t.Fatalf("call trump: ok=%v err=%v", ok, err)
	}
	if g.State != StatePlaying {
		t.Fatalf("state = %v, want PLAYING", g.State)
	}
	if g.Trump != SuitDiamonds || g.TrumpCaller != second {
		t.Fatalf("trump = %v by %s, want DIAMONDS by %s", g.Trump, g.TrumpCaller, second)
	}
	for i := range g.Players {
		if len(g.Players[i].Hand) != 8 {
			t.Fatalf("player %s holds %d cards after trump call, want 8", g.Players[i].ID, len(g.Players[i].Hand))
		}
	}
	if g.Deck.Remaining() != 0 {
		t.Fatalf("deck retains %d cards after trump call, want 0", g.Deck.Remaining())
	}
	// Play opens with the original first bidder.
	if g.CurrentPlayer() != first {
		t.Fatalf("first to play = %s, want %s", g.CurrentPlayer(), first)
	}
}

func TestBidWrongTurnRejected(t *testing.T) {
	g := newStartedGame(t, 42)
	wrong := g.TurnOrder[1]
	ok, err := g.PlaceBid(wrong, PassBid(wrong))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("out-of-turn bid was accepted")
	}
	if len(g.Bids) != 0 {
		t.Fatal("out-of-turn bid was recorded")
	}
}

func TestDealerMustCall(t *testing.T) {
	g := newStartedGame(t, 42)
	for i := 0; i < 3; i++ {
		p := g.CurrentPlayer()
		if ok, err := g.PlaceBid(p, PassBid(p)); err != nil || !ok {
			t.Fatalf("pass %d: ok=%v err=%v", i, ok, err)
		}
	}
	if g.CurrentPlayer() != g.DealerID {
		t.Fatalf("expected dealer to bid last, got %s", g.CurrentPlayer())
	}
	if !g.DealerForced() {
		t.Fatal("DealerForced should report true after three passes")
	}
	if _, err := g.PlaceBid(g.DealerID, PassBid(g.DealerID)); err != ErrDealerMustCall {
		t.Fatalf("expected ErrDealerMustCall, got %v", err)
	}
	ok, err := g.PlaceBid(g.DealerID, TrumpBid(g.DealerID, SuitSpades))
	if err != nil || !ok {
		t.Fatalf("forced call: ok=%v err=%v", ok, err)
	}
	if g.State != StatePlaying {
		t.Fatalf("state = %v, want PLAYING", g.State)
	}
}

func TestDuplicateTrumpCallIsNoOp(t *testing.T) {
	g := newStartedGame(t, 42)
	caller := g.CurrentPlayer()
	if ok, err := g.PlaceBid(caller, TrumpBid(caller, SuitHearts)); err != nil || !ok {
		t.Fatalf("call trump: ok=%v err=%v", ok, err)
	}
	seq := g.TurnSeq
	ok, err := g.PlaceBid("b2", TrumpBid("b2", SuitSpades))
	if err != nil || !ok {
		t.Fatalf("duplicate call should be absorbed: ok=%v err=%v", ok, err)
	}
	if g.Trump != SuitHearts {
		t.Fatalf("duplicate call changed trump to %v", g.Trump)
	}
	if g.TurnSeq != seq {
		t.Fatal("duplicate call advanced the turn")
	}
	// A plain pass after bidding closed is still a state violation.
	if _, err := g.PlaceBid("b2", PassBid("b2")); err == nil {
		t.Fatal("expected error passing after trump was called")
	}
}

func TestPlayCardRejections(t *testing.T) {
	g := newRiggedGame(t, SuitClubs)
	setHand(g, "a1", NewCard(SuitHearts, RankAce), NewCard(SuitClubs, RankSeven))
	setHand(g, "b1", NewCard(SuitHearts, RankSeven), NewCard(SuitSpades, RankTen))

	if ok, err := g.PlayCard("b1", NewCard(SuitHearts, RankSeven), false); ok || err != nil {
		t.Fatalf("out-of-turn play: ok=%v err=%v", ok, err)
	}
	if ok, err := g.PlayCard("a1", NewCard(SuitSpades, RankAce), false); ok || err != nil {
		t.Fatalf("card not in hand: ok=%v err=%v", ok, err)
	}
	if ok, err := g.PlayCard("a1", NewCard(SuitHearts, RankAce), false); !ok || err != nil {
		t.Fatalf("lead: ok=%v err=%v", ok, err)
	}
	// b1 holds hearts and must follow; spades is illegal.
	if ok, err := g.PlayCard("b1", NewCard(SuitSpades, RankTen), false); ok || err != nil {
		t.Fatalf("suit violation: ok=%v err=%v", ok, err)
	}
	if ok, err := g.PlayCard("b1", NewCard(SuitHearts, RankSeven), false); !ok || err != nil {
		t.Fatalf("follow suit: ok=%v err=%v", ok, err)
	}
}

func TestBelaScoring(t *testing.T) {
	g := newRiggedGame(t, SuitHearts)
	setHand(g, "a1",
		NewCard(SuitHearts, RankKing),
		NewCard(SuitHearts, RankQueen),
		NewCard(SuitSpades, RankAce),
	)
	// Claiming bela with a non-pair card invalidates the whole move.
	if ok, err := g.PlayCard("a1", NewCard(SuitSpades, RankAce), true); ok || err != nil {
		t.Fatalf("bogus bela claim: ok=%v err=%v", ok, err)
	}
	ok, err := g.PlayCard("a1", NewCard(SuitHearts, RankKing), true)
	if !ok || err != nil {
		t.Fatalf("bela claim: ok=%v err=%v", ok, err)
	}
	if g.TeamA.Score != belaPoints {
		t.Fatalf("team score = %d, want %d", g.TeamA.Score, belaPoints)
	}
	if !g.FindPlayer("a1").DeclaredBela {
		t.Fatal("bela flag not set")
	}
}

func TestFinalizeCallersFall(t *testing.T) {
	g := newRiggedGame(t, SuitClubs)
	g.TrumpCaller = "a1"
	g.TeamA.Score, g.TeamB.Score = 60, 102
	g.TeamATricks, g.TeamBTricks = 3, 5
	g.finalizeHand()
	if !g.LastHand.CallersFell {
		t.Fatal("callers should fall at 60 vs 102")
	}
	if g.TeamA.Score != 0 || g.TeamB.Score != 162 {
		t.Fatalf("scores = %d/%d, want 0/162", g.TeamA.Score, g.TeamB.Score)
	}
	if g.State != StateRoundEnded {
		t.Fatalf("state = %v, want ROUND_ENDED", g.State)
	}
	if w := g.RoundWinner(); w == nil || w.Name != "B" {
		t.Fatalf("round winner = %v, want team B", w)
	}
}

func TestFinalizeExactTieFellsCallers(t *testing.T) {
	g := newRiggedGame(t, SuitClubs)
	g.TrumpCaller = "a1"
	g.TeamA.Score, g.TeamB.Score = 81, 81
	g.TeamATricks, g.TeamBTricks = 4, 4
	g.finalizeHand()
	if !g.LastHand.CallersFell {
		t.Fatal("an exact tie must fell the callers")
	}
	if g.TeamB.Score != 162 {
		t.Fatalf("defenders scooped %d, want 162", g.TeamB.Score)
	}
}

func TestFinalizeCapot(t *testing.T) {
	g := newRiggedGame(t, SuitClubs)
	g.TrumpCaller = "a1"
	g.TeamA.Score, g.TeamB.Score = 162, 20
	g.TeamATricks, g.TeamBTricks = 8, 0
	g.finalizeHand()
	if g.LastHand.CapotTeam != "A" {
		t.Fatalf("capot team = %q, want A", g.LastHand.CapotTeam)
	}
	// Winners take the bonus plus the shut-out team's banked points.
	if g.TeamA.Score != 162+90+20 || g.TeamB.Score != 0 {
		t.Fatalf("scores = %d/%d, want 272/0", g.TeamA.Score, g.TeamB.Score)
	}
}

func TestMatchCompletesAtTarget(t *testing.T) {
	g := newRiggedGame(t, SuitClubs)
	g.TrumpCaller = "a1"
	g.TeamA.MatchPoints = 900
	g.TeamA.Score, g.TeamB.Score = 162, 0
	g.TeamATricks, g.TeamBTricks = 8, 0
	g.finalizeHand()
	if g.State != StateCompleted {
		t.Fatalf("state = %v, want COMPLETED", g.State)
	}
	if w := g.MatchWinner(); w == nil || w.Name != "A" {
		t.Fatalf("winner = %v, want team A", w)
	}
}

func TestMatchTieAtTargetContinues(t *testing.T) {
	g := newRiggedGame(t, SuitClubs)
	g.TrumpCaller = "a1"
	g.TeamA.MatchPoints = 1000
	g.TeamB.MatchPoints = 1038
	g.TeamA.Score, g.TeamB.Score = 100, 62
	g.TeamATricks, g.TeamBTricks = 5, 3
	g.finalizeHand()
	if g.State != StateRoundEnded {
		t.Fatalf("tied at %d, state = %v, want ROUND_ENDED", g.TeamA.MatchPoints, g.State)
	}
	if g.MatchWinner() != nil {
		t.Fatal("tied match has no winner yet")
	}
}

func TestCancel(t *testing.T) {
	g := newStartedGame(t, 42)
	g.Cancel()
	if g.State != StateCancelled {
		t.Fatalf("state = %v, want CANCELLED", g.State)
	}
	g.Cancel() // no-op on a terminal game
	if g.State != StateCancelled {
		t.Fatalf("state = %v after second cancel", g.State)
	}
	if _, err := g.PlayCard("a1", NewCard(SuitHearts, RankAce), false); err == nil {
		t.Fatal("expected error playing into a cancelled game")
	}
}

// playHandOut drives a started game through bidding and all eight tricks
// using the first legal card each turn.
func playHandOut(t *testing.T, g *Game) {
	t.Helper()
	caller := g.CurrentPlayer()
	if ok, err := g.PlaceBid(caller, TrumpBid(caller, SuitHearts)); err != nil || !ok {
		t.Fatalf("call trump: ok=%v err=%v", ok, err)
	}
	for g.State == StatePlaying {
		p := g.CurrentPlayer()
		legal := g.LegalMoves(p)
		if len(legal) == 0 {
			t.Fatalf("player %s has no legal moves in PLAYING", p)
		}
		if ok, err := g.PlayCard(p, legal[0], false); err != nil || !ok {
			t.Fatalf("play %v by %s: ok=%v err=%v", legal[0], p, ok, err)
		}
	}
}

func TestFullHandAccounting(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		g := newStartedGame(t, seed)
		playHandOut(t, g)

		if g.State != StateRoundEnded {
			t.Fatalf("seed %d: state = %v, want ROUND_ENDED", seed, g.State)
		}
		if len(g.CompletedTricks) != TricksPerHand {
			t.Fatalf("seed %d: %d tricks completed", seed, len(g.CompletedTricks))
		}
		if g.TeamATricks+g.TeamBTricks != TricksPerHand {
			t.Fatalf("seed %d: trick counts %d+%d", seed, g.TeamATricks, g.TeamBTricks)
		}
		for i := range g.Players {
			if len(g.Players[i].Hand) != 0 {
				t.Fatalf("seed %d: player %s still holds cards", seed, g.Players[i].ID)
			}
		}
		// Card points plus the last-trick bonus always total 162; whatever
		// the teams banked beyond that is declarations and, after a capot,
		// the bonus.
		want := 162 + g.TeamADeclarations + g.TeamBDeclarations
		if g.LastHand.CapotTeam != "" {
			want += 90
		}
		got := g.TeamA.Score + g.TeamB.Score
		if got != want {
			t.Fatalf("seed %d: scores total %d, want %d", seed, got, want)
		}
		if g.TeamA.MatchPoints != g.TeamA.Score || g.TeamB.MatchPoints != g.TeamB.Score {
			t.Fatalf("seed %d: match points not banked", seed)
		}
	}
}

func TestStartNextHandRotatesDealer(t *testing.T) {
	g := newStartedGame(t, 3)
	playHandOut(t, g)

	prevDealer := g.DealerID
	if err := g.StartNextHand(); err != nil {
		t.Fatalf("start next hand: %v", err)
	}
	wantDealer := g.Seats[(g.seatIndex(prevDealer)+1)%NumPlayers]
	if g.DealerID != wantDealer {
		t.Fatalf("dealer = %s, want %s", g.DealerID, wantDealer)
	}
	if g.State != StateBidding {
		t.Fatalf("state = %v, want BIDDING", g.State)
	}
	if g.TeamA.Score != 0 || g.TeamB.Score != 0 {
		t.Fatal("hand scores not reset")
	}
	if g.TeamA.MatchPoints == 0 && g.TeamB.MatchPoints == 0 {
		t.Fatal("match points were reset between hands")
	}
	for i := range g.Players {
		if len(g.Players[i].Hand) != 6 {
			t.Fatalf("player %s holds %d cards, want 6", g.Players[i].ID, len(g.Players[i].Hand))
		}
		if g.Players[i].DeclaredBela {
			t.Fatal("bela flag not reset between hands")
		}
	}
}

func TestStartNextHandRequiresRoundEnded(t *testing.T) {
	g := newStartedGame(t, 3)
	if err := g.StartNextHand(); err == nil {
		t.Fatal("expected error starting the next hand mid-bidding")
	}
}
