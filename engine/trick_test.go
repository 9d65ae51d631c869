package engine

import "testing"

func play(t *testing.T, tr *Trick, playerID string, c Card) {
	t.Helper()
	if err := tr.AddPlay(playerID, c); err != nil {
		t.Fatalf("add play %s %v: %v", playerID, c, err)
	}
}

func TestTrickHighestLeadSuitWins(t *testing.T) {
	tr := &Trick{}
	play(t, tr, "p1", NewCard(SuitHearts, RankKing))
	play(t, tr, "p2", NewCard(SuitHearts, RankTen))
	play(t, tr, "p3", NewCard(SuitSpades, RankAce))
	play(t, tr, "p4", NewCard(SuitHearts, RankSeven))
	if w := tr.Winner(SuitClubs); w != "p2" {
		t.Fatalf("winner = %s, want p2 (ten outranks king off trump)", w)
	}
}

func TestTrickTrumpBeatsLeadSuit(t *testing.T) {
	tr := &Trick{}
	play(t, tr, "p1", NewCard(SuitHearts, RankAce))
	play(t, tr, "p2", NewCard(SuitClubs, RankSeven))
	play(t, tr, "p3", NewCard(SuitHearts, RankTen))
	play(t, tr, "p4", NewCard(SuitHearts, RankKing))
	if w := tr.Winner(SuitClubs); w != "p2" {
		t.Fatalf("winner = %s, want p2 (lone trump wins)", w)
	}
}

func TestTrickHighestTrumpWins(t *testing.T) {
	tr := &Trick{}
	play(t, tr, "p1", NewCard(SuitClubs, RankAce))
	play(t, tr, "p2", NewCard(SuitClubs, RankNine))
	play(t, tr, "p3", NewCard(SuitClubs, RankJack))
	play(t, tr, "p4", NewCard(SuitClubs, RankTen))
	if w := tr.Winner(SuitClubs); w != "p3" {
		t.Fatalf("winner = %s, want p3 (trump jack is highest)", w)
	}
}

func TestTrickOffSuitNeverWins(t *testing.T) {
	tr := &Trick{}
	play(t, tr, "p1", NewCard(SuitHearts, RankSeven))
	play(t, tr, "p2", NewCard(SuitDiamonds, RankAce))
	play(t, tr, "p3", NewCard(SuitSpades, RankAce))
	play(t, tr, "p4", NewCard(SuitDiamonds, RankTen))
	if w := tr.Winner(SuitClubs); w != "p1" {
		t.Fatalf("winner = %s, want p1 (off-suit cards cannot win)", w)
	}
}

func TestTrickDuplicatePlayRejected(t *testing.T) {
	tr := &Trick{}
	play(t, tr, "p1", NewCard(SuitHearts, RankSeven))
	if err := tr.AddPlay("p1", NewCard(SuitHearts, RankEight)); err != ErrDuplicatePlay {
		t.Fatalf("expected ErrDuplicatePlay, got %v", err)
	}
}

func TestTrickPoints(t *testing.T) {
	tr := &Trick{}
	play(t, tr, "p1", NewCard(SuitHearts, RankAce))  // 11
	play(t, tr, "p2", NewCard(SuitClubs, RankJack))  // 20 in trump
	play(t, tr, "p3", NewCard(SuitHearts, RankNine)) // 0 off trump
	play(t, tr, "p4", NewCard(SuitClubs, RankNine))  // 14 in trump
	if pts := tr.Points(SuitClubs); pts != 45 {
		t.Fatalf("points = %d, want 45", pts)
	}
}
