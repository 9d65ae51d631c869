package engine

// Declarations: sequences (runs of consecutive ranks in one suit), four of
// a kind, and bela (trump king and queen held together). Sequence and
// four-of-a-kind points are resolved once, immediately after trump is
// called; bela is claimed during play.

// sequencePoints maps a run length to its declaration value. Runs of five
// or more score 100; shorter runs score 50 and 20; below three, nothing.
func sequencePoints(length int) int {
	switch {
	case length >= 5:
		return 100
	case length == 4:
		return 50
	case length == 3:
		return 20
	}
	return 0
}

// fourOfAKindPoints maps a rank to the value of holding all four copies.
// Sevens and eights score nothing.
func fourOfAKindPoints(r Rank) int {
	switch r {
	case RankJack:
		return 200
	case RankNine:
		return 150
	case RankAce, RankTen, RankKing, RankQueen:
		return 100
	}
	return 0
}

// LongestRun returns the length of the longest run of consecutive ranks the
// hand holds in the given suit. Rank adjacency follows the sequence order
// (7 through A), independent of trump.
func LongestRun(hand []Card, suit Suit) int {
	var held [numRanks]bool
	for _, c := range hand {
		if c.Suit == suit {
			held[c.Rank] = true
		}
	}
	longest, run := 0, 0
	for _, r := range Ranks {
		if held[r] {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// BestSequence returns the highest sequence declaration value available in
// the hand, scanning all four suits and taking the best single run.
func BestSequence(hand []Card) int {
	best := 0
	for _, suit := range Suits {
		if pts := sequencePoints(LongestRun(hand, suit)); pts > best {
			best = pts
		}
	}
	return best
}

// FourOfAKindPoints returns the total four-of-a-kind declaration value of
// the hand (one entry per rank held in all four suits).
func FourOfAKindPoints(hand []Card) int {
	var counts [numRanks]int
	for _, c := range hand {
		counts[c.Rank]++
	}
	total := 0
	for _, r := range Ranks {
		if counts[r] == 4 {
			total += fourOfAKindPoints(r)
		}
	}
	return total
}

// DeclarationPoints returns the full declaration value of a hand at trump
// call time: its best sequence plus any four-of-a-kind values.
func DeclarationPoints(hand []Card) int {
	return BestSequence(hand) + FourOfAKindPoints(hand)
}

// IsBelaCard reports whether card is the trump king or trump queen.
func IsBelaCard(card Card, trump Suit) bool {
	return card.Suit == trump && (card.Rank == RankKing || card.Rank == RankQueen)
}

// holdsBelaPartner reports whether the hand contains the other half of the
// trump king/queen pair for the card being played.
func holdsBelaPartner(hand []Card, played Card, trump Suit) bool {
	partner := RankKing
	if played.Rank == RankKing {
		partner = RankQueen
	}
	for _, c := range hand {
		if c.Suit == trump && c.Rank == partner {
			return true
		}
	}
	return false
}
