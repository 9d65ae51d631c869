package engine

// Rank ordering and point tables. These two tables are the sole source of
// truth for both trick-winner comparison and point totals; the 162-point
// round invariant (152 card points + 10 last-trick bonus) follows from them.

// nonTrumpOrder ranks low to high: 7, 8, 9, J, Q, K, 10, A.
var nonTrumpOrder = [numRanks]int{
	RankSeven: 1,
	RankEight: 2,
	RankNine:  3,
	RankJack:  4,
	RankQueen: 5,
	RankKing:  6,
	RankTen:   7,
	RankAce:   8,
}

// trumpOrder ranks low to high: 7, 8, Q, K, 10, A, 9, J.
var trumpOrder = [numRanks]int{
	RankSeven: 1,
	RankEight: 2,
	RankQueen: 3,
	RankKing:  4,
	RankTen:   5,
	RankAce:   6,
	RankNine:  7,
	RankJack:  8,
}

// sequenceOrder ranks ascending for run detection: 7, 8, 9, 10, J, Q, K, A.
var sequenceOrder = [numRanks]int{
	RankSeven: 1,
	RankEight: 2,
	RankNine:  3,
	RankTen:   4,
	RankJack:  5,
	RankQueen: 6,
	RankKing:  7,
	RankAce:   8,
}

// RankOrder returns the strength of r under the trump or non-trump total
// order. Higher wins.
func RankOrder(r Rank, trump bool) int {
	if trump {
		return trumpOrder[r]
	}
	return nonTrumpOrder[r]
}

// SequenceOrder returns the position of r in the ascending sequence order
// used for declaration run detection.
func SequenceOrder(r Rank) int { return sequenceOrder[r] }

// CardPoints returns the trick point value of rank r, trump-aware.
func CardPoints(r Rank, trump bool) int {
	switch r {
	case RankJack:
		if trump {
			return 20
		}
		return 2
	case RankNine:
		if trump {
			return 14
		}
		return 0
	case RankAce:
		return 11
	case RankTen:
		return 10
	case RankKing:
		return 4
	case RankQueen:
		return 3
	}
	return 0
}
