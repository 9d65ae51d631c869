package engine

// Play records one card contributed to a trick, tagged with the player who
// played it. Plays are stored in play order.
type Play struct {
	PlayerID string `json:"playerId"`
	Card     Card   `json:"card"`
}

// Trick collects the cards played in one round of four plays. Winner
// resolution depends on the trump suit, which is passed in at evaluation
// time rather than stored.
type Trick struct {
	Plays []Play `json:"plays"`
}

// AddPlay appends a card for the given player. Returns ErrDuplicatePlay if
// the player already contributed to this trick.
func (t *Trick) AddPlay(playerID string, card Card) error {
	for _, p := range t.Plays {
		if p.PlayerID == playerID {
			return ErrDuplicatePlay
		}
	}
	t.Plays = append(t.Plays, Play{PlayerID: playerID, Card: card})
	return nil
}

// IsComplete reports whether all four players have played.
func (t *Trick) IsComplete() bool { return len(t.Plays) == NumPlayers }

// LeadSuit returns the suit of the first card played, or SuitNone if the
// trick is empty.
func (t *Trick) LeadSuit() Suit {
	if len(t.Plays) == 0 {
		return SuitNone
	}
	return t.Plays[0].Card.Suit
}

// ContainsSuit reports whether any played card is of the given suit.
func (t *Trick) ContainsSuit(suit Suit) bool {
	for _, p := range t.Plays {
		if p.Card.Suit == suit {
			return true
		}
	}
	return false
}

// Winner returns the player ID of the winning play under the given trump
// suit. The winner is tracked incrementally: a candidate is displaced only
// by a trump when it is not itself a trump, by a higher trump when it is,
// or by a higher card of the lead suit when neither card is trump.
// Returns "" for an empty trick.
func (t *Trick) Winner(trump Suit) string {
	if len(t.Plays) == 0 {
		return ""
	}
	lead := t.Plays[0].Card.Suit
	best := t.Plays[0]
	for _, p := range t.Plays[1:] {
		if beats(p.Card, best.Card, trump, lead) {
			best = p
		}
	}
	return best.PlayerID
}

// beats reports whether challenger wins over incumbent given trump and lead
// suits. The incumbent retains on any tie in category.
func beats(challenger, incumbent Card, trump, lead Suit) bool {
	if challenger.Suit == trump {
		if incumbent.Suit != trump {
			return true
		}
		return RankOrder(challenger.Rank, true) > RankOrder(incumbent.Rank, true)
	}
	if incumbent.Suit == trump {
		return false
	}
	if challenger.Suit != lead {
		return false
	}
	if incumbent.Suit != lead {
		return true
	}
	return RankOrder(challenger.Rank, false) > RankOrder(incumbent.Rank, false)
}

// Points sums the card point values of the trick under the given trump suit.
func (t *Trick) Points(trump Suit) int {
	total := 0
	for _, p := range t.Plays {
		total += CardPoints(p.Card.Rank, p.Card.Suit == trump)
	}
	return total
}
