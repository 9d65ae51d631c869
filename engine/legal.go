package engine

// LegalMoves returns the cards the player may legally play right now.
// When leading, the whole hand is legal. Otherwise the player must follow
// the lead suit if able; failing that, must play trump if a trump has
// already appeared in the trick and the player holds one; failing that,
// any card goes. Returns nil outside the Playing state or when it is not
// the player's turn.
func (g *Game) LegalMoves(playerID string) []Card {
	if g.State != StatePlaying || playerID != g.CurrentPlayer() {
		return nil
	}
	player := g.FindPlayer(playerID)
	if player == nil {
		return nil
	}
	hand := player.Hand

	lead := g.CurrentTrick.LeadSuit()
	if lead == SuitNone {
		return append([]Card(nil), hand...)
	}

	if follows := cardsOfSuit(hand, lead); len(follows) > 0 {
		return follows
	}
	if g.CurrentTrick.ContainsSuit(g.Trump) {
		if trumps := cardsOfSuit(hand, g.Trump); len(trumps) > 0 {
			return trumps
		}
	}
	return append([]Card(nil), hand...)
}

func cardsOfSuit(hand []Card, suit Suit) []Card {
	var out []Card
	for _, c := range hand {
		if c.Suit == suit {
			out = append(out, c)
		}
	}
	return out
}
