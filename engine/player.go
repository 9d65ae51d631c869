package engine

// NumPlayers is the fixed seat count. Belot is always played four-handed,
// in two partnerships of players sitting opposite each other.
const NumPlayers = 4

// Player holds one seat's per-hand state. Players are stored by value in
// the Game and referenced by ID everywhere else, so the serialized form has
// no aliasing.
type Player struct {
	ID   string `json:"id"`
	Hand []Card `json:"hand"`

	// DeclaredBela is set once the player has claimed bela this hand;
	// each player may claim at most once per hand.
	DeclaredBela bool `json:"declaredBela"`
}

// HasCard reports whether the player's hand contains the exact card.
func (p *Player) HasCard(card Card) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// removeCard deletes the first occurrence of card from the hand, preserving
// order. Reports whether the card was present.
func (p *Player) removeCard(card Card) bool {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// Team is a partnership of two players. Score is the running point total
// for the current hand (trick points, declarations, bonuses); MatchPoints
// accumulates across hands toward the match target.
type Team struct {
	Name        string    `json:"name"`
	PlayerIDs   [2]string `json:"playerIds"`
	Score       int       `json:"score"`
	MatchPoints int       `json:"matchPoints"`
}

// HasPlayer reports whether the team contains the given player ID.
func (t *Team) HasPlayer(playerID string) bool {
	return t.PlayerIDs[0] == playerID || t.PlayerIDs[1] == playerID
}
