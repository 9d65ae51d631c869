package engine

// BidAction distinguishes the two bidding moves.
type BidAction uint8

const (
	// BidPass declines to call trump.
	BidPass BidAction = iota
	// BidCallTrump names a trump suit and ends the bidding phase.
	BidCallTrump
)

func (a BidAction) String() string {
	switch a {
	case BidPass:
		return "PASS"
	case BidCallTrump:
		return "CALL_TRUMP"
	}
	return "?"
}

// Bid records one bidding move. Suit is meaningful only for BidCallTrump.
type Bid struct {
	PlayerID string    `json:"playerId"`
	Action   BidAction `json:"action"`
	Suit     Suit      `json:"suit"`
}

// PassBid constructs a pass for the given player.
func PassBid(playerID string) Bid {
	return Bid{PlayerID: playerID, Action: BidPass, Suit: SuitNone}
}

// TrumpBid constructs a trump call for the given player and suit.
func TrumpBid(playerID string, suit Suit) Bid {
	return Bid{PlayerID: playerID, Action: BidCallTrump, Suit: suit}
}
