package engine

import "errors"

// Engine error taxonomy. State violations and resource exhaustion indicate a
// caller bug and surface as errors; illegal-but-well-formed player input
// (wrong turn, card not held, suit-following violation) is reported as a
// false return instead, because it originates from untrusted network input.
var (
	// ErrIllegalState is returned when an operation is invoked outside the
	// game state it is valid in (e.g. StartGame on a running match).
	ErrIllegalState = errors.New("operation not allowed in current game state")

	// ErrDeckExhausted is returned when a deal requests more cards than the
	// deck holds. Not player-triggerable under correct use.
	ErrDeckExhausted = errors.New("not enough cards remaining in deck")

	// ErrDuplicatePlay is returned when a player contributes a second card
	// to the same trick.
	ErrDuplicatePlay = errors.New("player already played a card in this trick")

	// ErrDealerMustCall is returned when the dealer attempts to pass after
	// every other player has passed. The dealer must choose a trump suit.
	ErrDealerMustCall = errors.New("dealer must choose a trump suit, passing is not allowed")
)
