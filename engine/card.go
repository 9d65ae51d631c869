// Package engine implements the Belot card game rules.
//
// The package is self-contained and dependency-free: the whole match state
// lives in a flat, JSON-serializable Game value so it can round-trip through
// an external key-value store unchanged. All randomness (dealer selection,
// shuffling) flows through an embedded xorshift64 generator seeded at game
// creation, so a given seed replays identically.
package engine

import "fmt"

// Suit identifies one of the four card suits.
type Suit uint8

const (
	SuitHearts Suit = iota
	SuitDiamonds
	SuitClubs
	SuitSpades

	// SuitNone marks the absence of a suit (trump not yet called).
	SuitNone Suit = 0xFF
)

// Suits lists the four real suits in deck order.
var Suits = [4]Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

func (s Suit) String() string {
	switch s {
	case SuitHearts:
		return "HEARTS"
	case SuitDiamonds:
		return "DIAMONDS"
	case SuitClubs:
		return "CLUBS"
	case SuitSpades:
		return "SPADES"
	case SuitNone:
		return "NONE"
	}
	return "?"
}

// Valid reports whether s is one of the four real suits.
func (s Suit) Valid() bool { return s <= SuitSpades }

// Rank identifies a card rank. The 32-card Belot deck runs Seven through Ace.
type Rank uint8

const (
	RankSeven Rank = iota
	RankEight
	RankNine
	RankTen
	RankJack
	RankQueen
	RankKing
	RankAce

	numRanks = 8
)

// Ranks lists all eight ranks in sequence order (low to high).
var Ranks = [numRanks]Rank{RankSeven, RankEight, RankNine, RankTen, RankJack, RankQueen, RankKing, RankAce}

func (r Rank) String() string {
	switch r {
	case RankSeven:
		return "7"
	case RankEight:
		return "8"
	case RankNine:
		return "9"
	case RankTen:
		return "10"
	case RankJack:
		return "J"
	case RankQueen:
		return "Q"
	case RankKing:
		return "K"
	case RankAce:
		return "A"
	}
	return "?"
}

// Card is an immutable (suit, rank) pair. Equality is value equality.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// NewCard constructs a Card from suit and rank.
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}
