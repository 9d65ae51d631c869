package engine

// DeckSize is the number of cards in a Belot deck: 4 suits x 8 ranks.
const DeckSize = 32

// Deck is a mutable bag of cards. A fresh deck holds all 32 distinct cards;
// Deal removes from the front. A deck lives for one hand and is discarded
// once fully dealt.
type Deck struct {
	Cards []Card `json:"cards"`
}

// NewDeck builds an unshuffled 32-card deck.
func NewDeck() *Deck {
	d := &Deck{Cards: make([]Card, 0, DeckSize)}
	for _, suit := range Suits {
		for _, rank := range Ranks {
			d.Cards = append(d.Cards, NewCard(suit, rank))
		}
	}
	return d
}

// Remaining returns the number of undealt cards.
func (d *Deck) Remaining() int { return len(d.Cards) }

// Deal atomically removes and returns count cards from the top of the deck.
// Returns ErrDeckExhausted without mutating the deck if fewer remain.
func (d *Deck) Deal(count int) ([]Card, error) {
	if len(d.Cards) < count {
		return nil, ErrDeckExhausted
	}
	dealt := make([]Card, count)
	copy(dealt, d.Cards[:count])
	d.Cards = d.Cards[count:]
	return dealt, nil
}

// PushFront puts cards back on top of the deck so they are dealt next.
// Used to return the talon to the deck once trump has been called.
func (d *Deck) PushFront(cards []Card) {
	d.Cards = append(append(make([]Card, 0, len(cards)+len(d.Cards)), cards...), d.Cards...)
}

// shuffle applies a Fisher-Yates permutation using the supplied random
// source (randN returns a uniform value in [0, n)).
func (d *Deck) shuffle(randN func(n uint64) uint64) {
	for i := len(d.Cards) - 1; i > 0; i-- {
		j := int(randN(uint64(i + 1)))
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}
