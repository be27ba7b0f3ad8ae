package deck

import (
	"errors"
	"math/rand"
	"time"
)

// Size is the number of cards in a full deck
const Size = 108

var ErrEmptyDeck = errors.New("empty deck")

// Deck represents a pile of cards. The last card is the top of the pile.
type Deck []Card

// New creates the full deck of cards, in the order of the reference table
func New() Deck {
	cards := make(Deck, 0, Size)

	// one zero per colour, then one of each number
	for rank := 0; rank <= int(maxRank); rank++ {
		for _, color := range DeclarableColors {
			cards = append(cards, NumberCard(color, rank))
		}
	}
	// second copy of 1-9
	for rank := 1; rank <= int(maxRank); rank++ {
		for _, color := range DeclarableColors {
			cards = append(cards, NumberCard(color, rank))
		}
	}

	for _, symbol := range []Symbol{Skip, Reverse, DrawTwo} {
		for i := 0; i < 2; i++ {
			for _, color := range DeclarableColors {
				cards = append(cards, SymbolCard(color, symbol))
			}
		}
	}

	for _, symbol := range []Symbol{Wild, WildDrawFour} {
		for i := 0; i < 4; i++ {
			cards = append(cards, SymbolCard(Any, symbol))
		}
	}

	return cards
}

// Shuffle shuffles the deck of cards using r.
// A nil r falls back to a time-seeded source.
func (d Deck) Shuffle(r *rand.Rand) {
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	r.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}

// Push puts cards on top of the deck
func (d *Deck) Push(cards ...Card) {
	*d = append(*d, cards...)
}

// Pop removes the top card
func (d *Deck) Pop() (Card, error) {
	if len(*d) == 0 {
		return Blank(), ErrEmptyDeck
	}
	last := len(*d) - 1
	card := (*d)[last]
	*d = (*d)[:last]
	return card, nil
}

// Top returns the top card without removing it
func (d Deck) Top() (Card, error) {
	if len(d) == 0 {
		return Blank(), ErrEmptyDeck
	}
	return d[len(d)-1], nil
}

// Remove takes one copy of card out of the deck, reporting whether it was present
func (d *Deck) Remove(card Card) bool {
	for i, c := range *d {
		if c == card {
			*d = append((*d)[:i], (*d)[i+1:]...)
			return true
		}
	}
	return false
}

// Count returns how many copies of card the deck holds
func (d Deck) Count(card Card) int {
	n := 0
	for _, c := range d {
		if c == card {
			n++
		}
	}
	return n
}

// Contains reports whether the deck holds card
func (d Deck) Contains(card Card) bool {
	return d.Count(card) > 0
}

// Clone returns a copy that shares no memory with d
func (d Deck) Clone() Deck {
	out := make(Deck, len(d))
	copy(out, d)
	return out
}
