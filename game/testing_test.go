package game

import (
	"fmt"

	"github.com/minaorangina/uno/deck"
)

var (
	red5      = deck.NumberCard(deck.Red, 5)
	red7      = deck.NumberCard(deck.Red, 7)
	blue1     = deck.NumberCard(deck.Blue, 1)
	green3    = deck.NumberCard(deck.Green, 3)
	redSkip   = deck.SymbolCard(deck.Red, deck.Skip)
	redRev    = deck.SymbolCard(deck.Red, deck.Reverse)
	redDraw2  = deck.SymbolCard(deck.Red, deck.DrawTwo)
	blueDraw2 = deck.SymbolCard(deck.Blue, deck.DrawTwo)
	wild      = deck.SymbolCard(deck.Any, deck.Wild)
	wildDraw4 = deck.SymbolCard(deck.Any, deck.WildDrawFour)
)

// tableWith builds a running game from the given discard pile and hands.
// The draw pile holds the rest of a full deck, top card last.
func tableWith(discard deck.Deck, color deck.Color, hands ...deck.Deck) *TableState {
	used := append([]deck.Deck{discard}, hands...)
	state := &TableState{
		Phase:       PhaseRunning,
		Players:     make([]PlayerState, len(hands)),
		Direction:   1,
		Color:       color,
		DrawPile:    remaining(used...),
		DiscardPile: discard.Clone(),
	}
	for i, h := range hands {
		state.Players[i] = PlayerState{Name: fmt.Sprintf("Player%d", i), Hand: h.Clone()}
	}
	return state
}

// remaining returns a full deck without the used cards
func remaining(used ...deck.Deck) deck.Deck {
	d := deck.New()
	for _, cards := range used {
		for _, c := range cards {
			d.Remove(c)
		}
	}
	return d
}

func hand(cards ...deck.Card) deck.Deck {
	return deck.Deck(cards)
}

func handSizes(s *TableState) []int {
	sizes := make([]int, len(s.Players))
	for i, p := range s.Players {
		sizes[i] = len(p.Hand)
	}
	return sizes
}
