package game

import (
	"github.com/minaorangina/uno/deck"
)

// LegalActions lists every action the active player may take.
// It does not modify state. A game that is not running has no legal actions.
func (u *Uno) LegalActions(state *TableState) []Action {
	if state == nil || state.Phase != PhaseRunning {
		return nil
	}
	player := state.ActivePlayer()
	top, ok := state.TopCard()
	if player == nil || !ok {
		return nil
	}

	if state.CntToDraw > 0 {
		return forcedActions(state, player.Hand, top)
	}

	g := newActionSet(len(player.Hand))

	if top.Symbol == deck.Wild && len(state.DiscardPile) == 1 && state.Color == deck.Any {
		// the opening wild lets any card be played. A played wild always names a colour,
		// so a lone wild left by a reshuffle does not count
		for _, card := range player.Hand {
			if card.IsWild() {
				g.addWild(card)
				continue
			}
			g.addPlay(card, card.Color, drawCount(card))
		}
	} else {
		for _, card := range player.Hand {
			switch {
			case card.Symbol == deck.WildDrawFour:
				if !holdsColor(player.Hand, state.Color) {
					g.addWild(card)
				}
			case card.IsWild():
				g.addWild(card)
			case IsPlayable(card, top, state.Color):
				g.addPlay(card, card.Color, drawCount(card))
			}
		}
	}

	if !state.HasDrawn {
		g.add(Draw{Count: 1})
	}

	return g.actions
}

// forcedActions handles a pending draw. Only a draw two may be stacked on a draw two, and only once.
func forcedActions(state *TableState, hand deck.Deck, top deck.Card) []Action {
	forced := Draw{Count: state.CntToDraw}
	if state.CntToDraw != 2 || top.Symbol != deck.DrawTwo {
		return []Action{forced}
	}

	g := newActionSet(len(hand))
	for _, card := range hand {
		if card.Symbol == deck.DrawTwo {
			g.addPlay(card, card.Color, state.CntToDraw+2)
		}
	}
	g.add(forced)
	return g.actions
}

// IsPlayable reports whether card matches the top of the discard pile under the active colour.
// Wild cards always match.
func IsPlayable(card, top deck.Card, color deck.Color) bool {
	if card.IsWild() {
		return true
	}
	if card.Color == color {
		return true
	}
	if card.Symbol != deck.NoSymbol && card.Symbol == top.Symbol {
		return true
	}
	return card.HasRank() && top.HasRank() && card.Rank == top.Rank
}

// holdsColor reports whether hand has a non-wild card of color
func holdsColor(hand deck.Deck, color deck.Color) bool {
	for _, c := range hand {
		if !c.IsWild() && c.Color == color {
			return true
		}
	}
	return false
}

func drawCount(card deck.Card) int {
	switch card.Symbol {
	case deck.DrawTwo:
		return 2
	case deck.WildDrawFour:
		return 4
	}
	return 0
}

// actionSet collects actions in generation order without duplicates.
// Duplicate cards in a hand would otherwise produce identical actions.
type actionSet struct {
	handSize int
	seen     map[Action]struct{}
	actions  []Action
}

func newActionSet(handSize int) *actionSet {
	return &actionSet{handSize: handSize, seen: map[Action]struct{}{}}
}

func (g *actionSet) add(a Action) {
	if _, ok := g.seen[a]; ok {
		return
	}
	g.seen[a] = struct{}{}
	g.actions = append(g.actions, a)
}

// addPlay adds a play, twice when it leaves a single card so the last card can be announced
func (g *actionSet) addPlay(card deck.Card, color deck.Color, draw int) {
	if g.handSize == 2 {
		g.add(Play{Card: card, Color: color, Draw: draw, Announce: true})
	}
	g.add(Play{Card: card, Color: color, Draw: draw})
}

func (g *actionSet) addWild(card deck.Card) {
	for _, color := range deck.DeclarableColors {
		g.addPlay(card, color, drawCount(card))
	}
}
