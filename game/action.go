package game

import (
	"fmt"
	"sort"
	"strings"

	"github.com/minaorangina/uno/deck"
)

// Action is a choice a player can make on their turn: a Play or a Draw
type Action interface {
	fmt.Stringer
	action()
}

// Play puts Card on the discard pile.
// Color is the colour the card sets; for wild cards it is the declared colour.
// Draw is the penalty the card passes on to the next player.
// Announce is the final card call, made when the play leaves one card in hand.
type Play struct {
	Card     deck.Card
	Color    deck.Color
	Draw     int
	Announce bool
}

// Draw takes Count cards from the draw pile and ends the turn
type Draw struct {
	Count int
}

func (Play) action() {}
func (Draw) action() {}

func (p Play) String() string {
	var sb strings.Builder
	sb.WriteString(p.Card.String())
	if p.Card.IsWild() && p.Color != deck.NoColor {
		fmt.Fprintf(&sb, " %s", strings.ToUpper(string(p.Color)))
	}
	if p.Draw > 0 {
		fmt.Fprintf(&sb, " +%d", p.Draw)
	}
	if p.Announce {
		sb.WriteString(" UNO")
	}
	return sb.String()
}

func (d Draw) String() string {
	return fmt.Sprintf("DRAW %d", d.Count)
}

// SortActions orders actions by their string form
func SortActions(actions []Action) {
	sort.SliceStable(actions, func(i, j int) bool {
		return actions[i].String() < actions[j].String()
	})
}

// ContainsAction reports whether want is one of actions.
// The Draw field of a Play is derived from its card and is not compared.
func ContainsAction(actions []Action, want Action) bool {
	for _, a := range actions {
		if sameAction(a, want) {
			return true
		}
	}
	return false
}

func sameAction(a, b Action) bool {
	switch x := a.(type) {
	case Play:
		y, ok := b.(Play)
		return ok && x.Card == y.Card && x.Color == y.Color && x.Announce == y.Announce
	case Draw:
		y, ok := b.(Draw)
		return ok && x == y
	}
	return false
}
