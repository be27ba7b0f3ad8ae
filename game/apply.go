package game

import (
	"github.com/minaorangina/uno/deck"
	"k8s.io/klog/v2"
)

// PenaltySize is the number of cards drawn for a missed final card call
const PenaltySize = 4

// Outcome describes what applying an action did
type Outcome struct {
	Action Action
	// Player is the index of the player who acted
	Player int
	// Drawn counts the cards taken by a Draw action
	Drawn int
	// Penalty counts the cards taken for a missed final card call
	Penalty    int
	Reshuffled bool
	Shortfall  *ExhaustedPileWarning
	Finished   bool
}

// Apply plays action for the active player and returns the next state.
// state itself is never modified; on error it is returned as it was.
func (u *Uno) Apply(state *TableState, action Action) (*TableState, error) {
	next, _, err := u.ApplyWithOutcome(state, action)
	return next, err
}

// ApplyWithOutcome is Apply, also reporting the side effects of the action
func (u *Uno) ApplyWithOutcome(state *TableState, action Action) (*TableState, Outcome, error) {
	if state == nil {
		return nil, Outcome{}, ErrNilState
	}

	action, err := u.check(state, action)
	if err != nil {
		return state, Outcome{}, err
	}

	next := state.Clone()
	out := Outcome{Action: action, Player: next.ActiveIdx}

	switch a := action.(type) {
	case Draw:
		out.Drawn = u.drawInto(next, next.ActiveIdx, a.Count, &out)
		next.CntToDraw = 0
		next.endTurn(1)

	case Play:
		hand := &next.Players[next.ActiveIdx].Hand
		hand.Remove(a.Card)
		next.DiscardPile.Push(a.Card)
		next.Color = a.Color

		switch a.Card.Symbol {
		case deck.Reverse:
			next.Direction *= -1
		case deck.Skip:
			if len(*hand) > 0 {
				next.endTurn(2)
				klog.V(1).Infof("player %d played %s", out.Player, a)
				return next, out, nil
			}
		case deck.DrawTwo:
			next.CntToDraw += 2
		case deck.WildDrawFour:
			next.CntToDraw += 4
		}

		if len(*hand) == 0 {
			next.finish()
			out.Finished = true
			klog.Infof("player %d (%s) wins", out.Player, next.Players[out.Player].Name)
			return next, out, nil
		}

		if len(*hand) == 1 && !a.Announce {
			out.Penalty = u.drawInto(next, next.ActiveIdx, PenaltySize, &out)
		}
		next.endTurn(1)
	}

	klog.V(1).Infof("player %d played %s", out.Player, action)
	return next, out, nil
}

// check rejects actions that cannot be applied to state.
// It returns the matching generated action, which carries the play's colour and draw count.
func (u *Uno) check(state *TableState, action Action) (Action, error) {
	if state.Phase != PhaseRunning {
		return action, &IllegalActionError{Action: action, Reason: ErrNotRunning}
	}

	switch a := action.(type) {
	case Draw:
		if a.Count <= 0 {
			return action, &IllegalActionError{Action: action, Reason: ErrInvalidDrawCount}
		}

	case Play:
		player := state.ActivePlayer()
		if player == nil || !player.Hand.Contains(a.Card) {
			return action, &IllegalActionError{Action: action, Reason: ErrCardNotInHand}
		}
		if a.Card.IsWild() {
			if !a.Color.Declarable() {
				return action, &IllegalActionError{Action: action, Reason: ErrUndeclarableColor}
			}
		} else {
			if a.Color != deck.NoColor && a.Color != a.Card.Color {
				return action, &IllegalActionError{Action: action, Reason: ErrUndeclarableColor}
			}
			a.Color = a.Card.Color
		}
		action = a

	default:
		return action, &IllegalActionError{Action: action, Reason: ErrUnknownAction}
	}

	for _, legal := range u.LegalActions(state) {
		if sameAction(legal, action) {
			return legal, nil
		}
	}
	return action, &IllegalActionError{Action: action, Reason: ErrNotLegal}
}

// drawInto moves up to n cards from the draw pile into a player's hand.
// An empty draw pile is refilled from the discard pile, keeping its top card.
// When both are used up the draw stops short.
func (u *Uno) drawInto(state *TableState, idx, n int, out *Outcome) int {
	hand := &state.Players[idx].Hand

	got := 0
	for got < n {
		if len(state.DrawPile) == 0 {
			if len(state.DiscardPile) <= 1 {
				break
			}
			u.reshuffle(state)
			out.Reshuffled = true
		}
		card, err := state.DrawPile.Pop()
		if err != nil {
			break
		}
		hand.Push(card)
		got++
	}

	if got < n {
		out.Shortfall = &ExhaustedPileWarning{Wanted: n, Got: got}
		klog.V(2).Infof("player %d: %s", idx, out.Shortfall)
	}
	return got
}

// reshuffle turns the discard pile, all but its top card, into a new draw pile
func (u *Uno) reshuffle(state *TableState) {
	top, err := state.DiscardPile.Pop()
	if err != nil {
		return
	}
	state.DrawPile = append(state.DrawPile, state.DiscardPile...)
	state.DiscardPile = deck.Deck{top}
	state.DrawPile.Shuffle(u.rng)
	klog.V(2).Infof("reshuffled %d discarded cards into the draw pile", len(state.DrawPile))
}
